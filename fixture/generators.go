package fixture

import (
	"time"

	"github.com/google/uuid"
)

// UUID returns a generator producing a fresh random UUID string per call.
func UUID() func() string {
	return uuid.NewString
}

// Now returns a generator capturing the current time at generation.
//
// The produced time.Time is an opaque leaf: overrides replace it wholly.
func Now() func() time.Time {
	return time.Now
}
