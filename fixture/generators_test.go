package fixture_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sghaida/fixo/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID_ProducesDistinctValidIDs(t *testing.T) {
	t.Parallel()

	gen := fixture.UUID()

	a := gen()
	b := gen()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	_, err = uuid.Parse(b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNow_CapturesGenerationTime(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := fixture.Now()()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestBuiltinGenerators_InsideDefinition(t *testing.T) {
	t.Parallel()

	f := fixture.New(fixture.Definition{
		"id":        fixture.UUID(),
		"createdAt": fixture.Now(),
	})

	obj := f.MustGenerate()

	id, ok := obj["id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	_, ok = obj["createdAt"].(time.Time)
	assert.True(t, ok)
}
