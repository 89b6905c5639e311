package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefinitionFromYAML parses a YAML mapping into a literal Definition.
//
// Every value in the result is a literal; generator leaves (sequences,
// UUIDs) cannot be expressed in YAML and are layered on afterwards:
//
//	def, err := fixture.DefinitionFromYAML(data)
//	...
//	def["id"] = fixture.SequenceString("user-")
//	users := fixture.New(def)
func DefinitionFromYAML(data []byte) (Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture: parse definition: %w", err)
	}
	return Definition(raw), nil
}
