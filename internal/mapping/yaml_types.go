package mapping

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// --- ParamDef YAML methods ---

// UnmarshalYAML accepts the shorthand "radius float64" or a full mapping.
func (p *ParamDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		name, typ, ok := strings.Cut(strings.TrimSpace(str), " ")
		if !ok {
			return fmt.Errorf("line %d: parameter %q must be \"name type\"", node.Line, str)
		}

		*p = ParamDef{Name: name, Type: strings.TrimSpace(typ)}

		return nil

	case yaml.MappingNode:
		// Decode through an alias type to avoid recursing into this method.
		type plain ParamDef

		var v plain
		if err := node.Decode(&v); err != nil {
			return err
		}

		*p = ParamDef(v)

		return nil

	default:
		return fmt.Errorf("line %d: expected parameter string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML writes the shorthand form when no facts are overridden.
func (p ParamDef) MarshalYAML() (any, error) {
	if p.Class == "" && p.Comparable == nil && p.Size == 0 && p.Align == 0 {
		return p.Name + " " + p.Type, nil
	}

	type plain ParamDef

	return plain(p), nil
}
