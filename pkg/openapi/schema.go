package openapi

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema is one node of the schema tree. It is either a reference ($ref), a boolean
// schema (Bool set) or a structured schema object.
type Schema struct {
	Ref string `yaml:"$ref"`

	// Bool is set for the boolean schemas `true` and `false`.
	Bool *bool `yaml:"-"`

	Type   TypeSet `yaml:"type"`
	Format string  `yaml:"format"`

	Title       string `yaml:"title"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Deprecated  bool   `yaml:"deprecated"`
	ReadOnly    bool   `yaml:"readOnly"`
	WriteOnly   bool   `yaml:"writeOnly"`
	Nullable    bool   `yaml:"nullable"`

	Default    any  `yaml:"default"`
	HasDefault bool `yaml:"-"`
	Example    any  `yaml:"example"`
	HasExample bool `yaml:"-"`
	Const      any  `yaml:"const"`
	HasConst   bool `yaml:"-"`

	Enum []any `yaml:"enum"`

	Properties           *OrderedMap[*Schema] `yaml:"properties"`
	Required             []string             `yaml:"required"`
	AdditionalProperties *Schema              `yaml:"additionalProperties"`
	Defs                 *OrderedMap[*Schema] `yaml:"$defs"`

	Items       *Items    `yaml:"items"`
	PrefixItems []*Schema `yaml:"prefixItems"`
	MinItems    *int      `yaml:"minItems"`
	MaxItems    *int      `yaml:"maxItems"`

	AllOf []*Schema `yaml:"allOf"`
	OneOf []*Schema `yaml:"oneOf"`
	AnyOf []*Schema `yaml:"anyOf"`

	Discriminator *Discriminator `yaml:"discriminator"`

	// Extensions holds every x- key of the schema object.
	Extensions map[string]any `yaml:"-"`
}

// Discriminator names the property that tells the variants of a polymorphic schema apart.
type Discriminator struct {
	PropertyName string              `yaml:"propertyName"`
	Mapping      *OrderedMap[string] `yaml:"mapping"`
}

// Items holds the `items` keyword, which is a single schema or (legacy tuples) a list.
type Items struct {
	Schema *Schema
	Tuple  []*Schema
}

// TypeSet holds `type`, which may be a single name or (3.1) a list of names.
type TypeSet []string

// BoolSchema returns the boolean schema for v
func BoolSchema(v bool) *Schema {
	return &Schema{Bool: &v}
}

// IsRef reports whether the schema is a $ref node
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// IsBool reports whether the schema is `true` or `false`
func (s *Schema) IsBool() bool {
	return s != nil && s.Bool != nil
}

// IsRequired reports whether name is listed in required
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Extension returns an x- extension value
func (s *Schema) Extension(key string) (any, bool) {
	v, ok := s.Extensions[key]
	return v, ok
}

// Is reports whether the type set contains name
func (t TypeSet) Is(name string) bool {
	return slices.Contains(t, name)
}

// Single returns the type name when exactly one type is declared
func (t TypeSet) Single() (string, bool) {
	if len(t) == 1 {
		return t[0], true
	}
	return "", false
}

// UnmarshalYAML accepts both `type: string` and `type: [string, "null"]`.
func (t *TypeSet) UnmarshalYAML(node *yaml.Node) error {
	node = unalias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*t = TypeSet{"null"}
			return nil
		}
		*t = TypeSet{node.Value}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*t = names
		return nil
	}
	return fmt.Errorf("line %d: type must be a string or a list of strings", node.Line)
}

// UnmarshalYAML accepts a schema or a list of schemas.
func (it *Items) UnmarshalYAML(node *yaml.Node) error {
	node = unalias(node)
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&it.Tuple)
	}
	it.Schema = new(Schema)
	return node.Decode(it.Schema)
}

// UnmarshalYAML decodes boolean schemas and schema objects, and records which
// keywords were present so that `const: null` and `default: null` survive.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	node = unalias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: schema must be an object or a boolean", node.Line)
		}
		s.Bool = &b
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: schema must be an object or a boolean", node.Line)
	}

	type rawSchema Schema
	var raw rawSchema
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*s = Schema(raw)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		switch {
		case key == "const":
			s.HasConst = true
		case key == "default":
			s.HasDefault = true
		case key == "example":
			s.HasExample = true
		case strings.HasPrefix(key, "x-"):
			var v any
			if err := node.Content[i+1].Decode(&v); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if s.Extensions == nil {
				s.Extensions = make(map[string]any)
			}
			s.Extensions[key] = v
		}
	}
	return nil
}

// Children returns the direct subschemas of s paired with their pointer suffixes,
// in document order.
func (s *Schema) Children() []SubSchema {
	if s == nil || s.IsBool() {
		return nil
	}
	var out []SubSchema
	for name, p := range s.Properties.All() {
		out = append(out, SubSchema{Path: []string{"properties", name}, Schema: p})
	}
	if s.AdditionalProperties != nil {
		out = append(out, SubSchema{Path: []string{"additionalProperties"}, Schema: s.AdditionalProperties})
	}
	for name, d := range s.Defs.All() {
		out = append(out, SubSchema{Path: []string{"$defs", name}, Schema: d})
	}
	if s.Items != nil {
		if s.Items.Schema != nil {
			out = append(out, SubSchema{Path: []string{"items"}, Schema: s.Items.Schema})
		}
		for i, t := range s.Items.Tuple {
			out = append(out, SubSchema{Path: []string{"items", fmt.Sprint(i)}, Schema: t})
		}
	}
	for i, p := range s.PrefixItems {
		out = append(out, SubSchema{Path: []string{"prefixItems", fmt.Sprint(i)}, Schema: p})
	}
	for _, group := range []struct {
		name    string
		schemas []*Schema
	}{{"allOf", s.AllOf}, {"oneOf", s.OneOf}, {"anyOf", s.AnyOf}} {
		for i, m := range group.schemas {
			out = append(out, SubSchema{Path: []string{group.name, fmt.Sprint(i)}, Schema: m})
		}
	}
	return out
}

// SubSchema is a child schema and its location relative to the parent
type SubSchema struct {
	Path   []string
	Schema *Schema
}

// WalkSchema calls fn for s and every schema nested inside it. $ref nodes are
// visited but not followed.
func WalkSchema(s *Schema, fn func(*Schema)) {
	if s == nil {
		return
	}
	fn(s)
	for _, c := range s.Children() {
		WalkSchema(c.Schema, fn)
	}
}
