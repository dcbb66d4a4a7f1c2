package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

func TestTransformSchemaObject(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		opts     Options
		expected string
	}{
		{"boolean true", `true`, Options{}, "unknown"},
		{"boolean false", `false`, Options{}, "never"},
		{"empty schema", `{}`, Options{}, "unknown"},
		{"string", `type: string`, Options{}, "string"},
		{"integer", `type: integer`, Options{}, "number"},
		{"format is documentation only", "type: string\nformat: date-time", Options{}, "string"},
		{"type list with null", `type: [string, "null"]`, Options{}, "string | null"},
		{"legacy nullable", "type: string\nnullable: true", Options{}, "string | null"},
		{"nullable with default", "type: string\nnullable: true\ndefault: x", Options{DefaultNonNullable: true}, "string"},
		{"nullable with default, option off", "type: string\nnullable: true\ndefault: x", Options{}, "string | null"},
		{"enum", "type: string\nenum: [a, b]", Options{}, `"a" | "b"`},
		{"enum with null", "type: string\nnullable: true\nenum: [a, null]", Options{}, `"a" | null`},
		{"mixed enum", `enum: [1, "two", true]`, Options{}, `1 | "two" | true`},
		{"escaped enum", `enum: ["say \"hi\""]`, Options{}, `"say \"hi\""`},
		{"const", `const: 5`, Options{}, "5"},
		{"object const", "const: {b: 1, a: x}", Options{}, "{\n    a: \"x\";\n    b: 1;\n}"},
		{"array", "type: array\nitems: {type: string}", Options{}, "string[]"},
		{"array without items", `type: array`, Options{}, "unknown[]"},
		{"array of unions", "type: array\nitems: {type: [string, number]}", Options{}, "(string | number)[]"},
		{"tuple", "type: array\nprefixItems: [{type: string}, {type: number}]", Options{}, "[string, number]"},
		{"immutable array", "type: array\nitems: {type: string}", Options{Immutable: true}, "readonly string[]"},
		{"array length range", "type: array\nitems: {type: string}\nminItems: 1\nmaxItems: 2", Options{ArrayLength: true}, "[string] | [string, string]"},
		{"array length min", "type: array\nitems: {type: string}\nminItems: 2", Options{ArrayLength: true}, "[string, string, ...string[]]"},
		{"immutable array length", "type: array\nitems: {type: string}\nminItems: 1\nmaxItems: 2", Options{ArrayLength: true, Immutable: true}, "readonly [string] | readonly [string, string]"},
		{"immutable array length min", "type: array\nitems: {type: string}\nminItems: 1", Options{ArrayLength: true, Immutable: true}, "readonly [string, ...string[]]"},
		{"array length too large", "type: array\nitems: {type: string}\nminItems: 1\nmaxItems: 10", Options{ArrayLength: true}, "string[]"},
		{"empty object", `type: object`, Options{}, "Record<string, never>"},
		{"empty object unknown", `type: object`, Options{EmptyObjectsUnknown: true}, "unknown"},
		{"additionalProperties", "type: object\nadditionalProperties: {type: string}", Options{}, "{\n    [key: string]: string;\n}"},
		{"additionalProperties false", "type: object\nadditionalProperties: false\nproperties: {a: {type: string}}", Options{AdditionalProperties: true}, "{\n    a?: string;\n}"},
		{"implied additionalProperties", "type: object\nproperties: {a: {type: string}}", Options{AdditionalProperties: true}, "{\n    a?: string;\n} & {\n    [key: string]: unknown;\n}"},
		{"oneOf primitives", "oneOf: [{type: string}, {type: number}]", Options{}, "string | number"},
		{"type list skips oneOf primitives", "type: [string, object]\noneOf: [{type: string}]\nproperties: {a: {type: string}}", Options{}, "{\n    a?: string;\n} | string"},
		{
			"object",
			"type: object\nrequired: [id]\nproperties:\n  id: {type: string}\n  age: {type: integer}",
			Options{},
			"{\n    id: string;\n    age?: number;\n}",
		},
		{
			"required by default",
			"type: object\nproperties:\n  id: {type: string}",
			Options{PropertiesRequiredByDefault: true},
			"{\n    id: string;\n}",
		},
		{
			"default makes property required",
			"type: object\nproperties:\n  page: {type: integer, default: 1}",
			Options{DefaultNonNullable: true},
			"{\n    /** @default 1 */\n    page: number;\n}",
		},
		{
			"readOnly property",
			"type: object\nproperties:\n  id: {type: string, readOnly: true}",
			Options{},
			"{\n    readonly id?: string;\n}",
		},
		{
			"deprecated property excluded",
			"type: object\nproperties:\n  old: {type: string, deprecated: true}\n  new: {type: string}",
			Options{ExcludeDeprecated: true},
			"{\n    new?: string;\n}",
		},
		{
			"quoted keys",
			"type: object\nrequired: [content-type]\nproperties:\n  content-type: {type: string}",
			Options{},
			"{\n    \"content-type\": string;\n}",
		},
		{
			"allOf keeps each member's required list",
			"allOf:\n  - type: object\n    required: [x]\n    properties: {x: {type: string}}\n  - type: object\n    required: [y]\n    properties: {y: {type: string}, z: {type: string}}",
			Options{},
			"{\n    x: string;\n} & {\n    y: string;\n    z?: string;\n}",
		},
		{
			"allOf inherits parent required",
			"required: [z]\nallOf:\n  - type: object\n    properties: {z: {type: string}}",
			Options{},
			"{\n    z: string;\n}",
		},
		{
			"object with oneOf narrows",
			"type: object\nproperties: {a: {type: string}}\noneOf:\n  - type: object\n    properties: {b: {type: string}}\n  - type: object\n    properties: {c: {type: string}}",
			Options{},
			"{\n    a?: string;\n} & ({\n    b?: string;\n} | {\n    c?: string;\n})",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schemaType(t, tt.schema, tt.opts))
		})
	}
}

func TestTransformSchemaObject_Hooks(t *testing.T) {
	formats := FormatHook(map[string]string{"date-time": "Date"})

	assert.Equal(t, "Date", schemaType(t, "type: string\nformat: date-time", Options{Transform: []TransformHook{formats}}))
	assert.Equal(t, "Date | null", schemaType(t, "type: string\nformat: date-time\nnullable: true", Options{Transform: []TransformHook{formats}}))
	assert.Equal(t, "string", schemaType(t, "type: string\nformat: uuid", Options{Transform: []TransformHook{formats}}))

	// hooks run before refs and enums
	blob := func(s *openapi.Schema, meta HookMeta) *HookResult {
		if _, ok := s.Extension("x-blob"); ok {
			return &HookResult{Type: tsast.Ref("Blob"), Optional: true}
		}
		return nil
	}
	assert.Equal(t, "Blob | undefined", schemaType(t, "$ref: '#/components/schemas/Missing'\nx-blob: true", Options{Transform: []TransformHook{blob}}))

	// a hook that sees an optional property marks it optional
	assert.Equal(t,
		"{\n    file?: Blob;\n}",
		schemaType(t, "type: object\nrequired: [file]\nproperties:\n  file: {type: string, x-blob: true}", Options{Transform: []TransformHook{blob}}))

	post := func(n tsast.Node, s *openapi.Schema, meta HookMeta) *HookResult {
		if n == tsast.Number {
			return &HookResult{Type: tsast.Ref("bigint")}
		}
		return nil
	}
	assert.Equal(t, "bigint", schemaType(t, "type: integer", Options{PostTransform: []PostTransformHook{post}}))
	assert.Equal(t, "bigint[]", schemaType(t, "type: array\nitems: {type: integer}", Options{PostTransform: []PostTransformHook{post}}))

	// post-transform hooks also run on properties a transform hook produced
	upload := func(n tsast.Node, s *openapi.Schema, meta HookMeta) *HookResult {
		if ref, ok := n.(tsast.TypeRef); ok && ref.Name == "Blob" {
			return &HookResult{Type: tsast.Ref("Upload")}
		}
		return nil
	}
	assert.Equal(t,
		"{\n    file: Upload;\n}",
		schemaType(t, "type: object\nrequired: [file]\nproperties:\n  file: {type: string, x-blob: true}",
			Options{Transform: []TransformHook{blob}, PostTransform: []PostTransformHook{upload}}))
	assert.Equal(t, "Upload", schemaType(t, "type: string\nx-blob: true",
		Options{Transform: []TransformHook{blob}, PostTransform: []PostTransformHook{upload}}))
}

func TestLiteralType(t *testing.T) {
	assert.Equal(t, `["a", 1, null]`, tsast.PrintType(literalType([]any{"a", 1, nil})))
	assert.Equal(t, "false", tsast.PrintType(literalType(false)))
	assert.Equal(t, "1.5", tsast.PrintType(literalType(1.5)))
}
