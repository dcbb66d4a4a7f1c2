package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/tsast"
)

func mustParse(t *testing.T, src string) *openapi.Document {
	t.Helper()
	doc, err := openapi.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, src string, opts Options) string {
	t.Helper()
	result, err := Transform(mustParse(t, src), opts)
	require.NoError(t, err)
	return result.String()
}

// schemaType transforms a single schema as if it were #/components/schemas/Test
// of an otherwise empty document.
func schemaType(t *testing.T, src string, opts Options) string {
	t.Helper()
	var s openapi.Schema
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	ctx := NewContext(&openapi.Document{OpenAPI: "3.1.0"}, opts)
	n, err := TransformSchemaObject(&s, NodeOptions{Path: "#/components/schemas/Test", Ctx: ctx})
	require.NoError(t, err)
	return tsast.PrintType(n)
}

func TestTransform_EmptyPaths(t *testing.T) {
	out := render(t, `
openapi: 3.1.0
info: {title: Empty, version: "1"}
paths: {}
`, Options{})

	expected := `export type paths = Record<string, never>;
export type webhooks = Record<string, never>;
export type components = Record<string, never>;
export type $defs = Record<string, never>;
export type operations = Record<string, never>;
`
	assert.Equal(t, expected, out)
}

func TestTransform_Components(t *testing.T) {
	out := render(t, `
openapi: 3.0.3
info: {title: Users, version: "1"}
paths: {}
components:
  schemas:
    User:
      type: object
      required: [id]
      properties:
        id: {type: string}
        age: {type: integer}
`, Options{})

	expected := `export type paths = Record<string, never>;
export type webhooks = Record<string, never>;
export interface components {
    schemas: {
        User: {
            id: string;
            age?: number;
        };
    };
    responses: never;
    parameters: never;
    requestBodies: never;
    headers: never;
    pathItems: never;
}
export type $defs = Record<string, never>;
export type operations = Record<string, never>;
`
	assert.Equal(t, expected, out)
}

func TestTransform_ExportType(t *testing.T) {
	out := render(t, `
openapi: 3.1.0
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Id: {type: string}
`, Options{ExportType: true})
	assert.Contains(t, out, "export type components = {\n    schemas: {\n        Id: string;\n    };")
}

func TestTransform_Idempotent(t *testing.T) {
	doc := mustParse(t, petstore)
	first, err := Transform(doc, Options{Enum: true, RootTypes: true})
	require.NoError(t, err)
	second, err := Transform(doc, Options{Enum: true, RootTypes: true})
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestTransform_Versions(t *testing.T) {
	tests := []struct {
		name string
		doc  *openapi.Document
		err  error
	}{
		{"swagger", &openapi.Document{Swagger: "2.0"}, openapi.ErrUnsupportedVersion},
		{"missing", &openapi.Document{}, openapi.ErrMissingVersion},
		{"major 4", &openapi.Document{OpenAPI: "4.0.0"}, openapi.ErrUnsupportedVersion},
		{"major 2", &openapi.Document{OpenAPI: "2.0"}, openapi.ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform(tt.doc, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTransform_UnresolvedRef(t *testing.T) {
	src := `
openapi: 3.1.0
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Broken:
      $ref: "#/components/schemas/Missing"
`
	_, err := Transform(mustParse(t, src), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedRef))
	var refErr *RefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "#/components/schemas/Missing", refErr.Ref)
	assert.Equal(t, "#/components/schemas/Broken", refErr.Path)

	result, err := Transform(mustParse(t, src), Options{Silent: true})
	require.NoError(t, err)
	assert.Contains(t, result.String(), "Broken: unknown;")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnUnresolvedRef, result.Warnings[0].Kind)
}

func TestTransform_CyclicSchema(t *testing.T) {
	out := render(t, `
openapi: 3.1.0
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Tree:
      type: object
      properties:
        children:
          type: array
          items:
            $ref: "#/components/schemas/Tree"
    Forest:
      $ref: "#/components/schemas/Tree"
`, Options{})
	assert.Contains(t, out, `children?: components["schemas"]["Tree"][];`)
	assert.Contains(t, out, `Forest: components["schemas"]["Tree"];`)
}

func TestTransform_RootTypes(t *testing.T) {
	out := render(t, petstore, Options{RootTypes: true})
	assert.Contains(t, out, `export type SchemaPet = components["schemas"]["Pet"];`)
	assert.Contains(t, out, `export type ParameterLimit = components["parameters"]["limit"];`)

	out = render(t, petstore, Options{RootTypes: true, RootTypesNoSchemaPrefix: true})
	assert.Contains(t, out, `export type Pet = components["schemas"]["Pet"];`)
	assert.Contains(t, out, `export type ParameterLimit = components["parameters"]["limit"];`)
}

func TestTransform_InjectAndFooter(t *testing.T) {
	out := render(t, `
openapi: 3.1.0
info: {title: t, version: "1"}
paths: {}
`, Options{Inject: "import type { Blob } from \"buffer\";", InjectFooter: "export {};"})
	assert.True(t, strings.HasPrefix(out, "import type { Blob } from \"buffer\";\nexport type paths"))
	assert.Contains(t, out, "export type operations = Record<string, never>;\nexport {};\n")
}
