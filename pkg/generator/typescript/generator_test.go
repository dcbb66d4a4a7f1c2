package typescript

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

const spec = `
openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items: {$ref: "#/components/schemas/Pet"}
components:
  schemas:
    Pet:
      type: object
      properties:
        born: {type: string, format: date-time}
`

func parse(t *testing.T) *openapi.Document {
	t.Helper()
	doc, err := openapi.Parse([]byte(spec))
	require.NoError(t, err)
	return doc
}

func TestRender_DefaultBanner(t *testing.T) {
	src, result, err := Render(parse(t), config.Output{Out: "/tmp/schema.d.ts"}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	banner := `/**
 * This file was auto-generated by typegen.
 * Do not make direct changes to the file.
 *
 * Petstore (1.0.0)
 */

export interface paths {
`
	assert.True(t, strings.HasPrefix(string(src), banner), string(src))
	assert.Contains(t, string(src), "            born?: string;\n")
}

func TestRender_CustomBannerAndFormats(t *testing.T) {
	out := config.Output{
		Out:    "/tmp/api/schema.d.ts",
		Banner: "// {{ .Out }} from {{ .Title | lower }}",
		Options: config.Options{
			Formats: map[string]string{"date-time": "Date"},
		},
	}
	src, _, err := Render(parse(t), out, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(src), "// schema.d.ts from petstore\n\nexport interface paths {"))
	assert.Contains(t, string(src), "            born?: Date;\n")
}

func TestRender_BadBanner(t *testing.T) {
	_, _, err := Render(parse(t), config.Output{Banner: "{{ .Title "}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestEngineOptions(t *testing.T) {
	no := false
	opts := EngineOptions(config.Output{
		Spec: "/specs/openapi.yaml",
		Options: config.Options{
			Enum:               true,
			RootTypes:          true,
			DefaultNonNullable: &no,
			Inject:             "// header",
		},
	}, nil)

	assert.True(t, opts.Enum)
	assert.True(t, opts.RootTypes)
	assert.False(t, opts.DefaultNonNullable)
	assert.Equal(t, "// header", opts.Inject)
	assert.NotNil(t, opts.Resolver)
	assert.Empty(t, opts.Transform)

	assert.True(t, EngineOptions(config.Output{}, nil).DefaultNonNullable)
}

func TestGenerate_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "schema.d.ts")
	gen := NewTypeScriptGenerator(nil)
	assert.Equal(t, "typescript", gen.GetType())

	require.NoError(t, gen.Generate(context.Background(), config.Output{Out: out}, parse(t)))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"application/json": components["schemas"]["Pet"][];`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, gen.Generate(ctx, config.Output{Out: out}, parse(t)), context.Canceled)
}
