package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

var sample = ir.IR{
	Title:   "Store",
	Version: "1",
	Services: []ir.IRService{{
		Tag: "orders",
		Operations: []ir.IROperation{{
			OperationID: "getOrder",
			Method:      "GET",
			Path:        "/orders/{id}",
			Tag:         "orders",
			PathParams:  []ir.IRParam{{Name: "id", Required: true, Type: "string"}},
			Success:     "200",
		}},
	}},
}

func TestMarshal_YAML(t *testing.T) {
	data, err := Marshal(sample, false)
	require.NoError(t, err)

	expected := `title: Store
version: "1"
services:
  - tag: orders
    operations:
      - operationId: getOrder
        method: GET
        path: /orders/{id}
        tag: orders
        pathParams:
          - name: id
            required: true
            type: string
        success: "200"
`
	assert.Equal(t, expected, string(data))
}

func TestMarshal_JSON(t *testing.T) {
	data, err := Marshal(sample, true)
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	var decoded ir.IR
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sample, decoded)
	assert.NotContains(t, string(data), "requestBody")
}

func TestGenerate(t *testing.T) {
	doc, err := openapi.Parse([]byte(`
openapi: 3.1.0
info: {title: Store, version: "1"}
paths:
  /health:
    get:
      responses:
        "200": {description: ok}
`))
	require.NoError(t, err)

	dir := t.TempDir()
	gen := NewManifestGenerator()
	assert.Equal(t, Type, gen.GetType())

	yamlOut := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, gen.Generate(context.Background(), config.Output{Out: yamlOut}, doc))
	data, err := os.ReadFile(yamlOut)
	require.NoError(t, err)
	var fromYAML ir.IR
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML.Operations(), 1)
	assert.Equal(t, ir.MiscTag, fromYAML.Services[0].Tag)

	jsonOut := filepath.Join(dir, "manifest.JSON")
	require.NoError(t, gen.Generate(context.Background(), config.Output{Out: jsonOut}, doc))
	data, err = os.ReadFile(jsonOut)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
