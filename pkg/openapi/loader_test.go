package openapi

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(`
openapi: 3.1.0
info:
  title: Zoo
  version: "2"
paths:
  /zebras: {get: {operationId: listZebras, responses: {}}}
  /ants: {get: {operationId: listAnts, responses: {}}}
  /moles: {}
components:
  schemas:
    Animal:
      type: [string, "null"]
      const: null
      default: x
      x-internal: true
    Flag: false
`))
	require.NoError(t, err)

	assert.Equal(t, "Zoo", doc.Info.Title)
	assert.Equal(t, []string{"/zebras", "/ants", "/moles"}, doc.Paths.Keys())
	assert.Equal(t, []string{"/ants", "/moles", "/zebras"}, doc.Paths.SortedKeys())

	zebras, ok := doc.Paths.Get("/zebras")
	require.True(t, ok)
	assert.Equal(t, "listZebras", zebras.Operation("get").OperationID)
	assert.Nil(t, zebras.Operation("post"))

	animal, ok := doc.Components.Schemas.Get("Animal")
	require.True(t, ok)
	assert.Equal(t, TypeSet{"string", "null"}, animal.Type)
	assert.True(t, animal.Type.Is("null"))
	assert.True(t, animal.HasConst)
	assert.Nil(t, animal.Const)
	assert.True(t, animal.HasDefault)
	v, ok := animal.Extension("x-internal")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	flag, _ := doc.Components.Schemas.Get("Flag")
	assert.True(t, flag.IsBool())
	assert.False(t, *flag.Bool)
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi": "3.0.3", "info": {"title": "J", "version": "1"}, "paths": {"/b": {}, "/a": {}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/b", "/a"}, doc.Paths.Keys())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"swagger", "swagger: \"2.0\"\ninfo: {title: t, version: \"1\"}\n", ErrUnsupportedVersion},
		{"openapi 4", "openapi: 4.0.0\n", ErrUnsupportedVersion},
		{"openapi 2", "openapi: 2.0.0\n", ErrUnsupportedVersion},
		{"missing version", "info: {title: t}\n", ErrMissingVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := Parse([]byte("- a\n- b\n"))
	assert.EqualError(t, err, "document root must be a mapping")

	_, err = Parse([]byte(""))
	assert.EqualError(t, err, "document is empty")
}

func TestVersionError(t *testing.T) {
	var verr *VersionError
	err := CheckVersion(&Document{Swagger: "2.0"})
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Swagger)
	assert.Contains(t, err.Error(), "convert to OpenAPI 3.x")

	assert.NoError(t, CheckVersion(&Document{OpenAPI: "3.0.0"}))
	assert.NoError(t, CheckVersion(&Document{OpenAPI: " 3.1.1 "}))
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.0\ninfo: {title: File, version: \"1\"}\npaths: {}\n"), 0o644))

	doc, err := LoadDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "File", doc.Info.Title)

	_, err = LoadDocument(context.Background(), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestFileResolver(t *testing.T) {
	dir := t.TempDir()
	common := `
components:
  schemas:
    Money:
      type: object
      properties:
        currency: {$ref: "#/components/schemas/Currency"}
        rate: {$ref: "rates.yaml#/Rate"}
        amount: {type: number}
    Currency: {type: string}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common.yaml"), []byte(common), 0o644))
	r := NewFileResolver(filepath.Join(dir, "openapi.yaml"))

	var money Schema
	require.NoError(t, r.ResolveRef("common.yaml#/components/schemas/Money", &money))
	assert.Equal(t, []string{"currency", "rate", "amount"}, money.Properties.Keys())

	loc := filepath.Join(dir, "common.yaml")
	currency, _ := money.Properties.Get("currency")
	assert.Equal(t, loc+"#/components/schemas/Currency", currency.Ref)
	rate, _ := money.Properties.Get("rate")
	assert.Equal(t, filepath.Join(dir, "rates.yaml")+"#/Rate", rate.Ref)

	var missing Schema
	err := r.ResolveRef("common.yaml#/components/schemas/Nope", &missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "Nope" not found`)

	err = r.ResolveRef("#/components/schemas/Money", &missing)
	assert.ErrorContains(t, err, "not an external reference")
}

func TestWalkSchema(t *testing.T) {
	doc, err := Parse([]byte(`
openapi: 3.1.0
components:
  schemas:
    Tree:
      type: object
      properties:
        children:
          type: array
          items: {$ref: "#/components/schemas/Tree"}
      additionalProperties: {type: string}
      oneOf:
        - {type: object}
`))
	require.NoError(t, err)
	tree, _ := doc.Components.Schemas.Get("Tree")

	var refs, count int
	WalkSchema(tree, func(s *Schema) {
		count++
		if s.IsRef() {
			refs++
		}
	})
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, refs)
}
