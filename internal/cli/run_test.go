package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spec = `
openapi: 3.1.0
info: {title: Pets, version: "1"}
paths:
  /pets:
    get:
      operationId: listPets
      tags: [pets]
      responses:
        "200": {description: ok}
        "404": {description: missing}
  /health:
    get:
      responses:
        "204": {description: ok}
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o644))
	return path
}

func TestRunInspect(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunInspect(context.Background(), writeSpec(t), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"TAG", "METHOD", "PATH", "OPERATION", "SUCCESS", "ERROR"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"misc", "GET", "/health", "-", "204", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"pets", "GET", "/pets", "listPets", "200", "404"}, strings.Fields(lines[2]))
}

func TestRunGenerate_Stdout(t *testing.T) {
	var buf bytes.Buffer
	err := RunGenerate(context.Background(), RunGenerateParams{
		Fallback: FallbackParams{Spec: writeSpec(t), Out: "-", ExcludeTags: []string{"pets"}},
		Stdout:   &buf,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "auto-generated by typegen")
	assert.Contains(t, buf.String(), `"/health": {`)
	assert.NotContains(t, buf.String(), "listPets")
}

func TestRunGenerate_StdoutFromURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/specs/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`
openapi: 3.1.0
info: {title: Billing, version: "1"}
paths: {}
components:
  schemas:
    Price:
      $ref: "./common.yaml#/Money"
`))
	})
	mux.HandleFunc("/specs/common.yaml", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`
Money:
  type: object
  required: [amount]
  properties:
    amount: {type: number}
`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var buf bytes.Buffer
	err := RunGenerate(context.Background(), RunGenerateParams{
		Fallback: FallbackParams{Spec: srv.URL + "/specs/openapi.yaml", Out: "-"},
		Stdout:   &buf,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "amount: number;")
}

func TestRunGenerate_Errors(t *testing.T) {
	err := RunGenerate(context.Background(), RunGenerateParams{})
	assert.EqualError(t, err, "either --config or both --input and --out must be provided")

	err = RunGenerate(context.Background(), RunGenerateParams{
		Fallback: FallbackParams{Spec: writeSpec(t), Out: "-", Type: "manifest"},
	})
	assert.EqualError(t, err, "--out - only supports the typescript type")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLogger(&buf, true, true)
	quiet.Info("hidden")
	quiet.Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewLogger(&buf, true, false).Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestAbsPath(t *testing.T) {
	assert.Equal(t, "", absPath(""))
	assert.Equal(t, "-", absPath("-"))
	assert.Equal(t, "/tmp/x", absPath("/tmp/x"))
	assert.True(t, filepath.IsAbs(absPath("gen/schema.d.ts")))
}
