package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
spec: https://example.com/openapi.yaml
outputs:
  - out: /tmp/gen/schema.d.ts
    options:
      enum: true
      defaultNonNullable: false
      formats:
        date-time: Date
  - type: manifest
    out: /tmp/gen/manifest.json
    spec: /specs/other.yaml
    includeTags: [pets]
    postCommand: ["npx", "prettier", "-w", "manifest.json"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/openapi.yaml", cfg.Spec)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	require.Len(t, cfg.Outputs, 2)

	ts := cfg.Outputs[0]
	assert.Equal(t, DefaultOutputType, ts.Type)
	assert.Equal(t, cfg.Spec, ts.Spec)
	assert.True(t, ts.Options.Enum)
	assert.False(t, ts.Options.IsDefaultNonNullable())
	assert.Equal(t, map[string]string{"date-time": "Date"}, ts.Options.Formats)
	assert.Equal(t, "/tmp/gen", ts.Dir())

	manifest := cfg.Outputs[1]
	assert.Equal(t, "manifest", manifest.Type)
	assert.Equal(t, "/specs/other.yaml", manifest.Spec)
	assert.Equal(t, []string{"pets"}, manifest.IncludeTags)
	assert.Equal(t, []string{"npx", "prettier", "-w", "manifest.json"}, manifest.GetPostCommand())
	assert.Nil(t, manifest.GetPreCommand())
	assert.True(t, manifest.Options.IsDefaultNonNullable())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "outputs: []\n"))
	assert.EqualError(t, err, "config.spec is required")

	_, err = Load(writeConfig(t, "spec: api.yaml\noutputs:\n  - type: typescript\n"))
	assert.EqualError(t, err, "outputs[0] missing required field out")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TYPEGEN_SPEC", "https://example.com/env.yaml")
	t.Setenv("TYPEGEN_CONCURRENCY", "2")
	t.Setenv("TYPEGEN_SILENT", "true")

	cfg, err := Load(writeConfig(t, `
spec: https://example.com/file.yaml
outputs:
  - out: /tmp/a.d.ts
  - out: /tmp/b.d.ts
    options:
      alphabetize: true
`))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/env.yaml", cfg.Spec)
	assert.Equal(t, 2, cfg.Concurrency)
	for _, o := range cfg.Outputs {
		assert.True(t, o.Options.Silent)
		assert.Equal(t, cfg.Spec, o.Spec)
	}
	assert.False(t, cfg.Outputs[0].Options.Alphabetize)
	assert.True(t, cfg.Outputs[1].Options.Alphabetize)
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("TYPEGEN_CONCURRENCY", "many")
	err := ApplyEnv(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
}

func TestNormalize_RelativePaths(t *testing.T) {
	cfg := &Config{
		Spec:    "specs/openapi.yaml",
		Outputs: []Output{{Out: "gen/schema.d.ts"}},
	}
	require.NoError(t, cfg.Normalize())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "specs/openapi.yaml"), cfg.Spec)
	assert.Equal(t, filepath.Join(wd, "gen/schema.d.ts"), cfg.Outputs[0].Out)
	assert.Equal(t, cfg.Spec, cfg.Outputs[0].Spec)
}

func TestAbsSpec(t *testing.T) {
	assert.Equal(t, "", AbsSpec(""))
	assert.Equal(t, "https://example.com/openapi.yaml", AbsSpec("https://example.com/openapi.yaml"))
	assert.Equal(t, "http://localhost:8080/spec.json", AbsSpec("http://localhost:8080/spec.json"))
	assert.Equal(t, "/specs/openapi.yaml", AbsSpec("/specs/openapi.yaml"))
	assert.True(t, filepath.IsAbs(AbsSpec("specs/openapi.yaml")))
}
