// Package manifest writes a machine-readable listing of a document's
// operations, grouped by tag, as YAML or JSON.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// Type is the output type handled by ManifestGenerator
const Type = "manifest"

// ManifestGenerator implements the Generator interface for operation manifests
type ManifestGenerator struct{}

// NewManifestGenerator creates a new manifest generator
func NewManifestGenerator() *ManifestGenerator {
	return &ManifestGenerator{}
}

// GetType returns the generator type identifier
func (g *ManifestGenerator) GetType() string {
	return Type
}

// Generate writes the manifest of doc to out.Out. Files ending in .json are
// written as JSON, anything else as YAML.
func (g *ManifestGenerator) Generate(ctx context.Context, out config.Output, doc *openapi.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Marshal(ir.Build(doc), strings.EqualFold(filepath.Ext(out.Out), ".json"))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out.Out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out.Out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out.Out, err)
	}
	return nil
}

// Marshal encodes the manifest
func Marshal(in ir.IR, asJSON bool) ([]byte, error) {
	if asJSON {
		data, err := json.MarshalIndent(in, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
