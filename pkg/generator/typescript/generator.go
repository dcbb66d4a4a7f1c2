package typescript

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/transform"
)

//go:embed templates/*
var templatesFS embed.FS

// TypeScriptGenerator writes a single .d.ts file declaring the document's
// paths, webhooks, components and operations.
type TypeScriptGenerator struct {
	logger *slog.Logger
}

// NewTypeScriptGenerator creates a new TypeScript generator
func NewTypeScriptGenerator(logger *slog.Logger) *TypeScriptGenerator {
	return &TypeScriptGenerator{logger: logger}
}

// GetType returns the generator type identifier
func (g *TypeScriptGenerator) GetType() string {
	return config.DefaultOutputType
}

// Generate renders doc and writes it to out.Out
func (g *TypeScriptGenerator) Generate(ctx context.Context, out config.Output, doc *openapi.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, result, err := Render(doc, out, g.logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out.Out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out.Out, src, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out.Out, err)
	}
	if g.logger != nil && len(result.Warnings) > 0 {
		g.logger.Info("transform finished with warnings", "out", out.Out, "warnings", len(result.Warnings))
	}
	return nil
}

// EngineOptions maps the options of an output onto transform.Options.
func EngineOptions(out config.Output, logger *slog.Logger) transform.Options {
	o := out.Options
	opts := transform.Options{
		AdditionalProperties:        o.AdditionalProperties,
		Alphabetize:                 o.Alphabetize,
		ArrayLength:                 o.ArrayLength,
		DefaultNonNullable:          o.IsDefaultNonNullable(),
		EmptyObjectsUnknown:         o.EmptyObjectsUnknown,
		Enum:                        o.Enum,
		ExcludeDeprecated:           o.ExcludeDeprecated,
		ExportType:                  o.ExportType,
		Immutable:                   o.Immutable,
		PathParamsAsTypes:           o.PathParamsAsTypes,
		PropertiesRequiredByDefault: o.PropertiesRequiredByDefault,
		MakePathsEnum:               o.MakePathsEnum,
		ContentNever:                o.ContentNever,
		RootTypes:                   o.RootTypes,
		RootTypesNoSchemaPrefix:     o.RootTypesNoSchemaPrefix,
		Silent:                      o.Silent,
		StrictOperationIDs:          o.StrictOperationIDs,
		Inject:                      o.Inject,
		InjectFooter:                o.InjectFooter,
		Logger:                      logger,
	}
	if len(o.Formats) > 0 {
		opts.Transform = append(opts.Transform, transform.FormatHook(o.Formats))
	}
	if out.Spec != "" {
		opts.Resolver = openapi.NewFileResolver(out.Spec)
	}
	return opts
}

// Render transforms doc with the options of out and prefixes the banner.
func Render(doc *openapi.Document, out config.Output, logger *slog.Logger) ([]byte, *transform.Result, error) {
	result, err := transform.Transform(doc, EngineOptions(out, logger))
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := renderBanner(&buf, out, doc); err != nil {
		return nil, nil, err
	}
	buf.WriteString("\n")
	buf.WriteString(result.String())
	return buf.Bytes(), result, nil
}

// renderBanner renders out.Banner, or the embedded default banner, with sprig functions
func renderBanner(buf *bytes.Buffer, out config.Output, doc *openapi.Document) error {
	name := "banner.ts.gotmpl"
	text := out.Banner
	if text == "" {
		content, err := templatesFS.ReadFile("templates/" + name)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", name, err)
		}
		text = string(content)
	}

	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	data := map[string]any{
		"Title":   doc.Info.Title,
		"Version": doc.Info.Version,
		"Spec":    out.Spec,
		"Out":     filepath.Base(out.Out),
	}
	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	return nil
}
