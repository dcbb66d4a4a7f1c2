package generator

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// GenerateTypesOptions contains options for the convenience GenerateTypes function
type GenerateTypesOptions struct {
	// ConfigPath is the path to the configuration file (optional)
	ConfigPath string

	// SingleOutput generates only the output writing to this path (optional)
	SingleOutput string

	// Fallback options when no config file is provided
	Spec        string         // OpenAPI spec file or URL
	Type        string         // Generator type (e.g., "typescript")
	Out         string         // Output file
	IncludeTags []string       // Regex patterns for tags to include
	ExcludeTags []string       // Regex patterns for tags to exclude
	Options     config.Options // Type generation switches

	// Logger receives progress and warnings (optional)
	Logger *slog.Logger
}

// GenerateTypes is a convenience function for generating with minimal configuration
func GenerateTypes(ctx context.Context, opts GenerateTypesOptions) error {
	service := NewService(opts.Logger)

	genOpts := GenerateOptions{
		ConfigPath:   opts.ConfigPath,
		SingleOutput: opts.SingleOutput,
		Fallback: FallbackOptions{
			Spec:        opts.Spec,
			Type:        opts.Type,
			Out:         opts.Out,
			IncludeTags: opts.IncludeTags,
			ExcludeTags: opts.ExcludeTags,
			Options:     opts.Options,
		},
	}

	return service.Generate(ctx, genOpts)
}

// GenerateTypeScript is a convenience function specifically for TypeScript declarations
func GenerateTypeScript(ctx context.Context, spec, out string) error {
	// Ensure absolute path for out
	absOut, err := filepath.Abs(out)
	if err != nil {
		return err
	}

	return GenerateTypes(ctx, GenerateTypesOptions{
		Spec: spec,
		Type: config.DefaultOutputType,
		Out:  absOut,
	})
}

// GenerateFromConfig is a convenience function for generating from a config file
func GenerateFromConfig(ctx context.Context, configPath string, singleOutput ...string) error {
	service := NewService(nil)
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	onlyOutput := ""
	if len(singleOutput) > 0 {
		onlyOutput = singleOutput[0]
	}

	return service.GenerateFromConfig(ctx, cfg, onlyOutput)
}

// ValidateSpec validates an OpenAPI specification
func ValidateSpec(ctx context.Context, specPath string) error {
	return openapi.ValidateDocument(ctx, specPath)
}
