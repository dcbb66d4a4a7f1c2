// Package typegen generates TypeScript type declarations from OpenAPI 3.0 and
// 3.1 specifications.
//
// The generated file declares the document's paths, webhooks, components and
// operations as types only; it contains no runtime code.
//
// Quick Start:
//
//	import "github.com/blimu-dev/typegen"
//
//	// Write schema.d.ts for a remote spec
//	err := typegen.GenerateTypeScript(ctx,
//		"https://petstore3.swagger.io/api/v3/openapi.json",
//		"./src/schema.d.ts",
//	)
//
// For more advanced usage, see the generator and transform packages.
package typegen

import (
	"context"

	"github.com/blimu-dev/typegen/pkg/generator"
	"github.com/blimu-dev/typegen/pkg/openapi"
	"github.com/blimu-dev/typegen/pkg/transform"
)

// GenerateTypeScript is a convenience function for writing TypeScript declarations with the default options.
//
// Parameters:
//   - spec: Path to OpenAPI specification file or HTTP(S) URL
//   - out: The .d.ts file to write
//
// Example:
//
//	err := typegen.GenerateTypeScript(ctx, "./openapi.yaml", "./src/schema.d.ts")
func GenerateTypeScript(ctx context.Context, spec, out string) error {
	return generator.GenerateTypeScript(ctx, spec, out)
}

// GenerateTypes generates an output with full configuration options.
// This function provides more control over the generation process.
//
// Example:
//
//	err := typegen.GenerateTypes(ctx, typegen.GenerateTypesOptions{
//		Spec:        "./openapi.yaml",
//		Out:         "./src/schema.d.ts",
//		IncludeTags: []string{"users", "orders"},
//		ExcludeTags: []string{"internal"},
//		Options:     config.Options{Enum: true, Alphabetize: true},
//	})
func GenerateTypes(ctx context.Context, opts GenerateTypesOptions) error {
	return generator.GenerateTypes(ctx, opts)
}

// GenerateTypesOptions contains options for GenerateTypes
type GenerateTypesOptions = generator.GenerateTypesOptions

// GenerateFromConfig generates outputs from a YAML configuration file.
// Optionally, you can specify a single output path to generate only that output.
//
// Example:
//
//	// Generate all outputs from config
//	err := typegen.GenerateFromConfig(ctx, "./typegen.yaml")
//
//	// Generate only one output
//	err := typegen.GenerateFromConfig(ctx, "./typegen.yaml", "/abs/path/schema.d.ts")
func GenerateFromConfig(ctx context.Context, configPath string, singleOutput ...string) error {
	return generator.GenerateFromConfig(ctx, configPath, singleOutput...)
}

// ValidateSpec validates an OpenAPI specification file.
// This is useful for checking if a spec is valid before attempting to generate types.
//
// Example:
//
//	err := typegen.ValidateSpec(ctx, "./openapi.yaml")
//	if err != nil {
//		log.Fatalf("Invalid OpenAPI spec: %v", err)
//	}
func ValidateSpec(ctx context.Context, specPath string) error {
	return generator.ValidateSpec(ctx, specPath)
}

// TransformBytes parses a YAML or JSON document and returns its declarations
// as TypeScript source, without a banner.
func TransformBytes(data []byte, opts transform.Options) (string, error) {
	doc, err := openapi.Parse(data)
	if err != nil {
		return "", err
	}
	result, err := transform.Transform(doc, opts)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}
