package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/blimu-dev/typegen/internal/cli"
	"github.com/blimu-dev/typegen/pkg/config"
)

func main() {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:          "typegen",
		Short:        "Generate TypeScript types from OpenAPI specs",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")

	root.AddCommand(newGenerateCmd(&verbose, &quiet))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newInspectCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Println(err)
		stop()
		os.Exit(1)
	}
}

func newGenerateCmd(verbose, quiet *bool) *cobra.Command {
	var configPath string
	var singleOutput string
	var input string
	var typ string
	var out string
	var includeTags []string
	var excludeTags []string
	var formats map[string]string
	var defaultNonNullable bool
	var opts config.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate type declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("default-non-nullable") {
				opts.DefaultNonNullable = &defaultNonNullable
			}
			opts.Formats = formats
			return cli.RunGenerate(cmd.Context(), cli.RunGenerateParams{
				ConfigPath:   configPath,
				SingleOutput: singleOutput,
				Fallback: cli.FallbackParams{
					Spec:        input,
					Type:        typ,
					Out:         out,
					IncludeTags: includeTags,
					ExcludeTags: excludeTags,
					Options:     opts,
				},
				Stdout: cmd.OutOrStdout(),
				Logger: cli.NewLogger(cmd.ErrOrStderr(), *verbose, *quiet),
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to typegen.yaml config")
	cmd.Flags().StringVar(&singleOutput, "only", "", "Generate only the output writing to this path")
	// Fallback single-output flags
	cmd.Flags().StringVarP(&input, "input", "i", "", "OpenAPI spec file or URL (yaml/json)")
	cmd.Flags().StringVar(&typ, "type", config.DefaultOutputType, "Output type (typescript or manifest)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, - for stdout")
	cmd.Flags().StringArrayVar(&includeTags, "include-tags", nil, "Regex patterns for tags to include")
	cmd.Flags().StringArrayVar(&excludeTags, "exclude-tags", nil, "Regex patterns for tags to exclude")

	// Type generation switches
	f := cmd.Flags()
	f.BoolVar(&opts.AdditionalProperties, "additional-properties", false, "Treat schema objects as if additionalProperties: true were set")
	f.BoolVar(&opts.Alphabetize, "alphabetize", false, "Sort object keys alphabetically")
	f.BoolVar(&opts.ArrayLength, "array-length", false, "Generate tuples from minItems/maxItems")
	f.BoolVar(&defaultNonNullable, "default-non-nullable", true, "Treat schemas with a default as non-nullable")
	f.BoolVar(&opts.EmptyObjectsUnknown, "empty-objects-unknown", false, "Generate unknown instead of Record<string, never> for empty objects")
	f.BoolVar(&opts.Enum, "enum", false, "Export true TS enums instead of unions")
	f.BoolVar(&opts.ExcludeDeprecated, "exclude-deprecated", false, "Exclude deprecated fields and operations")
	f.BoolVar(&opts.ExportType, "export-type", false, "Export type instead of interface")
	f.BoolVar(&opts.Immutable, "immutable", false, "Generate readonly types")
	f.BoolVar(&opts.PathParamsAsTypes, "path-params-as-types", false, "Convert paths to template literal types")
	f.BoolVar(&opts.PropertiesRequiredByDefault, "properties-required-by-default", false, "Treat properties as required when a schema has no required list")
	f.BoolVar(&opts.MakePathsEnum, "make-paths-enum", false, "Generate an ApiPaths enum for all paths")
	f.BoolVar(&opts.ContentNever, "content-never", false, "Type responses without content as content?: never")
	f.BoolVar(&opts.RootTypes, "root-types", false, "Export every component as a root type alias")
	f.BoolVar(&opts.RootTypesNoSchemaPrefix, "root-types-no-schema-prefix", false, "Drop the Schema prefix from root type aliases")
	f.BoolVar(&opts.Silent, "silent", false, "Degrade unresolved refs to unknown instead of failing")
	f.BoolVar(&opts.StrictOperationIDs, "strict-operation-ids", false, "Fail on duplicate operationIds")
	f.StringToStringVar(&formats, "format", nil, "Map a schema format to a TypeScript type, e.g. date-time=Date")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "OpenAPI spec file or URL (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the operations of an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunInspect(cmd.Context(), input, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "OpenAPI spec file or URL (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
