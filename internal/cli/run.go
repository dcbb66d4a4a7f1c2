package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/generator"
	"github.com/blimu-dev/typegen/pkg/generator/typescript"
	"github.com/blimu-dev/typegen/pkg/ir"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// stdoutOut as --out prints the declarations instead of writing a file
const stdoutOut = "-"

type FallbackParams struct {
	Spec        string
	Type        string
	Out         string
	IncludeTags []string
	ExcludeTags []string
	Options     config.Options
}

type RunGenerateParams struct {
	ConfigPath   string
	SingleOutput string
	Fallback     FallbackParams
	Stdout       io.Writer
	Logger       *slog.Logger
}

func RunValidate(ctx context.Context, input string) error {
	return openapi.ValidateDocument(ctx, input)
}

func RunGenerate(ctx context.Context, p RunGenerateParams) error {
	if p.ConfigPath == "" {
		if p.Fallback.Spec == "" || p.Fallback.Out == "" {
			return errors.New("either --config or both --input and --out must be provided")
		}
		if p.Fallback.Out == stdoutOut {
			return printTypes(ctx, p)
		}
	}

	service := generator.NewService(p.Logger)
	return service.Generate(ctx, generator.GenerateOptions{
		ConfigPath:   p.ConfigPath,
		SingleOutput: absPath(p.SingleOutput),
		Fallback: generator.FallbackOptions{
			Spec:        p.Fallback.Spec,
			Type:        p.Fallback.Type,
			Out:         absPath(p.Fallback.Out),
			IncludeTags: p.Fallback.IncludeTags,
			ExcludeTags: p.Fallback.ExcludeTags,
			Options:     p.Fallback.Options,
		},
	})
}

func printTypes(ctx context.Context, p RunGenerateParams) error {
	if p.Fallback.Type != "" && p.Fallback.Type != config.DefaultOutputType {
		return fmt.Errorf("--out %s only supports the %s type", stdoutOut, config.DefaultOutputType)
	}
	doc, err := openapi.LoadDocument(ctx, p.Fallback.Spec)
	if err != nil {
		return err
	}
	include, exclude, err := openapi.CompileTagFilters(p.Fallback.IncludeTags, p.Fallback.ExcludeTags)
	if err != nil {
		return err
	}
	out := config.Output{
		Type:    config.DefaultOutputType,
		Spec:    config.AbsSpec(p.Fallback.Spec),
		Options: p.Fallback.Options,
	}
	src, _, err := typescript.Render(openapi.FilterByTags(doc, include, exclude), out, p.Logger)
	if err != nil {
		return err
	}
	_, err = p.Stdout.Write(src)
	return err
}

// RunInspect prints one line per operation: tag, method, path, operationId
// and the representative success and error status codes.
func RunInspect(ctx context.Context, input string, w io.Writer) error {
	doc, err := openapi.LoadDocument(ctx, input)
	if err != nil {
		return err
	}
	in := ir.Build(doc)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tMETHOD\tPATH\tOPERATION\tSUCCESS\tERROR")
	for _, s := range in.Services {
		for _, op := range s.Operations {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.Tag, op.Method, op.Path, dash(op.OperationID), dash(op.Success), dash(op.Error))
		}
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
