package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/blimu-dev/typegen/pkg/config"
	"github.com/blimu-dev/typegen/pkg/generator/manifest"
	"github.com/blimu-dev/typegen/pkg/generator/typescript"
	"github.com/blimu-dev/typegen/pkg/openapi"
)

// Generator defines the interface for output generators
type Generator interface {
	// Generate writes the output described by out for the given document
	Generate(ctx context.Context, out config.Output, doc *openapi.Document) error
	// GetType returns the type identifier for this generator (e.g., "typescript")
	GetType() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// GenerateOptions contains options for type generation
type GenerateOptions struct {
	ConfigPath string
	// SingleOutput generates only the output writing to this path (optional)
	SingleOutput string
	Fallback     FallbackOptions
}

// FallbackOptions contains fallback options when no config file is provided
type FallbackOptions struct {
	Spec        string
	Type        string
	Out         string
	IncludeTags []string
	ExcludeTags []string
	Options     config.Options
}

// Service provides high-level generation functionality
type Service struct {
	registry *Registry
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// NewService creates a new generator service with default generators
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := NewRegistry()
	// Register default generators
	registry.Register(typescript.NewTypeScriptGenerator(logger))
	registry.Register(manifest.NewManifestGenerator())
	return NewServiceWithRegistry(registry, logger)
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		registry: registry,
		logger:   logger,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// Generate generates outputs based on the provided options
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) error {
	var cfg *config.Config
	var err error

	if opts.ConfigPath == "" {
		// Use fallback options to create a config
		if opts.Fallback.Spec == "" || opts.Fallback.Out == "" {
			return fmt.Errorf("either config path or fallback spec and out must be provided")
		}
		cfg = &config.Config{
			Spec: opts.Fallback.Spec,
			Outputs: []config.Output{
				{
					Type:        opts.Fallback.Type,
					Out:         opts.Fallback.Out,
					IncludeTags: opts.Fallback.IncludeTags,
					ExcludeTags: opts.Fallback.ExcludeTags,
					Options:     opts.Fallback.Options,
				},
			},
		}
		if err := config.ApplyEnv(cfg); err != nil {
			return err
		}
		if err := cfg.Normalize(); err != nil {
			return err
		}
	} else {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
	}

	return s.GenerateFromConfig(ctx, cfg, opts.SingleOutput)
}

// GenerateFromConfig generates every output of cfg, or only the one writing
// to onlyOutput when it is set. Outputs run concurrently, at most
// cfg.Concurrency at a time; each loads its own copy of the document.
func (s *Service) GenerateFromConfig(ctx context.Context, cfg *config.Config, onlyOutput string) error {
	var outputs []config.Output
	for _, out := range cfg.Outputs {
		if onlyOutput != "" && out.Out != onlyOutput {
			continue
		}
		if _, exists := s.registry.Get(out.Type); !exists {
			return fmt.Errorf("unsupported output type: %s", out.Type)
		}
		outputs = append(outputs, out)
	}
	if onlyOutput != "" && len(outputs) == 0 {
		return fmt.Errorf("no output writes to %s", onlyOutput)
	}
	return s.GenerateAll(ctx, outputs, cfg.Concurrency)
}

// GenerateAll generates outputs concurrently. The first failure cancels the
// outputs that have not finished yet.
func (s *Service) GenerateAll(ctx context.Context, outputs []config.Output, concurrency int) error {
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, out := range outputs {
		g.Go(func() error {
			if err := s.generateOutput(ctx, out); err != nil {
				return fmt.Errorf("output %s: %w", out.Out, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) generateOutput(ctx context.Context, out config.Output) error {
	generator, exists := s.registry.Get(out.Type)
	if !exists {
		return fmt.Errorf("unsupported output type: %s", out.Type)
	}

	// Ensure output directory exists before pre-commands
	if err := os.MkdirAll(out.Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Execute pre-generation commands if specified
	if err := s.executePreCommands(ctx, out); err != nil {
		return fmt.Errorf("pre-generation commands failed: %w", err)
	}

	doc, err := openapi.LoadDocument(ctx, out.Spec)
	if err != nil {
		return err
	}
	include, exclude, err := openapi.CompileTagFilters(out.IncludeTags, out.ExcludeTags)
	if err != nil {
		return err
	}
	doc = openapi.FilterByTags(doc, include, exclude)

	s.logger.Debug("generating output", "type", out.Type, "out", out.Out, "spec", out.Spec)
	if err := generator.Generate(ctx, out, doc); err != nil {
		return err
	}

	// Execute post-generation commands if specified
	if err := s.executePostGenCommands(ctx, out); err != nil {
		return fmt.Errorf("post-generation commands failed: %w", err)
	}
	s.logger.Info("generated", "type", out.Type, "out", out.Out)
	return nil
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// executePreCommands executes the pre-generation command for an output
func (s *Service) executePreCommands(ctx context.Context, out config.Output) error {
	command := out.GetPreCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(ctx, command, out.Dir(), "pre-command")
}

// executePostGenCommands executes the post-generation command for an output
func (s *Service) executePostGenCommands(ctx context.Context, out config.Output) error {
	command := out.GetPostCommand()
	if len(command) == 0 {
		return nil // No command to execute
	}

	return s.executeCommand(ctx, command, out.Dir(), "post-command")
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(ctx context.Context, command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil // Skip empty commands
	}

	// Create command with first element as executable and rest as arguments
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir     // Execute in the specified directory
	cmd.Stdout = s.stdout // Forward stdout to see command output
	cmd.Stderr = s.stderr // Forward stderr to see errors

	cmdDescription := strings.Join(command, " ")

	// Execute the command
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}

	return nil
}
