package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConcurrency is the number of outputs generated at the same time.
	DefaultConcurrency = 4
	// DefaultOutputType is used for outputs that do not name a generator.
	DefaultOutputType = "typescript"
)

// Config represents the complete configuration for type generation
type Config struct {
	Spec        string   `yaml:"spec"`
	Name        string   `yaml:"name"`
	Concurrency int      `yaml:"concurrency"`
	Outputs     []Output `yaml:"outputs"`
}

// Output represents one generated artifact
type Output struct {
	// Type selects the generator: "typescript" or "manifest".
	Type string `yaml:"type"`
	// Out is the file to write.
	Out string `yaml:"out"`
	// Spec overrides the top-level spec for this output.
	Spec        string   `yaml:"spec"`
	IncludeTags []string `yaml:"includeTags"`
	ExcludeTags []string `yaml:"excludeTags"`
	// PreCommand is an optional command to run before generation starts.
	// Uses Docker Compose array format: ["mkdir", "-p", "generated"]
	// The command will be executed in the directory of Out.
	PreCommand []string `yaml:"preCommand"`
	// PostCommand is an optional command to run after generation completes.
	// Uses Docker Compose array format: ["npx", "prettier", "-w", "schema.d.ts"]
	// The command will be executed in the directory of Out.
	PostCommand []string `yaml:"postCommand"`
	// Banner is a text/template (with sprig functions) rendered at the top of the file.
	Banner  string  `yaml:"banner"`
	Options Options `yaml:"options"`
}

// Options are the type generation switches of an output
type Options struct {
	AdditionalProperties        bool `yaml:"additionalProperties"`
	Alphabetize                 bool `yaml:"alphabetize"`
	ArrayLength                 bool `yaml:"arrayLength"`
	EmptyObjectsUnknown         bool `yaml:"emptyObjectsUnknown"`
	Enum                        bool `yaml:"enum"`
	ExcludeDeprecated           bool `yaml:"excludeDeprecated"`
	ExportType                  bool `yaml:"exportType"`
	Immutable                   bool `yaml:"immutable"`
	PathParamsAsTypes           bool `yaml:"pathParamsAsTypes"`
	PropertiesRequiredByDefault bool `yaml:"propertiesRequiredByDefault"`
	MakePathsEnum               bool `yaml:"makePathsEnum"`
	ContentNever                bool `yaml:"contentNever"`
	RootTypes                   bool `yaml:"rootTypes"`
	RootTypesNoSchemaPrefix     bool `yaml:"rootTypesNoSchemaPrefix"`
	Silent                      bool `yaml:"silent"`
	StrictOperationIDs          bool `yaml:"strictOperationIds"`

	// DefaultNonNullable defaults to true when omitted.
	DefaultNonNullable *bool `yaml:"defaultNonNullable"`

	// Formats maps schema formats to TypeScript types, e.g. {date-time: Date}.
	Formats      map[string]string `yaml:"formats"`
	Inject       string            `yaml:"inject"`
	InjectFooter string            `yaml:"injectFooter"`
}

// IsDefaultNonNullable resolves the defaultNonNullable switch
func (o Options) IsDefaultNonNullable() bool {
	return o.DefaultNonNullable == nil || *o.DefaultNonNullable
}

// GetPreCommand returns the pre-generation command to execute.
func (o *Output) GetPreCommand() []string {
	return o.PreCommand
}

// GetPostCommand returns the post-generation command to execute.
func (o *Output) GetPostCommand() []string {
	return o.PostCommand
}

// Dir returns the directory the output file is written to
func (o *Output) Dir() string {
	return filepath.Dir(o.Out)
}

// envOverrides are applied on top of the YAML file.
type envOverrides struct {
	Spec        string `env:"TYPEGEN_SPEC"`
	Concurrency int    `env:"TYPEGEN_CONCURRENCY"`
	Silent      *bool  `env:"TYPEGEN_SILENT"`
	Alphabetize *bool  `env:"TYPEGEN_ALPHABETIZE"`
}

// Load loads configuration from a YAML file, applies TYPEGEN_* environment
// overrides and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyEnv overlays TYPEGEN_SPEC, TYPEGEN_CONCURRENCY, TYPEGEN_SILENT and
// TYPEGEN_ALPHABETIZE. The boolean switches apply to every output.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if o.Spec != "" {
		cfg.Spec = o.Spec
	}
	if o.Concurrency > 0 {
		cfg.Concurrency = o.Concurrency
	}
	for i := range cfg.Outputs {
		if o.Silent != nil {
			cfg.Outputs[i].Options.Silent = *o.Silent
		}
		if o.Alphabetize != nil {
			cfg.Outputs[i].Options.Alphabetize = *o.Alphabetize
		}
	}
	return nil
}

// Normalize validates cfg, fills in defaults and makes local paths absolute.
func (cfg *Config) Normalize() error {
	if cfg.Spec == "" {
		return errors.New("config.spec is required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	cfg.Spec = AbsSpec(cfg.Spec)
	for i := range cfg.Outputs {
		o := &cfg.Outputs[i]
		if o.Type == "" {
			o.Type = DefaultOutputType
		}
		if o.Out == "" {
			return fmt.Errorf("outputs[%d] missing required field out", i)
		}
		if !filepath.IsAbs(o.Out) {
			abs, _ := filepath.Abs(o.Out)
			o.Out = abs
		}
		if o.Spec == "" {
			o.Spec = cfg.Spec
		} else {
			o.Spec = AbsSpec(o.Spec)
		}
	}
	return nil
}

// AbsSpec makes a local spec path absolute. HTTP(S) URLs and empty values are returned as is.
func AbsSpec(spec string) string {
	if spec == "" {
		return spec
	}
	if u, err := url.Parse(spec); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return spec
	}
	if filepath.IsAbs(spec) {
		return spec
	}
	abs, _ := filepath.Abs(spec)
	return abs
}
