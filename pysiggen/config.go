package pysiggen

import (
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/python"
)

// Provider names.
const (
	ProviderSource     = "source"
	ProviderReflection = "reflection"
)

// DefaultConfigFile is the config file name the CLI looks for.
const DefaultConfigFile = "pysig.toml"

// Config holds the configuration for stub generation. It is read from a
// pysig.toml file and may be overridden with key=value pairs.
type Config struct {
	// Module is the Python module name. With the source provider it
	// defaults to the Go package name.
	Module string `toml:"module" schema:"module" validate:"omitempty,python_ident"`

	// OutDir is the directory generated files are written to.
	OutDir string `toml:"out_dir" schema:"out_dir"`

	// Provider selects how functions are discovered.
	// "source" (default) loads Go packages and reads //pysig:def directives.
	// "reflection" uses a registered *pysig.Module.
	Provider string `toml:"provider" schema:"provider" validate:"oneof=source reflection"`

	// Packages are the Go package patterns loaded by the source provider.
	Packages []string `toml:"packages" schema:"packages" validate:"required_if=Provider source,dive,required"`

	// Dir is the working directory for package loading.
	Dir string `toml:"dir" schema:"dir"`

	// AllExported documents every exported function, not only those
	// marked with //pysig:def.
	AllExported bool `toml:"all_exported" schema:"all_exported"`

	// NoValueName is the display name of a callable that returns nothing.
	// Default: "None".
	NoValueName string `toml:"no_value_name" schema:"no_value_name" validate:"excludes=["`

	// Manifest additionally writes signatures.json.
	Manifest bool `toml:"manifest" schema:"manifest"`

	// NoDocstrings omits docstrings from stubs.
	NoDocstrings bool `toml:"no_docstrings" schema:"no_docstrings"`

	// IndentSize is the number of spaces per indent level. Default: 4.
	IndentSize int `toml:"indent_size" schema:"indent_size" validate:"min=1,max=8"`

	// Frontmatter is copied into the stub after the imports.
	Frontmatter string `toml:"frontmatter" schema:"frontmatter"`

	// NoBuiltins starts from an empty binding table instead of
	// python.Builtins().
	NoBuiltins bool `toml:"no_builtins" schema:"no_builtins"`

	// Bindings maps Go types ("time.Duration", "example.com/geom.Point")
	// to Python display names.
	Bindings map[string]string `toml:"bindings" schema:"-"`
}

var (
	validate      = newValidator()
	schemaDecoder = schema.NewDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("python_ident", func(fl validator.FieldLevel) bool {
		return python.IsIdentifier(fl.Field().String())
	})
	return v
}

// LoadConfig reads a TOML config file. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", ")),
			"Go type bindings belong in the [bindings] table")
	}
	return &cfg, nil
}

// ApplyOverrides sets config fields from key=value pairs, as given with
// --set on the command line. A repeated list key collects every value and
// replaces the configured list.
// Bindings are set with "bindings.<go type>=<python name>".
func (c *Config) ApplyOverrides(pairs []string) error {
	values := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return pysig.Errorf(pysig.CodeInvalidConfig, "override %q is not key=value", pair)
		}
		if goType, found := strings.CutPrefix(key, "bindings."); found {
			if c.Bindings == nil {
				c.Bindings = make(map[string]string)
			}
			c.Bindings[goType] = value
			continue
		}
		values.Add(key, value)
	}
	if len(values) == 0 {
		return nil
	}
	if err := schemaDecoder.Decode(c, values); err != nil {
		return errors.Wrap(pysig.Errorf(pysig.CodeInvalidConfig, "%v", err), "apply overrides")
	}
	return nil
}

// Validate checks c after defaults have been applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pysig.ConfigError(err)
	}
	if _, err := python.BindingsFromMap(c.Bindings); err != nil {
		return err
	}
	return nil
}

// bindings builds the binding table described by c.
func (c *Config) bindings() (*python.Bindings, error) {
	b := python.NewBindings()
	if !c.NoBuiltins {
		b = python.Builtins()
	}
	extra, err := python.BindingsFromMap(c.Bindings)
	if err != nil {
		return nil, err
	}
	return b.Merge(extra), nil
}

// generatorConfig converts c for the python generator.
func (c *Config) generatorConfig() python.GeneratorConfig {
	return python.GeneratorConfig{
		NoValueName:    c.NoValueName,
		IndentSize:     c.IndentSize,
		EmitDocstrings: !c.NoDocstrings,
		Manifest:       c.Manifest,
		Frontmatter:    c.Frontmatter,
	}
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg

	if result.Provider == "" {
		result.Provider = ProviderSource
	}
	if result.NoValueName == "" {
		result.NoValueName = python.DefaultNoValueName
	}
	if result.IndentSize == 0 {
		result.IndentSize = 4
	}
	if result.Dir == "" {
		result.Dir = "."
	}

	return &result
}
