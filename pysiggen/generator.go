package pysiggen

import (
	"context"
	"reflect"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
	"github.com/broady/pysig/pysiggen/provider"
	"github.com/broady/pysig/pysiggen/python"
	"github.com/broady/pysig/pysiggen/sink"
)

// Generator provides a fluent API for stub generation.
// Create one with FromModule, FromPackages or FromConfig.
//
// Example:
//
//	pysiggen.FromPackages("example.com/geom").
//	    Bind("example.com/geom.Point", "Point").
//	    WithManifest().
//	    ToDir("./stubs")
type Generator struct {
	module   *pysig.Module
	cfg      Config
	bindings *python.Bindings
	logger   *zap.Logger
}

// FromModule creates a Generator for functions registered on m.
func FromModule(m *pysig.Module) *Generator {
	return &Generator{
		module: m,
		cfg:    Config{Provider: ProviderReflection, Module: m.Name()},
	}
}

// FromPackages creates a Generator that loads Go packages and documents
// the functions marked with //pysig:def.
func FromPackages(pkgs ...string) *Generator {
	return &Generator{
		cfg: Config{Provider: ProviderSource, Packages: pkgs},
	}
}

// FromConfig creates a Generator from a loaded config file.
func FromConfig(cfg *Config) *Generator {
	return &Generator{cfg: *cfg}
}

// Module sets the Python module name.
func (g *Generator) Module(name string) *Generator {
	g.cfg.Module = name
	return g
}

// Dir sets the directory packages are loaded from.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// AllExported documents every exported function of the loaded packages.
func (g *Generator) AllExported() *Generator {
	g.cfg.AllExported = true
	return g
}

// Bind maps a Go type, written as "importpath.Name", to a display name.
func (g *Generator) Bind(goType, pyName string) *Generator {
	if g.cfg.Bindings == nil {
		g.cfg.Bindings = make(map[string]string)
	}
	g.cfg.Bindings[goType] = pyName
	return g
}

// WithBindings merges b over the configured bindings.
func (g *Generator) WithBindings(b *python.Bindings) *Generator {
	g.bindings = b
	return g
}

// NoValueName sets the display name of a callable that returns nothing.
func (g *Generator) NoValueName(name string) *Generator {
	g.cfg.NoValueName = name
	return g
}

// WithManifest enables signatures.json output.
func (g *Generator) WithManifest() *Generator {
	g.cfg.Manifest = true
	return g
}

// WithoutDocstrings omits docstrings from the stub.
func (g *Generator) WithoutDocstrings() *Generator {
	g.cfg.NoDocstrings = true
	return g
}

// Frontmatter adds content after the stub imports.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// WithLogger sets the logger. The default discards everything.
func (g *Generator) WithLogger(l *zap.Logger) *Generator {
	g.logger = l
	return g
}

// Config returns the effective configuration with defaults applied.
func (g *Generator) Config() Config {
	return *applyConfigDefaults(&g.cfg)
}

// Result is the outcome of Generate.
type Result struct {
	*python.GenerateResult

	// Content holds every generated file by path.
	Content map[string][]byte
}

// ToDir writes the generated files to dir.
func (g *Generator) ToDir(dir string) (*python.GenerateResult, error) {
	return g.ToSink(context.Background(), sink.NewFilesystemSink(dir))
}

// ToSink writes the generated files to s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*python.GenerateResult, error) {
	cfg, err := g.prepare()
	if err != nil {
		return nil, err
	}
	return g.run(ctx, cfg, s)
}

// Generate returns generated files in memory without writing to disk.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	mem := sink.NewMemorySink()
	res, err := g.ToSink(ctx, mem)
	if err != nil {
		return nil, err
	}
	return &Result{GenerateResult: res, Content: mem.Files()}, nil
}

// Schema builds the function schema without resolving any names.
func (g *Generator) Schema(ctx context.Context) (*ir.Schema, error) {
	cfg, err := g.prepare()
	if err != nil {
		return nil, err
	}
	return g.buildSchema(ctx, cfg)
}

func (g *Generator) log() *zap.Logger {
	if g.logger == nil {
		return zap.NewNop()
	}
	return g.logger
}

func (g *Generator) prepare() (*Config, error) {
	cfg := applyConfigDefaults(&g.cfg)
	if cfg.Provider == ProviderReflection && g.module == nil {
		return nil, errors.WithHint(
			pysig.NewError(pysig.CodeInvalidConfig, "reflection provider requires a module"),
			"use pysiggen.FromModule")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *Generator) buildSchema(ctx context.Context, cfg *Config) (*ir.Schema, error) {
	var (
		schema *ir.Schema
		err    error
	)
	switch cfg.Provider {
	case ProviderReflection:
		p := &provider.ReflectionProvider{}
		schema, err = p.BuildSchema(ctx, provider.ReflectionInputOptions{
			Module:    cfg.Module,
			Doc:       g.module.Doc(),
			Functions: g.module.Functions(),
		})
	case ProviderSource:
		g.log().Debug("loading packages", zap.Strings("packages", cfg.Packages))
		p := &provider.SourceProvider{}
		schema, err = p.BuildSchema(ctx, provider.SourceInputOptions{
			Packages:    cfg.Packages,
			Dir:         cfg.Dir,
			Module:      cfg.Module,
			AllExported: cfg.AllExported,
		})
	default:
		return nil, pysig.Errorf(pysig.CodeInvalidConfig, "unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, errors.Wrap(err, "build schema")
	}
	for _, w := range schema.Warnings {
		g.log().Warn(w.Message, zap.String("code", w.Code), zap.String("function", w.Function))
	}
	return schema, nil
}

func (g *Generator) run(ctx context.Context, cfg *Config, s sink.OutputSink) (*python.GenerateResult, error) {
	schema, err := g.buildSchema(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bindings, err := cfg.bindings()
	if err != nil {
		return nil, err
	}
	bindings.Merge(g.bindings)

	gen := &python.PythonGenerator{Bindings: bindings, Logger: g.log()}
	result, err := gen.Generate(ctx, schema, python.GenerateOptions{
		Sink:   s,
		Config: cfg.generatorConfig(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s", schema.Module)
	}
	return result, nil
}

// DisplayName returns the display name of t under bindings.
// A nil bindings uses python.Builtins().
func DisplayName(t reflect.Type, bindings *python.Bindings) (string, error) {
	p := &provider.ReflectionProvider{}
	td, err := p.Describe(t)
	if err != nil {
		return "", err
	}
	if bindings == nil {
		bindings = python.Builtins()
	}
	return python.NewResolver(bindings).Resolve(td)
}

// NameOf returns the display name of T under bindings.
//
//	pysiggen.NameOf[pysig.List[int]](python.Builtins()) // "List[int]"
func NameOf[T any](bindings *python.Bindings) (string, error) {
	return DisplayName(reflect.TypeFor[T](), bindings)
}
