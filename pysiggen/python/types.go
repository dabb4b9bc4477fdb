package python

import (
	"context"

	"github.com/broady/pysig/pysiggen/ir"
	"github.com/broady/pysig/pysiggen/sink"
)

// Generator transforms a schema into Python documentation artifacts.
type Generator interface {
	// Name returns the generator's identifier.
	Name() string

	// Generate produces output for the given schema.
	Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// FunctionsGenerated is the count of functions rendered.
	FunctionsGenerated int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// GeneratorConfig configures the stub generator.
type GeneratorConfig struct {
	// NoValueName replaces a no-value return. Default: "None".
	NoValueName string

	// IndentSize is the number of spaces per indent level. Default: 4.
	IndentSize int

	// EmitDocstrings includes function and module docs in the stub.
	EmitDocstrings bool

	// Manifest additionally writes signatures.json.
	Manifest bool

	// Frontmatter is written verbatim after the module docstring.
	Frontmatter string

	// Concurrency bounds parallel signature resolution.
	// Zero means GOMAXPROCS.
	Concurrency int
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		NoValueName:    DefaultNoValueName,
		IndentSize:     4,
		EmitDocstrings: true,
	}
}
