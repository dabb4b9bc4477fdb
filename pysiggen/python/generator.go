package python

import (
	"bytes"
	"context"
	"encoding/json"
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
)

// ManifestFile is the name of the optional JSON manifest.
const ManifestFile = "signatures.json"

// PythonGenerator writes a .pyi stub module for a schema.
type PythonGenerator struct {
	// Bindings names atomic types. Nil means Builtins().
	Bindings *Bindings

	// Logger receives progress. Nil means no logging.
	Logger *zap.Logger
}

// Name returns "python".
func (g *PythonGenerator) Name() string {
	return "python"
}

// StubFile returns the stub path for a module name.
func StubFile(module string) string {
	return module + ".pyi"
}

// Generate resolves every function of schema and writes the stub module.
// All failing functions are reported together; nothing is written if any
// function fails.
func (g *PythonGenerator) Generate(ctx context.Context, schema *ir.Schema, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Sink == nil {
		return nil, errors.New("sink is required")
	}
	if schema == nil {
		return nil, errors.New("schema is required")
	}
	if schema.Module == "" {
		return nil, pysig.NewError(pysig.CodeInvalidConfig, "schema has no module name")
	}

	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("module", schema.Module))

	if err := checkNames(schema); err != nil {
		return nil, err
	}

	bindings := g.Bindings
	if bindings == nil {
		bindings = Builtins()
	}
	resolver := &Resolver{Bindings: bindings, NoValueName: opts.Config.NoValueName}
	emitter := NewEmitter(resolver, opts.Config)

	fns := schema.SortedFunctions()
	resolved, err := resolveAll(ctx, emitter, fns, opts.Config.Concurrency, logger)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		FunctionsGenerated: len(resolved),
		Warnings:           append([]ir.Warning(nil), schema.Warnings...),
	}

	var buf bytes.Buffer
	emitter.EmitModule(&buf, schema.Documentation, resolved)
	if err := g.write(ctx, opts, result, StubFile(schema.Module), buf.Bytes(), logger); err != nil {
		return nil, err
	}

	if opts.Config.Manifest {
		data, err := manifest(schema, resolved)
		if err != nil {
			return nil, err
		}
		if err := g.write(ctx, opts, result, ManifestFile, data, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("generated stubs", zap.Int("count", len(resolved)))
	return result, nil
}

func (g *PythonGenerator) write(ctx context.Context, opts GenerateOptions, result *GenerateResult, path string, content []byte, logger *zap.Logger) error {
	if err := opts.Sink.WriteFile(ctx, path, content); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logger.Debug("wrote file", zap.String("file", path), zap.Int("bytes", len(content)))
	result.Files = append(result.Files, OutputFile{Path: path, Size: int64(len(content))})
	return nil
}

// checkNames reports missing and duplicate function names. Type structure
// problems are left to resolution, which classifies them.
func checkNames(schema *ir.Schema) error {
	var errs []error
	for _, err := range schema.Validate() {
		var ve *ir.ValidationError
		if !errors.As(err, &ve) {
			continue
		}
		switch ve.Code {
		case "missing_name", "duplicate_function":
			errs = append(errs, pysig.NewError(pysig.CodeInvalidSignature, ve.Message))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// resolveAll resolves fns in parallel, keeping input order. Every failure
// is collected; only cancellation stops the group early.
func resolveAll(ctx context.Context, emitter *Emitter, fns []ir.FunctionDescriptor, limit int, logger *zap.Logger) ([]*ResolvedFunction, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	resolved := make([]*ResolvedFunction, len(fns))
	failures := make([]error, len(fns))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := range fns {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rf, err := emitter.Resolve(fns[i])
			if err != nil {
				logger.Debug("resolution failed", zap.String("function", fns[i].Name), zap.Error(err))
				failures[i] = errors.Wrapf(err, "function %s", fns[i].Name)
				return nil
			}
			resolved[i] = rf
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		logger.Warn("signatures failed to resolve", zap.Int("count", len(errs)))
		return nil, errors.Join(errs...)
	}
	return resolved, nil
}

type manifestDoc struct {
	Module    string          `json:"module"`
	Doc       string          `json:"doc,omitempty"`
	Functions []manifestEntry `json:"functions"`
}

type manifestEntry struct {
	Name      string          `json:"name"`
	GoName    string          `json:"goName,omitempty"`
	Signature string          `json:"signature"`
	Params    []ResolvedParam `json:"params"`
	Return    string          `json:"return"`
	Doc       string          `json:"doc,omitempty"`
}

func manifest(schema *ir.Schema, fns []*ResolvedFunction) ([]byte, error) {
	doc := manifestDoc{
		Module:    schema.Module,
		Doc:       schema.Documentation.Body,
		Functions: make([]manifestEntry, len(fns)),
	}
	for i, rf := range fns {
		params := rf.Params
		if params == nil {
			params = []ResolvedParam{}
		}
		doc.Functions[i] = manifestEntry{
			Name:      rf.Name,
			GoName:    rf.GoName,
			Signature: rf.Signature(),
			Params:    params,
			Return:    rf.Return,
			Doc:       rf.Documentation.Body,
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode manifest")
	}
	return append(data, '\n'), nil
}
