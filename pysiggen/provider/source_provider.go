package provider

import (
	"context"
	"go/ast"
	"go/types"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/broady/pysig"
	"github.com/broady/pysig/internal/directive"
	"github.com/broady/pysig/pysiggen/ir"
)

// SourceProvider extracts function signatures by analyzing Go source code.
type SourceProvider struct{}

// SourceInputOptions configures source-based extraction.
type SourceInputOptions struct {
	// Packages are the Go package patterns to analyze.
	Packages []string

	// Dir is the working directory for package loading.
	// If empty, the current directory is used.
	Dir string

	// Module is the target module name.
	Module string

	// AllExported documents every exported package-level function except
	// those marked //pysig:skip. Otherwise only //pysig:def functions are
	// documented.
	AllExported bool
}

// BuildSchema analyzes source code and returns a Schema.
// All failing functions are reported together.
func (p *SourceProvider) BuildSchema(ctx context.Context, opts SourceInputOptions) (*ir.Schema, error) {
	if len(opts.Packages) == 0 {
		return nil, errors.New("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	if len(pkgs) == 0 {
		return nil, errors.New("no packages found")
	}

	// Check for errors in loaded packages
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	b := &sourceSchemaBuilder{
		schema: &ir.Schema{Module: opts.Module},
	}

	// packages.Load returns packages in dependency order, not input order
	first := pkgs[0]
	for _, pkg := range pkgs {
		if pkg.PkgPath == opts.Packages[0] {
			first = pkg
			break
		}
	}
	b.schema.Package = ir.PackageInfo{
		Path: first.PkgPath,
		Name: first.Name,
	}
	if len(first.GoFiles) > 0 {
		b.schema.Package.Dir = filepath.Dir(first.GoFiles[0])
	}
	if b.schema.Module == "" {
		b.schema.Module = first.Name
	}
	for _, f := range first.Syntax {
		if f.Doc != nil {
			b.schema.Documentation = docOf(f.Doc.Text())
			break
		}
	}

	var errs []error
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		errs = append(errs, b.extractPackage(pkg, opts.AllExported)...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b.schema, nil
}

// sourceSchemaBuilder accumulates functions across packages.
type sourceSchemaBuilder struct {
	schema *ir.Schema
}

// extractPackage collects the documented functions of one package.
func (b *sourceSchemaBuilder) extractPackage(pkg *packages.Package, allExported bool) []error {
	found, err := directive.Find(pkg.Fset, pkg.Syntax)
	if err != nil {
		return []error{err}
	}

	decls := make(map[string]*ast.FuncDecl)
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil {
				decls[fn.Name.Name] = fn
			}
		}
	}

	targets := make(map[string]string) // Go name -> Python name
	for _, d := range found.Defs {
		targets[d.FuncName] = d.PyName()
	}
	if allExported {
		for name, fn := range decls {
			if ast.IsExported(name) && !found.Skips[name] && fn.Type.TypeParams == nil {
				if _, ok := targets[name]; !ok {
					targets[name] = name
				}
			}
		}
	}

	goNames := make([]string, 0, len(targets))
	for name := range targets {
		goNames = append(goNames, name)
	}
	sort.Strings(goNames)

	var errs []error
	for _, goName := range goNames {
		obj, ok := pkg.Types.Scope().Lookup(goName).(*types.Func)
		if !ok {
			errs = append(errs, errors.Newf("%s.%s is not a function", pkg.PkgPath, goName))
			continue
		}

		fd, err := b.buildFunction(pkg, obj, decls[goName])
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "%s: function %s", pkg.Fset.Position(obj.Pos()), goName))
			continue
		}
		fd.Name = targets[goName]
		b.schema.AddFunction(fd)
	}
	return errs
}

// buildFunction converts a package-level function declaration.
// A leading context.Context parameter and a trailing error result are part
// of the Go calling convention and are not documented.
func (b *sourceSchemaBuilder) buildFunction(pkg *packages.Package, obj *types.Func, decl *ast.FuncDecl) (ir.FunctionDescriptor, error) {
	sig := obj.Type().(*types.Signature)
	if sig.TypeParams().Len() > 0 {
		return ir.FunctionDescriptor{}, pysig.NewError(pysig.CodeInvalidSignature, "generic functions are not supported")
	}
	if sig.Variadic() {
		return ir.FunctionDescriptor{}, errors.WithHint(
			pysig.NewError(pysig.CodeInvalidSignature, "variadic parameters are not supported"),
			"accept a pysig.List instead")
	}

	params := make([]*types.Var, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		params = append(params, sig.Params().At(i))
	}
	if len(params) > 0 && isContext(params[0].Type()) {
		params = params[1:]
	}

	results := make([]*types.Var, 0, sig.Results().Len())
	for i := 0; i < sig.Results().Len(); i++ {
		results = append(results, sig.Results().At(i))
	}
	if len(results) > 0 && isError(results[len(results)-1].Type()) {
		results = results[:len(results)-1]
	}
	if len(results) > 1 {
		return ir.FunctionDescriptor{}, errors.WithHint(
			pysig.Errorf(pysig.CodeInvalidSignature, "%d results are not supported", len(results)),
			"return a pysig.Tuple instead")
	}

	fd := ir.FunctionDescriptor{
		GoName: pkg.Name + "." + obj.Name(),
		Source: b.extractSource(pkg, obj),
	}
	if decl != nil && decl.Doc != nil {
		fd.Documentation = docOf(decl.Doc.Text())
	}

	for _, p := range params {
		desc, err := convertType(p.Type(), false)
		if err != nil {
			return ir.FunctionDescriptor{}, errors.Wrapf(err, "parameter %s", p.Name())
		}
		name := p.Name()
		if name == "_" {
			name = ""
		}
		fd.Params = append(fd.Params, ir.ParamDescriptor{Name: name, Type: desc})
	}

	if len(results) == 0 {
		fd.Return = ir.NoValue()
		return fd, nil
	}
	ret, err := convertType(results[0].Type(), true)
	if err != nil {
		return ir.FunctionDescriptor{}, errors.Wrap(err, "result")
	}
	fd.Return = ret
	return fd, nil
}

// extractSource extracts source location information.
func (b *sourceSchemaBuilder) extractSource(pkg *packages.Package, obj types.Object) ir.Source {
	pos := obj.Pos()
	if !pos.IsValid() || pkg.Fset == nil {
		return ir.Source{}
	}
	position := pkg.Fset.Position(pos)
	return ir.Source{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// convertType converts a go/types type to a TypeDescriptor using the same
// rules as the reflection provider.
func convertType(t types.Type, allowNoValue bool) (ir.TypeDescriptor, error) {
	t = types.Unalias(t)

	switch typ := t.(type) {
	case *types.Named:
		obj := typ.Obj()
		if obj.Pkg() == nil {
			// Predeclared named types: error, comparable.
			return ir.Builtin(obj.Name()), nil
		}
		if obj.Pkg().Path() == wrapperPkgPath {
			return convertWrapper(typ, allowNoValue)
		}
		return ir.Atomic(obj.Name(), obj.Pkg().Path()), nil

	case *types.Basic:
		if typ.Info()&types.IsUntyped != 0 || typ.Kind() == types.UnsafePointer || typ.Kind() == types.Invalid {
			return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ)
		}
		return ir.Builtin(typ.Name()), nil

	case *types.Slice:
		if elem, ok := types.Unalias(typ.Elem()).(*types.Basic); ok && elem.Kind() == types.Uint8 {
			return ir.Builtin(ir.BuiltinBytes), nil
		}
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ),
			"use pysig.List or pysig.Tuple")

	case *types.Interface:
		if typ.Empty() {
			return ir.Builtin(ir.BuiltinAny), nil
		}
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ)

	case *types.Array:
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ),
			"use pysig.List or pysig.Tuple")

	case *types.Map:
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ),
			"use pysig.Dict or pysig.Set")

	case *types.Signature:
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ),
			"use pysig.Callable")

	case *types.Pointer:
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", typ),
			"declare a named type and bind it")

	default:
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", t)
	}
}

// convertWrapper converts a named type from the wrapper package.
func convertWrapper(named *types.Named, allowNoValue bool) (ir.TypeDescriptor, error) {
	name := named.Obj().Name()
	if name == noValueName {
		if !allowNoValue {
			return nil, pysig.NewError(pysig.CodeUnsupportedShape, "pysig.NoValue is only valid as a callable result")
		}
		return ir.NoValue(), nil
	}

	info, ok := lookupWrapper(name)
	if !ok {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "pysig.%s is not a wrapper type", name)
	}

	targs := named.TypeArgs()
	if info.kind == pysig.ShapeSignature {
		if targs.Len() != 1 {
			return nil, pysig.NewError(pysig.CodeUnsupportedShape, "pysig.Callable takes one func type")
		}
		sig, ok := targs.At(0).Underlying().(*types.Signature)
		if !ok {
			return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "Callable type argument %s is not a func type", targs.At(0))
		}
		return convertSignature(sig)
	}

	args := make([]ir.TypeDescriptor, 0, targs.Len())
	for i := 0; i < targs.Len(); i++ {
		d, err := convertType(targs.At(i), false)
		if err != nil {
			return nil, err
		}
		args = append(args, d)
	}
	return composeShape(name, info, args)
}

// convertSignature converts the func type argument of a Callable.
func convertSignature(sig *types.Signature) (ir.TypeDescriptor, error) {
	if sig.Variadic() {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "variadic callable %s", sig)
	}
	if sig.Results().Len() > 1 {
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "callable %s has %d results", sig, sig.Results().Len()),
			"return a pysig.Tuple instead")
	}

	params := make([]ir.TypeDescriptor, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		d, err := convertType(sig.Params().At(i).Type(), false)
		if err != nil {
			return nil, err
		}
		params = append(params, d)
	}

	var ret ir.TypeDescriptor = ir.NoValue()
	if sig.Results().Len() == 1 {
		d, err := convertType(sig.Results().At(0).Type(), true)
		if err != nil {
			return nil, err
		}
		ret = d
	}
	return ir.Signature(ret, params...), nil
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
