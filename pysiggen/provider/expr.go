package provider

import (
	"go/ast"
	"go/parser"
	"go/types"

	"github.com/cockroachdb/errors"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
)

// ExprOptions configures ParseTypeExpr.
type ExprOptions struct {
	// Package is the import path used for unqualified non-builtin
	// identifiers. If empty, such identifiers are an error.
	Package string

	// Imports maps package names used as qualifiers to import paths.
	// "pysig" always refers to the wrapper package. Qualifiers without an
	// entry are taken as the import path itself ("time" -> "time").
	Imports map[string]string
}

// ParseTypeExpr parses a Go type expression such as
// "pysig.Dict[string, pysig.List[time.Duration]]" and converts it with the
// same rules as the other providers.
func ParseTypeExpr(expr string, opts ExprOptions) (ir.TypeDescriptor, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", expr)
	}
	p := &exprConverter{opts: opts}
	return p.convert(node, false)
}

type exprConverter struct {
	opts ExprOptions
}

// qualify resolves a package qualifier to an import path.
func (p *exprConverter) qualify(name string) string {
	if path, ok := p.opts.Imports[name]; ok {
		return path
	}
	if name == "pysig" {
		return wrapperPkgPath
	}
	return name
}

func (p *exprConverter) convert(node ast.Expr, allowNoValue bool) (ir.TypeDescriptor, error) {
	switch n := node.(type) {
	case *ast.ParenExpr:
		return p.convert(n.X, allowNoValue)

	case *ast.Ident:
		if ir.IsBuiltinName(n.Name) {
			return ir.Builtin(n.Name), nil
		}
		if p.opts.Package == "" {
			return nil, errors.WithHint(
				pysig.Errorf(pysig.CodeUnsupportedShape, "unqualified type %s", n.Name),
				"qualify it with its package, e.g. geom.Point")
		}
		return ir.Atomic(n.Name, p.opts.Package), nil

	case *ast.SelectorExpr:
		path, name, err := p.selector(n)
		if err != nil {
			return nil, err
		}
		if path == wrapperPkgPath {
			return p.wrapper(name, nil, allowNoValue)
		}
		return ir.Atomic(name, path), nil

	case *ast.IndexExpr:
		return p.instantiated(n.X, []ast.Expr{n.Index}, allowNoValue)

	case *ast.IndexListExpr:
		return p.instantiated(n.X, n.Indices, allowNoValue)

	case *ast.ArrayType:
		if n.Len == nil {
			if id, ok := n.Elt.(*ast.Ident); ok && (id.Name == "byte" || id.Name == "uint8") {
				return ir.Builtin(ir.BuiltinBytes), nil
			}
		}
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", exprString(node)),
			"use pysig.List or pysig.Tuple")

	case *ast.InterfaceType:
		if n.Methods == nil || len(n.Methods.List) == 0 {
			return ir.Builtin(ir.BuiltinAny), nil
		}
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", exprString(node))

	case *ast.MapType:
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", exprString(node)),
			"use pysig.Dict or pysig.Set")

	case *ast.FuncType:
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", exprString(node)),
			"use pysig.Callable")

	default:
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", exprString(node))
	}
}

// selector splits pkg.Name into an import path and a name.
func (p *exprConverter) selector(n *ast.SelectorExpr) (string, string, error) {
	qual, ok := n.X.(*ast.Ident)
	if !ok {
		return "", "", pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", exprString(n))
	}
	return p.qualify(qual.Name), n.Sel.Name, nil
}

// instantiated converts X[Args...], which must name a wrapper type.
func (p *exprConverter) instantiated(x ast.Expr, args []ast.Expr, allowNoValue bool) (ir.TypeDescriptor, error) {
	sel, ok := x.(*ast.SelectorExpr)
	if !ok {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported generic type: %s", exprString(x))
	}
	path, name, err := p.selector(sel)
	if err != nil {
		return nil, err
	}
	if path != wrapperPkgPath {
		// Instantiations of other generic types are atomic by base name.
		return ir.Atomic(name, path), nil
	}
	return p.wrapper(name, args, allowNoValue)
}

// wrapper converts pysig.Name[args...].
func (p *exprConverter) wrapper(name string, args []ast.Expr, allowNoValue bool) (ir.TypeDescriptor, error) {
	if name == noValueName {
		if len(args) > 0 {
			return nil, pysig.NewError(pysig.CodeUnsupportedShape, "pysig.NoValue takes no type arguments")
		}
		if !allowNoValue {
			return nil, pysig.NewError(pysig.CodeUnsupportedShape, "pysig.NoValue is only valid as a callable result")
		}
		return ir.NoValue(), nil
	}

	info, ok := lookupWrapper(name)
	if !ok {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "pysig.%s is not a wrapper type", name)
	}

	if info.kind == pysig.ShapeSignature {
		if len(args) != 1 {
			return nil, pysig.NewError(pysig.CodeUnsupportedShape, "pysig.Callable takes one func type")
		}
		ft, ok := args[0].(*ast.FuncType)
		if !ok {
			return nil, pysig.Errorf(pysig.CodeUnsupportedShape,
				"Callable type argument %s is not a func type", exprString(args[0]))
		}
		return p.signature(ft)
	}

	descs := make([]ir.TypeDescriptor, 0, len(args))
	for _, a := range args {
		d, err := p.convert(a, false)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d)
	}
	return composeShape(name, info, descs)
}

// signature converts the func type argument of a Callable.
func (p *exprConverter) signature(ft *ast.FuncType) (ir.TypeDescriptor, error) {
	var params []ir.TypeDescriptor
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			if _, ok := field.Type.(*ast.Ellipsis); ok {
				return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "variadic callable %s", exprString(ft))
			}
			d, err := p.convert(field.Type, false)
			if err != nil {
				return nil, err
			}
			n := max(len(field.Names), 1)
			for range n {
				params = append(params, d)
			}
		}
	}

	var results []*ast.Field
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			for range max(len(field.Names), 1) {
				results = append(results, field)
			}
		}
	}
	if len(results) > 1 {
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "callable %s has %d results", exprString(ft), len(results)),
			"return a pysig.Tuple instead")
	}

	var ret ir.TypeDescriptor = ir.NoValue()
	if len(results) == 1 {
		d, err := p.convert(results[0].Type, true)
		if err != nil {
			return nil, err
		}
		ret = d
	}
	return ir.Signature(ret, params...), nil
}

// exprString renders an expression for error messages.
func exprString(node ast.Expr) string {
	return types.ExprString(node)
}
