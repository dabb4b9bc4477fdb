// Package provider implements input providers for extracting type information
// from Go code. Providers convert Go types into the intermediate representation (IR)
// that generators use to produce display names and stubs.
package provider

import (
	"context"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
)

// ReflectionProvider builds descriptors using runtime reflection.
// It sees instantiated wrapper types directly and needs no source code.
type ReflectionProvider struct{}

// ReflectionInputOptions configures reflection-based schema extraction.
type ReflectionInputOptions struct {
	// Module is the target module name.
	Module string

	// Doc is the module docstring.
	Doc string

	// Functions are the registered functions to describe.
	Functions []pysig.Function
}

var (
	errorType   = reflect.TypeFor[error]()
	contextType = reflect.TypeFor[context.Context]()
)

// Describe returns the descriptor tree of t.
func (p *ReflectionProvider) Describe(t reflect.Type) (ir.TypeDescriptor, error) {
	b := &reflectionSchemaBuilder{schema: &ir.Schema{}}
	return b.typeToDescriptor(t, false)
}

// BuildSchema converts every registered function and returns a Schema.
// All failing functions are reported together.
func (p *ReflectionProvider) BuildSchema(ctx context.Context, opts ReflectionInputOptions) (*ir.Schema, error) {
	if len(opts.Functions) == 0 {
		return nil, errors.New("no functions provided")
	}

	b := &reflectionSchemaBuilder{
		schema: &ir.Schema{
			Module:        opts.Module,
			Documentation: docOf(opts.Doc),
		},
	}

	var errs []error
	for _, fn := range opts.Functions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fd, err := b.buildFunction(fn)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "function %s", fn.Name))
			continue
		}
		b.schema.AddFunction(fd)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b.schema, nil
}

// reflectionSchemaBuilder maintains state during schema construction.
type reflectionSchemaBuilder struct {
	schema *ir.Schema
}

// buildFunction converts a registered function.
// A leading context.Context parameter and a trailing error result are part
// of the Go calling convention and are not documented.
func (b *reflectionSchemaBuilder) buildFunction(fn pysig.Function) (ir.FunctionDescriptor, error) {
	t := fn.Type
	if t == nil || t.Kind() != reflect.Func {
		return ir.FunctionDescriptor{}, pysig.Errorf(pysig.CodeInvalidSignature, "%v is not a func", t)
	}
	if t.IsVariadic() {
		return ir.FunctionDescriptor{}, errors.WithHint(
			pysig.Errorf(pysig.CodeInvalidSignature, "variadic parameters are not supported: %s", t),
			"accept a pysig.List instead")
	}

	in := make([]reflect.Type, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		in = append(in, t.In(i))
	}
	if len(in) > 0 && in[0] == contextType {
		in = in[1:]
	}

	out := make([]reflect.Type, 0, t.NumOut())
	for i := 0; i < t.NumOut(); i++ {
		out = append(out, t.Out(i))
	}
	if len(out) > 0 && out[len(out)-1] == errorType {
		out = out[:len(out)-1]
	}
	if len(out) > 1 {
		return ir.FunctionDescriptor{}, errors.WithHint(
			pysig.Errorf(pysig.CodeInvalidSignature, "multiple results are not supported: %s", t),
			"return a pysig.Tuple instead")
	}

	if len(fn.ParamNames) > len(in) {
		b.addWarning("EXTRA_PARAM_NAMES", "more parameter names than parameters", fn.Name)
	}

	fd := ir.FunctionDescriptor{
		Name:          fn.Name,
		Documentation: docOf(fn.Doc),
	}
	for i, pt := range in {
		desc, err := b.typeToDescriptor(pt, false)
		if err != nil {
			return ir.FunctionDescriptor{}, errors.Wrapf(err, "parameter %d", i)
		}
		var name string
		if i < len(fn.ParamNames) {
			name = fn.ParamNames[i]
		}
		fd.Params = append(fd.Params, ir.ParamDescriptor{Name: name, Type: desc})
	}

	if len(out) == 0 {
		fd.Return = ir.NoValue()
		return fd, nil
	}
	ret, err := b.typeToDescriptor(out[0], true)
	if err != nil {
		return ir.FunctionDescriptor{}, errors.Wrap(err, "result")
	}
	fd.Return = ret
	return fd, nil
}

// typeToDescriptor converts a reflect.Type to a TypeDescriptor.
// allowNoValue is true only for a signature result.
func (b *reflectionSchemaBuilder) typeToDescriptor(t reflect.Type, allowNoValue bool) (ir.TypeDescriptor, error) {
	if t == nil {
		return nil, pysig.NewError(pysig.CodeUnsupportedShape, "nil type")
	}

	if pysig.IsNoValue(t) {
		if !allowNoValue {
			return nil, pysig.NewError(pysig.CodeUnsupportedShape, "pysig.NoValue is only valid as a callable result")
		}
		return ir.NoValue(), nil
	}

	if shape, ok := pysig.ShapeOf(t); ok {
		return b.shapeToDescriptor(t, shape)
	}

	// Predeclared types: int, string, error, ...
	if t.Name() != "" && t.PkgPath() == "" {
		return ir.Builtin(t.Name()), nil
	}

	// Named types are atomic and bound by identity. Instantiated generic
	// types are bound by their base name, Box[int] as Box.
	if t.Name() != "" {
		name, _, _ := strings.Cut(t.Name(), "[")
		return ir.Atomic(name, t.PkgPath()), nil
	}

	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 && t.Elem().PkgPath() == "" {
		return ir.Builtin(ir.BuiltinBytes), nil
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return ir.Builtin(ir.BuiltinAny), nil
	}

	return nil, b.checkUnsupportedType(t)
}

// shapeToDescriptor converts a wrapper shape, resolving components left to right.
func (b *reflectionSchemaBuilder) shapeToDescriptor(t reflect.Type, shape pysig.Shape) (ir.TypeDescriptor, error) {
	components := func(want int) ([]ir.TypeDescriptor, error) {
		if want >= 0 && len(shape.Args) != want {
			return nil, pysig.Errorf(pysig.CodeUnsupportedShape,
				"%s: %s shape has %d components, want %d", t, shape.Kind, len(shape.Args), want)
		}
		out := make([]ir.TypeDescriptor, 0, len(shape.Args))
		for _, arg := range shape.Args {
			d, err := b.typeToDescriptor(arg, false)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	}

	switch shape.Kind {
	case pysig.ShapeGroup:
		elems, err := components(-1)
		if err != nil {
			return nil, err
		}
		return ir.Group(elems...), nil
	case pysig.ShapeMapping:
		kv, err := components(2)
		if err != nil {
			return nil, err
		}
		return ir.Mapping(kv[0], kv[1]), nil
	case pysig.ShapeSequence:
		e, err := components(1)
		if err != nil {
			return nil, err
		}
		return ir.Sequence(e[0]), nil
	case pysig.ShapeSet:
		e, err := components(1)
		if err != nil {
			return nil, err
		}
		return ir.SetOf(e[0]), nil
	case pysig.ShapeSignature:
		if len(shape.Args) != 1 {
			return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "%s: signature shape needs one func type", t)
		}
		return b.signatureToDescriptor(shape.Args[0])
	default:
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "%s: unknown shape kind %d", t, shape.Kind)
	}
}

// signatureToDescriptor converts the func type argument of a Callable.
func (b *reflectionSchemaBuilder) signatureToDescriptor(f reflect.Type) (ir.TypeDescriptor, error) {
	if f == nil || f.Kind() != reflect.Func {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "Callable type argument %v is not a func type", f)
	}
	if f.IsVariadic() {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "variadic callable %s", f)
	}
	if f.NumOut() > 1 {
		return nil, errors.WithHint(
			pysig.Errorf(pysig.CodeUnsupportedShape, "callable %s has %d results", f, f.NumOut()),
			"return a pysig.Tuple instead")
	}

	params := make([]ir.TypeDescriptor, 0, f.NumIn())
	for i := 0; i < f.NumIn(); i++ {
		d, err := b.typeToDescriptor(f.In(i), false)
		if err != nil {
			return nil, err
		}
		params = append(params, d)
	}

	var ret ir.TypeDescriptor = ir.NoValue()
	if f.NumOut() == 1 {
		d, err := b.typeToDescriptor(f.Out(0), true)
		if err != nil {
			return nil, err
		}
		ret = d
	}
	return ir.Signature(ret, params...), nil
}

// checkUnsupportedType returns the error for a type that is neither atomic
// nor a wrapper.
func (b *reflectionSchemaBuilder) checkUnsupportedType(t reflect.Type) error {
	err := pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported type: %s", t)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return errors.WithHint(err, "use pysig.List or pysig.Tuple")
	case reflect.Map:
		return errors.WithHint(err, "use pysig.Dict or pysig.Set")
	case reflect.Func:
		return errors.WithHint(err, "use pysig.Callable")
	case reflect.Pointer:
		return errors.WithHint(err, "declare a named type and bind it")
	}
	return err
}

func (b *reflectionSchemaBuilder) addWarning(code, message, function string) {
	b.schema.AddWarning(ir.Warning{
		Code:     code,
		Message:  message,
		Function: function,
	})
}
