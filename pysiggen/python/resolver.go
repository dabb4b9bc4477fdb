package python

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
)

// DefaultNoValueName is the display name of a no-value return.
const DefaultNoValueName = "None"

// Resolver computes display names of descriptor trees.
//
// Resolution is pure: the same tree and bindings always produce the same
// name, and a Resolver may be used from multiple goroutines as long as its
// Bindings are not modified.
type Resolver struct {
	// Bindings supplies names for atomic types.
	Bindings *Bindings

	// NoValueName replaces a no-value signature return.
	// Empty means DefaultNoValueName.
	NoValueName string
}

// NewResolver returns a Resolver over b.
func NewResolver(b *Bindings) *Resolver {
	return &Resolver{Bindings: b, NoValueName: DefaultNoValueName}
}

// Resolve returns the display name of td.
//
// An atomic type without a binding fails with CodeUnboundAtomic. A nil
// descriptor, an unknown kind, a missing component, or a no-value marker
// anywhere except a signature return fails with CodeUnsupportedShape.
func (r *Resolver) Resolve(td ir.TypeDescriptor) (string, error) {
	return r.resolve(td)
}

// ResolveReturn is like Resolve but also accepts the no-value marker,
// which resolves to the no-value name.
func (r *Resolver) ResolveReturn(td ir.TypeDescriptor) (string, error) {
	if td == nil || td.Kind() == ir.KindNoValue {
		return r.noValueName(), nil
	}
	return r.resolve(td)
}

func (r *Resolver) noValueName() string {
	if r.NoValueName == "" {
		return DefaultNoValueName
	}
	return r.NoValueName
}

func (r *Resolver) resolve(td ir.TypeDescriptor) (string, error) {
	if td == nil {
		return "", pysig.NewError(pysig.CodeUnsupportedShape, "missing type descriptor")
	}

	switch d := td.(type) {
	case *ir.AtomicDescriptor:
		name, ok := r.Bindings.Lookup(d.ID)
		if !ok {
			return "", errors.WithHint(
				pysig.Errorf(pysig.CodeUnboundAtomic, "no display name bound for %s", d.ID).
					WithDetail("type", d.ID.String()),
				"bind it with Bindings.Bind")
		}
		return name, nil

	case *ir.NoValueDescriptor:
		return "", pysig.NewError(pysig.CodeUnsupportedShape, "no-value marker is only valid as a callable return")

	case *ir.GroupDescriptor:
		names, err := r.resolveAll(d.Elements)
		if err != nil {
			return "", err
		}
		return FormatGroup(names), nil

	case *ir.MappingDescriptor:
		if d.Key == nil || d.Value == nil {
			return "", pysig.NewError(pysig.CodeUnsupportedShape, "mapping requires a key and a value")
		}
		key, err := r.resolve(d.Key)
		if err != nil {
			return "", err
		}
		value, err := r.resolve(d.Value)
		if err != nil {
			return "", err
		}
		return FormatMapping(key, value), nil

	case *ir.SequenceDescriptor:
		if d.Element == nil {
			return "", pysig.NewError(pysig.CodeUnsupportedShape, "sequence requires an element")
		}
		elem, err := r.resolve(d.Element)
		if err != nil {
			return "", err
		}
		return FormatSequence(elem), nil

	case *ir.SetDescriptor:
		if d.Element == nil {
			return "", pysig.NewError(pysig.CodeUnsupportedShape, "set requires an element")
		}
		elem, err := r.resolve(d.Element)
		if err != nil {
			return "", err
		}
		return FormatSet(elem), nil

	case *ir.SignatureDescriptor:
		params, err := r.resolveAll(d.Params)
		if err != nil {
			return "", err
		}
		ret, err := r.ResolveReturn(d.Return)
		if err != nil {
			return "", err
		}
		return FormatSignature(params, ret), nil

	default:
		return "", pysig.Errorf(pysig.CodeUnsupportedShape, "unsupported descriptor kind: %s", td.Kind())
	}
}

func (r *Resolver) resolveAll(tds []ir.TypeDescriptor) ([]string, error) {
	names := make([]string, len(tds))
	for i, td := range tds {
		name, err := r.resolve(td)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}
