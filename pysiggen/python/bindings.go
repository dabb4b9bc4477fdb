package python

import (
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
)

// Bindings maps atomic Go types to Python display names.
//
// A Bindings value is not safe for concurrent modification. It may be read
// by any number of resolvers once populated.
type Bindings struct {
	names map[ir.GoIdentifier]string
}

// NewBindings returns an empty table.
func NewBindings() *Bindings {
	return &Bindings{names: make(map[ir.GoIdentifier]string)}
}

// Builtins returns a table with the predeclared Go types and a few standard
// library types bound to their Python counterparts.
func Builtins() *Bindings {
	b := NewBindings()
	for _, name := range []string{
		ir.BuiltinInt, ir.BuiltinInt8, ir.BuiltinInt16, ir.BuiltinInt32, ir.BuiltinInt64,
		ir.BuiltinUint, ir.BuiltinUint8, ir.BuiltinUint16, ir.BuiltinUint32, ir.BuiltinUint64,
		ir.BuiltinUintptr, ir.BuiltinByte, ir.BuiltinRune,
	} {
		b.BindBuiltin(name, "int")
	}
	b.BindBuiltin(ir.BuiltinBool, "bool")
	b.BindBuiltin(ir.BuiltinFloat32, "float")
	b.BindBuiltin(ir.BuiltinFloat64, "float")
	b.BindBuiltin(ir.BuiltinComplex64, "complex")
	b.BindBuiltin(ir.BuiltinComplex128, "complex")
	b.BindBuiltin(ir.BuiltinString, "str")
	b.BindBuiltin(ir.BuiltinBytes, "bytes")
	b.BindBuiltin(ir.BuiltinAny, "object")
	b.BindBuiltin(ir.BuiltinError, "Exception")

	b.Bind(ir.GoIdentifier{Name: "Time", Package: "time"}, "datetime.datetime")
	b.Bind(ir.GoIdentifier{Name: "Duration", Package: "time"}, "datetime.timedelta")
	return b
}

// Bind sets the display name for id, replacing any earlier binding.
func (b *Bindings) Bind(id ir.GoIdentifier, name string) *Bindings {
	if b.names == nil {
		b.names = make(map[ir.GoIdentifier]string)
	}
	b.names[id] = name
	return b
}

// BindBuiltin binds a predeclared type by name.
func (b *Bindings) BindBuiltin(goName, name string) *Bindings {
	return b.Bind(ir.GoIdentifier{Name: goName}, name)
}

// Lookup returns the display name bound to id.
func (b *Bindings) Lookup(id ir.GoIdentifier) (string, bool) {
	if b == nil {
		return "", false
	}
	name, ok := b.names[id]
	return name, ok
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

// Clone returns an independent copy.
func (b *Bindings) Clone() *Bindings {
	c := NewBindings()
	if b != nil {
		maps.Copy(c.names, b.names)
	}
	return c
}

// Merge copies every binding of other into b. Bindings in other win.
// Merging into a nil table returns a copy of other.
func (b *Bindings) Merge(other *Bindings) *Bindings {
	if b == nil {
		return other.Clone()
	}
	if other == nil {
		return b
	}
	for id, name := range other.names {
		b.Bind(id, name)
	}
	return b
}

// Identifiers returns the bound identifiers sorted by their string form.
func (b *Bindings) Identifiers() []ir.GoIdentifier {
	if b == nil {
		return nil
	}
	ids := slices.Collect(maps.Keys(b.names))
	slices.SortFunc(ids, func(x, y ir.GoIdentifier) int {
		return strings.Compare(x.String(), y.String())
	})
	return ids
}

// ParseIdentifier parses the textual form used in configuration files:
// "int", "[]byte", "time.Duration" or "example.com/geom.Point".
func ParseIdentifier(s string) (ir.GoIdentifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ir.GoIdentifier{}, pysig.NewError(pysig.CodeInvalidConfig, "empty type name")
	}
	if ir.IsBuiltinName(s) {
		return ir.GoIdentifier{Name: s}, nil
	}

	start := strings.LastIndex(s, "/") + 1
	dot := strings.LastIndex(s[start:], ".")
	if dot < 0 {
		return ir.GoIdentifier{}, errors.WithHint(
			pysig.Errorf(pysig.CodeInvalidConfig, "type %q is neither builtin nor package-qualified", s),
			"write it as importpath.Name, e.g. time.Duration")
	}
	pkg, name := s[:start+dot], s[start+dot+1:]
	if pkg == "" || name == "" {
		return ir.GoIdentifier{}, pysig.Errorf(pysig.CodeInvalidConfig, "malformed type name %q", s)
	}
	return ir.GoIdentifier{Name: name, Package: pkg}, nil
}

// BindingsFromMap builds a table from textual keys, as read from a config
// file. Every malformed key is reported.
func BindingsFromMap(m map[string]string) (*Bindings, error) {
	b := NewBindings()
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(m)) {
		id, err := ParseIdentifier(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(m[key]) == "" {
			errs = append(errs, pysig.Errorf(pysig.CodeInvalidConfig, "binding for %s is empty", key))
			continue
		}
		b.Bind(id, m[key])
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b, nil
}
