package pysig

import "reflect"

// ShapeKind identifies one of the generic wrapper shapes.
type ShapeKind int

const (
	ShapeInvalid   ShapeKind = iota
	ShapeGroup               // Fixed-arity heterogeneous group (Tuple)
	ShapeMapping             // Key/value mapping (Dict)
	ShapeSequence            // Homogeneous sequence (List)
	ShapeSet                 // Homogeneous set (Set)
	ShapeSignature           // Callable signature (Callable)
)

// String returns the string representation of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case ShapeGroup:
		return "Group"
	case ShapeMapping:
		return "Mapping"
	case ShapeSequence:
		return "Sequence"
	case ShapeSet:
		return "SetOf"
	case ShapeSignature:
		return "Signature"
	default:
		return "Invalid"
	}
}

// Shape describes one instantiation of a wrapper type.
type Shape struct {
	Kind ShapeKind

	// Args are the component types in declaration order.
	//   - Group: 0..N element types
	//   - Mapping: key, value
	//   - Sequence, SetOf: element
	//   - Signature: exactly one Go func type
	Args []reflect.Type
}

// Wrapper is implemented by every type of the shape catalog.
// Shape must be callable on the zero value.
type Wrapper interface {
	Shape() Shape
}

// NoValue marks a callable that returns nothing. A Callable whose func type
// has no results is equivalent to one returning NoValue.
type NoValue struct{}

// List is a host sequence whose elements are documented as T.
type List[T any] []any

// Shape implements Wrapper.
func (List[T]) Shape() Shape {
	return Shape{Kind: ShapeSequence, Args: types(reflect.TypeFor[T]())}
}

// Set is a host set whose elements are documented as T.
type Set[T any] map[any]struct{}

// Shape implements Wrapper.
func (Set[T]) Shape() Shape {
	return Shape{Kind: ShapeSet, Args: types(reflect.TypeFor[T]())}
}

// Dict is a host mapping documented as K -> V.
type Dict[K, V any] map[any]any

// Shape implements Wrapper.
func (Dict[K, V]) Shape() Shape {
	return Shape{Kind: ShapeMapping, Args: types(reflect.TypeFor[K](), reflect.TypeFor[V]())}
}

// Callable is a host callable documented with the signature of F.
// F must be a non-variadic func type with at most one result.
//
//	pysig.Callable[func(int, string) bool]  // Callable[[int, str], bool]
//	pysig.Callable[func(float64)]           // Callable[[float], None]
type Callable[F any] func(args ...any) (any, error)

// Shape implements Wrapper.
func (Callable[F]) Shape() Shape {
	return Shape{Kind: ShapeSignature, Args: types(reflect.TypeFor[F]())}
}

// Go has no variadic type parameters, so fixed-arity groups are spelled
// Tuple0 through Tuple8.

// Tuple0 is the empty host tuple.
type Tuple0 []any

// Shape implements Wrapper.
func (Tuple0) Shape() Shape { return Shape{Kind: ShapeGroup} }

// Tuple1 is a host tuple of one element.
type Tuple1[A any] []any

// Shape implements Wrapper.
func (Tuple1[A]) Shape() Shape {
	return group(reflect.TypeFor[A]())
}

// Tuple2 is a host tuple of two elements.
type Tuple2[A, B any] []any

// Shape implements Wrapper.
func (Tuple2[A, B]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B]())
}

// Tuple3 is a host tuple of three elements.
type Tuple3[A, B, C any] []any

// Shape implements Wrapper.
func (Tuple3[A, B, C]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
}

// Tuple4 is a host tuple of four elements.
type Tuple4[A, B, C, D any] []any

// Shape implements Wrapper.
func (Tuple4[A, B, C, D]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D]())
}

// Tuple5 is a host tuple of five elements.
type Tuple5[A, B, C, D, E any] []any

// Shape implements Wrapper.
func (Tuple5[A, B, C, D, E]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](),
		reflect.TypeFor[E]())
}

// Tuple6 is a host tuple of six elements.
type Tuple6[A, B, C, D, E, F any] []any

// Shape implements Wrapper.
func (Tuple6[A, B, C, D, E, F]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](),
		reflect.TypeFor[E](), reflect.TypeFor[F]())
}

// Tuple7 is a host tuple of seven elements.
type Tuple7[A, B, C, D, E, F, G any] []any

// Shape implements Wrapper.
func (Tuple7[A, B, C, D, E, F, G]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](),
		reflect.TypeFor[E](), reflect.TypeFor[F](), reflect.TypeFor[G]())
}

// Tuple8 is a host tuple of eight elements.
type Tuple8[A, B, C, D, E, F, G, H any] []any

// Shape implements Wrapper.
func (Tuple8[A, B, C, D, E, F, G, H]) Shape() Shape {
	return group(reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C](), reflect.TypeFor[D](),
		reflect.TypeFor[E](), reflect.TypeFor[F](), reflect.TypeFor[G](), reflect.TypeFor[H]())
}

// ShapeOf returns the shape of t if t is a wrapper type.
// Pointers to wrappers are not wrappers.
func ShapeOf(t reflect.Type) (Shape, bool) {
	if t == nil || t.Kind() == reflect.Pointer || !t.Implements(wrapperType) {
		return Shape{}, false
	}
	w, ok := reflect.Zero(t).Interface().(Wrapper)
	if !ok {
		return Shape{}, false
	}
	return w.Shape(), true
}

// IsNoValue reports whether t is the NoValue marker.
func IsNoValue(t reflect.Type) bool {
	return t == noValueType
}

var (
	wrapperType = reflect.TypeFor[Wrapper]()
	noValueType = reflect.TypeFor[NoValue]()
)

func group(args ...reflect.Type) Shape {
	return Shape{Kind: ShapeGroup, Args: args}
}

func types(args ...reflect.Type) []reflect.Type {
	return args
}
