// Package pysig declares the generic wrapper types used to document Go
// functions exposed to Python.
//
// Python containers are untyped at the value level. When a Go function
// accepts or returns one, the wrapper types below record the intended
// element, parameter and return types so that generated documentation can
// show List[int] instead of list:
//
//	func Scale(points pysig.List[float64], by float64) pysig.Dict[string, float64]
//
// renders as
//
//	Scale(points: List[float], by: float) -> Dict[str, float]
//
// The wrappers carry no runtime checks. Their only role is to name a shape
// (Group, Mapping, Sequence, SetOf or Signature) together with its component
// types; package pysiggen turns that into display names and stub files.
package pysig
