package provider

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/broady/pysig"
	"github.com/broady/pysig/pysiggen/ir"
)

// wrapperPkgPath is the import path of the wrapper catalog.
var wrapperPkgPath = reflect.TypeFor[pysig.NoValue]().PkgPath()

const noValueName = "NoValue"

// wrapperInfo describes a wrapper type as seen by name in source.
type wrapperInfo struct {
	kind  pysig.ShapeKind
	arity int
}

// lookupWrapper returns the shape of the wrapper type with the given name
// in the wrapper package.
func lookupWrapper(name string) (wrapperInfo, bool) {
	switch name {
	case "List":
		return wrapperInfo{pysig.ShapeSequence, 1}, true
	case "Set":
		return wrapperInfo{pysig.ShapeSet, 1}, true
	case "Dict":
		return wrapperInfo{pysig.ShapeMapping, 2}, true
	case "Callable":
		return wrapperInfo{pysig.ShapeSignature, 1}, true
	}
	if rest, ok := strings.CutPrefix(name, "Tuple"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 0 && n <= 8 && strconv.Itoa(n) == rest {
			return wrapperInfo{pysig.ShapeGroup, n}, true
		}
	}
	return wrapperInfo{}, false
}

// composeShape builds the descriptor of a non-signature shape from its
// already converted components.
func composeShape(name string, info wrapperInfo, args []ir.TypeDescriptor) (ir.TypeDescriptor, error) {
	if len(args) != info.arity {
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape,
			"pysig.%s takes %d type arguments, got %d", name, info.arity, len(args))
	}
	switch info.kind {
	case pysig.ShapeGroup:
		return ir.Group(args...), nil
	case pysig.ShapeMapping:
		return ir.Mapping(args[0], args[1]), nil
	case pysig.ShapeSequence:
		return ir.Sequence(args[0]), nil
	case pysig.ShapeSet:
		return ir.SetOf(args[0]), nil
	default:
		return nil, pysig.Errorf(pysig.CodeUnsupportedShape, "pysig.%s is not a container shape", name)
	}
}

// docOf splits a doc comment into summary and body.
func docOf(text string) ir.Documentation {
	body := strings.TrimSpace(text)
	if body == "" {
		return ir.Documentation{}
	}
	summary, _, _ := strings.Cut(body, "\n")
	return ir.Documentation{
		Summary: strings.TrimSpace(summary),
		Body:    body,
	}
}
