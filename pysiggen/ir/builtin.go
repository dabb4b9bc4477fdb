package ir

// Names of the predeclared atomic types a provider may emit.
const (
	BuiltinBool       = "bool"
	BuiltinString     = "string"
	BuiltinInt        = "int"
	BuiltinInt8       = "int8"
	BuiltinInt16      = "int16"
	BuiltinInt32      = "int32"
	BuiltinInt64      = "int64"
	BuiltinUint       = "uint"
	BuiltinUint8      = "uint8"
	BuiltinUint16     = "uint16"
	BuiltinUint32     = "uint32"
	BuiltinUint64     = "uint64"
	BuiltinUintptr    = "uintptr"
	BuiltinByte       = "byte"
	BuiltinRune       = "rune"
	BuiltinFloat32    = "float32"
	BuiltinFloat64    = "float64"
	BuiltinComplex64  = "complex64"
	BuiltinComplex128 = "complex128"
	BuiltinBytes      = "[]byte"
	BuiltinAny        = "any"
	BuiltinError      = "error"
)

var builtinNames = map[string]bool{
	BuiltinBool:       true,
	BuiltinString:     true,
	BuiltinInt:        true,
	BuiltinInt8:       true,
	BuiltinInt16:      true,
	BuiltinInt32:      true,
	BuiltinInt64:      true,
	BuiltinUint:       true,
	BuiltinUint8:      true,
	BuiltinUint16:     true,
	BuiltinUint32:     true,
	BuiltinUint64:     true,
	BuiltinUintptr:    true,
	BuiltinByte:       true,
	BuiltinRune:       true,
	BuiltinFloat32:    true,
	BuiltinFloat64:    true,
	BuiltinComplex64:  true,
	BuiltinComplex128: true,
	BuiltinBytes:      true,
	BuiltinAny:        true,
	BuiltinError:      true,
}

// IsBuiltinName reports whether name is one of the predeclared atomic names.
func IsBuiltinName(name string) bool {
	return builtinNames[name]
}

// BuiltinNames returns every predeclared atomic name.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinNames))
	for n := range builtinNames {
		names = append(names, n)
	}
	return names
}
