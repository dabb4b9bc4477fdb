package ir

// FunctionDescriptor describes one documented function.
type FunctionDescriptor struct {
	// Name is the target-language name.
	Name string

	// GoName is the qualified Go name, if known (e.g. "geom.Scale").
	GoName string

	// Params are the parameters in order. Names may be empty.
	Params []ParamDescriptor

	// Return is the result type, or a NoValueDescriptor.
	Return TypeDescriptor

	Documentation Documentation

	// Source is the declaration position. Zero for reflected functions.
	Source Source
}

// ParamDescriptor is a single function parameter.
type ParamDescriptor struct {
	Name string
	Type TypeDescriptor
}

// Signature returns the callable signature of the function.
func (f *FunctionDescriptor) Signature() *SignatureDescriptor {
	params := make([]TypeDescriptor, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	ret := f.Return
	if ret == nil {
		ret = NoValue()
	}
	return Signature(ret, params...)
}
