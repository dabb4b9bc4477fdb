package ir

import "encoding/json"

// JSON serialization support for IR types.
// All descriptors include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for AtomicDescriptor.
func (d *AtomicDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
		Pkg  string `json:"package,omitempty"`
	}{
		Kind: "atomic",
		Name: d.ID.Name,
		Pkg:  d.ID.Package,
	})
}

// MarshalJSON implements json.Marshaler for NoValueDescriptor.
func (d *NoValueDescriptor) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"noValue"}`), nil
}

// MarshalJSON implements json.Marshaler for GroupDescriptor.
func (d *GroupDescriptor) MarshalJSON() ([]byte, error) {
	elements := d.Elements
	if elements == nil {
		elements = []TypeDescriptor{}
	}
	return json.Marshal(&struct {
		Kind     string           `json:"kind"`
		Elements []TypeDescriptor `json:"elements"`
	}{
		Kind:     "group",
		Elements: elements,
	})
}

// MarshalJSON implements json.Marshaler for MappingDescriptor.
func (d *MappingDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind  string         `json:"kind"`
		Key   TypeDescriptor `json:"key"`
		Value TypeDescriptor `json:"value"`
	}{
		Kind:  "mapping",
		Key:   d.Key,
		Value: d.Value,
	})
}

// MarshalJSON implements json.Marshaler for SequenceDescriptor.
func (d *SequenceDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element TypeDescriptor `json:"element"`
	}{
		Kind:    "sequence",
		Element: d.Element,
	})
}

// MarshalJSON implements json.Marshaler for SetDescriptor.
func (d *SetDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Kind    string         `json:"kind"`
		Element TypeDescriptor `json:"element"`
	}{
		Kind:    "set",
		Element: d.Element,
	})
}

// MarshalJSON implements json.Marshaler for SignatureDescriptor.
func (d *SignatureDescriptor) MarshalJSON() ([]byte, error) {
	params := d.Params
	if params == nil {
		params = []TypeDescriptor{}
	}
	var ret TypeDescriptor = d.Return
	if ret == nil {
		ret = NoValue()
	}
	return json.Marshal(&struct {
		Kind   string           `json:"kind"`
		Params []TypeDescriptor `json:"params"`
		Return TypeDescriptor   `json:"return"`
	}{
		Kind:   "signature",
		Params: params,
		Return: ret,
	})
}

// MarshalJSON implements json.Marshaler for GoIdentifier.
func (id GoIdentifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name    string `json:"name"`
		Package string `json:"package,omitempty"`
	}{
		Name:    id.Name,
		Package: id.Package,
	})
}

// MarshalJSON implements json.Marshaler for ParamDescriptor.
func (p ParamDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Name string         `json:"name,omitempty"`
		Type TypeDescriptor `json:"type"`
	}{
		Name: p.Name,
		Type: p.Type,
	})
}

// MarshalJSON implements json.Marshaler for FunctionDescriptor.
func (f FunctionDescriptor) MarshalJSON() ([]byte, error) {
	params := f.Params
	if params == nil {
		params = []ParamDescriptor{}
	}
	var ret TypeDescriptor = f.Return
	if ret == nil {
		ret = NoValue()
	}
	return json.Marshal(&struct {
		Name   string            `json:"name"`
		GoName string            `json:"goName,omitempty"`
		Params []ParamDescriptor `json:"params"`
		Return TypeDescriptor    `json:"return"`
		Doc    string            `json:"doc,omitempty"`
	}{
		Name:   f.Name,
		GoName: f.GoName,
		Params: params,
		Return: ret,
		Doc:    f.Documentation.Summary,
	})
}
