package ir

import (
	"sort"
	"strconv"
)

// Schema is the complete set of functions to document for one module.
type Schema struct {
	// Package is the source Go package information, if the schema came from
	// a single package.
	Package PackageInfo

	// Module is the target module name.
	Module string

	// Documentation is the module docstring.
	Documentation Documentation

	// Functions in no particular order. Generators sort by Name.
	Functions []FunctionDescriptor

	// Warnings contains non-fatal issues encountered during schema building.
	Warnings []Warning
}

// AddFunction adds a function descriptor to the schema.
func (s *Schema) AddFunction(fn FunctionDescriptor) {
	s.Functions = append(s.Functions, fn)
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindFunction looks up a function by name. Returns nil if not found.
func (s *Schema) FindFunction(name string) *FunctionDescriptor {
	for i := range s.Functions {
		if s.Functions[i].Name == name {
			return &s.Functions[i]
		}
	}
	return nil
}

// SortedFunctions returns the functions ordered by name.
func (s *Schema) SortedFunctions() []FunctionDescriptor {
	out := make([]FunctionDescriptor, len(s.Functions))
	copy(out, s.Functions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
func (s *Schema) Validate() []error {
	var errors []*ValidationError

	names := make(map[string]bool)
	for _, fn := range s.Functions {
		if fn.Name == "" {
			errors = append(errors, &ValidationError{
				Code:    "missing_name",
				Message: "function " + fn.GoName + " has no name",
			})
		} else if names[fn.Name] {
			errors = append(errors, &ValidationError{
				Code:    "duplicate_function",
				Message: "duplicate function name: " + fn.Name,
			})
		}
		names[fn.Name] = true

		for i, p := range fn.Params {
			context := "function " + fn.Name + " parameter " + strconv.Itoa(i)
			errors = append(errors, validateDescriptor(p.Type, context, false)...)
		}
		if fn.Return != nil {
			errors = append(errors, validateDescriptor(fn.Return, "function "+fn.Name+" return", true)...)
		}
	}

	// Convert ValidationErrors to regular errors
	var result []error
	for _, e := range errors {
		result = append(result, e)
	}
	return result
}

// ValidateDescriptor checks a single descriptor tree for structural issues.
func ValidateDescriptor(td TypeDescriptor) []error {
	var result []error
	for _, e := range validateDescriptor(td, "descriptor", false) {
		result = append(result, e)
	}
	return result
}

// validateDescriptor recursively walks td and checks component arity.
// allowNoValue is true only in a signature return position.
func validateDescriptor(td TypeDescriptor, context string, allowNoValue bool) []*ValidationError {
	if td == nil {
		return []*ValidationError{{
			Code:    "missing_component",
			Message: context + " is nil",
		}}
	}

	var errors []*ValidationError

	switch d := td.(type) {
	case *AtomicDescriptor:
		if d.ID.Name == "" {
			errors = append(errors, &ValidationError{
				Code:    "empty_atomic",
				Message: context + " is an atomic type without a name",
			})
		}
	case *NoValueDescriptor:
		if !allowNoValue {
			errors = append(errors, &ValidationError{
				Code:    "misplaced_no_value",
				Message: context + " uses the no-value marker outside a signature return",
			})
		}
	case *GroupDescriptor:
		for i, e := range d.Elements {
			errors = append(errors, validateDescriptor(e, context+" element "+strconv.Itoa(i), false)...)
		}
	case *MappingDescriptor:
		errors = append(errors, validateDescriptor(d.Key, context+" key", false)...)
		errors = append(errors, validateDescriptor(d.Value, context+" value", false)...)
	case *SequenceDescriptor:
		errors = append(errors, validateDescriptor(d.Element, context+" element", false)...)
	case *SetDescriptor:
		errors = append(errors, validateDescriptor(d.Element, context+" element", false)...)
	case *SignatureDescriptor:
		for i, p := range d.Params {
			errors = append(errors, validateDescriptor(p, context+" parameter "+strconv.Itoa(i), false)...)
		}
		if d.Return != nil {
			errors = append(errors, validateDescriptor(d.Return, context+" return", true)...)
		}
	default:
		errors = append(errors, &ValidationError{
			Code:    "unknown_kind",
			Message: context + " has unknown kind " + td.Kind().String(),
		})
	}

	return errors
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
