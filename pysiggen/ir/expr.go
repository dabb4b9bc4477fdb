package ir

// AtomicDescriptor is a leaf whose display name comes from a binding table.
type AtomicDescriptor struct {
	exprBase

	// ID is the Go identity used for the binding lookup.
	ID GoIdentifier
}

// Kind returns KindAtomic.
func (d *AtomicDescriptor) Kind() DescriptorKind { return KindAtomic }

// TypeName returns the atomic identity.
func (d *AtomicDescriptor) TypeName() GoIdentifier { return d.ID }

// Atomic returns an AtomicDescriptor for a named type.
func Atomic(name, pkg string) *AtomicDescriptor {
	return &AtomicDescriptor{ID: GoIdentifier{Name: name, Package: pkg}}
}

// Builtin returns an AtomicDescriptor for a predeclared type.
func Builtin(name string) *AtomicDescriptor {
	return &AtomicDescriptor{ID: GoIdentifier{Name: name}}
}

// NoValueDescriptor marks a signature that returns nothing.
// It is only meaningful as SignatureDescriptor.Return.
type NoValueDescriptor struct {
	exprBase
}

// Kind returns KindNoValue.
func (d *NoValueDescriptor) Kind() DescriptorKind { return KindNoValue }

// NoValue returns the no-value marker.
func NoValue() *NoValueDescriptor {
	return &NoValueDescriptor{}
}

// GroupDescriptor is an ordered heterogeneous group of 0..N components.
type GroupDescriptor struct {
	exprBase

	Elements []TypeDescriptor
}

// Kind returns KindGroup.
func (d *GroupDescriptor) Kind() DescriptorKind { return KindGroup }

// Group returns a GroupDescriptor. Group() is the empty group.
func Group(elements ...TypeDescriptor) *GroupDescriptor {
	return &GroupDescriptor{Elements: elements}
}

// MappingDescriptor is a key/value mapping.
type MappingDescriptor struct {
	exprBase

	Key   TypeDescriptor
	Value TypeDescriptor
}

// Kind returns KindMapping.
func (d *MappingDescriptor) Kind() DescriptorKind { return KindMapping }

// Mapping returns a MappingDescriptor.
func Mapping(key, value TypeDescriptor) *MappingDescriptor {
	return &MappingDescriptor{Key: key, Value: value}
}

// SequenceDescriptor is a homogeneous ordered sequence.
type SequenceDescriptor struct {
	exprBase

	Element TypeDescriptor
}

// Kind returns KindSequence.
func (d *SequenceDescriptor) Kind() DescriptorKind { return KindSequence }

// Sequence returns a SequenceDescriptor.
func Sequence(element TypeDescriptor) *SequenceDescriptor {
	return &SequenceDescriptor{Element: element}
}

// SetDescriptor is a homogeneous unordered set.
type SetDescriptor struct {
	exprBase

	Element TypeDescriptor
}

// Kind returns KindSet.
func (d *SetDescriptor) Kind() DescriptorKind { return KindSet }

// SetOf returns a SetDescriptor.
func SetOf(element TypeDescriptor) *SetDescriptor {
	return &SetDescriptor{Element: element}
}

// SignatureDescriptor describes a callable.
type SignatureDescriptor struct {
	exprBase

	// Return is the result type, or a NoValueDescriptor when the callable
	// returns nothing. A nil Return is treated as NoValue.
	Return TypeDescriptor

	// Params are the parameter types in order.
	Params []TypeDescriptor
}

// Kind returns KindSignature.
func (d *SignatureDescriptor) Kind() DescriptorKind { return KindSignature }

// ReturnsNothing reports whether the signature has a no-value return.
func (d *SignatureDescriptor) ReturnsNothing() bool {
	return d.Return == nil || d.Return.Kind() == KindNoValue
}

// Signature returns a SignatureDescriptor.
func Signature(ret TypeDescriptor, params ...TypeDescriptor) *SignatureDescriptor {
	return &SignatureDescriptor{Return: ret, Params: params}
}
