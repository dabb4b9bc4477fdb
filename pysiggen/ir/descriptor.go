package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	// Leaves
	KindAtomic  DescriptorKind = iota // Bound by name (int, str, user types)
	KindNoValue                       // "returns nothing" marker

	// Wrapper shapes
	KindGroup     // Fixed-arity heterogeneous group (Tuple)
	KindMapping   // Key/value mapping (Dict)
	KindSequence  // Homogeneous sequence (List)
	KindSet       // Homogeneous set (Set)
	KindSignature // Callable signature
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindAtomic:
		return "Atomic"
	case KindNoValue:
		return "NoValue"
	case KindGroup:
		return "Group"
	case KindMapping:
		return "Mapping"
	case KindSequence:
		return "Sequence"
	case KindSet:
		return "SetOf"
	case KindSignature:
		return "Signature"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// TypeName returns the identity of an atomic descriptor.
	// Returns zero value for every other kind.
	TypeName() GoIdentifier

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase provides zero-value implementations of TypeDescriptor methods
// for descriptors that have no identity of their own.
type exprBase struct{}

func (exprBase) TypeName() GoIdentifier { return GoIdentifier{} }
func (exprBase) sealed()                {}
