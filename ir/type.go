// Package ir defines the canonical intermediate representation for Kotlin-style
// types: class types, type-alias types, type-parameter types, and flexible types.
// Nodes are constructed by the expand package's type factory, interned on
// construction, and must not be modified afterwards; two structurally equal
// constructions yield pointer-equal canonical instances.
package ir

// TypeKind identifies the category of a type node.
type TypeKind int

const (
	KindClass         TypeKind = iota // Class instantiation
	KindTypeAlias                     // Alias instantiation with its computed underlying type
	KindTypeParameter                 // Occurrence of a type parameter by flattened index
	KindFlexible                      // Lower/upper bound pair, no further structure
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindTypeAlias:
		return "TypeAlias"
	case KindTypeParameter:
		return "TypeParameter"
	case KindFlexible:
		return "Flexible"
	default:
		return "Unknown"
	}
}

// Type is the base interface for all canonical type nodes.
type Type interface {
	// Kind returns the type kind for type switching.
	Kind() TypeKind

	// Ensure only types in this package can implement Type.
	sealed()
}

// SimpleType is a type that carries nullability: class, type-alias, and
// type-parameter types. Flexible types are Types but not SimpleTypes.
type SimpleType interface {
	Type

	// IsMarkedNullable reports whether the type was written with a nullable marker.
	IsMarkedNullable() bool

	simpleNode()
}

// ClassOrAliasType is a class type or a type-alias type. The underlying type of
// an alias is always one of these two.
type ClassOrAliasType interface {
	SimpleType

	classOrAliasNode()
}

// FlexibleType wraps a lower and an upper bound. It is never itself expandable
// and carries no nullability of its own.
type FlexibleType struct {
	// LowerBound is the lower bound of the flexible range.
	LowerBound SimpleType

	// UpperBound is the upper bound of the flexible range.
	UpperBound SimpleType
}

// Kind returns KindFlexible.
func (t *FlexibleType) Kind() TypeKind { return KindFlexible }

func (*FlexibleType) sealed() {}
