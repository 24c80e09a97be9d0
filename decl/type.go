package decl

import "github.com/nvvi9/kotlin/ir"

// TypeKind discriminates occurrence nodes in both the serialized and the
// in-memory declaration form.
type TypeKind string

const (
	KindClass         TypeKind = "class"
	KindTypeAlias     TypeKind = "typeAlias"
	KindTypeParameter TypeKind = "typeParameter"
	KindFlexible      TypeKind = "flexible"
)

// Type is a syntactic type occurrence as it appears in a declaration, before
// canonicalization by the type factory. The same representation serves the
// serialized JSON form and the in-memory form built through the constructors
// below.
type Type struct {
	// Kind discriminates the occurrence.
	Kind TypeKind `json:"kind" validate:"required,oneof=class typeAlias typeParameter flexible"`

	// Classifier is the referenced class or alias identity (class/typeAlias kinds).
	Classifier ir.ClassifierID `json:"classifier,omitzero"`

	// Parameter is the raw type-parameter identity (typeParameter kind).
	Parameter string `json:"parameter,omitempty"`

	// Arguments are the type arguments of a class or alias reference.
	Arguments []Projection `json:"arguments,omitempty" validate:"dive"`

	// Nullable marks the occurrence as written with a nullable marker.
	Nullable bool `json:"nullable,omitempty"`

	// Abbreviation is the sugared alias-shaped view of this occurrence, used
	// preferentially when present.
	Abbreviation *Type `json:"abbreviation,omitempty"`

	// LowerBound and UpperBound are set for flexible occurrences only.
	LowerBound *Type `json:"lowerBound,omitempty"`
	UpperBound *Type `json:"upperBound,omitempty"`
}

// Projection is a type argument slot: a star wildcard, or a type with a
// use-site variance.
type Projection struct {
	// Star marks the slot as an unconstrained wildcard. A star projection
	// carries no variance and no type.
	Star bool `json:"star,omitempty"`

	// Variance is the use-site variance of a non-star slot.
	Variance ir.Variance `json:"variance,omitempty"`

	// Type is the argument type of a non-star slot.
	Type *Type `json:"type,omitempty"`
}

// Convenience constructors for the in-memory declaration form.

// ClassRef returns a class reference occurrence.
func ClassRef(id ir.ClassifierID, args ...Projection) *Type {
	return &Type{Kind: KindClass, Classifier: id, Arguments: args}
}

// AliasRef returns a type-alias reference occurrence.
func AliasRef(id ir.ClassifierID, args ...Projection) *Type {
	return &Type{Kind: KindTypeAlias, Classifier: id, Arguments: args}
}

// ParamRef returns a type-parameter reference occurrence.
func ParamRef(name string) *Type {
	return &Type{Kind: KindTypeParameter, Parameter: name}
}

// Flexible returns a flexible occurrence over the given bounds.
func Flexible(lower, upper *Type) *Type {
	return &Type{Kind: KindFlexible, LowerBound: lower, UpperBound: upper}
}

// Nullable returns a copy of t marked nullable.
func Nullable(t *Type) *Type {
	c := *t
	c.Nullable = true
	return &c
}

// StarArg returns a star projection.
func StarArg() Projection {
	return Projection{Star: true}
}

// Arg returns a projection with the given use-site variance.
func Arg(variance ir.Variance, t *Type) Projection {
	return Projection{Variance: variance, Type: t}
}

// InvariantArg returns an invariant projection of t.
func InvariantArg(t *Type) Projection {
	return Projection{Variance: ir.Invariant, Type: t}
}
