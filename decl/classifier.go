// Package decl holds the declaration model consumed by the expansion engine:
// classifiers (classes, type aliases, type parameters), the registry that
// resolves them by identity, and the type-occurrence form types are written in
// before canonicalization. Declarations are created once during ingestion and
// are read-only afterwards.
package decl

import "github.com/nvvi9/kotlin/ir"

// Classifier is the base interface for declaration-level classifiers.
type Classifier interface {
	classifierNode()
}

// TypeParameter is a formal type parameter declared by a class or alias.
type TypeParameter struct {
	// Name is the raw parameter identity as written in the declaration.
	Name string

	// Variance is the declaration-site variance.
	Variance ir.Variance
}

func (TypeParameter) classifierNode() {}

// Class is a class declaration.
type Class struct {
	// ID is the classifier identity.
	ID ir.ClassifierID

	// Visibility is the declared visibility.
	Visibility ir.Visibility

	// TypeParameters are the class's own formal parameters, in declaration order.
	TypeParameters []TypeParameter

	// Outer is the identity of the enclosing class for nested and inner
	// classes, zero for top-level classes.
	Outer ir.ClassifierID
}

func (*Class) classifierNode() {}

// TypeAlias is a type-alias declaration. Underlying is the alias's
// underlying-type template, expressed in terms of TypeParameters.
type TypeAlias struct {
	// ID is the classifier identity.
	ID ir.ClassifierID

	// TypeParameters are the alias's formal parameters, in declaration order.
	TypeParameters []TypeParameter

	// Underlying is the underlying-type template.
	Underlying *Type
}

func (*TypeAlias) classifierNode() {}
