package ir

// TypeAliasType represents an alias instantiation.
//
// Underlying is the canonical type the alias stands for with the alias's formal
// parameters already substituted by Arguments; Arguments itself keeps the
// abbreviated view (the alias as the user wrote it) for display and reporting.
type TypeAliasType struct {
	// ID is the classifier identity of the alias.
	ID ClassifierID

	// Underlying is the substituted underlying type: always a class type or
	// another alias type, never a type parameter or flexible type.
	Underlying ClassOrAliasType

	// Arguments are the alias's own formal arguments, retained for the
	// abbreviated view.
	Arguments []TypeProjection

	// MarkedNullable reports whether the type was written with a nullable marker.
	MarkedNullable bool
}

// Kind returns KindTypeAlias.
func (t *TypeAliasType) Kind() TypeKind { return KindTypeAlias }

// IsMarkedNullable reports whether the type carries a nullable marker.
func (t *TypeAliasType) IsMarkedNullable() bool { return t.MarkedNullable }

func (*TypeAliasType) sealed()           {}
func (*TypeAliasType) simpleNode()       {}
func (*TypeAliasType) classOrAliasNode() {}
