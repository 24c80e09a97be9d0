package ir

// ClassType represents a class instantiation.
//
// Arguments holds projections only for the class's own (innermost) declared type
// parameters; arguments for enclosing generic classes live on Outer. A ClassType
// is built and interned by the type factory and must not be modified afterwards.
type ClassType struct {
	// ID is the classifier identity of the class.
	ID ClassifierID

	// Outer is the owning outer class type for nested and inner classes,
	// nil for top-level classes.
	Outer *ClassType

	// Visibility is the declared visibility of the class.
	Visibility Visibility

	// Arguments are the projections for the class's own declared type parameters.
	Arguments []TypeProjection

	// MarkedNullable reports whether the type was written with a nullable marker.
	MarkedNullable bool
}

// Kind returns KindClass.
func (t *ClassType) Kind() TypeKind { return KindClass }

// IsMarkedNullable reports whether the type carries a nullable marker.
func (t *ClassType) IsMarkedNullable() bool { return t.MarkedNullable }

func (*ClassType) sealed()           {}
func (*ClassType) simpleNode()       {}
func (*ClassType) classOrAliasNode() {}
