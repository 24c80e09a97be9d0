package ir

// TypeParameterType is an occurrence of a type parameter.
//
// Index is the flattened index assigned by the resolver chain: it is unique
// across the enclosing scope chain, with outer declarations occupying lower
// indices than inner ones.
type TypeParameterType struct {
	// Index is the flattened type-parameter index.
	Index int

	// MarkedNullable reports whether the occurrence was written with a
	// nullable marker.
	MarkedNullable bool
}

// Kind returns KindTypeParameter.
func (t *TypeParameterType) Kind() TypeKind { return KindTypeParameter }

// IsMarkedNullable reports whether the occurrence carries a nullable marker.
func (t *TypeParameterType) IsMarkedNullable() bool { return t.MarkedNullable }

func (*TypeParameterType) sealed()     {}
func (*TypeParameterType) simpleNode() {}
