package ir

// TypeProjection is a type argument slot in an instantiation: either a star
// (unconstrained wildcard) or a regular projection pairing a variance with a type.
type TypeProjection interface {
	projectionNode()
}

// StarProjection is the unconstrained wildcard argument. It has no variance and
// no type.
type StarProjection struct{}

// Star is the canonical star projection value.
var Star TypeProjection = StarProjection{}

func (StarProjection) projectionNode() {}

// RegularProjection is a concrete type argument with a use-site variance.
type RegularProjection struct {
	// Variance is the use-site variance of this argument slot.
	Variance Variance

	// Type is the argument type.
	Type Type
}

func (RegularProjection) projectionNode() {}

// Regular returns a regular projection for the given variance and type.
func Regular(variance Variance, typ Type) RegularProjection {
	return RegularProjection{Variance: variance, Type: typ}
}

// InvariantProjection returns an invariant regular projection of typ.
func InvariantProjection(typ Type) RegularProjection {
	return RegularProjection{Variance: Invariant, Type: typ}
}
