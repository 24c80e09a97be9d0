// Package expand implements the type-alias expansion engine: the scope-chained
// type resolver, the canonicalizing type interner, the type factory that turns
// declaration occurrences into canonical ir nodes, and the recursive alias
// expander.
package expand

import (
	"github.com/nvvi9/kotlin/decl"
	"github.com/nvvi9/kotlin/ir"
)

// Resolver maps raw type-parameter identities to flattened indices valid across
// nested scopes and resolves classifier identities against the registry.
//
// Resolvers form an immutable chain: each declaration scope shadows identically
// named parameters of its parents, and flattened indices grow monotonically
// along the chain so that nested declarations can address their own and their
// enclosing declarations' parameters without collision.
type Resolver struct {
	registry *decl.Registry
	parent   *Resolver
	params   []decl.TypeParameter
	offset   int
}

// NewResolver returns a root resolver over the registry. A root resolver
// declares no type parameters, so resolving any parameter against it fails.
func NewResolver(registry *decl.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// ChildScope returns a resolver for a declaration nested in the current scope,
// declaring the given formal parameters. An empty parameter list returns the
// receiver unchanged.
func (r *Resolver) ChildScope(params []decl.TypeParameter) *Resolver {
	if len(params) == 0 {
		return r
	}
	return &Resolver{
		registry: r.registry,
		parent:   r,
		params:   params,
		offset:   r.offset + len(r.params),
	}
}

// ResolveTypeParameter maps a raw parameter identity to its flattened index and
// its formal declaration, walking from the current scope outward.
func (r *Resolver) ResolveTypeParameter(name string) (int, decl.TypeParameter, error) {
	for scope := r; scope != nil; scope = scope.parent {
		for i, p := range scope.params {
			if p.Name == name {
				return scope.offset + i, p, nil
			}
		}
	}
	return 0, decl.TypeParameter{}, ir.Errorf(ir.CodeUnresolvedTypeParameter,
		"type parameter %q is not declared by any enclosing scope", name)
}

// root returns the registry-level resolver at the top of the chain.
func (r *Resolver) root() *Resolver {
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// ResolveClassifier resolves id to a classifier of the concrete kind K.
// It fails with unresolved_classifier if the identity is unknown and with
// classifier_kind_mismatch if the classifier exists but has a different kind.
func ResolveClassifier[K decl.Classifier](r *Resolver, id ir.ClassifierID) (K, error) {
	var zero K
	c, ok := r.registry.Classifier(id)
	if !ok {
		return zero, ir.Errorf(ir.CodeUnresolvedClassifier, "unresolved classifier: %s", id)
	}
	k, ok := c.(K)
	if !ok {
		return zero, ir.Errorf(ir.CodeClassifierKindMismatch,
			"classifier %s is a %T, not the expected kind", id, c)
	}
	return k, nil
}
