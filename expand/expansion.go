package expand

import (
	"github.com/nvvi9/kotlin/decl"
	"github.com/nvvi9/kotlin/ir"
)

// TypeAliasExpansion binds an alias's formal parameters to concrete argument
// projections for one expansion step. Nested alias occurrences chain a child
// expansion to their parent, which also records the in-flight alias chain used
// for cycle detection. Expansions are immutable values created per expansion
// call.
type TypeAliasExpansion struct {
	// Parent is the enclosing expansion for nested expansion calls, nil at
	// the root.
	Parent *TypeAliasExpansion

	// AliasID identifies the alias being expanded.
	AliasID ir.ClassifierID

	// Underlying is the alias's canonical underlying-type template, with the
	// alias's formal parameters appearing as type-parameter occurrences at
	// flattened indices 0..len(Arguments)-1.
	Underlying ir.SimpleType

	// Arguments are the bound argument projections, indexed by the formal
	// parameters' flattened indices.
	Arguments []ir.TypeProjection

	// Resolver is the resolver in effect for this expansion.
	Resolver *Resolver
}

// NewExpansion resolves the alias, validates the argument count, and binds the
// arguments to its formal parameters. It fails with cyclic_alias_expansion if
// the alias is already being expanded somewhere up the parent chain.
func (f *TypeFactory) NewExpansion(parent *TypeAliasExpansion, id ir.ClassifierID, arguments []ir.TypeProjection, r *Resolver) (*TypeAliasExpansion, error) {
	for e := parent; e != nil; e = e.Parent {
		if e.AliasID == id {
			return nil, ir.Errorf(ir.CodeCyclicAliasExpansion,
				"alias %s recursively expands itself", id)
		}
	}

	alias, err := ResolveClassifier[*decl.TypeAlias](r, id)
	if err != nil {
		return nil, err
	}
	if len(arguments) != len(alias.TypeParameters) {
		return nil, ir.Errorf(ir.CodeArityMismatch,
			"type alias %s expects %d type arguments, got %d",
			id, len(alias.TypeParameters), len(arguments))
	}

	template, err := f.aliasTemplate(alias, r, []ir.ClassifierID{id})
	if err != nil {
		return nil, err
	}

	return &TypeAliasExpansion{
		Parent:     parent,
		AliasID:    id,
		Underlying: template,
		Arguments:  arguments,
		Resolver:   r,
	}, nil
}

// BoundArgument returns the argument bound to the formal parameter with the
// given flattened index, if this expansion binds it.
func (e *TypeAliasExpansion) BoundArgument(index int) (ir.TypeProjection, bool) {
	if index < 0 || index >= len(e.Arguments) {
		return nil, false
	}
	return e.Arguments[index], true
}
