package expand

import (
	"github.com/nvvi9/kotlin/decl"
	"github.com/nvvi9/kotlin/ir"
)

// Expander performs the recursive substitution that turns an alias expansion
// into a fully expanded canonical type: type-parameter occurrences are replaced
// with bound arguments, nested alias occurrences are expanded through child
// expansions, and variances are merged at every substitution point.
type Expander struct {
	factory *TypeFactory
}

// NewExpander returns an expander constructing through factory.
func NewExpander(factory *TypeFactory) *Expander {
	return &Expander{factory: factory}
}

// Expand returns the fully expanded canonical type wrapped in an alias-shaped
// abbreviation carrying the original alias identity and argument list.
func (e *Expander) Expand(expansion *TypeAliasExpansion) (ir.ClassOrAliasType, error) {
	return e.expandRecursively(expansion, true)
}

// ExpandWithoutAbbreviation returns the fully expanded canonical type with no
// alias sugar.
func (e *Expander) ExpandWithoutAbbreviation(expansion *TypeAliasExpansion) (ir.ClassOrAliasType, error) {
	return e.expandRecursively(expansion, false)
}

func (e *Expander) expandRecursively(expansion *TypeAliasExpansion, withAbbreviation bool) (ir.ClassOrAliasType, error) {
	// The underlying type of an alias is an invariant projection; anything
	// else coming back from the expansion is malformed.
	expanded, err := e.expandProjection(expansion, ir.InvariantProjection(expansion.Underlying), ir.Invariant)
	if err != nil {
		return nil, err
	}

	regular, ok := expanded.(ir.RegularProjection)
	if !ok || regular.Variance != ir.Invariant {
		return nil, ir.Errorf(ir.CodeMalformedExpansion,
			"expanded underlying type of alias %s is not an invariant projection", expansion.AliasID)
	}

	var result ir.ClassOrAliasType
	switch t := regular.Type.(type) {
	case ir.ClassOrAliasType:
		result = t
	case *ir.FlexibleType:
		return nil, ir.Errorf(ir.CodeUnsupportedTypeShape,
			"alias %s expanded to a flexible type", expansion.AliasID)
	default:
		return nil, ir.Errorf(ir.CodeMalformedExpansion,
			"alias %s expanded to %T, not a class or alias type", expansion.AliasID, regular.Type)
	}

	result = e.factory.makeNullableIfNeeded(result, expansion.Underlying.IsMarkedNullable())

	if withAbbreviation {
		return e.factory.CreateTypeAliasType(expansion.AliasID, result, expansion.Arguments, result.IsMarkedNullable()), nil
	}
	return result, nil
}

// expandProjection expands one argument slot against the current expansion.
// Star projections pass through unchanged. A bound type-parameter occurrence is
// substituted directly by its bound argument, merging the use-site variance,
// the argument's variance, and the declaration-site parameterVariance;
// everything else goes through expandNonArgumentProjection.
func (e *Expander) expandProjection(expansion *TypeAliasExpansion, projection ir.TypeProjection, parameterVariance ir.Variance) (ir.TypeProjection, error) {
	regular, ok := projection.(ir.RegularProjection)
	if !ok {
		return projection, nil
	}

	if occurrence, ok := regular.Type.(*ir.TypeParameterType); ok {
		if argument, bound := expansion.BoundArgument(occurrence.Index); bound {
			argumentRegular, ok := argument.(ir.RegularProjection)
			if !ok {
				return ir.Star, nil
			}
			variance, err := mergeVariance(regular.Variance, argumentRegular.Variance, parameterVariance)
			if err != nil {
				return nil, err
			}
			typ := argumentRegular.Type
			if occurrence.MarkedNullable {
				typ = e.factory.MakeNullable(typ)
			}
			return ir.Regular(variance, typ), nil
		}
	}

	return e.expandNonArgumentProjection(expansion, regular, parameterVariance)
}

// expandNonArgumentProjection expands a projection whose type is not a bound
// type-parameter occurrence of the current expansion.
func (e *Expander) expandNonArgumentProjection(expansion *TypeAliasExpansion, projection ir.RegularProjection, parameterVariance ir.Variance) (ir.TypeProjection, error) {
	if !requiresExpansion(projection.Type) {
		return projection, nil
	}

	switch t := projection.Type.(type) {
	case *ir.TypeParameterType:
		// Bound by an enclosing expansion; a caller further up substitutes it.
		return projection, nil

	case *ir.TypeAliasType:
		expanded, err := e.expandAliasType(expansion, t)
		if err != nil {
			return nil, err
		}
		return ir.Regular(projection.Variance, expanded), nil

	case *ir.ClassType:
		expanded, err := e.expandClassType(expansion, t)
		if err != nil {
			return nil, err
		}
		return ir.Regular(projection.Variance, expanded), nil

	case *ir.FlexibleType:
		lower, err := e.expandBound(expansion, t.LowerBound)
		if err != nil {
			return nil, err
		}
		upper, err := e.expandBound(expansion, t.UpperBound)
		if err != nil {
			return nil, err
		}
		return ir.Regular(projection.Variance, &ir.FlexibleType{LowerBound: lower, UpperBound: upper}), nil

	default:
		return nil, ir.Errorf(ir.CodeUnsupportedTypeShape, "cannot expand %T", projection.Type)
	}
}

// expandAliasType expands a nested alias occurrence: its arguments are expanded
// against the current expansion, a child expansion bound to those arguments
// produces the nested canonical underlying type, and a separately substituted
// argument list preserves the abbreviated view.
func (e *Expander) expandAliasType(expansion *TypeAliasExpansion, t *ir.TypeAliasType) (*ir.TypeAliasType, error) {
	alias, err := ResolveClassifier[*decl.TypeAlias](expansion.Resolver, t.ID)
	if err != nil {
		return nil, err
	}
	if len(t.Arguments) != len(alias.TypeParameters) {
		return nil, ir.Errorf(ir.CodeArityMismatch,
			"type alias %s expects %d type arguments, got %d",
			t.ID, len(alias.TypeParameters), len(t.Arguments))
	}

	expandedArguments := make([]ir.TypeProjection, len(t.Arguments))
	for i, argument := range t.Arguments {
		expanded, err := e.expandProjection(expansion, argument, alias.TypeParameters[i].Variance)
		if err != nil {
			return nil, err
		}
		expandedArguments[i] = expanded
	}

	child, err := e.factory.NewExpansion(expansion, t.ID, expandedArguments, expansion.Resolver)
	if err != nil {
		return nil, err
	}
	underlying, err := e.expandRecursively(child, false)
	if err != nil {
		return nil, err
	}

	substitutedArguments, err := e.factory.substituteArguments(
		t.Arguments, alias.TypeParameters, expansion.Arguments, expansion.Resolver)
	if err != nil {
		return nil, err
	}

	underlying = e.factory.makeNullableIfNeeded(underlying, t.MarkedNullable)
	return e.factory.CreateTypeAliasType(t.ID, underlying, substitutedArguments, t.MarkedNullable), nil
}

// expandClassType expands a class occurrence: arguments are expanded against
// the current expansion using each formal parameter's declared variance, and
// the outer type, whose arguments are a suffix of the same chain, is rebuilt
// recursively.
func (e *Expander) expandClassType(expansion *TypeAliasExpansion, t *ir.ClassType) (*ir.ClassType, error) {
	class, err := ResolveClassifier[*decl.Class](expansion.Resolver, t.ID)
	if err != nil {
		return nil, err
	}
	if len(t.Arguments) != len(class.TypeParameters) {
		return nil, ir.Errorf(ir.CodeArityMismatch,
			"class %s expects %d type arguments, got %d",
			t.ID, len(class.TypeParameters), len(t.Arguments))
	}

	var outer *ir.ClassType
	if t.Outer != nil {
		outer, err = e.expandClassType(expansion, t.Outer)
		if err != nil {
			return nil, err
		}
	}

	arguments := make([]ir.TypeProjection, len(t.Arguments))
	for i, argument := range t.Arguments {
		expanded, err := e.expandProjection(expansion, argument, class.TypeParameters[i].Variance)
		if err != nil {
			return nil, err
		}
		arguments[i] = expanded
	}

	return e.factory.CreateClassType(t.ID, outer, t.Visibility, arguments, t.MarkedNullable), nil
}

// expandBound expands one bound of a flexible type as an invariant slot.
func (e *Expander) expandBound(expansion *TypeAliasExpansion, bound ir.SimpleType) (ir.SimpleType, error) {
	expanded, err := e.expandProjection(expansion, ir.InvariantProjection(bound), ir.Invariant)
	if err != nil {
		return nil, err
	}
	regular, ok := expanded.(ir.RegularProjection)
	if !ok {
		return nil, ir.Errorf(ir.CodeMalformedExpansion, "flexible bound expanded to a star projection")
	}
	simple, ok := regular.Type.(ir.SimpleType)
	if !ok {
		return nil, ir.Errorf(ir.CodeUnsupportedTypeShape, "flexible bound expanded to %T", regular.Type)
	}
	return simple, nil
}

// requiresExpansion reports whether t contains any type-parameter or alias
// occurrence, recursively. Types without either pass through expansion
// unchanged.
func requiresExpansion(t ir.Type) bool {
	switch t := t.(type) {
	case *ir.TypeParameterType, *ir.TypeAliasType:
		return true
	case *ir.ClassType:
		if t.Outer != nil && requiresExpansion(t.Outer) {
			return true
		}
		for _, argument := range t.Arguments {
			if regular, ok := argument.(ir.RegularProjection); ok && requiresExpansion(regular.Type) {
				return true
			}
		}
		return false
	case *ir.FlexibleType:
		return requiresExpansion(t.LowerBound) || requiresExpansion(t.UpperBound)
	default:
		return false
	}
}
