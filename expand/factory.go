package expand

import (
	"slices"
	"sync"

	"github.com/nvvi9/kotlin/decl"
	"github.com/nvvi9/kotlin/ir"
)

// TypeFactory is the sole constructor of canonical type nodes. It owns the
// interning caches and the memoized canonical underlying-type templates of
// aliases.
type TypeFactory struct {
	interner *Interner

	mu        sync.Mutex
	templates map[ir.ClassifierID]ir.SimpleType
}

// NewTypeFactory returns a factory interning through interner. A nil interner
// allocates a fresh one.
func NewTypeFactory(interner *Interner) *TypeFactory {
	if interner == nil {
		interner = NewInterner()
	}
	return &TypeFactory{
		interner:  interner,
		templates: make(map[ir.ClassifierID]ir.SimpleType),
	}
}

// Interner returns the factory's interner.
func (f *TypeFactory) Interner() *Interner {
	return f.interner
}

// Create turns a syntactic type occurrence into its canonical form, resolving
// classifiers and type parameters through r. When the occurrence carries an
// abbreviated view, the abbreviation is used preferentially; it never changes
// the observable classifier kind, only how much alias sugar is retained.
func (f *TypeFactory) Create(occurrence *decl.Type, r *Resolver) (ir.Type, error) {
	if occurrence.Kind == decl.KindFlexible {
		return f.createFlexible(occurrence, r, nil)
	}
	return f.createSimple(occurrence, r, nil)
}

func (f *TypeFactory) createFlexible(occurrence *decl.Type, r *Resolver, chain []ir.ClassifierID) (*ir.FlexibleType, error) {
	lower, err := f.createSimple(occurrence.LowerBound, r, chain)
	if err != nil {
		return nil, err
	}
	upper, err := f.createSimple(occurrence.UpperBound, r, chain)
	if err != nil {
		return nil, err
	}
	return &ir.FlexibleType{LowerBound: lower, UpperBound: upper}, nil
}

// chain is the list of alias identities whose underlying types are currently
// being computed up the call stack; it bounds recursion over cyclic alias
// declarations.
func (f *TypeFactory) createSimple(occurrence *decl.Type, r *Resolver, chain []ir.ClassifierID) (ir.SimpleType, error) {
	if occurrence.Abbreviation != nil {
		occurrence = occurrence.Abbreviation
	}

	switch occurrence.Kind {
	case decl.KindClass:
		arguments, err := f.createArguments(occurrence.Arguments, r, chain)
		if err != nil {
			return nil, err
		}
		return f.resolveClassType(occurrence.Classifier, arguments, occurrence.Nullable, r)

	case decl.KindTypeAlias:
		alias, err := ResolveClassifier[*decl.TypeAlias](r, occurrence.Classifier)
		if err != nil {
			return nil, err
		}
		if len(occurrence.Arguments) != len(alias.TypeParameters) {
			return nil, ir.Errorf(ir.CodeArityMismatch,
				"type alias %s expects %d type arguments, got %d",
				alias.ID, len(alias.TypeParameters), len(occurrence.Arguments))
		}
		arguments, err := f.createArguments(occurrence.Arguments, r, chain)
		if err != nil {
			return nil, err
		}
		underlying, err := f.underlyingType(alias, arguments, r, chain)
		if err != nil {
			return nil, err
		}
		return f.CreateTypeAliasType(alias.ID, underlying, arguments, occurrence.Nullable), nil

	case decl.KindTypeParameter:
		index, _, err := r.ResolveTypeParameter(occurrence.Parameter)
		if err != nil {
			return nil, err
		}
		return f.CreateTypeParameterType(index, occurrence.Nullable), nil

	case decl.KindFlexible:
		return nil, ir.Errorf(ir.CodeUnsupportedTypeShape,
			"flexible type is not valid where a simple type is expected")

	default:
		return nil, ir.Errorf(ir.CodeUnsupportedTypeShape,
			"unknown occurrence kind: %q", occurrence.Kind)
	}
}

// createArguments builds canonical projections for a syntactic argument list.
func (f *TypeFactory) createArguments(arguments []decl.Projection, r *Resolver, chain []ir.ClassifierID) ([]ir.TypeProjection, error) {
	if len(arguments) == 0 {
		return nil, nil
	}
	out := make([]ir.TypeProjection, len(arguments))
	for i, p := range arguments {
		if p.Star {
			out[i] = ir.Star
			continue
		}
		var typ ir.Type
		var err error
		if p.Type.Kind == decl.KindFlexible {
			typ, err = f.createFlexible(p.Type, r, chain)
		} else {
			typ, err = f.createSimple(p.Type, r, chain)
		}
		if err != nil {
			return nil, err
		}
		out[i] = ir.Regular(p.Variance, typ)
	}
	return out, nil
}

// resolveClassType builds a canonical class type from an argument list covering
// the whole nesting chain. The prefix of arguments belongs to the leaf class,
// sized by its own declared-parameter count; the tail feeds the outer type,
// recursively.
func (f *TypeFactory) resolveClassType(id ir.ClassifierID, arguments []ir.TypeProjection, nullable bool, r *Resolver) (*ir.ClassType, error) {
	class, err := ResolveClassifier[*decl.Class](r, id)
	if err != nil {
		return nil, err
	}

	own := len(class.TypeParameters)
	if len(arguments) < own {
		return nil, ir.Errorf(ir.CodeArityMismatch,
			"class %s expects %d type arguments, got %d", id, own, len(arguments))
	}
	rest := arguments[own:]

	var outer *ir.ClassType
	if !class.Outer.IsZero() {
		outer, err = f.resolveClassType(class.Outer, rest, false, r)
		if err != nil {
			return nil, err
		}
	} else if len(rest) > 0 {
		return nil, ir.Errorf(ir.CodeArityMismatch,
			"class %s expects %d type arguments, got %d", id, own, len(arguments))
	}

	return f.CreateClassType(id, outer, class.Visibility, arguments[:own], nullable), nil
}

// CreateClassType interns a class type. Inputs must already be validated.
func (f *TypeFactory) CreateClassType(id ir.ClassifierID, outer *ir.ClassType, visibility ir.Visibility, arguments []ir.TypeProjection, nullable bool) *ir.ClassType {
	return f.interner.ClassType(&ir.ClassType{
		ID:             id,
		Outer:          outer,
		Visibility:     visibility,
		Arguments:      arguments,
		MarkedNullable: nullable,
	})
}

// CreateTypeAliasType interns a type-alias type. Inputs must already be
// validated.
func (f *TypeFactory) CreateTypeAliasType(id ir.ClassifierID, underlying ir.ClassOrAliasType, arguments []ir.TypeProjection, nullable bool) *ir.TypeAliasType {
	return f.interner.TypeAliasType(&ir.TypeAliasType{
		ID:             id,
		Underlying:     underlying,
		Arguments:      arguments,
		MarkedNullable: nullable,
	})
}

// CreateTypeParameterType interns a type-parameter type.
func (f *TypeFactory) CreateTypeParameterType(index int, nullable bool) *ir.TypeParameterType {
	return f.interner.TypeParameterType(&ir.TypeParameterType{
		Index:          index,
		MarkedNullable: nullable,
	})
}

// MakeNullable returns t marked nullable, reconstructing and re-interning as
// needed. The input is returned unchanged if it is already nullable; for alias
// types the underlying type is made nullable as well; for flexible types both
// bounds are. The input is never mutated.
func (f *TypeFactory) MakeNullable(t ir.Type) ir.Type {
	switch t := t.(type) {
	case *ir.ClassType:
		if t.MarkedNullable {
			return t
		}
		return f.CreateClassType(t.ID, t.Outer, t.Visibility, t.Arguments, true)
	case *ir.TypeAliasType:
		if t.MarkedNullable {
			return t
		}
		underlying := f.MakeNullable(t.Underlying).(ir.ClassOrAliasType)
		return f.CreateTypeAliasType(t.ID, underlying, t.Arguments, true)
	case *ir.TypeParameterType:
		if t.MarkedNullable {
			return t
		}
		return f.CreateTypeParameterType(t.Index, true)
	case *ir.FlexibleType:
		return &ir.FlexibleType{
			LowerBound: f.MakeNullable(t.LowerBound).(ir.SimpleType),
			UpperBound: f.MakeNullable(t.UpperBound).(ir.SimpleType),
		}
	default:
		return t
	}
}

// makeNullableIfNeeded applies MakeNullable to a class-or-alias type when
// nullable is set. Nullability is monotonic: the result is never less nullable
// than the input.
func (f *TypeFactory) makeNullableIfNeeded(t ir.ClassOrAliasType, nullable bool) ir.ClassOrAliasType {
	if !nullable {
		return t
	}
	return f.MakeNullable(t).(ir.ClassOrAliasType)
}

// aliasTemplate canonicalizes the alias's underlying-type template against the
// alias's own declaration scope, so the alias's formal parameters occupy
// flattened indices 0..n-1. Templates are memoized per alias identity.
func (f *TypeFactory) aliasTemplate(alias *decl.TypeAlias, r *Resolver, chain []ir.ClassifierID) (ir.SimpleType, error) {
	f.mu.Lock()
	cached, ok := f.templates[alias.ID]
	f.mu.Unlock()
	if ok {
		return cached, nil
	}

	scope := r.root().ChildScope(alias.TypeParameters)
	template, err := f.createSimple(alias.Underlying, scope, chain)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.templates[alias.ID] = template
	f.mu.Unlock()
	return template, nil
}

// underlyingType computes the canonical underlying type of an alias
// instantiation: the alias's template with its formal parameters substituted by
// arguments, one alias level at a time. This is the storage form of an alias
// type, not the fully expanded view the expander produces.
func (f *TypeFactory) underlyingType(alias *decl.TypeAlias, arguments []ir.TypeProjection, r *Resolver, chain []ir.ClassifierID) (ir.ClassOrAliasType, error) {
	if slices.Contains(chain, alias.ID) {
		return nil, ir.Errorf(ir.CodeCyclicAliasExpansion,
			"alias %s recursively expands itself", alias.ID)
	}
	chain = append(chain, alias.ID)

	template, err := f.aliasTemplate(alias, r, chain)
	if err != nil {
		return nil, err
	}
	substituted, err := f.substituteType(template, arguments, r, chain)
	if err != nil {
		return nil, err
	}
	result, ok := substituted.(ir.ClassOrAliasType)
	if !ok {
		return nil, ir.Errorf(ir.CodeMalformedExpansion,
			"underlying type of alias %s is not a class or alias type", alias.ID)
	}
	return result, nil
}

// substituteType replaces bound type-parameter occurrences in t with the
// corresponding arguments, recursing through nested class and alias structure.
// Underlying types of nested aliases are recomputed after substitution.
func (f *TypeFactory) substituteType(t ir.Type, arguments []ir.TypeProjection, r *Resolver, chain []ir.ClassifierID) (ir.Type, error) {
	switch t := t.(type) {
	case *ir.TypeParameterType:
		if t.Index >= len(arguments) {
			// Belongs to an enclosing scope; left for the caller.
			return t, nil
		}
		argument, ok := arguments[t.Index].(ir.RegularProjection)
		if !ok {
			return nil, ir.Errorf(ir.CodeMalformedExpansion,
				"cannot substitute a star projection for a top-level type-parameter occurrence")
		}
		result := argument.Type
		if t.MarkedNullable {
			result = f.MakeNullable(result)
		}
		return result, nil

	case *ir.ClassType:
		return f.substituteClassType(t, arguments, r, chain)

	case *ir.TypeAliasType:
		alias, err := ResolveClassifier[*decl.TypeAlias](r, t.ID)
		if err != nil {
			return nil, err
		}
		newArguments, err := f.substituteArgumentList(t.Arguments, alias.TypeParameters, arguments, r, chain)
		if err != nil {
			return nil, err
		}
		underlying, err := f.underlyingType(alias, newArguments, r, chain)
		if err != nil {
			return nil, err
		}
		return f.CreateTypeAliasType(t.ID, underlying, newArguments, t.MarkedNullable), nil

	case *ir.FlexibleType:
		lower, err := f.substituteType(t.LowerBound, arguments, r, chain)
		if err != nil {
			return nil, err
		}
		upper, err := f.substituteType(t.UpperBound, arguments, r, chain)
		if err != nil {
			return nil, err
		}
		lowerSimple, lok := lower.(ir.SimpleType)
		upperSimple, uok := upper.(ir.SimpleType)
		if !lok || !uok {
			return nil, ir.Errorf(ir.CodeUnsupportedTypeShape,
				"flexible bounds must substitute to simple types")
		}
		return &ir.FlexibleType{LowerBound: lowerSimple, UpperBound: upperSimple}, nil

	default:
		return nil, ir.Errorf(ir.CodeUnsupportedTypeShape, "cannot substitute into %T", t)
	}
}

func (f *TypeFactory) substituteClassType(t *ir.ClassType, arguments []ir.TypeProjection, r *Resolver, chain []ir.ClassifierID) (*ir.ClassType, error) {
	class, err := ResolveClassifier[*decl.Class](r, t.ID)
	if err != nil {
		return nil, err
	}

	var outer *ir.ClassType
	if t.Outer != nil {
		outer, err = f.substituteClassType(t.Outer, arguments, r, chain)
		if err != nil {
			return nil, err
		}
	}

	newArguments, err := f.substituteArgumentList(t.Arguments, class.TypeParameters, arguments, r, chain)
	if err != nil {
		return nil, err
	}
	return f.CreateClassType(t.ID, outer, t.Visibility, newArguments, t.MarkedNullable), nil
}

// substituteArguments substitutes the current expansion's bound arguments into
// an argument list, merging variances per slot. It backs the abbreviated-view
// argument computation of the expander.
func (f *TypeFactory) substituteArguments(projections []ir.TypeProjection, parameters []decl.TypeParameter, arguments []ir.TypeProjection, r *Resolver) ([]ir.TypeProjection, error) {
	return f.substituteArgumentList(projections, parameters, arguments, r, nil)
}

func (f *TypeFactory) substituteArgumentList(projections []ir.TypeProjection, parameters []decl.TypeParameter, arguments []ir.TypeProjection, r *Resolver, chain []ir.ClassifierID) ([]ir.TypeProjection, error) {
	if len(projections) != len(parameters) {
		return nil, ir.Errorf(ir.CodeArityMismatch,
			"expected %d type arguments, got %d", len(parameters), len(projections))
	}
	if len(projections) == 0 {
		return nil, nil
	}
	out := make([]ir.TypeProjection, len(projections))
	for i, p := range projections {
		substituted, err := f.substituteProjection(p, arguments, parameters[i].Variance, r, chain)
		if err != nil {
			return nil, err
		}
		out[i] = substituted
	}
	return out, nil
}

// substituteProjection substitutes one argument slot. When the slot holds a
// bound type-parameter occurrence, the bound argument replaces it and the three
// variances in play are merged: the use-site variance written in the template,
// the variance of the supplied argument, and the declaration-site variance of
// the formal parameter the slot fills. The occurrence's nullability carries
// over onto the substituted type.
func (f *TypeFactory) substituteProjection(p ir.TypeProjection, arguments []ir.TypeProjection, parameterVariance ir.Variance, r *Resolver, chain []ir.ClassifierID) (ir.TypeProjection, error) {
	regular, ok := p.(ir.RegularProjection)
	if !ok {
		return p, nil // Star passes through.
	}

	if occurrence, ok := regular.Type.(*ir.TypeParameterType); ok && occurrence.Index < len(arguments) {
		argument := arguments[occurrence.Index]
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
			typ = f.MakeNullable(typ)
		}
		return ir.Regular(variance, typ), nil
	}

	substituted, err := f.substituteType(regular.Type, arguments, r, chain)
	if err != nil {
		return nil, err
	}
	return ir.Regular(regular.Variance, substituted), nil
}

// mergeVariance merges use-site variance, argument variance, and
// declaration-site variance into the effective variance of a substituted slot.
// The merge is asymmetric: contravariance acts as the wildcard absorbed by the
// other side in the first step.
func mergeVariance(useSite, argument, declaration ir.Variance) (ir.Variance, error) {
	var combined ir.Variance
	switch {
	case useSite == argument:
		combined = useSite
	case useSite == ir.In:
		combined = argument
	case argument == ir.In:
		combined = useSite
	default:
		return ir.Invariant, ir.Errorf(ir.CodeConflictingVariance,
			"conflicting use-site variance %s against argument variance %s", useSite, argument)
	}

	switch {
	case combined == declaration:
		return combined, nil
	case declaration == ir.Invariant:
		return combined, nil
	case combined == ir.Invariant:
		return ir.Invariant, nil
	default:
		return ir.Invariant, ir.Errorf(ir.CodeConflictingVariance,
			"variance %s conflicts with declared parameter variance %s", combined, declaration)
	}
}
