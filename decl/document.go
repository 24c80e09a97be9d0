package decl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nvvi9/kotlin/ir"
)

// Document is the serialized declaration form: a flat list of class and alias
// declarations for one module.
type Document struct {
	// Module is the declaring module name.
	Module string `json:"module"`

	// Classifiers are the declared classes and type aliases.
	Classifiers []ClassifierDecl `json:"classifiers" validate:"required,dive"`
}

// ClassifierDecl is one serialized class or type-alias declaration.
type ClassifierDecl struct {
	Kind string `json:"kind" validate:"required,oneof=class typeAlias"`

	Package string `json:"package"`
	Name    string `json:"name" validate:"required"`

	// Visibility applies to class declarations; defaults to public.
	Visibility ir.Visibility `json:"visibility"`

	TypeParameters []TypeParameterDecl `json:"typeParameters" validate:"dive"`

	// Outer names the enclosing class (within the same package) for nested
	// and inner class declarations.
	Outer string `json:"outer,omitempty"`

	// Underlying is the underlying-type template of a type alias.
	Underlying *Type `json:"underlying,omitempty"`
}

// TypeParameterDecl is one serialized formal type parameter.
type TypeParameterDecl struct {
	Name     string      `json:"name" validate:"required"`
	Variance ir.Variance `json:"variance"`
}

// ID returns the classifier identity declared by d.
func (d *ClassifierDecl) ID() ir.ClassifierID {
	return ir.ClassifierID{Package: d.Package, Name: d.Name}
}

// ParseDocument decodes and validates a serialized declaration document.
// Validation reports all problems found, not just the first.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode declaration document: %w", err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid declaration document: %w", err)
	}
	if errs := doc.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid declaration document: %w", errors.Join(errs...))
	}
	return &doc, nil
}

// Validate checks the document for structural issues the struct tags cannot
// express. It returns all validation errors found.
func (d *Document) Validate() []error {
	var errs []error

	names := make(map[ir.ClassifierID]string)
	for i := range d.Classifiers {
		c := &d.Classifiers[i]
		id := c.ID()
		if prev, dup := names[id]; dup {
			errs = append(errs, fmt.Errorf("duplicate classifier name %s (already declared as %s)", id, prev))
		}
		names[id] = c.Kind
	}

	if cycleErrs := d.detectCircularAliases(); len(cycleErrs) > 0 {
		errs = append(errs, cycleErrs...)
	}

	for i := range d.Classifiers {
		c := &d.Classifiers[i]
		switch c.Kind {
		case "class":
			if c.Underlying != nil {
				errs = append(errs, fmt.Errorf("class %s must not declare an underlying type", c.ID()))
			}
			if c.Outer != "" {
				outerID := ir.ClassifierID{Package: c.Package, Name: c.Outer}
				if kind, ok := names[outerID]; !ok {
					errs = append(errs, fmt.Errorf("class %s references unknown outer class %s", c.ID(), outerID))
				} else if kind != "class" {
					errs = append(errs, fmt.Errorf("class %s has non-class outer declaration %s", c.ID(), outerID))
				}
			}
		case "typeAlias":
			if c.Outer != "" {
				errs = append(errs, fmt.Errorf("type alias %s cannot be nested in a class", c.ID()))
			}
			if c.Underlying == nil {
				errs = append(errs, fmt.Errorf("type alias %s is missing its underlying type", c.ID()))
				continue
			}
			errs = append(errs, validateOccurrence(c.Underlying, fmt.Sprintf("underlying type of %s", c.ID()))...)
		}
	}

	return errs
}

// detectCircularAliases checks for cycles among type-alias declarations, where
// one alias's underlying type mentions another, directly or transitively.
func (d *Document) detectCircularAliases() []error {
	var errs []error

	aliases := make(map[ir.ClassifierID]*ClassifierDecl)
	for i := range d.Classifiers {
		c := &d.Classifiers[i]
		if c.Kind == "typeAlias" && c.Underlying != nil {
			aliases[c.ID()] = c
		}
	}

	visited := make(map[ir.ClassifierID]bool)
	inStack := make(map[ir.ClassifierID]bool)

	var detectCycle func(id ir.ClassifierID, path []string) bool
	detectCycle = func(id ir.ClassifierID, path []string) bool {
		if inStack[id] {
			errs = append(errs, fmt.Errorf("circular type alias detected: %s",
				strings.Join(append(path, id.String()), " -> ")))
			return true
		}
		if visited[id] {
			return false
		}

		visited[id] = true
		inStack[id] = true

		if c, ok := aliases[id]; ok {
			for _, ref := range aliasReferences(c.Underlying, nil) {
				detectCycle(ref, append(path, id.String()))
			}
		}

		inStack[id] = false
		return false
	}

	for id := range aliases {
		detectCycle(id, nil)
	}

	return errs
}

// aliasReferences collects every type-alias classifier mentioned anywhere in a
// type occurrence tree.
func aliasReferences(t *Type, refs []ir.ClassifierID) []ir.ClassifierID {
	if t == nil {
		return refs
	}
	if t.Kind == KindTypeAlias && !t.Classifier.IsZero() {
		refs = append(refs, t.Classifier)
	}
	for i := range t.Arguments {
		refs = aliasReferences(t.Arguments[i].Type, refs)
	}
	refs = aliasReferences(t.Abbreviation, refs)
	refs = aliasReferences(t.LowerBound, refs)
	refs = aliasReferences(t.UpperBound, refs)
	return refs
}

// validateOccurrence recursively checks one type occurrence tree.
func validateOccurrence(t *Type, context string) []error {
	var errs []error

	switch t.Kind {
	case KindClass, KindTypeAlias:
		if t.Classifier.IsZero() {
			errs = append(errs, fmt.Errorf("%s: %s occurrence is missing its classifier", context, t.Kind))
		}
	case KindTypeParameter:
		if t.Parameter == "" {
			errs = append(errs, fmt.Errorf("%s: type-parameter occurrence is missing its parameter name", context))
		}
		if len(t.Arguments) > 0 {
			errs = append(errs, fmt.Errorf("%s: type-parameter occurrence cannot have arguments", context))
		}
	case KindFlexible:
		if t.LowerBound == nil || t.UpperBound == nil {
			errs = append(errs, fmt.Errorf("%s: flexible occurrence requires both bounds", context))
		}
		for _, bound := range []*Type{t.LowerBound, t.UpperBound} {
			if bound == nil {
				continue
			}
			if bound.Kind == KindFlexible {
				errs = append(errs, fmt.Errorf("%s: flexible bound cannot itself be flexible", context))
			}
			errs = append(errs, validateOccurrence(bound, context)...)
		}
	}

	for i := range t.Arguments {
		p := &t.Arguments[i]
		switch {
		case p.Star && p.Type != nil:
			errs = append(errs, fmt.Errorf("%s: projection cannot be both star and typed", context))
		case !p.Star && p.Type == nil:
			errs = append(errs, fmt.Errorf("%s: projection requires either star or a type", context))
		case p.Type != nil:
			errs = append(errs, validateOccurrence(p.Type, context)...)
		}
	}

	if t.Abbreviation != nil {
		errs = append(errs, validateOccurrence(t.Abbreviation, context+" (abbreviation)")...)
	}

	return errs
}

// BuildRegistry converts the document into a classifier registry.
func (d *Document) BuildRegistry() (*Registry, error) {
	reg := NewRegistry()
	for i := range d.Classifiers {
		c := &d.Classifiers[i]

		params := make([]TypeParameter, len(c.TypeParameters))
		for j, p := range c.TypeParameters {
			params[j] = TypeParameter{Name: p.Name, Variance: p.Variance}
		}

		var classifier Classifier
		switch c.Kind {
		case "class":
			cls := &Class{
				ID:             c.ID(),
				Visibility:     c.Visibility,
				TypeParameters: params,
			}
			if c.Outer != "" {
				cls.Outer = ir.ClassifierID{Package: c.Package, Name: c.Outer}
			}
			classifier = cls
		case "typeAlias":
			if c.Underlying == nil {
				return nil, fmt.Errorf("type alias %s is missing its underlying type", c.ID())
			}
			classifier = &TypeAlias{
				ID:             c.ID(),
				TypeParameters: params,
				Underlying:     c.Underlying,
			}
		default:
			return nil, fmt.Errorf("unknown classifier kind: %q", c.Kind)
		}

		if err := reg.Add(classifier); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
