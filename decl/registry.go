package decl

import (
	"fmt"
	"sort"

	"github.com/nvvi9/kotlin/ir"
)

// Registry resolves classifiers by stable identity. It implements the
// classifier-model side of the expansion engine: lookup only, no mutation after
// ingestion.
type Registry struct {
	classifiers map[ir.ClassifierID]Classifier
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{classifiers: make(map[ir.ClassifierID]Classifier)}
}

// Add registers a class or type-alias declaration. Type parameters are scoped
// to their declaring classifier and cannot be registered globally.
func (r *Registry) Add(c Classifier) error {
	var id ir.ClassifierID
	switch c := c.(type) {
	case *Class:
		id = c.ID
	case *TypeAlias:
		id = c.ID
	default:
		return fmt.Errorf("cannot register classifier of type %T", c)
	}
	if id.IsZero() {
		return fmt.Errorf("cannot register classifier with empty identity")
	}
	if _, exists := r.classifiers[id]; exists {
		return fmt.Errorf("duplicate classifier: %s", id)
	}
	r.classifiers[id] = c
	return nil
}

// Classifier looks up a classifier by identity.
func (r *Registry) Classifier(id ir.ClassifierID) (Classifier, bool) {
	c, ok := r.classifiers[id]
	return c, ok
}

// IDs returns all registered identities in a stable order.
func (r *Registry) IDs() []ir.ClassifierID {
	ids := make([]ir.ClassifierID, 0, len(r.classifiers))
	for id := range r.classifiers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Package != ids[j].Package {
			return ids[i].Package < ids[j].Package
		}
		return ids[i].Name < ids[j].Name
	})
	return ids
}
