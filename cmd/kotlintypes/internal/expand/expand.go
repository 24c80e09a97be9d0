// Package expand implements the expand command: it expands declared type
// aliases to their canonical types and prints them as JSON.
package expand

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nvvi9/kotlin/cmd/kotlintypes/internal/load"
	"github.com/nvvi9/kotlin/decl"
	engine "github.com/nvvi9/kotlin/expand"
	"github.com/nvvi9/kotlin/ir"
)

type Cmd struct {
	File string `arg:"" help:"Declaration document to expand." type:"existingfile"`

	Alias          string `help:"Expand only the named alias (package/Name)." short:"a"`
	NoAbbreviation bool   `help:"Drop alias sugar from the expanded types."`
}

func (c *Cmd) Run() error {
	_, reg, err := load.Document(c.File)
	if err != nil {
		return err
	}

	factory := engine.NewTypeFactory(nil)
	expander := engine.NewExpander(factory)
	root := engine.NewResolver(reg)

	expanded := make(map[string]ir.Type)
	for _, id := range reg.IDs() {
		classifier, _ := reg.Classifier(id)
		alias, ok := classifier.(*decl.TypeAlias)
		if !ok {
			continue
		}
		if c.Alias != "" && id.String() != c.Alias {
			continue
		}

		result, err := c.expandDeclared(factory, expander, root, alias)
		if err != nil {
			return fmt.Errorf("alias %s: %w", id, err)
		}
		expanded[id.String()] = result
	}

	if c.Alias != "" && len(expanded) == 0 {
		return fmt.Errorf("no type alias named %q in %s", c.Alias, c.File)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(expanded)
}

// expandDeclared expands an alias applied to placeholder class arguments named
// after its formal parameters. Placeholders are never resolved against the
// registry, so templates that are bare type parameters expand cleanly, and the
// printed types read in terms of the parameter names.
func (c *Cmd) expandDeclared(factory *engine.TypeFactory, expander *engine.Expander, root *engine.Resolver, alias *decl.TypeAlias) (ir.Type, error) {
	arguments := make([]ir.TypeProjection, len(alias.TypeParameters))
	for i, p := range alias.TypeParameters {
		placeholder := factory.CreateClassType(ir.ClassifierID{Name: p.Name}, nil, ir.Public, nil, false)
		arguments[i] = ir.InvariantProjection(placeholder)
	}

	expansion, err := factory.NewExpansion(nil, alias.ID, arguments, root)
	if err != nil {
		return nil, err
	}
	if c.NoAbbreviation {
		return expander.ExpandWithoutAbbreviation(expansion)
	}
	return expander.Expand(expansion)
}
