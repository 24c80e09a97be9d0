// Package load reads and validates declaration documents for the CLI commands.
package load

import (
	"fmt"
	"os"

	"github.com/nvvi9/kotlin/decl"
)

// Document reads, parses, and validates a declaration document from path and
// builds its classifier registry.
func Document(path string) (*decl.Document, *decl.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read declarations: %w", err)
	}

	doc, err := decl.ParseDocument(data)
	if err != nil {
		return nil, nil, err
	}

	reg, err := doc.BuildRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("build registry: %w", err)
	}
	return doc, reg, nil
}
