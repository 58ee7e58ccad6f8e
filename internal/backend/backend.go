// Package backend selects the printer a driver renders a tree with.
package backend

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/printer"
)

// Backend is the interface every output mode implements.
type Backend interface {
	// Name returns the mode name (e.g., "prefix", "python")
	Name() string
	// Extension returns the file extension of generated output.
	Extension() string
	// Generate renders a built tree.
	Generate(root ast.Node, opts printer.Options) string
}

// Default is the mode used when none is configured.
const Default = "prefix"

var backends = map[string]Backend{
	"prefix": &PrefixBackend{},
	"infix":  &InfixBackend{},
	"python": &PythonBackend{},
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	if be, ok := backends[name]; ok {
		return be, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown mode %q (want one of %v)", name, Names()))
}

// Names returns the registered mode names in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
