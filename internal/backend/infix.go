package backend

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/printer"
)

// InfixBackend renders human-readable infix notation.
type InfixBackend struct{}

// Name returns the backend name.
func (b *InfixBackend) Name() string {
	return "infix"
}

// Extension returns the output file extension.
func (b *InfixBackend) Extension() string {
	return ".inf"
}

// Generate renders root in infix notation.
func (b *InfixBackend) Generate(root ast.Node, opts printer.Options) string {
	return printer.Infix(root, opts)
}
