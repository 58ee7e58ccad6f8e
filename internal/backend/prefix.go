package backend

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/printer"
)

// PrefixBackend renders canonical prefix notation.
type PrefixBackend struct{}

// Name returns the backend name.
func (b *PrefixBackend) Name() string {
	return "prefix"
}

// Extension returns the output file extension.
func (b *PrefixBackend) Extension() string {
	return ".pre"
}

// Generate renders root in prefix notation.
func (b *PrefixBackend) Generate(root ast.Node, opts printer.Options) string {
	return printer.Prefix(root, opts)
}
