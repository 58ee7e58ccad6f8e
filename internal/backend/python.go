package backend

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/printer"
)

// PythonBackend transpiles to Python source.
type PythonBackend struct{}

// Name returns the backend name.
func (b *PythonBackend) Name() string {
	return "python"
}

// Extension returns the output file extension.
func (b *PythonBackend) Extension() string {
	return ".py"
}

// Generate transpiles root to Python.
func (b *PythonBackend) Generate(root ast.Node, opts printer.Options) string {
	return printer.Python(root, opts)
}
