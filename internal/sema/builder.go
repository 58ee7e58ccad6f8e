// Package sema builds validated tree nodes. Every composite node is created
// here, and the checks for a node run as it is created, so synthesized code
// gets the same treatment as parsed code.
package sema

import (
	"fmt"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/symtab"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// FragmentParser parses src as a statement sequence in the builder's
// current scope.
type FragmentParser func(src string) *ast.Block

// Builder constructs nodes against a symbol table
type Builder struct {
	table   *symtab.Table
	reparse FragmentParser
}

// New creates a builder reporting to the table's sink
func New(table *symtab.Table) *Builder {
	return &Builder{table: table}
}

// Table returns the symbol table the builder resolves names in.
func (b *Builder) Table() *symtab.Table { return b.table }

// SetFragmentParser installs the entry point used to reparse synthesized
// source.
func (b *Builder) SetFragmentParser(fp FragmentParser) { b.reparse = fp }

// Reparse parses src in the current scope. Without a fragment parser the
// result is an empty block.
func (b *Builder) Reparse(src string) *ast.Block {
	if b.reparse == nil {
		return &ast.Block{}
	}
	return b.reparse(src)
}

// Mute silences diagnostics until the returned function is called.
func (b *Builder) Mute() (restore func()) {
	prev := b.table.SetSink(diagnostic.Discard)
	return func() { b.table.SetSink(prev) }
}

// Errorf reports an error of the given kind at pos.
func (b *Builder) Errorf(pos ast.Position, kind diagnostic.Kind, format string, args ...interface{}) {
	b.report(diagnostic.Error, pos, kind, fmt.Sprintf(format, args...))
}

// Warningf reports a warning of the given kind at pos.
func (b *Builder) Warningf(pos ast.Position, kind diagnostic.Kind, format string, args ...interface{}) {
	b.report(diagnostic.Warning, pos, kind, fmt.Sprintf(format, args...))
}

func (b *Builder) report(sev diagnostic.Severity, pos ast.Position, kind diagnostic.Kind, msg string) {
	b.table.Sink().Report(diagnostic.Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  msg,
		Line:     pos.Line,
		Column:   pos.Column,
	})
}

func posOf(n ast.Node) ast.Position {
	line, col := n.Pos()
	return ast.At(line, col)
}

// checkInit warns when a scalar variable is read before anything was
// assigned to it. Arrays and parameters are exempt.
func (b *Builder) checkInit(e ast.Expression) {
	ref, ok := e.(*ast.VarRef)
	if !ok || ref.Init || ref.IsParam {
		return
	}
	if !ref.ValueType.Valid() || ref.ValueType.IsArray() {
		return
	}
	b.Warningf(posOf(ref), diagnostic.DataError, "variable %s is used before being initialized", ref.Name)
}

// markInit records that target is being assigned.
func (b *Builder) markInit(target ast.Expression) {
	ref, ok := target.(*ast.VarRef)
	if !ok {
		return
	}
	ref.Init = true
	if decl, ok := b.table.Declaration(ref.Name); ok {
		decl.Init = true
	}
}

// Ref resolves a variable use.
func (b *Builder) Ref(pos ast.Position, name string) *ast.VarRef {
	return b.table.Variable(pos, name)
}

func validBoth(l, r types.Type) bool {
	return l.Valid() && r.Valid()
}
