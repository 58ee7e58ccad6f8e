// Package printer renders a built tree as text: canonical prefix form,
// infix form, or Python source. Printers only read the tree.
package printer

import (
	"fmt"
	"strings"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
)

// DefaultIndent is the indentation width of the prefix and infix printers.
const DefaultIndent = 2

// Options configures a printer. The zero value is usable.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero selects the
	// printer's default.
	Indent int
	// Reserved maps identifiers to the names the Python printer emits
	// instead. Entries extend and override the built-in table.
	Reserved map[string]string
	// Sink receives diagnostics raised while printing. Nil discards them.
	Sink diagnostic.Sink
}

func (o Options) sink() diagnostic.Sink {
	if o.Sink == nil {
		return diagnostic.Discard
	}
	return o.Sink
}

func (o Options) width(def int) int {
	if o.Indent > 0 {
		return o.Indent
	}
	return def
}

// emitter accumulates output lines at an explicit indentation level
type emitter struct {
	sb     strings.Builder
	indent int
	width  int
	sink   diagnostic.Sink
}

func newEmitter(opts Options, def int) emitter {
	return emitter{width: opts.width(def), sink: opts.sink()}
}

func (e *emitter) emit(s string) {
	e.sb.WriteString(s)
}

func (e *emitter) emitLine(s string) {
	if s == "" {
		e.sb.WriteString("\n")
		return
	}
	e.sb.WriteString(e.indentStr())
	e.sb.WriteString(s)
	e.sb.WriteString("\n")
}

func (e *emitter) emitLinef(format string, args ...any) {
	e.emitLine(fmt.Sprintf(format, args...))
}

func (e *emitter) incIndent() { e.indent++ }
func (e *emitter) decIndent() { e.indent-- }

func (e *emitter) indentStr() string {
	return strings.Repeat(" ", e.indent*e.width)
}

// statement writes s at the current indentation. The line is closed only
// when n has a valid type; an undefined statement runs into the next one.
func (e *emitter) statement(n ast.Node, s string) {
	e.sb.WriteString(e.indentStr())
	e.sb.WriteString(s)
	if n.Type().Valid() {
		e.sb.WriteString("\n")
	}
}

// undefinedFunction reports a function that is printed without a body.
func (e *emitter) undefinedFunction(fn *ast.Function) {
	e.sink.Report(diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Kind:     diagnostic.ScopeError,
		Message:  fmt.Sprintf("function %s is declared but never defined", fn.Name),
		Line:     fn.Line,
		Column:   fn.Column,
	})
}

func (e *emitter) String() string { return e.sb.String() }

// exprFunc renders one expression in a notation.
type exprFunc func(ast.Expression) string

// declaration renders a VarDecl header and its declarators the way the
// prefix and infix printers share: "int var: a = 2, b" or
// "int array: v (size: 5)".
func declaration(d *ast.VarDecl, expr exprFunc) string {
	var sb strings.Builder
	sb.WriteString(d.ValueType.Name(true))
	if d.ValueType.IsArray() {
		sb.WriteString(":")
	} else {
		sb.WriteString(" var:")
	}
	for i, v := range d.Vars {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(v.Name)
		if v.ValueType.IsArray() {
			fmt.Fprintf(&sb, " (size: %d)", v.Declared)
		}
		if v.Assign != nil {
			sb.WriteString(" = ")
			sb.WriteString(expr(v.Assign.Right))
		}
	}
	return sb.String()
}

// params renders a parameter list as "int a, float b".
func params(ps []*ast.Variable) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		if !p.ValueType.Valid() {
			continue
		}
		parts = append(parts, p.ValueType.Name(true)+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}

// optional renders e, or nothing when e is nil.
func optional(e ast.Expression, expr exprFunc) string {
	if e == nil {
		return ""
	}
	return expr(e)
}
