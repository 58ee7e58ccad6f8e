// Package symtab holds the scope chain consulted while the tree is built.
package symtab

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// Status tells the caller what DeclareFunction did with a header
type Status int

const (
	// Fresh means a new function was registered.
	Fresh Status = iota
	// Completes means the header matched an earlier bodiless declaration,
	// which is returned so the body can be attached to it.
	Completes
	// Redefined means the header clashed with an existing function. The
	// returned function is detached from the table.
	Redefined
)

// maxHintDistance bounds the edit distance of a "did you mean" suggestion.
const maxHintDistance = 2

// Table is the active scope chain plus the sink its diagnostics go to
type Table struct {
	global  *Scope
	current *Scope
	sink    diagnostic.Sink
	hints   bool
}

// New creates a table holding only the global scope
func New(sink diagnostic.Sink) *Table {
	global := NewScope(nil)
	return &Table{global: global, current: global, sink: sink, hints: true}
}

// SetHints turns "did you mean" suggestions on or off.
func (t *Table) SetHints(on bool) { t.hints = on }

// SetSink redirects diagnostics and returns the previous sink.
func (t *Table) SetSink(sink diagnostic.Sink) diagnostic.Sink {
	prev := t.sink
	t.sink = sink
	return prev
}

// Sink returns where diagnostics currently go.
func (t *Table) Sink() diagnostic.Sink { return t.sink }

// Global returns the outermost scope.
func (t *Table) Global() *Scope { return t.global }

// Current returns the innermost active scope.
func (t *Table) Current() *Scope { return t.current }

// Enter opens a scope nested in the current one
func (t *Table) Enter() *Scope {
	t.current = NewScope(t.current)
	return t.current
}

// Leave discards the current scope. Leaving the global scope is a no-op.
func (t *Table) Leave() {
	if parent := t.current.Parent(); parent != nil {
		t.current = parent
	}
}

// Depth returns how many scopes are open above the global one.
func (t *Table) Depth() int {
	depth := 0
	for sc := t.current; sc.Parent() != nil; sc = sc.Parent() {
		depth++
	}
	return depth
}

// ExistsHere reports whether name is declared in the current scope.
func (t *Table) ExistsHere(kind Kind, name string) bool {
	return t.current.Exists(kind, name)
}

// NewVariable declares a variable in the current scope. On redeclaration
// the prior declaration is returned with false and the new one is dropped.
func (t *Table) NewVariable(pos ast.Position, name string, typ types.Type, size int, isParam bool) (*ast.Variable, bool) {
	if prior, ok := t.current.LocalVariable(name); ok {
		t.report(pos, diagnostic.ScopeError, "", "re-declaration of variable %s", name)
		return prior, false
	}

	v := &ast.Variable{
		Position:  pos,
		Name:      name,
		ValueType: typ,
		Size:      size,
		Declared:  size,
		IsParam:   isParam,
		Init:      isParam,
	}
	t.current.vars[name] = v
	return v, true
}

// Bind declares an already built variable, such as a parameter, in the
// current scope.
func (t *Table) Bind(v *ast.Variable) bool {
	if err := t.current.DefineVariable(v); err != nil {
		t.report(v.Position, diagnostic.ScopeError, "", "re-declaration of variable %s", v.Name)
		return false
	}
	return true
}

// Variable resolves a use of name. Unknown names are reported and get an
// undefined-typed reference so building can go on.
func (t *Table) Variable(pos ast.Position, name string) *ast.VarRef {
	if v, ok := t.current.Variable(name); ok {
		return v.Ref(pos)
	}

	hint := t.suggest(name, t.current.Visible(KindVariable))
	t.report(pos, diagnostic.ScopeError, hint, "undeclared variable %s", name)
	return &ast.VarRef{Position: pos, Name: name, ValueType: types.Undefined}
}

// Declaration returns the declaration name resolves to, without reporting.
func (t *Table) Declaration(name string) (*ast.Variable, bool) {
	return t.current.Variable(name)
}

// DeclareFunction registers a function header in the current scope.
func (t *Table) DeclareFunction(pos ast.Position, name string, typ types.Type, params []*ast.Variable, hasBody bool) (*ast.Function, Status) {
	fn := &ast.Function{Position: pos, Name: name, ValueType: typ, Params: params}

	prior, ok := t.current.LocalFunction(name)
	if !ok {
		t.current.funcs[name] = fn
		return fn, Fresh
	}
	if hasBody && !prior.Defined() && prior.ValueType == typ && prior.SameParams(params) {
		return prior, Completes
	}

	t.report(pos, diagnostic.ScopeError, "", "re-definition of function %s", name)
	return fn, Redefined
}

// Alias makes f reachable under name in the current scope.
func (t *Table) Alias(name string, f *ast.Function) {
	if !t.ExistsHere(KindFunction, name) {
		t.current.funcs[name] = f
	}
}

// Function resolves a call target. Unknown names are reported and get a
// bodiless, undefined-typed placeholder.
func (t *Table) Function(pos ast.Position, name string) *ast.Function {
	if f, ok := t.current.Function(name); ok {
		return f
	}

	hint := t.suggest(name, t.current.Visible(KindFunction))
	t.report(pos, diagnostic.ScopeError, hint, "undeclared function %s", name)
	return &ast.Function{Position: pos, Name: name, ValueType: types.Undefined}
}

func (t *Table) report(pos ast.Position, kind diagnostic.Kind, hint, format string, args ...interface{}) {
	t.sink.Report(diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Line:     pos.Line,
		Column:   pos.Column,
		Hint:     hint,
	})
}

// suggest picks the visible name closest to name, preferring fuzzy
// subsequence matches and falling back to a small edit distance.
func (t *Table) suggest(name string, candidates []string) string {
	if !t.hints || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return fmt.Sprintf("did you mean %s?", ranks[0].Target)
	}

	best, bestDist := "", maxHintDistance+1
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("did you mean %s?", best)
}
