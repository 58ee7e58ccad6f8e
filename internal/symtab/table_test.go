package symtab

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/types"
)

func newTable() (*Table, *diagnostic.Diagnostics) {
	diags := diagnostic.New()
	return New(diags), diags
}

func TestRedeclarationKeepsFirst(t *testing.T) {
	tab, diags := newTable()

	first, ok := tab.NewVariable(ast.At(1, 1), "x", types.Int, 0, false)
	be.True(t, ok)

	got, ok := tab.NewVariable(ast.At(2, 1), "x", types.Float, 0, false)
	be.True(t, !ok)
	be.Equal(t, got, first)
	be.Equal(t, diags.ErrorCount(), 1)
	be.Equal(t, diags.Errors()[0].Message, "re-declaration of variable x")
	be.Equal(t, diags.Errors()[0].Kind, diagnostic.ScopeError)

	decl, _ := tab.Declaration("x")
	be.Equal(t, decl.ValueType, types.Int)
}

func TestShadowingInNestedScope(t *testing.T) {
	tab, diags := newTable()
	tab.NewVariable(ast.At(1, 1), "x", types.Int, 0, false)

	tab.Enter()
	_, ok := tab.NewVariable(ast.At(2, 1), "x", types.Bool, 0, false)
	be.True(t, ok)
	be.Equal(t, tab.Variable(ast.At(3, 1), "x").ValueType, types.Bool)
	tab.Leave()

	be.Equal(t, tab.Variable(ast.At(4, 1), "x").ValueType, types.Int)
	be.Equal(t, diags.Count(), 0)
}

func TestLookupFallsBackToEnclosing(t *testing.T) {
	tab, diags := newTable()
	tab.NewVariable(ast.At(1, 1), "v", types.Word, 5, false)

	tab.Enter()
	tab.Enter()
	ref := tab.Variable(ast.At(2, 1), "v")
	be.Equal(t, ref.ValueType, types.Word)
	be.Equal(t, ref.Size, 5)
	be.Equal(t, tab.Depth(), 2)
	be.Equal(t, diags.Count(), 0)
}

func TestSiblingScopeIsInvisible(t *testing.T) {
	tab, diags := newTable()

	tab.Enter()
	tab.NewVariable(ast.At(1, 1), "inner", types.Int, 0, false)
	tab.Leave()

	tab.Enter()
	ref := tab.Variable(ast.At(2, 1), "inner")
	tab.Leave()

	be.Equal(t, ref.ValueType, types.Undefined)
	be.Equal(t, diags.ErrorCount(), 1)
	be.Equal(t, diags.Errors()[0].Message, "undeclared variable inner")
}

func TestUndeclaredHint(t *testing.T) {
	tab, diags := newTable()
	tab.NewVariable(ast.At(1, 1), "counter", types.Int, 0, false)

	tab.Variable(ast.At(2, 1), "cntr")
	be.Equal(t, diags.Errors()[0].Hint, "did you mean counter?")

	tab.Variable(ast.At(3, 1), "coutner")
	be.Equal(t, diags.Errors()[1].Hint, "did you mean counter?")

	tab.SetHints(false)
	tab.Variable(ast.At(4, 1), "cntr")
	be.Equal(t, diags.Errors()[2].Hint, "")
}

func TestLeaveGlobalIsNoop(t *testing.T) {
	tab, _ := newTable()
	tab.Leave()
	be.Equal(t, tab.Current(), tab.Global())
	be.Equal(t, tab.Depth(), 0)
}

func params(names ...string) []*ast.Variable {
	out := make([]*ast.Variable, 0, len(names))
	for _, n := range names {
		out = append(out, &ast.Variable{Name: n, ValueType: types.Int, IsParam: true})
	}
	return out
}

func TestForwardDeclarationCompletes(t *testing.T) {
	tab, diags := newTable()

	fwd, st := tab.DeclareFunction(ast.At(1, 1), "f", types.Int, params("a", "b"), false)
	be.Equal(t, st, Fresh)

	got, st := tab.DeclareFunction(ast.At(2, 1), "f", types.Int, params("a", "b"), true)
	be.Equal(t, st, Completes)
	be.Equal(t, got, fwd)
	be.Equal(t, diags.Count(), 0)
}

func TestRedefinition(t *testing.T) {
	tests := []struct {
		name   string
		first  bool
		params []*ast.Variable
	}{
		{"already defined", true, params("a", "b")},
		{"renamed parameter", false, params("a", "c")},
		{"extra parameter", false, params("a", "b", "c")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, diags := newTable()
			fn, _ := tab.DeclareFunction(ast.At(1, 1), "f", types.Int, params("a", "b"), tt.first)
			if tt.first {
				fn.Body = &ast.Block{}
			}

			got, st := tab.DeclareFunction(ast.At(2, 1), "f", types.Int, tt.params, true)
			be.Equal(t, st, Redefined)
			be.True(t, got != fn)
			be.Equal(t, diags.ErrorCount(), 1)
			be.True(t, strings.Contains(diags.Errors()[0].Message, "re-definition of function f"))

			found := tab.Function(ast.At(3, 1), "f")
			be.Equal(t, found, fn)
		})
	}
}

func TestUndeclaredFunctionPlaceholder(t *testing.T) {
	tab, diags := newTable()
	fn := tab.Function(ast.At(1, 1), "nope")
	be.Equal(t, fn.ValueType, types.Undefined)
	be.True(t, !fn.Defined())
	be.Equal(t, diags.Errors()[0].Message, "undeclared function nope")
}

func TestSinkSwap(t *testing.T) {
	tab, diags := newTable()
	prev := tab.SetSink(diagnostic.Discard)
	tab.Variable(ast.At(1, 1), "ghost")
	tab.SetSink(prev)

	be.Equal(t, diags.Count(), 0)
	tab.Variable(ast.At(2, 1), "ghost")
	be.Equal(t, diags.Count(), 1)
}

func TestAlias(t *testing.T) {
	tab, _ := newTable()
	tab.Enter()
	fn, _ := tab.DeclareFunction(ast.At(1, 1), "double", types.Int, params("x"), true)
	tab.Alias("lambda", fn)

	be.Equal(t, tab.Function(ast.At(2, 1), "lambda"), fn)
	be.Equal(t, tab.Current().Visible(KindFunction), []string{"double", "lambda"})
}

func TestScopeChain(t *testing.T) {
	tab, _ := newTable()
	outer := tab.Enter()
	inner := tab.Enter()

	be.Equal(t, tab.Depth(), 2)
	be.Equal(t, inner.Parent(), outer)
	be.Equal(t, outer.Parent(), tab.Global())
	be.Equal(t, tab.Global().Parent(), (*Scope)(nil))

	tab.Leave()
	be.Equal(t, tab.Current(), outer)
	be.Equal(t, tab.Depth(), 1)
}

func TestBindRejectsDuplicate(t *testing.T) {
	tab, diags := newTable()
	tab.Enter()

	be.True(t, tab.Bind(&ast.Variable{Name: "a", ValueType: types.Int, IsParam: true}))
	be.True(t, tab.ExistsHere(KindVariable, "a"))
	be.True(t, !tab.Bind(&ast.Variable{Name: "a", ValueType: types.Float, IsParam: true}))
	be.Equal(t, diags.Errors()[0].Message, "re-declaration of variable a")

	decl, _ := tab.Declaration("a")
	be.Equal(t, decl.ValueType, types.Int)

	tab.Leave()
	be.True(t, !tab.ExistsHere(KindVariable, "a"))
}

func TestScopeDefineVariable(t *testing.T) {
	sc := NewScope(nil)
	be.Err(t, sc.DefineVariable(&ast.Variable{Name: "x"}), nil)
	be.Err(t, sc.DefineVariable(&ast.Variable{Name: "x"}), "variable x already declared in this scope")
}

func TestAliasKeepsExistingName(t *testing.T) {
	tab, _ := newTable()
	first, _ := tab.DeclareFunction(ast.At(1, 1), "lambda", types.Int, params("x"), true)
	other, _ := tab.DeclareFunction(ast.At(2, 1), "g", types.Int, params("x"), true)

	tab.Alias("lambda", other)
	be.Equal(t, tab.Function(ast.At(3, 1), "lambda"), first)
}
