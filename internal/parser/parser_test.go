package parser

import (
	"strings"
	"testing"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/printer"
	"github.com/lhaig/lukasiewicz/internal/sema"
	"github.com/lhaig/lukasiewicz/internal/symtab"
	"github.com/lhaig/lukasiewicz/internal/types"
)

func parse(src string) (*ast.Block, *diagnostic.Diagnostics) {
	diags := diagnostic.New()
	b := sema.New(symtab.New(diags))
	Attach(b)
	return ParseFragment(b, src), diags
}

func parseClean(t *testing.T, src string) *ast.Block {
	t.Helper()
	tree, diags := parse(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", diags.Format("test"))
	}
	return tree
}

// lastPrefix renders the final statement of src in prefix form.
func lastPrefix(t *testing.T, src string) string {
	t.Helper()
	tree := parseClean(t, src)
	last := &ast.Block{Nodes: []ast.Node{tree.Last()}}
	return strings.TrimSuffix(printer.Prefix(last, printer.Options{}), "\n")
}

func TestParseDeclarations(t *testing.T) {
	tree := parseClean(t, "int a = 1, b, v[4]")
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(tree.Nodes))
	}
	decl, ok := tree.Nodes[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", tree.Nodes[0])
	}
	if decl.ValueType != types.Int {
		t.Errorf("expected declaration type int, got %s", decl.ValueType)
	}
	if len(decl.Vars) != 3 {
		t.Fatalf("expected 3 declarators, got %d", len(decl.Vars))
	}

	a, b, v := decl.Vars[0], decl.Vars[1], decl.Vars[2]
	if a.Assign == nil || !a.Init {
		t.Error("expected a to be initialized")
	}
	if b.Assign != nil || b.Init {
		t.Error("expected b to be uninitialized")
	}
	if v.ValueType != types.Int.ArrayOf() || v.Size != 4 || v.Declared != 4 {
		t.Errorf("unexpected array declarator: %s size %d", v.ValueType, v.Size)
	}
}

func TestParsePointerType(t *testing.T) {
	tree := parseClean(t, "int ref ref p")
	decl := tree.Nodes[0].(*ast.VarDecl)
	if got := decl.Vars[0].ValueType.PointerDepth(); got != 2 {
		t.Errorf("expected pointer depth 2, got %d", got)
	}
}

func TestParsePrecedence(t *testing.T) {
	decls := "int a = 1\nint b = 2\nint c = 3\nint v[3]\n"
	tests := []struct {
		input    string
		expected string
	}{
		{"c = a + b * 2", "= c + a * b 2"},
		{"c = (a + b) * 2", "= c * + a b 2"},
		{"c = a - b - 1", "= c - - a b 1"},
		{"a = b = c", "= a = b c"},
		{"v <- a + 1", "[append] v + a 1"},
		{"a < b & b < c", "& < a b < b c"},
		{"a == b | !(a > c)", "| == a b ! > a c"},
		{"c = -a * b", "= c * -u a b"},
		{"c = v[a + 1] * 2", "= c * [index] v + a 1 2"},
		{"c = [len] v + 1", "= c + [len] v 1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lastPrefix(t, decls+tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseStatementsNeedNoSeparators(t *testing.T) {
	tree := parseClean(t, "int a = 1 int b = 2; a = b")
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(tree.Nodes))
	}
}

func TestParseIfElse(t *testing.T) {
	tree := parseClean(t, "bool ok = true\nif ok then { ok = false }")
	n, ok := tree.Nodes[1].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", tree.Nodes[1])
	}
	if len(n.Then.Nodes) != 1 {
		t.Errorf("expected 1 statement in then, got %d", len(n.Then.Nodes))
	}
	if n.Else == nil || len(n.Else.Nodes) != 0 {
		t.Error("expected an empty else block")
	}
}

func TestParseForWithoutInitAndPost(t *testing.T) {
	tree := parseClean(t, "int i = 0\nfor , i < 3, { i = i + 1 }")
	n, ok := tree.Nodes[1].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", tree.Nodes[1])
	}
	if n.Init != nil || n.Post != nil {
		t.Error("expected init and post to be absent")
	}
	if n.Cond.Type() != types.Bool {
		t.Errorf("expected boolean condition, got %s", n.Cond.Type())
	}
}

func TestParseFunction(t *testing.T) {
	tree := parseClean(t, "float fun avg(int v[], int n) {\n  ret [float] n\n}\nint w[2]\nfloat x = avg(w, 2)")
	fn, ok := tree.Nodes[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", tree.Nodes[0])
	}
	if fn.Name != "avg" || fn.ValueType != types.Float {
		t.Errorf("unexpected header %s %s", fn.ValueType, fn.Name)
	}
	if len(fn.Params) != 2 || !fn.Params[0].ValueType.IsArray() {
		t.Fatalf("unexpected params %v", fn.Params)
	}
	if !fn.Defined() {
		t.Error("expected function to have a body")
	}
}

func TestParseFunctionArgumentsResolveInCallerScope(t *testing.T) {
	_, diags := parse("int fun id(int a) { ret a }\nint x = id(a)")
	errs := diags.Errors()
	if len(errs) != 1 || errs[0].Message != "undeclared variable a" {
		t.Fatalf("expected one undeclared variable error, got:\n%s", diags.Format("test"))
	}
}

func TestParseForwardDeclarationCompleted(t *testing.T) {
	tree := parseClean(t, "int fun f(int a)\nint fun f(int a) { ret a }")
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected the header to be the only node, got %d", len(tree.Nodes))
	}
	fn := tree.Nodes[0].(*ast.Function)
	if !fn.Defined() {
		t.Error("expected the forward declaration to carry the body")
	}
}

func TestParseRedefinition(t *testing.T) {
	tree, diags := parse("int fun f() { ret 1 }\nint fun f() { ret 2 }")
	if len(tree.Nodes) != 1 {
		t.Errorf("expected 1 node, got %d", len(tree.Nodes))
	}
	errs := diags.OfKind(diagnostic.ScopeError)
	if len(errs) != 1 || errs[0].Message != "re-definition of function f" {
		t.Fatalf("expected a re-definition error, got:\n%s", diags.Format("test"))
	}
}

func TestParseForwardDeclarationMismatch(t *testing.T) {
	_, diags := parse("int fun f(int a)\nint fun f(int b) { ret b }")
	if len(diags.OfKind(diagnostic.ScopeError)) != 1 {
		t.Fatalf("expected a re-definition error, got:\n%s", diags.Format("test"))
	}
}

func TestParseHigherOrder(t *testing.T) {
	tree := parseClean(t, "int v[3]\nmap(int fun dbl(int x) { ret x * 2 }, v)")
	h, ok := tree.Nodes[1].(*ast.HigherOrder)
	if !ok {
		t.Fatalf("expected *ast.HigherOrder, got %T", tree.Nodes[1])
	}
	if h.Combinator != ast.Map || h.Lambda.Name != "dbl" || h.Array.Name != "v" {
		t.Errorf("unexpected expansion %s(%s, %s)", h.Combinator, h.Lambda.Name, h.Array.Name)
	}
	if h.Func.Name != "v_map" || h.Func.ValueType != types.Int.ArrayOf() {
		t.Errorf("unexpected function %s %s", h.Func.ValueType, h.Func.Name)
	}
}

func TestParseHigherOrderResultIsCallable(t *testing.T) {
	tree := parseClean(t, "int v[3]\nfold(int fun add(int a, int b) { ret a + b }, v)\nint s = v_fold(v)")
	decl := tree.Nodes[2].(*ast.VarDecl)
	call, ok := decl.Vars[0].Assign.Right.(*ast.Call)
	if !ok {
		t.Fatalf("expected a call, got %T", decl.Vars[0].Assign.Right)
	}
	if call.Type() != types.Int {
		t.Errorf("expected fold to yield int, got %s", call.Type())
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"int a = )", "unexpected token ) in expression"},
		{"int fun f(int a { ret a }", "expected ), got {"},
		{"if true { }", "expected THEN, got {"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, diags := parse(tt.input)
			errs := diags.OfKind(diagnostic.Syntax)
			if len(errs) == 0 {
				t.Fatal("expected a syntax error")
			}
			if errs[0].Message != tt.message {
				t.Errorf("expected %q, got %q", tt.message, errs[0].Message)
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	tree, diags := parse("int a = 1\nint = 2\nint c = 3\nc = a")
	if !diags.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	if len(diags.OfKind(diagnostic.ScopeError)) != 0 {
		t.Errorf("expected later statements to resolve, got:\n%s", diags.Format("test"))
	}
	if _, ok := tree.Last().(*ast.Binary); !ok {
		t.Errorf("expected the final assignment to be parsed, got %T", tree.Last())
	}
}

func TestParsePositions(t *testing.T) {
	tree := parseClean(t, "int a = 1\n  a = 2")
	line, col := tree.Nodes[1].Pos()
	if line != 2 || col != 5 {
		t.Errorf("expected assignment at 2:5, got %d:%d", line, col)
	}
}
