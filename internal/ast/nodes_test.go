package ast

import (
	"testing"

	"github.com/lhaig/lukasiewicz/internal/types"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{Assign, "attribution"},
		{Geq, "greater or equal than"},
		{Append, "append"},
		{Operation(-1), "unknown"},
		{Append + 1, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}

func TestOperationClasses(t *testing.T) {
	for _, op := range []Operation{Eq, Neq, Gt, Lt, Geq, Leq, And, Or} {
		if !op.YieldsBool() {
			t.Errorf("expected %s to yield bool", op)
		}
	}
	for _, op := range []Operation{Add, Assign, Index, Not, Append} {
		if op.YieldsBool() {
			t.Errorf("expected %s not to yield bool", op)
		}
	}
	if !Div.IsArithmetic() || Assign.IsArithmetic() {
		t.Error("unexpected arithmetic classification")
	}
}

func TestLookupCombinator(t *testing.T) {
	for _, name := range []string{"map", "fold", "filter"} {
		c, ok := LookupCombinator(name)
		if !ok || c.String() != name {
			t.Errorf("LookupCombinator(%q) = %v, %v", name, c, ok)
		}
	}
	if _, ok := LookupCombinator("reduce"); ok {
		t.Error("expected reduce to be unknown")
	}
}

func TestCharLit(t *testing.T) {
	c := &CharLit{Value: "'a'"}
	if c.Type() != types.Char || c.Content() != "a" {
		t.Errorf("unexpected char literal %s %q", c.Type(), c.Content())
	}
	w := &CharLit{Value: `"abc"`}
	if w.Type() != types.Word || w.Content() != "abc" {
		t.Errorf("unexpected word literal %s %q", w.Type(), w.Content())
	}
}

func TestVariableRefSnapshot(t *testing.T) {
	v := &Variable{Name: "v", ValueType: types.Int.ArrayOf(), Size: 2, Declared: 2}
	ref := v.Ref(At(3, 4))
	v.Size++

	if ref.Size != 2 {
		t.Errorf("expected the reference to keep size 2, got %d", ref.Size)
	}
	if line, col := ref.Pos(); line != 3 || col != 4 {
		t.Errorf("unexpected position %d:%d", line, col)
	}
}

func TestSameParams(t *testing.T) {
	f := &Function{Params: []*Variable{{Name: "a", ValueType: types.Int}}}
	if !f.SameParams([]*Variable{{Name: "a", ValueType: types.Int}}) {
		t.Error("expected identical params to match")
	}
	if f.SameParams([]*Variable{{Name: "b", ValueType: types.Int}}) {
		t.Error("expected a renamed param not to match")
	}
	if f.SameParams(nil) {
		t.Error("expected a different count not to match")
	}
}

func TestDump(t *testing.T) {
	fn := &Function{
		Name:      "f",
		ValueType: types.Int,
		Params:    []*Variable{{Name: "a", ValueType: types.Int, IsParam: true}},
		Body: &Block{Nodes: []Node{
			&Return{Value: &Binary{
				Op:        Add,
				Left:      &VarRef{Name: "a", ValueType: types.Int},
				Right:     &IntLit{Value: "1"},
				ValueType: types.Int,
			}},
		}},
	}

	want := "Function: f (int)\n" +
		"  Params:\n" +
		"    Param: a (int)\n" +
		"  Body:\n" +
		"    Block\n" +
		"      Return\n" +
		"        Binary: addition (int)\n" +
		"          VarRef: a (int)\n" +
		"          IntLit: 1\n"
	if got := Dump(fn); got != want {
		t.Errorf("Dump mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
