package hof

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/sema"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// Expand builds the function implementing combinator over array. It must
// be called in the scope the lambda was declared in; the caller registers
// the result (Func) in the enclosing scope once that scope is left.
//
// A broken lambda or a non-array argument is reported, and a function is
// still returned so the tree stays printable.
func Expand(b *sema.Builder, pos ast.Position, kind ast.Combinator, lambda *ast.Function, array *ast.VarRef) *ast.HigherOrder {
	h := &ast.HigherOrder{Position: pos, Combinator: kind, Lambda: lambda, Array: array}

	param := &ast.Variable{
		Position:  array.Position,
		Name:      array.Name,
		ValueType: array.ValueType,
		Size:      array.Size,
		Declared:  array.Size,
		Init:      true,
		IsParam:   true,
	}

	elem, err := array.ValueType.ElementOf()
	if err != nil {
		if array.ValueType.Valid() {
			b.Errorf(pos, diagnostic.TypeError, "high order function's second parameter must be of array type")
		}
		checkLambda(b, pos, kind, lambda, types.Undefined)
		h.Func = &ast.Function{
			Position:  pos,
			Name:      array.Name + "_" + kind.String(),
			ValueType: types.Undefined,
			Params:    []*ast.Variable{param},
			Body:      &ast.Block{Position: pos, Nodes: []ast.Node{lambda}},
		}
		return h
	}

	p := Params{Combinator: kind, Array: array.Name, Element: elem, Size: array.Size}
	fn := &ast.Function{
		Position:  pos,
		Name:      p.FuncName(),
		ValueType: resultType(kind, array.ValueType, elem),
		Params:    []*ast.Variable{param},
	}
	h.Func = fn

	if lambda.Name != LambdaName {
		b.Table().Alias(LambdaName, lambda)
	}

	ok := checkLambda(b, pos, kind, lambda, elem)

	b.Table().Enter()
	defer b.Table().Leave()
	b.Param(fn.Params[0])

	restore := func() {}
	if !ok {
		restore = b.Mute()
	}
	fragment := b.Reparse(Synthesize(p))
	ret := b.Return(pos, b.Ref(pos, p.Output()))
	restore()

	body := &ast.Block{Position: pos, Nodes: []ast.Node{lambda, fragment, ret}}
	b.Function(fn, body)
	return h
}

func resultType(kind ast.Combinator, array, elem types.Type) types.Type {
	if kind == ast.Fold {
		return elem
	}
	return array
}

// checkLambda verifies the lambda against the combinator: map keeps the
// element type, fold folds two elements into one, filter is a predicate.
// An undefined element type skips the return check for map and fold.
func checkLambda(b *sema.Builder, pos ast.Position, kind ast.Combinator, lambda *ast.Function, elem types.Type) bool {
	want, arity := elem, 1
	switch kind {
	case ast.Fold:
		arity = 2
	case ast.Filter:
		want = types.Bool
	}

	ok := true
	if want.Valid() && lambda.ValueType != want {
		b.Errorf(pos, diagnostic.TypeError, "function %s has incoherent return type", LambdaName)
		ok = false
	}
	if n := len(lambda.Params); n != arity {
		b.Errorf(pos, diagnostic.ArityError, "%s's %s expects %d parameters but received %d",
			kind, LambdaName, arity, n)
		ok = false
	}
	return ok
}
