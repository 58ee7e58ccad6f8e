package sema

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// Binary builds a two-operand node: coerce, type, validate.
func (b *Builder) Binary(pos ast.Position, op ast.Operation, left, right ast.Expression) *ast.Binary {
	switch op {
	case ast.Assign:
		b.checkInit(right)
	case ast.Index, ast.Append:
		b.checkInit(right)
	default:
		b.checkInit(left)
		b.checkInit(right)
	}

	if op != ast.Index && op != ast.Append {
		left, right = b.coerce(op, left, right)
	}

	n := &ast.Binary{Position: pos, Op: op, Left: left, Right: right}
	n.ValueType = binaryType(op, left.Type())
	b.validateBinary(n)

	if op == ast.Assign {
		b.markInit(left)
	}
	return n
}

// coerce inserts implicit casts. Both rules look at the operand types as
// written, before any cast was added.
func (b *Builder) coerce(op ast.Operation, left, right ast.Expression) (ast.Expression, ast.Expression) {
	lt, rt := left.Type(), right.Type()

	if op != ast.Assign {
		switch {
		case lt == types.Int && rt == types.Float:
			left = b.cast(ast.CastFloat, left)
		case lt == types.Char && rt == types.Word:
			left = b.cast(ast.CastWord, left)
		case lt == types.Char && rt == types.Char:
			left = b.cast(ast.CastWord, left)
			right = b.cast(ast.CastWord, right)
		}
	}

	switch {
	case lt == types.Float && rt == types.Int:
		right = b.cast(ast.CastFloat, right)
	case lt == types.Word && rt == types.Char:
		right = b.cast(ast.CastWord, right)
	}
	return left, right
}

func (b *Builder) cast(op ast.Operation, operand ast.Expression) ast.Expression {
	return b.unary(posOf(operand), op, operand)
}

func binaryType(op ast.Operation, left types.Type) types.Type {
	switch {
	case op == ast.Index || op == ast.Append:
		// Undefined on a non-array, so enclosing nodes raise nothing more.
		elem, _ := left.ElementOf()
		return elem
	case op.YieldsBool():
		return types.Bool
	default:
		return left
	}
}

func (b *Builder) validateBinary(n *ast.Binary) {
	pos := n.Position
	lref, _ := n.Left.(*ast.VarRef)

	if lref != nil && lref.Size < sourceSize(n.Right) {
		b.Errorf(pos, diagnostic.TypeError, "operation between mismatched array sizes")
	}

	if n.Op == ast.Assign {
		b.truncate(n, lref)
	}

	lt, rt := n.Left.Type(), n.Right.Type()
	switch n.Op {
	case ast.Index:
		if lt.Valid() && !lt.IsArray() {
			b.Errorf(pos, diagnostic.TypeError, "left hand side of index operation is not an array")
		} else if rt.Valid() && rt != types.Int {
			b.Errorf(pos, diagnostic.TypeError, "index operation expected integer but received %s", rt)
		}

	case ast.Append:
		elem, err := lt.ElementOf()
		switch {
		case err != nil:
			if lt.Valid() {
				b.Errorf(pos, diagnostic.TypeError, "left hand side of append operation is not an array")
			}
		case rt.Valid() && elem != rt:
			b.Errorf(pos, diagnostic.TypeError, "append operation expected %s but received %s", elem, rt)
		default:
			b.grow(lref)
		}

	default:
		if lt != rt && validBoth(lt, rt) {
			b.Errorf(pos, diagnostic.TypeError, "%s operation expected %s but received %s", n.Op, lt, rt)
		}
	}
}

// sourceSize is the declared size of an array operand: a variable, or a
// call whose function returns a variable.
func sourceSize(e ast.Expression) int {
	switch n := e.(type) {
	case *ast.VarRef:
		return n.Size
	case *ast.Call:
		if n.Callee == nil || !n.Callee.ValueType.IsArray() {
			return 0
		}
		if ret, ok := n.Callee.Body.Last().(*ast.Return); ok {
			if ref, ok := ret.Value.(*ast.VarRef); ok {
				return ref.Size
			}
		}
	}
	return 0
}

// truncate cuts a word literal that does not fit its destination down to
// the destination size, keeping both quotes.
func (b *Builder) truncate(n *ast.Binary, dest *ast.VarRef) {
	lit, ok := n.Right.(*ast.CharLit)
	if !ok || dest == nil {
		return
	}
	if n.Left.Type() != types.Word || lit.Type() != types.Word {
		return
	}
	if dest.Size >= len(lit.Content()) {
		return
	}
	lit.Value = lit.Value[:dest.Size+1] + `"`
	b.Warningf(n.Position, diagnostic.DataError, "value truncated to %s", lit.Value)
}

// grow records one more element on an array that was appended to.
func (b *Builder) grow(ref *ast.VarRef) {
	if ref == nil {
		return
	}
	ref.Size++
	if decl, ok := b.table.Declaration(ref.Name); ok {
		decl.Size++
	}
}

// Unary builds a one-operand node.
func (b *Builder) Unary(pos ast.Position, op ast.Operation, operand ast.Expression) *ast.Unary {
	if op != ast.Addr {
		b.checkInit(operand)
	}
	return b.unary(pos, op, operand)
}

func (b *Builder) unary(pos ast.Position, op ast.Operation, operand ast.Expression) *ast.Unary {
	n := &ast.Unary{Position: pos, Op: op, Operand: operand}
	ot := operand.Type()

	switch op {
	case ast.CastInt, ast.Len:
		n.ValueType = types.Int
	case ast.CastFloat:
		n.ValueType = types.Float
	case ast.CastBool, ast.Not:
		n.ValueType = types.Bool
	case ast.CastWord:
		n.ValueType = types.Word
	case ast.Uminus:
		n.ValueType = ot
	case ast.Ref:
		t, err := ot.Dereference()
		if err != nil && ot.Valid() {
			b.Errorf(pos, diagnostic.TypeError, "reference operation expects a pointer")
		}
		n.ValueType = t
	case ast.Addr:
		n.ValueType = ot.PointerTo()
	default:
		n.ValueType = types.Undefined
	}

	switch op {
	case ast.Len:
		if ot.Valid() && !ot.IsArray() {
			b.Errorf(pos, diagnostic.TypeError, "length operation expects an array")
		}
	case ast.Addr:
		if ot.Valid() && !addressable(operand) {
			b.Errorf(pos, diagnostic.TypeError, "address operation expects a variable or array item")
		}
	}
	return n
}

func addressable(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.VarRef:
		return true
	case *ast.Binary:
		return n.Op == ast.Index
	case *ast.Unary:
		return n.Op == ast.Addr
	}
	return false
}

// Call builds a call to name, checking arity and argument types against
// the callee's parameters.
func (b *Builder) Call(pos ast.Position, name string, args []ast.Expression) *ast.Call {
	for _, arg := range args {
		b.checkInit(arg)
	}

	callee := b.table.Function(pos, name)
	n := &ast.Call{Position: pos, Name: name, Callee: callee, Args: args}
	if !callee.ValueType.Valid() {
		return n
	}

	if len(callee.Params) != len(args) {
		b.Errorf(pos, diagnostic.ArityError, "function %s expects %d parameters but received %d",
			name, len(callee.Params), len(args))
		return n
	}
	for i, p := range callee.Params {
		at := args[i].Type()
		if at.Valid() && p.ValueType != at {
			b.Errorf(posOf(args[i]), diagnostic.TypeError, "parameter %s expected %s but received %s",
				p.Name, p.ValueType, at)
		}
	}
	return n
}
