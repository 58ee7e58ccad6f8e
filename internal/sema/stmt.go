package sema

import (
	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/symtab"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// Declare adds a declarator to the current scope. A redeclared name yields
// the earlier declaration and false; the caller drops the new one.
func (b *Builder) Declare(pos ast.Position, name string, typ types.Type, size int) (*ast.Variable, bool) {
	return b.table.NewVariable(pos, name, typ, size, false)
}

// Param adds a function parameter to the current scope.
func (b *Builder) Param(p *ast.Variable) bool {
	p.IsParam, p.Init = true, true
	return b.table.Bind(p)
}

// Initialize attaches value to v as an assignment built like any other.
func (b *Builder) Initialize(v *ast.Variable, pos ast.Position, value ast.Expression) {
	v.Assign = b.Binary(pos, ast.Assign, v.Ref(v.Position), value)
}

// VarDecl groups declarators sharing a type into one statement.
func (b *Builder) VarDecl(pos ast.Position, typ types.Type, vars []*ast.Variable) *ast.VarDecl {
	return &ast.VarDecl{Position: pos, ValueType: typ, Vars: vars}
}

// If builds a conditional. A missing else becomes an empty block.
func (b *Builder) If(pos ast.Position, cond ast.Expression, then, els *ast.Block) *ast.If {
	if els == nil {
		els = &ast.Block{Position: pos}
	}
	b.checkInit(cond)
	b.checkCondition(cond)
	return &ast.If{Position: pos, Cond: cond, Then: then, Else: els}
}

// For builds a counted loop. init and post may be nil.
func (b *Builder) For(pos ast.Position, init, cond, post ast.Expression, body *ast.Block) *ast.For {
	b.checkInit(cond)
	b.checkCondition(cond)
	return &ast.For{Position: pos, Init: init, Cond: cond, Post: post, Body: body}
}

func (b *Builder) checkCondition(cond ast.Expression) {
	t := cond.Type()
	if t.Valid() && t != types.Bool {
		b.Errorf(posOf(cond), diagnostic.TypeError, "test operation expected boolean but received %s", t)
	}
}

// Return builds ret <value>.
func (b *Builder) Return(pos ast.Position, value ast.Expression) *ast.Return {
	b.checkInit(value)
	return &ast.Return{Position: pos, Value: value}
}

// DeclareFunction registers a function header in the current scope.
func (b *Builder) DeclareFunction(pos ast.Position, name string, typ types.Type, params []*ast.Variable, hasBody bool) (*ast.Function, symtab.Status) {
	return b.table.DeclareFunction(pos, name, typ, params, hasBody)
}

// DefineFunction registers an already built function, such as one made
// by expansion, in the current scope.
func (b *Builder) DefineFunction(fn *ast.Function) bool {
	if err := b.table.Current().DefineFunction(fn); err != nil {
		b.Errorf(fn.Position, diagnostic.ScopeError, "re-definition of function %s", fn.Name)
		return false
	}
	return true
}

// Function attaches body to fn and checks that a trailing return agrees
// with the declared type.
func (b *Builder) Function(fn *ast.Function, body *ast.Block) *ast.Function {
	fn.Body = body
	ret, ok := body.Last().(*ast.Return)
	if !ok {
		return fn
	}
	if rt := ret.Type(); rt.Valid() && fn.ValueType.Valid() && rt != fn.ValueType {
		b.Errorf(fn.Position, diagnostic.TypeError, "function %s has incoherent return type", fn.Name)
	}
	return fn
}
