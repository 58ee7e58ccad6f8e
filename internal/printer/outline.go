package printer

import (
	"fmt"

	"github.com/lhaig/lukasiewicz/internal/ast"
)

// outline walks statements for the prefix and infix printers, which lay
// out statements identically and differ only in how expressions read.
type outline struct {
	emitter
	expr exprFunc
}

func (o *outline) node(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.Block:
		o.block(n)
	case *ast.VarDecl:
		o.statement(n, declaration(n, o.expr))
	case *ast.If:
		o.ifStmt(n)
	case *ast.For:
		o.forStmt(n)
	case *ast.Function:
		o.function(n)
	case *ast.HigherOrder:
		o.function(n.Func)
	case *ast.Return:
		o.statement(n, "ret "+optional(n.Value, o.expr))
	case ast.Expression:
		o.statement(n, o.expr(n))
	default:
		o.emitLine(fmt.Sprintf("<unknown %T>", n))
	}
}

func (o *outline) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, n := range b.Nodes {
		o.node(n)
	}
}

func (o *outline) nested(b *ast.Block) {
	o.incIndent()
	o.block(b)
	o.decIndent()
}

func (o *outline) ifStmt(n *ast.If) {
	o.emitLine("if: " + o.expr(n.Cond))
	o.emitLine("then:")
	o.nested(n.Then)
	if n.Else != nil && len(n.Else.Nodes) > 0 {
		o.emitLine("else:")
		o.nested(n.Else)
	}
}

func (o *outline) forStmt(n *ast.For) {
	o.emitLinef("for: %s, %s, %s", optional(n.Init, o.expr), o.expr(n.Cond), optional(n.Post, o.expr))
	o.emitLine("do:")
	o.nested(n.Body)
}

func (o *outline) function(fn *ast.Function) {
	if fn == nil {
		return
	}
	if !fn.Defined() {
		o.undefinedFunction(fn)
		return
	}
	o.emitLinef("%s fun: %s (params: %s)", fn.ValueType.Name(true), fn.Name, params(fn.Params))
	o.nested(fn.Body)
}
