package printer

import (
	"fmt"
	"strings"

	"github.com/lhaig/lukasiewicz/internal/ast"
)

// Binding strengths of the source grammar, loosest first.
const (
	precAssign = iota + 1
	precAppend
	precLogic
	precCompare
	precSum
	precProduct
	precUnary
	precPostfix
	precAtom
)

// infixPrecedence returns how tightly op binds its operands.
func infixPrecedence(op ast.Operation) int {
	switch op {
	case ast.Assign:
		return precAssign
	case ast.Append:
		return precAppend
	case ast.And, ast.Or:
		return precLogic
	case ast.Eq, ast.Neq, ast.Gt, ast.Lt, ast.Geq, ast.Leq:
		return precCompare
	case ast.Add, ast.Sub:
		return precSum
	case ast.Mul, ast.Div:
		return precProduct
	case ast.Index:
		return precPostfix
	default:
		return precUnary
	}
}

// infixSymbol spells op the way source code does.
func infixSymbol(op ast.Operation) string {
	switch op {
	case ast.Append:
		return "<-"
	case ast.Uminus:
		return "-"
	default:
		return PrefixSymbol(op)
	}
}

// Infix renders root with operators between their operands. Parentheses
// appear only where the grammar's precedence requires them, so the output
// parses back to the same tree.
func Infix(root ast.Node, opts Options) string {
	o := &outline{emitter: newEmitter(opts, DefaultIndent), expr: infixExpr}
	o.node(root)
	return o.String()
}

func infixExpr(e ast.Expression) string {
	return infixPrec(e, 0)
}

func exprPrecedence(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.Binary:
		return infixPrecedence(e.Op)
	case *ast.Unary:
		return precUnary
	default:
		return precAtom
	}
}

// infixPrec renders e, parenthesized when it binds looser than min.
func infixPrec(e ast.Expression, min int) string {
	var s string
	switch e := e.(type) {
	case *ast.Binary:
		s = infixBinary(e)
	case *ast.Unary:
		s = infixUnary(e)
	case *ast.Call:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = infixExpr(arg)
		}
		s = fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
	default:
		s = prefixExpr(e)
	}
	if exprPrecedence(e) < min {
		return "(" + s + ")"
	}
	return s
}

func infixBinary(e *ast.Binary) string {
	prec := infixPrecedence(e.Op)
	switch e.Op {
	case ast.Index:
		return infixPrec(e.Left, precPostfix) + "[" + infixExpr(e.Right) + "]"
	case ast.Assign:
		// right associative
		return infixPrec(e.Left, prec+1) + " = " + infixPrec(e.Right, prec)
	case ast.Append, ast.Eq, ast.Neq, ast.Gt, ast.Lt, ast.Geq, ast.Leq:
		// non associative
		return infixPrec(e.Left, prec+1) + " " + infixSymbol(e.Op) + " " + infixPrec(e.Right, prec+1)
	default:
		return infixPrec(e.Left, prec) + " " + infixSymbol(e.Op) + " " + infixPrec(e.Right, prec+1)
	}
}

func infixUnary(e *ast.Unary) string {
	operand := infixPrec(e.Operand, precUnary)
	switch e.Op {
	case ast.Uminus, ast.Not:
		return infixSymbol(e.Op) + operand
	default:
		return infixSymbol(e.Op) + " " + operand
	}
}
