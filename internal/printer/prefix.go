package printer

import (
	"fmt"
	"strings"

	"github.com/lhaig/lukasiewicz/internal/ast"
)

// prefixSymbols spells each operation in canonical prefix form
var prefixSymbols = [...]string{
	ast.Add:       "+",
	ast.Sub:       "-",
	ast.Mul:       "*",
	ast.Div:       "/",
	ast.Assign:    "=",
	ast.Index:     "[index]",
	ast.Addr:      "[addr]",
	ast.Ref:       "[ref]",
	ast.Eq:        "==",
	ast.Neq:       "!=",
	ast.Gt:        ">",
	ast.Lt:        "<",
	ast.Geq:       ">=",
	ast.Leq:       "<=",
	ast.And:       "&",
	ast.Or:        "|",
	ast.Uminus:    "-u",
	ast.Not:       "!",
	ast.CastInt:   "[int]",
	ast.CastFloat: "[float]",
	ast.CastBool:  "[bool]",
	ast.CastWord:  "[word]",
	ast.Len:       "[len]",
	ast.Append:    "[append]",
}

// PrefixSymbol returns the prefix spelling of op.
func PrefixSymbol(op ast.Operation) string {
	if op < 0 || int(op) >= len(prefixSymbols) {
		return "?"
	}
	return prefixSymbols[op]
}

// Prefix renders root in canonical prefix notation: every operator comes
// before its operands, so no parentheses are ever needed.
func Prefix(root ast.Node, opts Options) string {
	o := &outline{emitter: newEmitter(opts, DefaultIndent), expr: prefixExpr}
	o.node(root)
	return o.String()
}

func prefixExpr(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Value
	case *ast.FloatLit:
		return e.Value
	case *ast.BoolLit:
		return boolWord(e.Value, "true", "false")
	case *ast.CharLit:
		return e.Value
	case *ast.VarRef:
		return e.Name
	case *ast.Binary:
		return PrefixSymbol(e.Op) + " " + prefixExpr(e.Left) + " " + prefixExpr(e.Right)
	case *ast.Unary:
		return PrefixSymbol(e.Op) + " " + prefixExpr(e.Operand)
	case *ast.Call:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s[%d params]", e.Name, len(e.Args))
		for _, arg := range e.Args {
			sb.WriteString(" ")
			sb.WriteString(prefixExpr(arg))
		}
		return sb.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("<unknown %T>", e)
	}
}

func boolWord(v bool, t, f string) string {
	if v {
		return t
	}
	return f
}
