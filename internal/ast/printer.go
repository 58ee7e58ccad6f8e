package ast

import (
	"fmt"
	"strings"
)

// Dump returns a tree-like string representation of the AST for debugging
func Dump(node Node) string {
	var sb strings.Builder
	dumpNode(&sb, node, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *IntLit:
		sb.WriteString(fmt.Sprintf("%sIntLit: %s\n", prefix, n.Value))

	case *FloatLit:
		sb.WriteString(fmt.Sprintf("%sFloatLit: %s\n", prefix, n.Value))

	case *BoolLit:
		sb.WriteString(fmt.Sprintf("%sBoolLit: %t\n", prefix, n.Value))

	case *CharLit:
		sb.WriteString(fmt.Sprintf("%sCharLit: %s (%s)\n", prefix, n.Value, n.Type().Name(true)))

	case *Binary:
		sb.WriteString(fmt.Sprintf("%sBinary: %s (%s)\n", prefix, n.Op, n.ValueType.Name(true)))
		dumpNode(sb, n.Left, indent+1)
		dumpNode(sb, n.Right, indent+1)

	case *Unary:
		sb.WriteString(fmt.Sprintf("%sUnary: %s (%s)\n", prefix, n.Op, n.ValueType.Name(true)))
		dumpNode(sb, n.Operand, indent+1)

	case *VarRef:
		sb.WriteString(fmt.Sprintf("%sVarRef: %s (%s)\n", prefix, n.Name, n.ValueType.Name(true)))

	case *Call:
		sb.WriteString(fmt.Sprintf("%sCall: %s (%s)\n", prefix, n.Name, n.Type().Name(true)))
		for _, arg := range n.Args {
			dumpNode(sb, arg, indent+1)
		}

	case *Variable:
		kind := "Variable"
		if n.IsParam {
			kind = "Param"
		}
		size := ""
		if n.ValueType.IsArray() {
			size = fmt.Sprintf("[%d]", n.Size)
		}
		sb.WriteString(fmt.Sprintf("%s%s: %s%s (%s)\n", prefix, kind, n.Name, size, n.ValueType.Name(true)))
		if n.Assign != nil {
			dumpNode(sb, n.Assign.Right, indent+1)
		}

	case *VarDecl:
		sb.WriteString(fmt.Sprintf("%sVarDecl: %s\n", prefix, n.ValueType.Name(true)))
		for _, v := range n.Vars {
			dumpNode(sb, v, indent+1)
		}

	case *Block:
		sb.WriteString(prefix + "Block\n")
		for _, stmt := range n.Nodes {
			dumpNode(sb, stmt, indent+1)
		}

	case *If:
		sb.WriteString(prefix + "If\n")
		dumpNode(sb, n.Cond, indent+1)
		sb.WriteString(prefix + "  Then:\n")
		dumpNode(sb, n.Then, indent+2)
		if n.Else != nil && len(n.Else.Nodes) > 0 {
			sb.WriteString(prefix + "  Else:\n")
			dumpNode(sb, n.Else, indent+2)
		}

	case *For:
		sb.WriteString(prefix + "For\n")
		dumpNode(sb, n.Init, indent+1)
		dumpNode(sb, n.Cond, indent+1)
		dumpNode(sb, n.Post, indent+1)
		dumpNode(sb, n.Body, indent+1)

	case *Function:
		sb.WriteString(fmt.Sprintf("%sFunction: %s (%s)\n", prefix, n.Name, n.ValueType.Name(true)))
		if len(n.Params) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
			for _, p := range n.Params {
				dumpNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}
		if n.Body != nil {
			sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
			dumpNode(sb, n.Body, indent+2)
		}

	case *HigherOrder:
		sb.WriteString(fmt.Sprintf("%sHigherOrder: %s %s\n", prefix, n.Combinator, n.Array.Name))
		dumpNode(sb, n.Func, indent+1)

	case *Return:
		sb.WriteString(prefix + "Return\n")
		dumpNode(sb, n.Value, indent+1)

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown %T>\n", prefix, node))
	}
}
