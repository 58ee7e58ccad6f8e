package printer

import (
	"fmt"
	"strings"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// PythonHeader opens every transpiled program.
const PythonHeader = "# Generated Python code from Łukasiewicz"

// PythonIndent is the default indentation width of transpiled code.
const PythonIndent = 4

// pythonKeywords cannot be used as identifiers in Python.
var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "from", "global", "import", "in", "is", "nonlocal", "not",
	"or", "pass", "raise", "return", "try", "while", "with", "yield",
}

// Reserved returns the built-in identifier substitutions of the Python
// printer: the internal lambda name becomes λ and every keyword gets a
// trailing underscore.
func Reserved() map[string]string {
	m := make(map[string]string, len(pythonKeywords)+1)
	for _, kw := range pythonKeywords {
		m[kw] = kw + "_"
	}
	m["lambda"] = "λ"
	return m
}

// Python precedence levels, loosest first.
const (
	pyOr = iota + 1
	pyAnd
	pyNot
	pyCompare
	pySum
	pyProduct
	pyUnary
	pyPostfix
	pyAtom
)

type python struct {
	emitter
	names map[string]string
}

// Python transpiles root to Python source. Counted loops become while
// loops, casts become builtin calls, and identifiers Python reserves are
// renamed.
func Python(root ast.Node, opts Options) string {
	names := Reserved()
	for k, v := range opts.Reserved {
		names[k] = v
	}
	p := &python{emitter: newEmitter(opts, PythonIndent), names: names}
	p.emitLine(PythonHeader)
	p.node(root)
	return p.String()
}

func (p *python) name(id string) string {
	if sub, ok := p.names[id]; ok {
		return sub
	}
	return id
}

func (p *python) node(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.Block:
		p.block(n)
	case *ast.VarDecl:
		p.varDecl(n)
	case *ast.If:
		p.ifStmt(n)
	case *ast.For:
		p.forStmt(n)
	case *ast.Function:
		p.function(n)
	case *ast.HigherOrder:
		p.function(n.Func)
	case *ast.Return:
		p.statement(n, "return "+p.optional(n.Value))
	case *ast.Binary:
		p.statement(n, p.binaryStmt(n))
	case ast.Expression:
		p.statement(n, p.expr(n))
	default:
		p.emitLine(fmt.Sprintf("# <unknown %T>", n))
	}
}

func (p *python) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, n := range b.Nodes {
		p.node(n)
	}
}

// suite prints an indented body, with pass standing in for an empty one.
func (p *python) suite(b *ast.Block, trailer ast.Expression) {
	p.incIndent()
	defer p.decIndent()
	if (b == nil || len(b.Nodes) == 0) && trailer == nil {
		p.emitLine("pass")
		return
	}
	p.block(b)
	if trailer != nil {
		p.node(trailer)
	}
}

func (p *python) varDecl(d *ast.VarDecl) {
	for _, v := range d.Vars {
		name := p.name(v.Name)
		switch {
		case v.Assign != nil:
			p.emitLinef("%s = %s", name, p.expr(v.Assign.Right))
		case v.ValueType == types.Word:
			p.emitLinef("%s = \"\"", name)
		case v.ValueType.IsArray():
			elem, _ := v.ValueType.ElementOf()
			p.emitLinef("%s = [%s] * %d", name, zeroValue(elem), v.Declared)
		default:
			p.emitLinef("%s = %s", name, zeroValue(v.ValueType))
		}
	}
}

func zeroValue(t types.Type) string {
	if t.PointerDepth() > 0 {
		return "None"
	}
	switch t.Base() {
	case types.Float:
		return "0.0"
	case types.Bool:
		return "False"
	case types.Char:
		return "''"
	default:
		return "0"
	}
}

func (p *python) ifStmt(n *ast.If) {
	p.emitLinef("if %s:", p.expr(n.Cond))
	p.suite(n.Then, nil)
	if n.Else != nil && len(n.Else.Nodes) > 0 {
		p.emitLine("else:")
		p.suite(n.Else, nil)
	}
}

// forStmt writes the loop as init, then a while loop whose body ends with
// the iteration step.
func (p *python) forStmt(n *ast.For) {
	if n.Init != nil {
		p.node(n.Init)
	}
	p.emitLinef("while %s:", p.expr(n.Cond))
	p.suite(n.Body, n.Post)
}

func (p *python) function(fn *ast.Function) {
	if fn == nil {
		return
	}
	if !fn.Defined() {
		p.undefinedFunction(fn)
		return
	}
	names := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		if param.ValueType.Valid() {
			names = append(names, p.name(param.Name))
		}
	}
	p.emitLinef("def %s(%s):", p.name(fn.Name), strings.Join(names, ", "))
	p.suite(fn.Body, nil)
}

func (p *python) optional(e ast.Expression) string {
	if e == nil {
		return ""
	}
	return p.expr(e)
}

// binaryStmt renders a binary at statement level, where assignment and
// append are statements rather than expressions.
func (p *python) binaryStmt(e *ast.Binary) string {
	switch e.Op {
	case ast.Assign:
		return p.exprPrec(e.Left, pyPostfix) + " = " + p.expr(e.Right)
	case ast.Append:
		return p.exprPrec(e.Left, pyPostfix) + " += " + p.appended(e)
	default:
		return p.expr(e)
	}
}

// appended renders the right side of an append: a one element list, or
// the character itself when extending a word.
func (p *python) appended(e *ast.Binary) string {
	if e.Left.Type() == types.Word {
		return p.exprPrec(e.Right, pySum+1)
	}
	return "[" + p.expr(e.Right) + "]"
}

func (p *python) expr(e ast.Expression) string {
	return p.exprPrec(e, 0)
}

func pyPrecedence(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.Binary:
		return pyBinaryPrecedence(e.Op)
	case *ast.Unary:
		switch e.Op {
		case ast.Not:
			return pyNot
		case ast.Uminus:
			return pyUnary
		}
	}
	return pyAtom
}

func pyBinaryPrecedence(op ast.Operation) int {
	switch op {
	case ast.Or:
		return pyOr
	case ast.And:
		return pyAnd
	case ast.Eq, ast.Neq, ast.Gt, ast.Lt, ast.Geq, ast.Leq:
		return pyCompare
	case ast.Add, ast.Sub, ast.Append:
		return pySum
	case ast.Mul, ast.Div:
		return pyProduct
	case ast.Index:
		return pyPostfix
	default:
		// assignment inside an expression
		return 0
	}
}

var pySymbols = map[ast.Operation]string{
	ast.Add: "+",
	ast.Sub: "-",
	ast.Mul: "*",
	ast.Eq:  "==",
	ast.Neq: "!=",
	ast.Gt:  ">",
	ast.Lt:  "<",
	ast.Geq: ">=",
	ast.Leq: "<=",
	ast.And: "and",
	ast.Or:  "or",
}

var pyCasts = map[ast.Operation]string{
	ast.CastInt:   "int",
	ast.CastFloat: "float",
	ast.CastBool:  "bool",
	ast.CastWord:  "str",
	ast.Len:       "len",
}

// exprPrec renders e, parenthesized when it binds looser than min.
func (p *python) exprPrec(e ast.Expression, min int) string {
	var s string
	switch e := e.(type) {
	case *ast.BoolLit:
		s = boolWord(e.Value, "True", "False")
	case *ast.VarRef:
		s = p.name(e.Name)
	case *ast.Binary:
		s = p.binary(e)
	case *ast.Unary:
		s = p.unary(e)
	case *ast.Call:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = p.expr(arg)
		}
		s = fmt.Sprintf("%s(%s)", p.name(callee(e)), strings.Join(args, ", "))
	default:
		s = prefixExpr(e)
	}
	if pyPrecedence(e) < min {
		return "(" + s + ")"
	}
	return s
}

// callee names the function a call reaches. An aliased lambda is called
// by the name its def statement carries.
func callee(c *ast.Call) string {
	if c.Callee != nil && c.Callee.Name != "" {
		return c.Callee.Name
	}
	return c.Name
}

func (p *python) binary(e *ast.Binary) string {
	prec := pyBinaryPrecedence(e.Op)
	switch e.Op {
	case ast.Index:
		return p.exprPrec(e.Left, pyPostfix) + "[" + p.expr(e.Right) + "]"
	case ast.Assign:
		return p.exprPrec(e.Left, pyAtom) + " := " + p.expr(e.Right)
	case ast.Append:
		return p.exprPrec(e.Left, prec) + " + " + p.appended(e)
	case ast.Div:
		op := "/"
		if e.ValueType.Base() == types.Int && !e.ValueType.IsArray() {
			op = "//"
		}
		return p.exprPrec(e.Left, prec) + " " + op + " " + p.exprPrec(e.Right, prec+1)
	case ast.Eq, ast.Neq, ast.Gt, ast.Lt, ast.Geq, ast.Leq:
		// Python chains comparisons, so nested ones keep their parentheses
		return p.exprPrec(e.Left, prec+1) + " " + pySymbols[e.Op] + " " + p.exprPrec(e.Right, prec+1)
	default:
		return p.exprPrec(e.Left, prec) + " " + pySymbols[e.Op] + " " + p.exprPrec(e.Right, prec+1)
	}
}

func (p *python) unary(e *ast.Unary) string {
	switch e.Op {
	case ast.Uminus:
		return "-" + p.exprPrec(e.Operand, pyUnary)
	case ast.Not:
		return "not " + p.exprPrec(e.Operand, pyNot)
	case ast.Addr, ast.Ref:
		return p.exprPrec(e.Operand, pyAtom)
	}
	if fn, ok := pyCasts[e.Op]; ok {
		return fn + "(" + p.expr(e.Operand) + ")"
	}
	return p.expr(e.Operand)
}
