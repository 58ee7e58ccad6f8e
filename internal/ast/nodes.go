package ast

import "github.com/lhaig/lukasiewicz/internal/types"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
	Type() types.Type
	node()
}

// Expression nodes can appear as operands
type Expression interface {
	Node
	exprNode()
}

// Position is embedded by every node to carry its source location
type Position struct {
	Line   int
	Column int
}

func (p Position) Pos() (int, int) { return p.Line, p.Column }

// At returns a Position for the given line and column.
func At(line, col int) Position { return Position{Line: line, Column: col} }

// Operation identifies the operator of a Binary or Unary node
type Operation int

const (
	Add Operation = iota
	Sub
	Mul
	Div
	Assign
	Index
	Addr
	Ref
	Eq
	Neq
	Gt
	Lt
	Geq
	Leq
	And
	Or
	Uminus
	Not
	CastInt
	CastFloat
	CastBool
	CastWord
	Len
	Append
)

var operationNames = [...]string{
	"addition", "subtraction", "multiplication", "division", "attribution",
	"index", "address", "reference", "equal", "different", "greater than",
	"less than", "greater or equal than", "less or equal than", "and", "or",
	"unary minus", "negation", "int cast", "float cast", "bool cast",
	"word cast", "length", "append",
}

// String returns the name diagnostics use for op
func (op Operation) String() string {
	if op < 0 || int(op) >= len(operationNames) {
		return "unknown"
	}
	return operationNames[op]
}

// YieldsBool reports whether op is a comparison or a logical connective.
func (op Operation) YieldsBool() bool {
	return op >= Eq && op <= Or
}

// IsArithmetic reports whether op is one of + - * /.
func (op Operation) IsArithmetic() bool {
	return op >= Add && op <= Div
}

// Combinator names a higher-order function
type Combinator int

const (
	Map Combinator = iota
	Fold
	Filter
)

func (c Combinator) String() string {
	switch c {
	case Map:
		return "map"
	case Fold:
		return "fold"
	case Filter:
		return "filter"
	default:
		return "unknown"
	}
}

// LookupCombinator maps a keyword to its Combinator.
func LookupCombinator(name string) (Combinator, bool) {
	switch name {
	case "map":
		return Map, true
	case "fold":
		return Fold, true
	case "filter":
		return Filter, true
	}
	return 0, false
}

// Literals

// IntLit represents an integer literal
type IntLit struct {
	Position
	Value string
}

func (*IntLit) Type() types.Type { return types.Int }

// FloatLit represents a float literal
type FloatLit struct {
	Position
	Value string
}

func (*FloatLit) Type() types.Type { return types.Float }

// BoolLit represents true or false
type BoolLit struct {
	Position
	Value bool
}

func (*BoolLit) Type() types.Type { return types.Bool }

// CharLit represents a character or word literal. Value keeps its quotes:
// 'a' is a char, "abc" is a word.
type CharLit struct {
	Position
	Value string
}

func (c *CharLit) Type() types.Type {
	if len(c.Value) > 0 && c.Value[0] == '"' {
		return types.Word
	}
	return types.Char
}

// Content returns the literal without its quotes.
func (c *CharLit) Content() string {
	if len(c.Value) < 2 {
		return ""
	}
	return c.Value[1 : len(c.Value)-1]
}

// Expressions

// Binary represents a two-operand operation. ValueType is fixed when the
// node is built.
type Binary struct {
	Position
	Op        Operation
	Left      Expression
	Right     Expression
	ValueType types.Type
}

func (b *Binary) Type() types.Type { return b.ValueType }

// Unary represents a one-operand operation, casts included
type Unary struct {
	Position
	Op        Operation
	Operand   Expression
	ValueType types.Type
}

func (u *Unary) Type() types.Type { return u.ValueType }

// VarRef is a use of a variable. It names its declaration rather than
// pointing at it; Size and Init are what the declaration held when the
// reference was resolved.
type VarRef struct {
	Position
	Name      string
	ValueType types.Type
	Size      int
	Init      bool
	IsParam   bool
}

func (v *VarRef) Type() types.Type { return v.ValueType }

// Call represents a function call. Callee is the declaring function and is
// not owned by the call.
type Call struct {
	Position
	Name   string
	Callee *Function
	Args   []Expression
}

func (c *Call) Type() types.Type {
	if c.Callee == nil {
		return types.Undefined
	}
	return c.Callee.ValueType
}

// Declarations and statements

// Variable is one declared name: a declarator of a VarDecl or a function
// parameter. Size is 0 for scalars. Size grows with every append while
// Declared keeps the size the source spelled out.
type Variable struct {
	Position
	Name      string
	ValueType types.Type
	Size      int
	Declared  int
	Init      bool
	IsParam   bool
	Assign    *Binary // initializer, nil when the declarator has none
}

func (v *Variable) Type() types.Type { return v.ValueType }

// Ref returns a reference to v as seen from the current point.
func (v *Variable) Ref(pos Position) *VarRef {
	return &VarRef{
		Position:  pos,
		Name:      v.Name,
		ValueType: v.ValueType,
		Size:      v.Size,
		Init:      v.Init,
		IsParam:   v.IsParam,
	}
}

// VarDecl represents a declaration statement: int a = 2, b
type VarDecl struct {
	Position
	ValueType types.Type
	Vars      []*Variable
}

func (d *VarDecl) Type() types.Type { return d.ValueType }

// Block represents a sequence of statements
type Block struct {
	Position
	Nodes []Node
}

func (*Block) Type() types.Type { return types.Undefined }

// Last returns the final statement of the block, or nil.
func (b *Block) Last() Node {
	if b == nil || len(b.Nodes) == 0 {
		return nil
	}
	return b.Nodes[len(b.Nodes)-1]
}

// If represents a conditional. Else is empty when absent, never nil.
type If struct {
	Position
	Cond Expression
	Then *Block
	Else *Block
}

func (*If) Type() types.Type { return types.Undefined }

// For represents a counted loop. Init and Post may be nil.
type For struct {
	Position
	Init Expression
	Cond Expression
	Post Expression
	Body *Block
}

func (*For) Type() types.Type { return types.Undefined }

// Function represents a function definition. Body is nil while the
// function is only declared.
type Function struct {
	Position
	Name      string
	ValueType types.Type
	Params    []*Variable
	Body      *Block
}

func (f *Function) Type() types.Type { return f.ValueType }

// Defined reports whether f has a body.
func (f *Function) Defined() bool { return f.Body != nil }

// SameParams reports whether f and params agree element-wise on names
// and types.
func (f *Function) SameParams(params []*Variable) bool {
	if len(f.Params) != len(params) {
		return false
	}
	for i, p := range f.Params {
		if p.Name != params[i].Name || p.ValueType != params[i].ValueType {
			return false
		}
	}
	return true
}

// HigherOrder represents map, fold or filter applied to an array. Func is
// the synthesized function; its body starts with Lambda.
type HigherOrder struct {
	Position
	Combinator Combinator
	Lambda     *Function
	Array      *VarRef
	Func       *Function
}

func (h *HigherOrder) Type() types.Type {
	if h.Func == nil {
		return types.Undefined
	}
	return h.Func.ValueType
}

// Return represents ret <expr>
type Return struct {
	Position
	Value Expression
}

func (r *Return) Type() types.Type {
	if r.Value == nil {
		return types.Undefined
	}
	return r.Value.Type()
}

func (*IntLit) node()      {}
func (*FloatLit) node()    {}
func (*BoolLit) node()     {}
func (*CharLit) node()     {}
func (*Binary) node()      {}
func (*Unary) node()       {}
func (*VarRef) node()      {}
func (*Call) node()        {}
func (*Variable) node()    {}
func (*VarDecl) node()     {}
func (*Block) node()       {}
func (*If) node()          {}
func (*For) node()         {}
func (*Function) node()    {}
func (*HigherOrder) node() {}
func (*Return) node()      {}

func (*IntLit) exprNode()   {}
func (*FloatLit) exprNode() {}
func (*BoolLit) exprNode()  {}
func (*CharLit) exprNode()  {}
func (*Binary) exprNode()   {}
func (*Unary) exprNode()    {}
func (*VarRef) exprNode()   {}
func (*Call) exprNode()     {}
