// Package parser turns source text into calls on the node builder. It has
// no tree of its own: every node it returns was made by sema, and every
// name it sees goes through the builder's symbol table.
package parser

import (
	"strconv"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/hof"
	"github.com/lhaig/lukasiewicz/internal/lexer"
	"github.com/lhaig/lukasiewicz/internal/sema"
	"github.com/lhaig/lukasiewicz/internal/symtab"
	"github.com/lhaig/lukasiewicz/internal/types"
)

// New creates a new parser over source that builds through b
func New(source string, b *sema.Builder) *Parser {
	l := lexer.New(source)
	return &Parser{
		tokens: l.Tokenize(),
		pos:    0,
		b:      b,
	}
}

// ParseFragment parses src as a statement sequence in b's current scope.
// It is the single entry point for programs and synthesized code alike.
func ParseFragment(b *sema.Builder, src string) *ast.Block {
	return New(src, b).Parse()
}

// Attach makes ParseFragment the entry point b reparses through.
func Attach(b *sema.Builder) {
	b.SetFragmentParser(func(src string) *ast.Block {
		return ParseFragment(b, src)
	})
}

// Parse parses the whole token stream
func (p *Parser) Parse() *ast.Block {
	block := &ast.Block{Position: at(p.current())}
	for !p.check(lexer.EOF) {
		startPos := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			block.Nodes = append(block.Nodes, stmt)
		}
		if p.pos == startPos {
			// the expression parser already reported this token
			p.advance() // ensure forward progress to avoid infinite loop
			p.synchronize()
		}
	}
	return block
}

// parseBlock parses { statements } in a fresh scope
func (p *Parser) parseBlock() *ast.Block {
	p.b.Table().Enter()
	defer p.b.Table().Leave()
	return p.parseBlockBody()
}

// parseBlockBody parses { statements } in the current scope
func (p *Parser) parseBlockBody() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{Position: at(tok)}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			block.Nodes = append(block.Nodes, stmt)
		}
		if p.pos == startPos {
			p.advance()
			p.synchronize()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseStatement parses a statement. It returns nil for statements that
// leave nothing in the tree: separators, dropped declarations, and bodies
// attached to an earlier declaration.
func (p *Parser) parseStatement() ast.Node {
	tok := p.current()
	switch {
	case lexer.IsTypeKeyword(tok.Type):
		return p.parseTyped()
	case tok.Type == lexer.MAP || tok.Type == lexer.FOLD || tok.Type == lexer.FILTER:
		return p.parseHigherOrder()
	case tok.Type == lexer.IF:
		return p.parseIf()
	case tok.Type == lexer.FOR:
		return p.parseFor()
	case tok.Type == lexer.RET:
		return p.parseReturn()
	case tok.Type == lexer.LBRACE:
		return p.parseBlock()
	case tok.Type == lexer.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseExpression()
	}
}

// parseType parses: int|float|bool|char {ref}
func (p *Parser) parseType() types.Type {
	tok := p.advance()
	typ, ok := types.Lookup(tok.Literal)
	if !ok {
		p.errorf(tok, "expected a type, got %s", tok.Type)
		return types.Undefined
	}
	for p.match(lexer.REF) {
		typ = typ.PointerTo()
	}
	return typ
}

// parseTyped parses a declaration or a function, which share their prefix
func (p *Parser) parseTyped() ast.Node {
	tok := p.current()
	typ := p.parseType()
	if p.check(lexer.FUN) {
		if fn := p.parseFunction(tok, typ); fn != nil {
			return fn
		}
		return nil
	}
	return p.parseDeclaration(tok, typ)
}

// parseDeclaration parses: name[N] = expr, name, ...
func (p *Parser) parseDeclaration(tok lexer.Token, typ types.Type) ast.Node {
	var vars []*ast.Variable
	declType := types.Undefined

	for {
		nameTok := p.expect(lexer.IDENT)
		vt, size := typ, 0
		if p.match(lexer.LBRACKET) {
			size = p.parseSize()
			p.expect(lexer.RBRACKET)
			vt = typ.ArrayOf()
		}
		if len(vars) == 0 && !declType.Valid() {
			declType = vt
		}

		v, fresh := p.b.Declare(at(nameTok), nameTok.Literal, vt, size)
		if p.check(lexer.ASSIGN) {
			assignTok := p.advance()
			value := p.parseExpression()
			if fresh {
				p.b.Initialize(v, at(assignTok), value)
			}
		}
		if fresh {
			vars = append(vars, v)
		}

		if !p.match(lexer.COMMA) {
			break
		}
	}

	if len(vars) == 0 {
		return nil
	}
	return p.b.VarDecl(at(tok), declType, vars)
}

func (p *Parser) parseSize() int {
	tok := p.expect(lexer.INT_LIT)
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return 0
	}
	return n
}

// parseFunction parses: fun name(params) [block]
func (p *Parser) parseFunction(tok lexer.Token, typ types.Type) *ast.Function {
	p.expect(lexer.FUN)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParams()
	p.expect(lexer.RPAREN)

	hasBody := p.check(lexer.LBRACE)
	fn, status := p.b.DeclareFunction(at(tok), name.Literal, typ, params, hasBody)

	if hasBody {
		p.b.Table().Enter()
		for _, param := range fn.Params {
			p.b.Param(param)
		}
		body := p.parseBlockBody()
		p.b.Table().Leave()
		p.b.Function(fn, body)
	}

	if status != symtab.Fresh {
		return nil
	}
	return fn
}

// parseParams parses: type name, type name[], ...
func (p *Parser) parseParams() []*ast.Variable {
	var params []*ast.Variable
	if p.check(lexer.RPAREN) {
		return params
	}
	for {
		tok := p.current()
		typ := p.parseType()
		name := p.expect(lexer.IDENT)
		size := 0
		if p.match(lexer.LBRACKET) {
			if p.check(lexer.INT_LIT) {
				size = p.parseSize()
			}
			p.expect(lexer.RBRACKET)
			typ = typ.ArrayOf()
		}
		params = append(params, &ast.Variable{
			Position:  at(tok),
			Name:      name.Literal,
			ValueType: typ,
			Size:      size,
			Declared:  size,
			Init:      true,
			IsParam:   true,
		})
		if !p.match(lexer.COMMA) {
			return params
		}
	}
}

// parseHigherOrder parses: map|fold|filter ( function , array )
func (p *Parser) parseHigherOrder() ast.Node {
	tok := p.advance()
	kind, _ := ast.LookupCombinator(tok.Literal)
	p.expect(lexer.LPAREN)

	// The lambda and the expansion live in a scope of their own.
	p.b.Table().Enter()
	lambdaTok := p.current()
	lambda := p.parseFunction(lambdaTok, p.parseType())
	if lambda == nil {
		lambda = &ast.Function{Position: at(lambdaTok), Name: hof.LambdaName, ValueType: types.Undefined}
	}
	p.expect(lexer.COMMA)
	arrayTok := p.expect(lexer.IDENT)
	array := p.b.Ref(at(arrayTok), arrayTok.Literal)
	p.expect(lexer.RPAREN)

	h := hof.Expand(p.b, at(tok), kind, lambda, array)
	p.b.Table().Leave()

	if h.Func.ValueType.Valid() {
		p.b.DefineFunction(h.Func)
	}
	return h
}

// parseIf parses: if expr then block [else block]
func (p *Parser) parseIf() ast.Node {
	tok := p.expect(lexer.IF)
	cond := p.parseExpression()
	p.expect(lexer.THEN)
	then := p.parseBlock()

	var els *ast.Block
	if p.match(lexer.ELSE) {
		els = p.parseBlock()
	}
	return p.b.If(at(tok), cond, then, els)
}

// parseFor parses: for [expr], expr, [expr] block
func (p *Parser) parseFor() ast.Node {
	tok := p.expect(lexer.FOR)

	var init, post ast.Expression
	if !p.check(lexer.COMMA) {
		init = p.parseExpression()
	}
	p.expect(lexer.COMMA)
	cond := p.parseExpression()
	p.expect(lexer.COMMA)
	if !p.check(lexer.LBRACE) {
		post = p.parseExpression()
	}
	body := p.parseBlock()
	return p.b.For(at(tok), init, cond, post, body)
}

// parseReturn parses: ret expr
func (p *Parser) parseReturn() ast.Node {
	tok := p.expect(lexer.RET)
	return p.b.Return(at(tok), p.parseExpression())
}

// Expression parsing - precedence climbing

// Precedence levels (lowest to highest):
// 1. =            (right-associative)
// 2. <-
// 3. & |          (left-associative)
// 4. == != < > <= >=
// 5. + -          (left-associative)
// 6. * /          (left-associative)
// 7. unary (- ! [int] [float] [bool] [word] [len] [addr] [ref])
// 8. postfix ([])

const (
	precNone       = 0
	precAssign     = 1
	precAppend     = 2
	precLogic      = 3
	precComparison = 4
	precAdditive   = 5
	precMulti      = 6
)

var binaryOps = map[lexer.TokenType]ast.Operation{
	lexer.ASSIGN: ast.Assign,
	lexer.APPEND: ast.Append,
	lexer.AND:    ast.And,
	lexer.OR:     ast.Or,
	lexer.EQ:     ast.Eq,
	lexer.NEQ:    ast.Neq,
	lexer.LT:     ast.Lt,
	lexer.GT:     ast.Gt,
	lexer.LEQ:    ast.Leq,
	lexer.GEQ:    ast.Geq,
	lexer.PLUS:   ast.Add,
	lexer.MINUS:  ast.Sub,
	lexer.STAR:   ast.Mul,
	lexer.SLASH:  ast.Div,
}

var unaryOps = map[lexer.TokenType]ast.Operation{
	lexer.MINUS:      ast.Uminus,
	lexer.BANG:       ast.Not,
	lexer.CAST_INT:   ast.CastInt,
	lexer.CAST_FLOAT: ast.CastFloat,
	lexer.CAST_BOOL:  ast.CastBool,
	lexer.CAST_WORD:  ast.CastWord,
	lexer.LEN:        ast.Len,
	lexer.ADDR:       ast.Addr,
	lexer.DEREF:      ast.Ref,
}

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.ASSIGN:
		return precAssign
	case lexer.APPEND:
		return precAppend
	case lexer.AND, lexer.OR:
		return precLogic
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return precComparison
	case lexer.PLUS, lexer.MINUS:
		return precAdditive
	case lexer.STAR, lexer.SLASH:
		return precMulti
	default:
		return precNone
	}
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parsePrecedence(precAssign)
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expression {
	left := p.parseUnary()

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == precNone || prec < minPrec {
			break
		}

		op := p.advance()

		// Right-associative for assignment
		nextPrec := prec + 1
		if op.Type == lexer.ASSIGN {
			nextPrec = prec
		}

		right := p.parsePrecedence(nextPrec)
		left = p.b.Binary(at(op), binaryOps[op.Type], left, right)
	}

	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if op, ok := unaryOps[p.current().Type]; ok {
		tok := p.advance()
		operand := p.parseUnary()
		return p.b.Unary(at(tok), op, operand)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for p.check(lexer.LBRACKET) {
		tok := p.advance()
		index := p.parseExpression()
		p.expect(lexer.RBRACKET)
		expr = p.b.Binary(at(tok), ast.Index, expr, index)
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()

	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		return &ast.IntLit{Position: at(tok), Value: tok.Literal}
	case lexer.FLOAT_LIT:
		p.advance()
		return &ast.FloatLit{Position: at(tok), Value: tok.Literal}
	case lexer.CHAR_LIT, lexer.STRING_LIT:
		p.advance()
		return &ast.CharLit{Position: at(tok), Value: tok.Literal}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Position: at(tok), Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Position: at(tok), Value: false}
	case lexer.IDENT:
		p.advance()
		if p.match(lexer.LPAREN) {
			args := p.parseArgList()
			p.expect(lexer.RPAREN)
			return p.b.Call(at(tok), tok.Literal, args)
		}
		return p.b.Ref(at(tok), tok.Literal)
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	default:
		p.errorf(tok, "unexpected token %s in expression", tok.Type)
		if tok.Type != lexer.EOF && !syncTokens[tok.Type] {
			p.advance()
		}
		return &ast.VarRef{Position: at(tok), Name: "<error>", ValueType: types.Undefined}
	}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}
