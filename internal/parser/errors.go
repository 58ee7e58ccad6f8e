package parser

import (
	"fmt"

	"github.com/lhaig/lukasiewicz/internal/ast"
	"github.com/lhaig/lukasiewicz/internal/diagnostic"
	"github.com/lhaig/lukasiewicz/internal/lexer"
	"github.com/lhaig/lukasiewicz/internal/sema"
)

// syncTokens are tokens the parser can synchronize to after an error
var syncTokens = map[lexer.TokenType]bool{
	lexer.INT_TYPE:   true,
	lexer.FLOAT_TYPE: true,
	lexer.BOOL_TYPE:  true,
	lexer.CHAR_TYPE:  true,
	lexer.IF:         true,
	lexer.FOR:        true,
	lexer.RET:        true,
	lexer.MAP:        true,
	lexer.FOLD:       true,
	lexer.FILTER:     true,
	lexer.RBRACE:     true,
	lexer.SEMICOLON:  true,
	lexer.EOF:        true,
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	b      *sema.Builder
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// peek returns the next token without consuming
func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise reports an error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		p.errorf(tok, "expected %s, got %s", tt, tok.Type)
		return tok
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// synchronize skips tokens until a sync point is found
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.current().Type == lexer.SEMICOLON {
			p.advance() // consume the semicolon and continue
			return
		}
		if syncTokens[p.current().Type] {
			return
		}
		p.advance()
	}
}

// errorf reports a syntax error at tok through the builder's sink
func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) {
	p.b.Table().Sink().Report(diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Kind:     diagnostic.Syntax,
		Message:  fmt.Sprintf(format, args...),
		Line:     tok.Line,
		Column:   tok.Column,
	})
}

func at(tok lexer.Token) ast.Position {
	return ast.At(tok.Line, tok.Column)
}
