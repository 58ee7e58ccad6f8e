package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT      // x, y, myVariable
	INT_LIT    // 123
	FLOAT_LIT  // 123.45
	CHAR_LIT   // 'a'
	STRING_LIT // "hello"

	// Keywords
	FUN
	REF
	IF
	THEN
	ELSE
	FOR
	RET
	TRUE
	FALSE
	MAP
	FOLD
	FILTER

	// Type keywords
	INT_TYPE
	FLOAT_TYPE
	BOOL_TYPE
	CHAR_TYPE

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	EQ     // ==
	NEQ    // !=
	LT     // <
	GT     // >
	LEQ    // <=
	GEQ    // >=
	ASSIGN // =
	AND    // &
	OR     // |
	BANG   // !
	APPEND // <-

	// Bracketed unary operators
	CAST_INT   // [int]
	CAST_FLOAT // [float]
	CAST_BOOL  // [bool]
	CAST_WORD  // [word]
	LEN        // [len]
	ADDR       // [addr]
	DEREF      // [ref]

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	SEMICOLON // ;
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenNames = map[TokenType]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENT:      "IDENT",
	INT_LIT:    "INT_LIT",
	FLOAT_LIT:  "FLOAT_LIT",
	CHAR_LIT:   "CHAR_LIT",
	STRING_LIT: "STRING_LIT",
	FUN:        "FUN",
	REF:        "REF",
	IF:         "IF",
	THEN:       "THEN",
	ELSE:       "ELSE",
	FOR:        "FOR",
	RET:        "RET",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	MAP:        "MAP",
	FOLD:       "FOLD",
	FILTER:     "FILTER",
	INT_TYPE:   "INT_TYPE",
	FLOAT_TYPE: "FLOAT_TYPE",
	BOOL_TYPE:  "BOOL_TYPE",
	CHAR_TYPE:  "CHAR_TYPE",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	EQ:         "==",
	NEQ:        "!=",
	LT:         "<",
	GT:         ">",
	LEQ:        "<=",
	GEQ:        ">=",
	ASSIGN:     "=",
	AND:        "&",
	OR:         "|",
	BANG:       "!",
	APPEND:     "<-",
	CAST_INT:   "[int]",
	CAST_FLOAT: "[float]",
	CAST_BOOL:  "[bool]",
	CAST_WORD:  "[word]",
	LEN:        "[len]",
	ADDR:       "[addr]",
	DEREF:      "[ref]",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	SEMICOLON:  ";",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("Token{Type: %s, Literal: %q, Line: %d, Column: %d}",
		t.Type, t.Literal, t.Line, t.Column)
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"fun":    FUN,
	"ref":    REF,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"for":    FOR,
	"ret":    RET,
	"true":   TRUE,
	"false":  FALSE,
	"map":    MAP,
	"fold":   FOLD,
	"filter": FILTER,
	"int":    INT_TYPE,
	"float":  FLOAT_TYPE,
	"bool":   BOOL_TYPE,
	"char":   CHAR_TYPE,
}

// bracketOps maps the word inside [..] to its unary operator token
var bracketOps = map[string]TokenType{
	"int":   CAST_INT,
	"float": CAST_FLOAT,
	"bool":  CAST_BOOL,
	"word":  CAST_WORD,
	"len":   LEN,
	"addr":  ADDR,
	"ref":   DEREF,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTypeKeyword reports whether tt names a base type
func IsTypeKeyword(tt TokenType) bool {
	return tt == INT_TYPE || tt == FLOAT_TYPE || tt == BOOL_TYPE || tt == CHAR_TYPE
}
