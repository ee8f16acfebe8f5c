package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota
	ERROR

	INT
	FLOAT
	STRING
	BOOL
	NULL

	IDENT

	IF
	ELSE
	WHILE
	FOR
	RETURN
	FUNCTION
	VAR
	LET
	CONST

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %

	ASSIGN // =

	EQ  // ==
	NEQ // !=
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	LAND // &&
	LOR  // ||
	NOT  // !

	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	SEMICOLON // ;
	COLON     // :
	COMMA     // ,
	DOT       // .
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case ERROR:
		return "ERROR"
	case INT:
		return "INT"
	case FLOAT:
		return "FLOAT"
	case STRING:
		return "STRING"
	case BOOL:
		return "BOOL"
	case NULL:
		return "NULL"
	case IDENT:
		return "IDENT"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case WHILE:
		return "WHILE"
	case FOR:
		return "FOR"
	case RETURN:
		return "RETURN"
	case FUNCTION:
		return "FUNCTION"
	case VAR:
		return "VAR"
	case LET:
		return "LET"
	case CONST:
		return "CONST"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case ASSIGN:
		return "ASSIGN"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case LAND:
		return "LAND"
	case LOR:
		return "LOR"
	case NOT:
		return "NOT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case SEMICOLON:
		return "SEMICOLON"
	case COLON:
		return "COLON"
	case COMMA:
		return "COMMA"
	case DOT:
		return "DOT"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

var keywords = map[string]TokenKind{
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"return":   RETURN,
	"function": FUNCTION,
	"var":      VAR,
	"let":      LET,
	"const":    CONST,
	"true":     BOOL,
	"false":    BOOL,
	"null":     NULL,
}

// Token is one lexical unit. Value holds the lexeme; for ERROR tokens it
// holds the diagnostic message instead.
type Token struct {
	Kind     TokenKind
	Value    string
	Location Location
}

func (t *Token) String() string {
	return fmt.Sprintf("%s('%s', %s)", t.Kind, t.Value, t.Location)
}
