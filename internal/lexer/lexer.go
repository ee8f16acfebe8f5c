package lexer

import (
	"fmt"
)

// Lexer scans raw source bytes into tokens. It is total: malformed input
// becomes an in-band ERROR token and scanning keeps going, so the token
// stream for a file is always produced in full.
type Lexer struct {
	buf []byte
	pos int

	loc Location
}

func NewLexer(buf []byte) *Lexer {
	return &Lexer{
		buf: buf,
		pos: 0,

		loc: NewLocation(),
	}
}

// Tokenize scans the whole buffer. The result always ends with exactly one
// EOF token located right after the last consumed character.
func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for l.hasChars() {
		switch {
		case l.isCurrSkippable():
			l.advance()

		case l.read() == '/' && l.next() == '/':
			l.skipComment()

		case l.isCurrDigit():
			tokens = append(tokens, l.processNumber())

		case l.isCurrIdentifier():
			tokens = append(tokens, l.processIdentifier())

		case l.read() == '"':
			tokens = append(tokens, l.processStringLiteral())

		default:
			tokens = append(tokens, l.processPunctuation())
		}
	}

	tokens = append(tokens, Token{
		Kind:     EOF,
		Location: l.loc,
	})

	return tokens
}

func (l *Lexer) isCurrIdentifier() bool {
	return (l.read() >= 'a' && l.read() <= 'z') || (l.read() >= 'A' && l.read() <= 'Z') || l.read() == '_'
}

func (l *Lexer) isCurrDigit() bool {
	return l.read() >= '0' && l.read() <= '9'
}

func (l *Lexer) isCurrSkippable() bool {
	switch l.read() {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

func (l *Lexer) skipComment() {
	for l.hasChars() && l.read() != '\n' {
		l.advance()
	}
}

func (l *Lexer) processIdentifier() Token {
	start := l.loc

	identifierBuf := make([]byte, 0)
	identifierBuf = append(identifierBuf, l.read())
	l.advance()

	for l.hasChars() {
		if !l.isCurrIdentifier() && !l.isCurrDigit() {
			break
		}

		identifierBuf = append(identifierBuf, l.read())
		l.advance()
	}
	identifier := string(identifierBuf)

	if kind, ok := keywords[identifier]; ok {
		return Token{
			Kind:     kind,
			Value:    identifier,
			Location: start,
		}
	}

	return Token{
		Kind:     IDENT,
		Value:    identifier,
		Location: start,
	}
}

func (l *Lexer) processNumber() Token {
	start := l.loc

	numberBuf := make([]byte, 0)
	numberBuf = append(numberBuf, l.read())
	l.advance()

	// At most one dot is consumed; a second dot ends the token and is lexed
	// separately as DOT.
	var isFloat bool
	for l.hasChars() {
		if l.read() == '.' && !isFloat {
			isFloat = true
			numberBuf = append(numberBuf, l.read())
			l.advance()
			continue
		}

		if !l.isCurrDigit() {
			break
		}

		numberBuf = append(numberBuf, l.read())
		l.advance()
	}

	kind := INT
	if isFloat {
		kind = FLOAT
	}

	return Token{
		Kind:     kind,
		Value:    string(numberBuf),
		Location: start,
	}
}

func (l *Lexer) processStringLiteral() Token {
	start := l.loc
	l.advance()

	stringBuf := make([]byte, 0)
	for l.hasChars() {
		if l.read() == '"' {
			l.advance()
			return Token{
				Kind:     STRING,
				Value:    string(stringBuf),
				Location: start,
			}
		}

		// The newline stays unconsumed so scanning resumes on the next line.
		if l.read() == '\n' {
			return l.errorToken("unterminated string", start)
		}

		stringBuf = append(stringBuf, l.read())
		l.advance()
	}

	return l.errorToken("unterminated string", start)
}

func (l *Lexer) processPunctuation() Token {
	start := l.loc
	c := l.read()
	l.advance()

	// Two-character operators are tried before the single-character ones.
	if l.hasChars() {
		twoChar := string([]byte{c, l.read()})

		switch twoChar {
		case "==":
			l.advance()
			return Token{Kind: EQ, Value: twoChar, Location: start}
		case "!=":
			l.advance()
			return Token{Kind: NEQ, Value: twoChar, Location: start}
		case "<=":
			l.advance()
			return Token{Kind: LEQ, Value: twoChar, Location: start}
		case ">=":
			l.advance()
			return Token{Kind: GEQ, Value: twoChar, Location: start}
		case "&&":
			l.advance()
			return Token{Kind: LAND, Value: twoChar, Location: start}
		case "||":
			l.advance()
			return Token{Kind: LOR, Value: twoChar, Location: start}
		}
	}

	switch c {
	case '(':
		return Token{Kind: LPAREN, Value: "(", Location: start}
	case ')':
		return Token{Kind: RPAREN, Value: ")", Location: start}
	case '{':
		return Token{Kind: LBRACE, Value: "{", Location: start}
	case '}':
		return Token{Kind: RBRACE, Value: "}", Location: start}
	case '[':
		return Token{Kind: LBRACKET, Value: "[", Location: start}
	case ']':
		return Token{Kind: RBRACKET, Value: "]", Location: start}
	case ';':
		return Token{Kind: SEMICOLON, Value: ";", Location: start}
	case ':':
		return Token{Kind: COLON, Value: ":", Location: start}
	case ',':
		return Token{Kind: COMMA, Value: ",", Location: start}
	case '.':
		return Token{Kind: DOT, Value: ".", Location: start}
	case '+':
		return Token{Kind: PLUS, Value: "+", Location: start}
	case '-':
		return Token{Kind: MINUS, Value: "-", Location: start}
	case '*':
		return Token{Kind: ASTERISK, Value: "*", Location: start}
	case '/':
		return Token{Kind: SLASH, Value: "/", Location: start}
	case '%':
		return Token{Kind: PERCENT, Value: "%", Location: start}
	case '=':
		return Token{Kind: ASSIGN, Value: "=", Location: start}
	case '<':
		return Token{Kind: LT, Value: "<", Location: start}
	case '>':
		return Token{Kind: GT, Value: ">", Location: start}
	case '!':
		return Token{Kind: NOT, Value: "!", Location: start}
	default:
		return l.errorToken(fmt.Sprintf("unexpected character: '%s'", string(c)), start)
	}
}

func (l *Lexer) errorToken(message string, loc Location) Token {
	return Token{
		Kind:     ERROR,
		Value:    message,
		Location: loc,
	}
}

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) advance() {
	if !l.hasChars() {
		return
	}

	l.loc.Advance(l.buf[l.pos])
	l.pos++
}

func (l *Lexer) read() byte { return l.buf[l.pos] }

func (l *Lexer) next() byte {
	if l.pos+1 >= len(l.buf) {
		return 0
	}

	return l.buf[l.pos+1]
}
