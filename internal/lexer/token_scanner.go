package lexer

type TokenScanner interface {
	Read() Token
}

type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

// Read returns the next token. Once the trailing EOF token has been handed
// out it is returned again on every further call, so readers past the end
// keep seeing EOF instead of panicking.
func (s *SimpleTokenScanner) Read() Token {
	if s.pos >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}

	token := s.tokens[s.pos]
	s.pos++

	return token
}
