package lexer

import "fmt"

// Location is a position in the source text. Line and Column are 1-based,
// Offset is the 0-based byte offset. Locations are plain values and are
// copied freely between tokens, AST nodes and diagnostics.
type Location struct {
	Line   int
	Column int
	Offset int
}

func NewLocation() Location {
	return Location{Line: 1, Column: 1, Offset: 0}
}

// Advance moves the location past a single character. A newline resets the
// column and bumps the line; every character bumps the offset.
func (l *Location) Advance(c byte) {
	if c == '\n' {
		l.Line++
		l.Column = 1
	} else {
		l.Column++
	}
	l.Offset++
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
