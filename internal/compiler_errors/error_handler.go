package compiler_errors

import (
	"fmt"
	"io"
)

// CompilerError is one diagnostic with a source position. Line and column
// are 1-based; a zero line means the error has no usable location.
type CompilerError interface {
	GetMessage() string
	GetLine() int
	GetColumn() int
}

// ErrorHandler is the diagnostics sink shared by every stage. Stages only
// ever append; nothing aborts mid-stage, so a run always reports the full
// set of collected diagnostics.
type ErrorHandler interface {
	AddError(err CompilerError)
	HasErrors() bool
	Errors() []CompilerError
	Report(w io.Writer)
}

type CompilerErrorHandler struct {
	errors []CompilerError
}

func NewErrorHandler() ErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]CompilerError, 0),
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	return eh.errors
}

func (eh *CompilerErrorHandler) Report(w io.Writer) {
	for _, err := range eh.errors {
		if err.GetLine() > 0 {
			fmt.Fprintf(w, "ERROR: %d:%d: %s\n", err.GetLine(), err.GetColumn(), err.GetMessage())
			continue
		}

		fmt.Fprintf(w, "ERROR: %s\n", err.GetMessage())
	}
}
