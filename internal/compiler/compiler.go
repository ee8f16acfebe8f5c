// Package compiler drives the front end: lexing, parsing, semantic
// analysis and IR generation run in order, and each stage runs only when
// every stage before it finished clean. All diagnostics from the stages
// that did run land in one shared sink.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/scarlet-lang/scarlet/internal/ast"
	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/ir"
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/parser"
	"github.com/scarlet-lang/scarlet/internal/semantic_analyzer"
)

type LexicalError struct {
	message string

	line   int
	column int
}

func (e *LexicalError) GetMessage() string { return e.message }
func (e *LexicalError) GetLine() int       { return e.line }
func (e *LexicalError) GetColumn() int     { return e.column }

type Options struct {
	// ModuleName names the generated IR module, usually the source file
	// stem.
	ModuleName string

	Verbose bool
	Log     io.Writer
}

// Result carries whatever artifacts the pipeline got to before stopping.
// A later stage's artifact is nil whenever an earlier stage failed.
type Result struct {
	Tokens  []lexer.Token
	Program *ast.Program
	Module  *ir.Module

	LexOK   bool
	ParseOK bool
	SemaOK  bool
	IROK    bool
}

// OK reports whether every stage ran and succeeded.
func (r *Result) OK() bool {
	return r.LexOK && r.ParseOK && r.SemaOK && r.IROK
}

type Compiler struct {
	eh   compiler_errors.ErrorHandler
	opts Options
}

func New(eh compiler_errors.ErrorHandler, opts Options) *Compiler {
	if opts.ModuleName == "" {
		opts.ModuleName = "main"
	}
	return &Compiler{eh: eh, opts: opts}
}

func (c *Compiler) logf(format string, args ...any) {
	if !c.opts.Verbose || c.opts.Log == nil {
		return
	}
	fmt.Fprintf(c.opts.Log, format+"\n", args...)
}

// Compile runs the pipeline over the source. The returned result is never
// nil; check its stage flags or OK.
func (c *Compiler) Compile(source []byte) *Result {
	result := &Result{}

	c.logf("lexing %d bytes", len(source))
	lex := lexer.NewLexer(source)
	result.Tokens = lex.Tokenize()
	result.LexOK = c.reportLexicalErrors(result.Tokens)
	c.logf("lexing produced %d tokens", len(result.Tokens))
	if !result.LexOK {
		return result
	}

	c.logf("parsing")
	scanner := lexer.NewTokenScanner(result.Tokens)
	p := parser.NewParser(scanner, c.eh)
	program := p.Parse()
	result.ParseOK = !p.HadErrors()
	if !result.ParseOK {
		return result
	}
	result.Program = program
	c.logf("parsed %d top level statements", len(program.Stmts))

	c.logf("analyzing")
	sa := semantic_analyzer.NewSemanticAnalyzer(c.eh)
	result.SemaOK = sa.Analyze(program)
	if !result.SemaOK {
		return result
	}

	c.logf("generating ir")
	gen := ir.NewGenerator(c.eh)
	module, ok := gen.Generate(c.opts.ModuleName, program)
	result.IROK = ok
	if ok {
		result.Module = module
	}

	return result
}

// reportLexicalErrors turns any in-band error tokens into diagnostics and
// reports whether the stream was clean.
func (c *Compiler) reportLexicalErrors(tokens []lexer.Token) bool {
	clean := true
	for _, tok := range tokens {
		if tok.Kind != lexer.ERROR {
			continue
		}
		clean = false
		c.eh.AddError(&LexicalError{
			message: tok.Value,

			line:   tok.Location.Line,
			column: tok.Location.Column,
		})
	}

	return clean
}

// FormatTokens renders a token stream one token per line, in the form the
// -E flag prints. The trailing end of file marker is skipped.
func FormatTokens(tokens []lexer.Token) string {
	var sb strings.Builder
	for i := range tokens {
		if tokens[i].Kind == lexer.EOF {
			continue
		}
		sb.WriteString(tokens[i].String())
		sb.WriteString("\n")
	}

	return sb.String()
}
