package parser

import (
	"fmt"

	"github.com/scarlet-lang/scarlet/internal/ast"
	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

// SyntaxError is a recoverable parse error. It implements error so the
// parsing functions can hand it up the call chain, and CompilerError so the
// statement loop can record it in the sink.
type SyntaxError struct {
	Message  string
	Location lexer.Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

func (e *SyntaxError) GetMessage() string { return e.Message }
func (e *SyntaxError) GetLine() int       { return e.Location.Line }
func (e *SyntaxError) GetColumn() int     { return e.Location.Column }

func newSyntaxError(message string, loc lexer.Location) *SyntaxError {
	return &SyntaxError{
		Message:  message,
		Location: loc,
	}
}

// Parser builds the AST with a recursive descent over the token stream. It
// never gives up on the whole file: a malformed statement is recorded and
// the parser resynchronizes at the next statement boundary.
type Parser struct {
	scanner lexer.TokenScanner
	eh      compiler_errors.ErrorHandler

	curr lexer.Token
	prev lexer.Token

	errCount int
}

func NewParser(scanner lexer.TokenScanner, eh compiler_errors.ErrorHandler) *Parser {
	return &Parser{
		scanner: scanner,
		eh:      eh,

		curr: scanner.Read(),
	}
}

func (p *Parser) Parse() *ast.Program {
	stmts := make([]ast.Stmt, 0)

	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}

		stmts = append(stmts, stmt)
	}

	return &ast.Program{Stmts: stmts}
}

// HadErrors reports whether this parser recorded any syntax error.
func (p *Parser) HadErrors() bool {
	return p.errCount > 0
}

// Statements.

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.match(lexer.IF):
		return p.parseIfStatement()
	case p.match(lexer.WHILE):
		return p.parseWhileStatement()
	case p.match(lexer.RETURN):
		return p.parseReturnStatement()
	case p.match(lexer.LBRACE):
		return p.parseBlockStatement()
	case p.match(lexer.VAR), p.match(lexer.LET):
		return p.parseVariableDeclaration(false)
	case p.match(lexer.CONST):
		return p.parseVariableDeclaration(true)
	case p.match(lexer.FUNCTION):
		return p.parseFunctionDeclaration()
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{
		Expr:     expr,
		Location: expr.Loc(),
	}, nil
}

func (p *Parser) parseBlockStatement() (*ast.BlockStmt, error) {
	start := p.prev.Location

	stmts := make([]ast.Stmt, 0)
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if _, err := p.consume(lexer.RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}

	return &ast.BlockStmt{
		Stmts:    stmts,
		Location: start,
	}, nil
}

func (p *Parser) parseIfStatement() (ast.Stmt, error) {
	start := p.prev.Location

	if _, err := p.consume(lexer.LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.match(lexer.ELSE) {
		elseBranch, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{
		Cond:     cond,
		Then:     then,
		Else:     elseBranch,
		Location: start,
	}, nil
}

func (p *Parser) parseWhileStatement() (ast.Stmt, error) {
	start := p.prev.Location

	if _, err := p.consume(lexer.LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.RPAREN, "expected ')' after condition"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{
		Cond:     cond,
		Body:     body,
		Location: start,
	}, nil
}

func (p *Parser) parseReturnStatement() (ast.Stmt, error) {
	keyword := p.prev

	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = expr
	}

	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{
		Value:    value,
		Location: keyword.Location,
	}, nil
}

func (p *Parser) parseVariableDeclaration(constant bool) (ast.Stmt, error) {
	keyword := p.prev

	name, err := p.consume(lexer.IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}

	declaredType := types.Unknown
	if p.match(lexer.COLON) {
		declaredType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	var value ast.Expr
	if p.match(lexer.ASSIGN) {
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VarDeclStmt{
		Name:         name.Value,
		DeclaredType: declaredType,
		Value:        value,
		Const:        constant,
		Location:     keyword.Location,
	}, nil
}

func (p *Parser) parseFunctionDeclaration() (ast.Stmt, error) {
	name, err := p.consume(lexer.IDENT, "expected function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}

	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	returnType := types.Void
	if p.match(lexer.COLON) {
		returnType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.LBRACE, "expected '{' before function body"); err != nil {
		return nil, err
	}

	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDeclStmt{
		Name:       name.Value,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
		Location:   name.Location,
	}, nil
}

func (p *Parser) parseParameters() ([]ast.FuncParam, error) {
	params := make([]ast.FuncParam, 0)

	if p.check(lexer.RPAREN) {
		return params, nil
	}

	for {
		name, err := p.consume(lexer.IDENT, "expected parameter name")
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(lexer.COLON, "expected ':' after parameter name"); err != nil {
			return nil, err
		}

		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.FuncParam{
			Name: name.Value,
			Type: paramType,
		})

		if !p.match(lexer.COMMA) {
			break
		}
	}

	return params, nil
}

func (p *Parser) parseType() (types.DataType, error) {
	name, err := p.consume(lexer.IDENT, "expected type name")
	if err != nil {
		return types.Unknown, err
	}

	dataType, ok := types.ByName(name.Value)
	if !ok {
		return types.Unknown, newSyntaxError(
			fmt.Sprintf("unknown type: %s", name.Value),
			name.Location)
	}

	return dataType, nil
}

// Expressions, lowest precedence first. Everything is left-associative
// except assignment.

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	expr, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.ASSIGN) {
		equals := p.prev

		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		if ident, ok := expr.(*ast.IdentExpr); ok {
			return &ast.AssignExpr{
				Name:     ident.Name,
				Value:    value,
				Location: equals.Location,
			}, nil
		}

		// Reported, but the right-hand side still stands in as the value so
		// parsing continues.
		p.recordError(newSyntaxError("invalid assignment target", equals.Location))
		return value, nil
	}

	return expr, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LOR) {
		op := p.prev

		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}

		expr = &ast.BinaryExpr{
			Left:     expr,
			Op:       ast.Or,
			Right:    right,
			Location: op.Location,
		}
	}

	return expr, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LAND) {
		op := p.prev

		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}

		expr = &ast.BinaryExpr{
			Left:     expr,
			Op:       ast.And,
			Right:    right,
			Location: op.Location,
		}
	}

	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.EQ) || p.match(lexer.NEQ) {
		op := p.prev

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		operator := ast.Eq
		if op.Kind == lexer.NEQ {
			operator = ast.Neq
		}

		expr = &ast.BinaryExpr{
			Left:     expr,
			Op:       operator,
			Right:    right,
			Location: op.Location,
		}
	}

	return expr, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LT) || p.match(lexer.LEQ) || p.match(lexer.GT) || p.match(lexer.GEQ) {
		op := p.prev

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		var operator ast.Operator
		switch op.Kind {
		case lexer.LT:
			operator = ast.Lt
		case lexer.LEQ:
			operator = ast.Leq
		case lexer.GT:
			operator = ast.Gt
		case lexer.GEQ:
			operator = ast.Geq
		}

		expr = &ast.BinaryExpr{
			Left:     expr,
			Op:       operator,
			Right:    right,
			Location: op.Location,
		}
	}

	return expr, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.PLUS) || p.match(lexer.MINUS) {
		op := p.prev

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		operator := ast.Add
		if op.Kind == lexer.MINUS {
			operator = ast.Sub
		}

		expr = &ast.BinaryExpr{
			Left:     expr,
			Op:       operator,
			Right:    right,
			Location: op.Location,
		}
	}

	return expr, nil
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.ASTERISK) || p.match(lexer.SLASH) || p.match(lexer.PERCENT) {
		op := p.prev

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		var operator ast.Operator
		switch op.Kind {
		case lexer.ASTERISK:
			operator = ast.Mul
		case lexer.SLASH:
			operator = ast.Div
		case lexer.PERCENT:
			operator = ast.Mod
		}

		expr = &ast.BinaryExpr{
			Left:     expr,
			Op:       operator,
			Right:    right,
			Location: op.Location,
		}
	}

	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(lexer.NOT) || p.match(lexer.MINUS) {
		op := p.prev

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		operator := ast.Not
		if op.Kind == lexer.MINUS {
			operator = ast.Neg
		}

		return &ast.UnaryExpr{
			Op:       operator,
			Operand:  operand,
			Location: op.Location,
		}, nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.match(lexer.BOOL):
		return &ast.LiteralExpr{
			Value:    p.prev.Value,
			Location: p.prev.Location,
			ExprType: types.Bool,
		}, nil

	case p.match(lexer.NULL):
		return &ast.LiteralExpr{
			Value:    p.prev.Value,
			Location: p.prev.Location,
			ExprType: types.Unknown,
		}, nil

	case p.match(lexer.INT):
		return &ast.LiteralExpr{
			Value:    p.prev.Value,
			Location: p.prev.Location,
			ExprType: types.Int,
		}, nil

	case p.match(lexer.FLOAT):
		return &ast.LiteralExpr{
			Value:    p.prev.Value,
			Location: p.prev.Location,
			ExprType: types.Float,
		}, nil

	case p.match(lexer.STRING):
		return &ast.LiteralExpr{
			Value:    p.prev.Value,
			Location: p.prev.Location,
			ExprType: types.String,
		}, nil

	case p.match(lexer.IDENT):
		name := p.prev

		if p.match(lexer.LPAREN) {
			return p.parseCall(name)
		}

		return &ast.IdentExpr{
			Name:     name.Value,
			Location: name.Location,
		}, nil

	case p.match(lexer.LPAREN):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(lexer.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}

		return expr, nil
	}

	return nil, newSyntaxError("expected expression", p.curr.Location)
}

func (p *Parser) parseCall(name lexer.Token) (ast.Expr, error) {
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(lexer.RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}

	return &ast.CallExpr{
		Name:     name.Value,
		Args:     args,
		Location: name.Location,
	}, nil
}

func (p *Parser) parseArguments() ([]ast.Expr, error) {
	args := make([]ast.Expr, 0)

	if p.check(lexer.RPAREN) {
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if !p.match(lexer.COMMA) {
			break
		}
	}

	return args, nil
}

// Panic-mode recovery: discard the offending token, then keep discarding
// until a statement boundary, either a consumed ';' or a token that begins
// a new statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.prev.Kind == lexer.SEMICOLON {
			return
		}

		switch p.curr.Kind {
		case lexer.FUNCTION, lexer.VAR, lexer.LET, lexer.CONST,
			lexer.FOR, lexer.IF, lexer.WHILE, lexer.RETURN:
			return
		}

		p.advance()
	}
}

func (p *Parser) recordError(err error) {
	p.errCount++

	if syntaxErr, ok := err.(*SyntaxError); ok {
		p.eh.AddError(syntaxErr)
		return
	}

	p.eh.AddError(newSyntaxError(err.Error(), p.curr.Location))
}

func (p *Parser) consume(kind lexer.TokenKind, message string) (lexer.Token, error) {
	if p.check(kind) {
		p.advance()
		return p.prev, nil
	}

	return lexer.Token{}, newSyntaxError(message, p.curr.Location)
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	if p.isAtEnd() {
		return kind == lexer.EOF
	}

	return p.curr.Kind == kind
}

func (p *Parser) advance() {
	p.prev = p.curr
	if p.curr.Kind != lexer.EOF {
		p.curr = p.scanner.Read()
	}
}

func (p *Parser) isAtEnd() bool {
	return p.curr.Kind == lexer.EOF
}
