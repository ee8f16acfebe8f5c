package semantic_analyzer

import (
	"fmt"

	"github.com/scarlet-lang/scarlet/internal/ast"
	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

type SemanticError struct {
	message string

	line   int
	column int
}

func (e *SemanticError) GetMessage() string { return e.message }
func (e *SemanticError) GetLine() int       { return e.line }
func (e *SemanticError) GetColumn() int     { return e.column }

func newSemanticError(message string, loc lexer.Location) *SemanticError {
	return &SemanticError{
		message: message,

		line:   loc.Line,
		column: loc.Column,
	}
}

// SemanticAnalyzer resolves names and checks types in one pre-order pass
// over the program. It never stops at the first error: every reachable
// error lands in the sink and the traversal always completes.
type SemanticAnalyzer struct {
	eh compiler_errors.ErrorHandler

	symbols *SymbolTable

	currentExprType   types.DataType
	inFunction        bool
	currentReturnType types.DataType

	errCount int
}

func NewSemanticAnalyzer(eh compiler_errors.ErrorHandler) *SemanticAnalyzer {
	symbols := NewSymbolTable()
	registerBuiltins(symbols)

	return &SemanticAnalyzer{
		eh: eh,

		symbols: symbols,

		currentExprType:   types.Unknown,
		currentReturnType: types.Void,
	}
}

// Analyze checks the whole program and reports whether it produced no
// semantic errors. The AST is annotated in place: every expression's type
// field is filled in.
func (sa *SemanticAnalyzer) Analyze(program *ast.Program) bool {
	for _, stmt := range program.Stmts {
		sa.checkStmt(stmt)
	}

	return sa.errCount == 0
}

func (sa *SemanticAnalyzer) reportError(message string, loc lexer.Location) {
	sa.errCount++
	sa.eh.AddError(newSemanticError(message, loc))
}

func (sa *SemanticAnalyzer) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		sa.checkBlockStmt(s)
	case *ast.VarDeclStmt:
		sa.checkVarDeclStmt(s)
	case *ast.FuncDeclStmt:
		sa.checkFuncDeclStmt(s)
	case *ast.IfStmt:
		sa.checkIfStmt(s)
	case *ast.WhileStmt:
		sa.checkWhileStmt(s)
	case *ast.ReturnStmt:
		sa.checkReturnStmt(s)
	case *ast.ExprStmt:
		sa.checkExpr(s.Expr)
	default:
		panic(fmt.Sprintf("checkStmt: received unknown statement: %T", stmt))
	}
}

func (sa *SemanticAnalyzer) checkBlockStmt(stmt *ast.BlockStmt) {
	sa.symbols.EnterScope()

	for _, inner := range stmt.Stmts {
		sa.checkStmt(inner)
	}

	sa.symbols.ExitScope()
}

func (sa *SemanticAnalyzer) checkVarDeclStmt(stmt *ast.VarDeclStmt) {
	declaredType := stmt.DeclaredType

	initializerType := types.Unknown
	if stmt.Value != nil {
		initializerType = sa.checkExpr(stmt.Value)
	}

	if declaredType == types.Unknown {
		declaredType = initializerType
	} else if initializerType != types.Unknown && !types.Compatible(initializerType, declaredType) {
		sa.reportError(
			fmt.Sprintf("cannot initialize %s with %s", declaredType, initializerType),
			stmt.Location)
	}

	if declaredType == types.Void {
		sa.reportError(
			fmt.Sprintf("cannot declare variable of void type: %s", stmt.Name),
			stmt.Location)
		// The symbol degrades to Unknown, but the node keeps its source
		// annotation so re-analyzing the same tree reports the same error.
		declaredType = types.Unknown
	} else {
		// Later stages read the resolved type off the node.
		stmt.DeclaredType = declaredType
	}

	symbol := &Symbol{
		Name:       stmt.Name,
		Type:       declaredType,
		IsConstant: stmt.Const,
		Location:   stmt.Location,
	}
	if !sa.symbols.Insert(stmt.Name, symbol) {
		sa.reportError(
			fmt.Sprintf("variable already declared: %s", stmt.Name),
			stmt.Location)
	}
}

func (sa *SemanticAnalyzer) checkFuncDeclStmt(stmt *ast.FuncDeclStmt) {
	parameterTypes := make([]types.DataType, 0, len(stmt.Params))
	for _, param := range stmt.Params {
		parameterTypes = append(parameterTypes, param.Type)
	}

	symbol := &Symbol{
		Name:           stmt.Name,
		Type:           types.Function,
		IsFunction:     true,
		Location:       stmt.Location,
		ParameterTypes: parameterTypes,
		ReturnType:     stmt.ReturnType,
	}
	if !sa.symbols.Insert(stmt.Name, symbol) {
		sa.reportError(
			fmt.Sprintf("function already declared: %s", stmt.Name),
			stmt.Location)
		return
	}

	sa.symbols.EnterScope()
	wasInFunction := sa.inFunction
	wasReturnType := sa.currentReturnType

	sa.inFunction = true
	sa.currentReturnType = stmt.ReturnType

	for _, param := range stmt.Params {
		sa.symbols.Insert(param.Name, &Symbol{
			Name:     param.Name,
			Type:     param.Type,
			Location: stmt.Location,
		})
	}

	sa.checkStmt(stmt.Body)

	sa.inFunction = wasInFunction
	sa.currentReturnType = wasReturnType
	sa.symbols.ExitScope()
}

func (sa *SemanticAnalyzer) checkIfStmt(stmt *ast.IfStmt) {
	condType := sa.checkExpr(stmt.Cond)
	if condType != types.Bool {
		sa.reportError("if condition must be boolean", stmt.Cond.Loc())
	}

	sa.checkStmt(stmt.Then)
	if stmt.Else != nil {
		sa.checkStmt(stmt.Else)
	}
}

func (sa *SemanticAnalyzer) checkWhileStmt(stmt *ast.WhileStmt) {
	condType := sa.checkExpr(stmt.Cond)
	if condType != types.Bool {
		sa.reportError("while condition must be boolean", stmt.Cond.Loc())
	}

	sa.checkStmt(stmt.Body)
}

func (sa *SemanticAnalyzer) checkReturnStmt(stmt *ast.ReturnStmt) {
	if !sa.inFunction {
		sa.reportError("return statement outside function", stmt.Location)
		return
	}

	returnType := types.Void
	if stmt.Value != nil {
		returnType = sa.checkExpr(stmt.Value)
	}

	if !types.Compatible(returnType, sa.currentReturnType) {
		sa.reportError(
			fmt.Sprintf("return type mismatch: got %s, expected %s", returnType, sa.currentReturnType),
			stmt.Location)
	}
}

// checkExpr resolves and types one expression, stores the result on the
// node, and returns it.
func (sa *SemanticAnalyzer) checkExpr(expr ast.Expr) types.DataType {
	var exprType types.DataType

	switch e := expr.(type) {
	case *ast.LiteralExpr:
		exprType = e.ExprType

	case *ast.IdentExpr:
		symbol, ok := sa.symbols.Lookup(e.Name)
		if !ok {
			sa.reportError(fmt.Sprintf("undefined variable: %s", e.Name), e.Location)
			exprType = types.Unknown
			break
		}
		exprType = symbol.Type

	case *ast.BinaryExpr:
		leftType := sa.checkExpr(e.Left)
		rightType := sa.checkExpr(e.Right)

		exprType = resultType(e.Op, leftType, rightType)
		// An Unknown operand already produced its own diagnostic; reporting
		// the operator too would just cascade.
		if exprType == types.Unknown && leftType != types.Unknown && rightType != types.Unknown {
			sa.reportError(
				fmt.Sprintf("invalid operation '%s' between types %s and %s", e.Op, leftType, rightType),
				e.Location)
		}

	case *ast.UnaryExpr:
		operandType := sa.checkExpr(e.Operand)

		exprType = unaryResultType(e.Op, operandType)
		if exprType == types.Unknown && operandType != types.Unknown {
			sa.reportError(
				fmt.Sprintf("invalid unary operation '%s' on type %s", e.Op, operandType),
				e.Location)
		}

	case *ast.AssignExpr:
		exprType = sa.checkAssignExpr(e)

	case *ast.CallExpr:
		exprType = sa.checkCallExpr(e)

	default:
		panic(fmt.Sprintf("checkExpr: received unknown expression: %T", expr))
	}

	expr.SetType(exprType)
	sa.currentExprType = exprType

	return exprType
}

func (sa *SemanticAnalyzer) checkAssignExpr(expr *ast.AssignExpr) types.DataType {
	valueType := sa.checkExpr(expr.Value)

	symbol, ok := sa.symbols.Lookup(expr.Name)
	if !ok {
		sa.reportError(fmt.Sprintf("undefined variable: %s", expr.Name), expr.Location)
		return types.Unknown
	}

	if symbol.IsConstant {
		sa.reportError(fmt.Sprintf("cannot assign to constant: %s", expr.Name), expr.Location)
	}

	if !types.Compatible(valueType, symbol.Type) {
		sa.reportError(
			fmt.Sprintf("cannot assign %s to variable of type %s", valueType, symbol.Type),
			expr.Location)
	}

	return symbol.Type
}

func (sa *SemanticAnalyzer) checkCallExpr(expr *ast.CallExpr) types.DataType {
	symbol, ok := sa.symbols.Lookup(expr.Name)
	if !ok || !symbol.IsFunction {
		sa.reportError(fmt.Sprintf("undefined function: %s", expr.Name), expr.Location)
		// Arguments still get checked so their own errors surface.
		for _, arg := range expr.Args {
			sa.checkExpr(arg)
		}
		return types.Unknown
	}

	if len(expr.Args) != len(symbol.ParameterTypes) {
		sa.reportError(
			fmt.Sprintf("function %s expects %d arguments, got %d",
				expr.Name, len(symbol.ParameterTypes), len(expr.Args)),
			expr.Location)
		return types.Unknown
	}

	for i, arg := range expr.Args {
		argType := sa.checkExpr(arg)
		if !types.Compatible(argType, symbol.ParameterTypes[i]) {
			sa.reportError(
				fmt.Sprintf("argument %d type mismatch: got %s, expected %s",
					i+1, argType, symbol.ParameterTypes[i]),
				arg.Loc())
		}
	}

	return symbol.ReturnType
}
