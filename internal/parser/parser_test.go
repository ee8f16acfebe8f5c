package parser

import (
	"testing"

	"github.com/scarlet-lang/scarlet/internal/ast"
	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

func parse(t *testing.T, input string) (*ast.Program, *Parser, compiler_errors.ErrorHandler) {
	t.Helper()

	tokens := lexer.NewLexer([]byte(input)).Tokenize()
	eh := compiler_errors.NewErrorHandler()
	p := NewParser(lexer.NewTokenScanner(tokens), eh)

	return p.Parse(), p, eh
}

func parseClean(t *testing.T, input string) *ast.Program {
	t.Helper()

	program, p, eh := parse(t, input)
	if p.HadErrors() {
		t.Fatalf("unexpected parse errors: %v", messages(eh))
	}

	return program
}

func messages(eh compiler_errors.ErrorHandler) []string {
	msgs := make([]string, 0, len(eh.Errors()))
	for _, err := range eh.Errors() {
		msgs = append(msgs, err.GetMessage())
	}

	return msgs
}

func TestParse_Precedence(t *testing.T) {
	program := parseClean(t, "1 + 2 * 3;")

	exprStmt, ok := program.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement is not an expression statement: %T", program.Stmts[0])
	}

	add, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok || add.Op != ast.Add {
		t.Fatalf("root is not an addition: %T", exprStmt.Expr)
	}

	left, ok := add.Left.(*ast.LiteralExpr)
	if !ok || left.Value != "1" {
		t.Fatalf("left operand wrong: %#v", add.Left)
	}

	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.Mul {
		t.Fatalf("right operand is not a multiplication: %T", add.Right)
	}
}

func TestParse_ComparisonBindsLooserThanTerm(t *testing.T) {
	program := parseClean(t, "a + 1 < b * 2;")

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	cmp, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok || cmp.Op != ast.Lt {
		t.Fatalf("root is not a comparison: %#v", exprStmt.Expr)
	}

	if _, ok := cmp.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("left side not grouped: %T", cmp.Left)
	}
	if _, ok := cmp.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("right side not grouped: %T", cmp.Right)
	}
}

func TestParse_AssignmentIsRightAssociative(t *testing.T) {
	program := parseClean(t, "x = y = 3;")

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	outer, ok := exprStmt.Expr.(*ast.AssignExpr)
	if !ok || outer.Name != "x" {
		t.Fatalf("outer assignment wrong: %#v", exprStmt.Expr)
	}

	inner, ok := outer.Value.(*ast.AssignExpr)
	if !ok || inner.Name != "y" {
		t.Fatalf("inner assignment wrong: %#v", outer.Value)
	}
}

func TestParse_ParenthesesOverridePrecedence(t *testing.T) {
	program := parseClean(t, "(1 + 2) * 3;")

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	mul, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.Mul {
		t.Fatalf("root is not a multiplication: %#v", exprStmt.Expr)
	}

	add, ok := mul.Left.(*ast.BinaryExpr)
	if !ok || add.Op != ast.Add {
		t.Fatalf("left side is not the parenthesized addition: %T", mul.Left)
	}
}

func TestParse_VariableDeclaration(t *testing.T) {
	tests := []struct {
		input        string
		name         string
		declaredType types.DataType
		constant     bool
		hasValue     bool
	}{
		{"var x: int = 1;", "x", types.Int, false, true},
		{"let y = 2.5;", "y", types.Unknown, false, true},
		{"const z: bool = true;", "z", types.Bool, true, true},
		{"var s: string;", "s", types.String, false, false},
	}

	for _, tt := range tests {
		program := parseClean(t, tt.input)

		decl, ok := program.Stmts[0].(*ast.VarDeclStmt)
		if !ok {
			t.Fatalf("%q - not a variable declaration: %T", tt.input, program.Stmts[0])
		}

		if decl.Name != tt.name {
			t.Fatalf("%q - name wrong. expected=%q, got=%q", tt.input, tt.name, decl.Name)
		}
		if decl.DeclaredType != tt.declaredType {
			t.Fatalf("%q - type wrong. expected=%s, got=%s", tt.input, tt.declaredType, decl.DeclaredType)
		}
		if decl.Const != tt.constant {
			t.Fatalf("%q - const wrong. expected=%v, got=%v", tt.input, tt.constant, decl.Const)
		}
		if (decl.Value != nil) != tt.hasValue {
			t.Fatalf("%q - initializer presence wrong", tt.input)
		}
	}
}

func TestParse_FunctionDeclaration(t *testing.T) {
	program := parseClean(t, "function add(a: int, b: int): int { return a + b; }")

	fn, ok := program.Stmts[0].(*ast.FuncDeclStmt)
	if !ok {
		t.Fatalf("not a function declaration: %T", program.Stmts[0])
	}

	if fn.Name != "add" {
		t.Fatalf("name wrong. got=%q", fn.Name)
	}
	if fn.ReturnType != types.Int {
		t.Fatalf("return type wrong. got=%s", fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("params wrong. got=%#v", fn.Params)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("body statement count wrong. got=%d", len(fn.Body.Stmts))
	}
}

func TestParse_FunctionWithoutReturnTypeIsVoid(t *testing.T) {
	program := parseClean(t, "function greet() { print(\"hi\"); }")

	fn := program.Stmts[0].(*ast.FuncDeclStmt)
	if fn.ReturnType != types.Void {
		t.Fatalf("return type wrong. expected=void, got=%s", fn.ReturnType)
	}
}

func TestParse_IfElse(t *testing.T) {
	program := parseClean(t, "if (x < 1) { return; } else { x = 2; }")

	stmt, ok := program.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("not an if statement: %T", program.Stmts[0])
	}
	if stmt.Else == nil {
		t.Fatal("else branch missing")
	}
}

func TestParse_While(t *testing.T) {
	program := parseClean(t, "while (i < 5) { i = i + 1; }")

	stmt, ok := program.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("not a while statement: %T", program.Stmts[0])
	}
	if _, ok := stmt.Cond.(*ast.BinaryExpr); !ok {
		t.Fatalf("condition wrong: %T", stmt.Cond)
	}
}

func TestParse_Call(t *testing.T) {
	program := parseClean(t, "print(\"a\", 1 + 2);")

	exprStmt := program.Stmts[0].(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("not a call: %T", exprStmt.Expr)
	}
	if call.Name != "print" || len(call.Args) != 2 {
		t.Fatalf("call wrong. name=%q args=%d", call.Name, len(call.Args))
	}
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	_, p, eh := parse(t, "1 = 2;")

	if !p.HadErrors() {
		t.Fatal("expected an error, got none")
	}

	msgs := messages(eh)
	if len(msgs) != 1 || msgs[0] != "invalid assignment target" {
		t.Fatalf("messages wrong. got=%v", msgs)
	}
}

func TestParse_RecoversAtStatementBoundary(t *testing.T) {
	input := `
var x = ;
var y = 2;
var z = @;
var w = 4;
`

	program, p, eh := parse(t, input)

	if !p.HadErrors() {
		t.Fatal("expected errors, got none")
	}
	if len(eh.Errors()) < 2 {
		t.Fatalf("expected at least two diagnostics, got=%v", messages(eh))
	}

	// The good declarations around the bad ones must survive.
	names := make([]string, 0)
	for _, stmt := range program.Stmts {
		if decl, ok := stmt.(*ast.VarDeclStmt); ok {
			names = append(names, decl.Name)
		}
	}
	if len(names) != 2 || names[0] != "y" || names[1] != "w" {
		t.Fatalf("recovered declarations wrong. got=%v", names)
	}
}

func TestParse_UnknownType(t *testing.T) {
	_, p, eh := parse(t, "var x: banana = 1;")

	if !p.HadErrors() {
		t.Fatal("expected an error, got none")
	}

	msgs := messages(eh)
	if msgs[0] != "unknown type: banana" {
		t.Fatalf("message wrong. got=%q", msgs[0])
	}
}

func TestParse_ForIsRejected(t *testing.T) {
	_, p, _ := parse(t, "for (i = 0;;) {}")

	if !p.HadErrors() {
		t.Fatal("expected an error for the unsupported for statement")
	}
}

func TestParse_AlwaysConsumesAllInput(t *testing.T) {
	inputs := []string{
		"var = ; } ) ( if",
		"function { { {",
		";;;;",
		"= = = =",
	}

	for _, input := range inputs {
		program, _, _ := parse(t, input)
		if program == nil {
			t.Fatalf("%q - Parse returned nil", input)
		}
	}
}
