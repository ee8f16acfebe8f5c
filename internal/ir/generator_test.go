package ir

import (
	"testing"

	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/parser"
	"github.com/scarlet-lang/scarlet/internal/semantic_analyzer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

func generate(t *testing.T, input string) (*Module, bool) {
	t.Helper()

	tokens := lexer.NewLexer([]byte(input)).Tokenize()
	eh := compiler_errors.NewErrorHandler()
	p := parser.NewParser(lexer.NewTokenScanner(tokens), eh)
	program := p.Parse()
	if p.HadErrors() {
		t.Fatalf("unexpected parse errors in test input %q", input)
	}

	if !semantic_analyzer.NewSemanticAnalyzer(eh).Analyze(program) {
		msgs := make([]string, 0)
		for _, err := range eh.Errors() {
			msgs = append(msgs, err.GetMessage())
		}
		t.Fatalf("unexpected semantic errors in test input: %v", msgs)
	}

	return NewGenerator(eh).Generate("test", program)
}

func findFunction(t *testing.T, m *Module, name string) *Function {
	t.Helper()

	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}

	t.Fatalf("function %q not found in module", name)
	return nil
}

func TestGenerate_TopLevelStatementsBecomeMain(t *testing.T) {
	module, ok := generate(t, "var x: int = 2 + 3 * 4;")
	if !ok {
		t.Fatal("generation failed")
	}

	main := findFunction(t, module, "main")
	if main.ReturnType != types.Int {
		t.Fatalf("main return type wrong. got=%s", main.ReturnType)
	}

	if len(main.Slots) != 1 {
		t.Fatalf("slot count wrong. expected=1, got=%d", len(main.Slots))
	}
	if main.Slots[0].Name != "x" || main.Slots[0].Type != types.Int {
		t.Fatalf("slot wrong. got=%s %s", main.Slots[0].Name, main.Slots[0].Type)
	}

	// The initializer must group as 2 + (3*4): the multiplication is
	// emitted first, then the addition consumes its result.
	entry := main.Blocks[0]
	var binOps []*BinOp
	for _, instr := range entry.Instrs {
		if op, ok := instr.(*BinOp); ok {
			binOps = append(binOps, op)
		}
	}
	if len(binOps) != 2 {
		t.Fatalf("binop count wrong. expected=2, got=%d", len(binOps))
	}
	if binOps[0].Op != OpMul || binOps[1].Op != OpAdd {
		t.Fatalf("op order wrong. got=%s then %s", binOps[0].Op, binOps[1].Op)
	}
	if add := binOps[1]; add.Right != Value(binOps[0].Dst) {
		t.Fatal("addition does not consume the multiplication result")
	}

	// Implicit exit code.
	ret, ok := entry.Term.(*Ret)
	if !ok {
		t.Fatalf("main does not end with a return: %T", entry.Term)
	}
	c, ok := ret.Value.(*Const)
	if !ok || c.Value != "0" {
		t.Fatalf("main should return constant zero, got %#v", ret.Value)
	}
}

func TestGenerate_IfWithBothBranchesReturning(t *testing.T) {
	input := `function f(n: int): int { if (n <= 1) { return 1; } else { return n; } }`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed, expected no fallthrough diagnostic")
	}

	f := findFunction(t, module, "f")
	if len(f.Blocks) != 3 {
		t.Fatalf("block count wrong. expected=3 (entry/then/else), got=%d", len(f.Blocks))
	}

	condBr, ok := f.Blocks[0].Term.(*CondBr)
	if !ok {
		t.Fatalf("entry terminator wrong: %T", f.Blocks[0].Term)
	}
	if condBr.Then != f.Blocks[1] || condBr.Else != f.Blocks[2] {
		t.Fatal("conditional branch edges wrong")
	}

	for _, block := range f.Blocks[1:] {
		if _, ok := block.Term.(*Ret); !ok {
			t.Fatalf("branch block %q does not return: %T", block.Label, block.Term)
		}
	}
}

func TestGenerate_IfWithoutElseBranchesToMerge(t *testing.T) {
	input := `
var x: int = 0;
if (x < 1) {
	x = 2;
}
x = 3;
`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed")
	}

	main := findFunction(t, module, "main")
	if len(main.Blocks) != 3 {
		t.Fatalf("block count wrong. expected=3 (entry/then/merge), got=%d", len(main.Blocks))
	}

	condBr := main.Blocks[0].Term.(*CondBr)
	merge := main.Blocks[2]
	if condBr.Else != merge {
		t.Fatal("false edge should go straight to merge")
	}

	br, ok := main.Blocks[1].Term.(*Br)
	if !ok || br.Target != merge {
		t.Fatal("then block should branch to merge")
	}
}

func TestGenerate_WhileLoopShape(t *testing.T) {
	input := `
var i: int = 0;
while (i < 5) {
	i = i + 1;
}
`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed")
	}

	main := findFunction(t, module, "main")
	if len(main.Blocks) != 4 {
		t.Fatalf("block count wrong. expected=4 (entry/cond/body/after), got=%d", len(main.Blocks))
	}

	entry, cond, body, after := main.Blocks[0], main.Blocks[1], main.Blocks[2], main.Blocks[3]

	br, ok := entry.Term.(*Br)
	if !ok || br.Target != cond {
		t.Fatal("preheader should branch to the condition block")
	}

	condBr, ok := cond.Term.(*CondBr)
	if !ok || condBr.Then != body || condBr.Else != after {
		t.Fatal("condition block edges wrong")
	}

	backEdge, ok := body.Term.(*Br)
	if !ok || backEdge.Target != cond {
		t.Fatal("body should branch back to the condition block")
	}
}

func TestGenerate_AllocasOnlyInEntryBlock(t *testing.T) {
	input := `
function f(a: int): int {
	var outer: int = a;
	while (outer < 10) {
		var inner: int = outer * 2;
		outer = inner;
	}
	if (outer > 5) {
		var branched: float = 1.5;
		outer = outer + 1;
	}
	return outer;
}
`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed")
	}

	f := findFunction(t, module, "f")

	// a's slot plus outer, inner, branched.
	if len(f.Slots) != 4 {
		t.Fatalf("slot count wrong. expected=4, got=%d", len(f.Slots))
	}

	for i, block := range f.Blocks {
		for _, instr := range block.Instrs {
			if _, ok := instr.(*Alloca); ok && i != 0 {
				t.Fatalf("alloca found outside entry block, in %q", block.Label)
			}
		}
	}
}

func TestGenerate_EveryBlockHasExactlyOneTerminator(t *testing.T) {
	input := `
function f(n: int): int {
	if (n < 0) { return 0; }
	var i: int = 0;
	while (i < n) {
		i = i + 1;
	}
	return i;
}
function g() {
	print("side effect");
}
f(3);
g();
`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed")
	}

	for _, fn := range module.Functions {
		for _, block := range fn.Blocks {
			if block.Term == nil {
				t.Fatalf("%s: block %q has no terminator", fn.Name, block.Label)
			}
		}
	}
}

func TestGenerate_VoidFunctionGetsImplicitReturn(t *testing.T) {
	module, ok := generate(t, `function g() { print("hi"); }`)
	if !ok {
		t.Fatal("generation failed")
	}

	g := findFunction(t, module, "g")
	last := g.Blocks[len(g.Blocks)-1]

	ret, ok := last.Term.(*Ret)
	if !ok {
		t.Fatalf("terminator wrong: %T", last.Term)
	}
	if ret.Value != nil {
		t.Fatal("implicit return should be bare")
	}
}

func TestGenerate_MissingReturnReported(t *testing.T) {
	input := `function f(n: int): int { if (n < 0) { return 0; } }`

	tokens := lexer.NewLexer([]byte(input)).Tokenize()
	eh := compiler_errors.NewErrorHandler()
	p := parser.NewParser(lexer.NewTokenScanner(tokens), eh)
	program := p.Parse()
	semantic_analyzer.NewSemanticAnalyzer(eh).Analyze(program)

	_, ok := NewGenerator(eh).Generate("test", program)
	if ok {
		t.Fatal("expected generation failure")
	}

	found := false
	for _, err := range eh.Errors() {
		if err.GetMessage() == "missing return in function: f" {
			found = true
		}
	}
	if !found {
		t.Fatal("missing return diagnostic not reported")
	}
}

func TestGenerate_AssignmentThreadsValue(t *testing.T) {
	input := `
var x: int = 0;
var y: int = 0;
x = y = 3;
`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed")
	}

	main := findFunction(t, module, "main")
	entry := main.Blocks[0]

	// Both stores of the chained assignment must write the same constant.
	var stores []*Store
	for _, instr := range entry.Instrs {
		if st, ok := instr.(*Store); ok {
			stores = append(stores, st)
		}
	}
	// Two initializers plus the two chained stores.
	if len(stores) != 4 {
		t.Fatalf("store count wrong. expected=4, got=%d", len(stores))
	}

	yStore, xStore := stores[2], stores[3]
	if yStore.Slot.Name != "y" || xStore.Slot.Name != "x" {
		t.Fatalf("chained store order wrong: %q then %q", yStore.Slot.Name, xStore.Slot.Name)
	}
	if yStore.Value != xStore.Value {
		t.Fatal("chained assignment does not thread the stored value")
	}
}

func TestGenerate_PrintLowersToPrintf(t *testing.T) {
	module, ok := generate(t, `print("hello");`)
	if !ok {
		t.Fatal("generation failed")
	}

	printf := findFunction(t, module, "printf")
	if !printf.Variadic || !printf.IsPrototype() {
		t.Fatal("printf should be a variadic prototype")
	}

	main := findFunction(t, module, "main")
	var call *Call
	for _, instr := range main.Blocks[0].Instrs {
		if c, ok := instr.(*Call); ok {
			call = c
		}
	}
	if call == nil || call.Callee != "printf" {
		t.Fatalf("print did not lower to a printf call: %#v", call)
	}
	if len(call.Args) != 2 {
		t.Fatalf("printf argument count wrong. got=%d", len(call.Args))
	}
	format, ok := call.Args[0].(*Const)
	if !ok || format.Value != "%s\n" {
		t.Fatalf("format argument wrong: %#v", call.Args[0])
	}
}

func TestGenerate_ShadowedVariableGetsOwnSlot(t *testing.T) {
	input := `
var x: int = 1;
{
	var x: string = "shadow";
	print(x);
}
`

	module, ok := generate(t, input)
	if !ok {
		t.Fatal("generation failed")
	}

	main := findFunction(t, module, "main")
	if len(main.Slots) != 2 {
		t.Fatalf("slot count wrong. expected=2, got=%d", len(main.Slots))
	}
	if main.Slots[0].Name == main.Slots[1].Name {
		t.Fatal("shadowing slots share a name")
	}
}
