package ir

import (
	"fmt"

	"github.com/scarlet-lang/scarlet/internal/ast"
	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

type GeneratorError struct {
	message string

	line   int
	column int
}

func (e *GeneratorError) GetMessage() string { return e.message }
func (e *GeneratorError) GetLine() int       { return e.line }
func (e *GeneratorError) GetColumn() int     { return e.column }

func newGeneratorError(message string, loc lexer.Location) *GeneratorError {
	return &GeneratorError{
		message: message,

		line:   loc.Line,
		column: loc.Column,
	}
}

// Generator lowers a type-annotated AST to the block IR. Function
// declarations each become one Function; every remaining top-level
// statement is folded into a synthesized main.
type Generator struct {
	eh compiler_errors.ErrorHandler

	module *Module

	fn    *Function
	entry *BasicBlock
	// block is the current insertion point. nil means the code being
	// lowered is unreachable and gets dropped.
	block *BasicBlock

	vars map[string]*Slot

	tempCount  int
	blockCount int

	errCount int
}

func NewGenerator(eh compiler_errors.ErrorHandler) *Generator {
	return &Generator{eh: eh}
}

// Generate lowers the whole program and reports whether it did so without
// errors.
func (g *Generator) Generate(moduleName string, program *ast.Program) (*Module, bool) {
	g.module = &Module{Name: moduleName}

	g.declarePrototypes()

	topLevel := make([]ast.Stmt, 0, len(program.Stmts))
	for _, stmt := range program.Stmts {
		if fn, ok := stmt.(*ast.FuncDeclStmt); ok {
			g.genFunction(fn)
			continue
		}
		topLevel = append(topLevel, stmt)
	}

	g.genMain(topLevel)

	return g.module, g.errCount == 0
}

func (g *Generator) reportError(message string, loc lexer.Location) {
	g.errCount++
	g.eh.AddError(newGeneratorError(message, loc))
}

// declarePrototypes emits the external declarations every module links
// against. print lowers to a printf call, so printf itself is the
// declared symbol.
func (g *Generator) declarePrototypes() {
	g.module.Functions = append(g.module.Functions,
		&Function{
			Name:       "printf",
			Params:     []*Slot{{Name: "format", Type: types.String}},
			ReturnType: types.Int,
			Variadic:   true,
		},
		&Function{
			Name:       "input",
			ReturnType: types.String,
		},
		&Function{
			Name:       "sqrt",
			Params:     []*Slot{{Name: "x", Type: types.Float}},
			ReturnType: types.Float,
		})
}

func (g *Generator) genMain(stmts []ast.Stmt) {
	decl := &ast.FuncDeclStmt{
		Name:       "main",
		ReturnType: types.Int,
		Body:       &ast.BlockStmt{Stmts: stmts},
	}

	g.genFunction(decl)
}

func (g *Generator) genFunction(decl *ast.FuncDeclStmt) {
	g.fn = &Function{
		Name:       decl.Name,
		ReturnType: decl.ReturnType,
	}
	g.module.Functions = append(g.module.Functions, g.fn)

	g.vars = make(map[string]*Slot)
	g.tempCount = 0
	g.blockCount = 0

	g.entry = g.newBlock("entry")
	g.startBlock(g.entry)

	for _, param := range decl.Params {
		paramSlot := &Slot{Name: param.Name, Type: param.Type}
		g.fn.Params = append(g.fn.Params, paramSlot)

		slot := g.newSlot(param.Name, param.Type)
		g.emit(&Store{Slot: slot, Value: &Arg{Slot: paramSlot}})
	}

	g.genStmt(decl.Body)

	if g.block != nil && !g.block.Terminated() {
		g.sealFallthrough(decl)
	}
}

// sealFallthrough terminates a function body that ran off the end. Void
// functions get an implicit bare return; main returns zero. Anything else
// is an error, but the block still gets a terminator so the IR stays
// well formed.
func (g *Generator) sealFallthrough(decl *ast.FuncDeclStmt) {
	switch {
	case decl.ReturnType == types.Void:
		g.block.Term = &Ret{}
	case decl.Name == "main":
		g.block.Term = &Ret{Value: &Const{Value: "0", Type: types.Int}}
	default:
		g.reportError(
			fmt.Sprintf("missing return in function: %s", decl.Name),
			decl.Location)
		g.block.Term = &Ret{Value: zeroValue(decl.ReturnType)}
	}
	g.block = nil
}

func zeroValue(t types.DataType) Value {
	switch t {
	case types.Float:
		return &Const{Value: "0.0", Type: types.Float}
	case types.Bool:
		return &Const{Value: "false", Type: types.Bool}
	case types.String:
		return &Const{Value: "", Type: types.String}
	default:
		return &Const{Value: "0", Type: types.Int}
	}
}

func (g *Generator) newBlock(name string) *BasicBlock {
	block := &BasicBlock{ID: g.blockCount}
	if g.blockCount == 0 {
		block.Label = name
	} else {
		block.Label = fmt.Sprintf("%s.%d", name, g.blockCount)
	}
	g.blockCount++

	return block
}

// startBlock appends the block to the function and makes it the insertion
// point. Blocks never reached by any edge are simply never started, so
// they never appear in the output.
func (g *Generator) startBlock(block *BasicBlock) {
	g.fn.Blocks = append(g.fn.Blocks, block)
	g.block = block
}

func (g *Generator) emit(instr Instr) {
	g.block.Instrs = append(g.block.Instrs, instr)
}

// newSlot allocates a stack slot in the entry block and binds the name to
// it. A shadowing declaration gets a suffixed slot name and rebinds the
// map entry.
func (g *Generator) newSlot(name string, t types.DataType) *Slot {
	slot := &Slot{Name: name, Type: t, Index: len(g.fn.Slots)}
	for _, existing := range g.fn.Slots {
		if existing.Name == name {
			slot.Name = fmt.Sprintf("%s.%d", name, slot.Index)
			break
		}
	}

	g.fn.Slots = append(g.fn.Slots, slot)
	g.entry.Instrs = append(g.entry.Instrs, &Alloca{Slot: slot})
	g.vars[name] = slot

	return slot
}

func (g *Generator) newTemp(t types.DataType) *Temp {
	temp := &Temp{ID: g.tempCount, Type: t}
	g.tempCount++

	return temp
}

func (g *Generator) genStmt(stmt ast.Stmt) {
	if g.block == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.BlockStmt:
		// Bindings introduced inside the block expire with it; the slots
		// themselves stay allocated in the entry block.
		saved := g.vars
		g.vars = make(map[string]*Slot, len(saved))
		for name, slot := range saved {
			g.vars[name] = slot
		}
		for _, inner := range s.Stmts {
			g.genStmt(inner)
		}
		g.vars = saved
	case *ast.VarDeclStmt:
		g.genVarDeclStmt(s)
	case *ast.FuncDeclStmt:
		g.genNestedFunction(s)
	case *ast.IfStmt:
		g.genIfStmt(s)
	case *ast.WhileStmt:
		g.genWhileStmt(s)
	case *ast.ReturnStmt:
		g.genReturnStmt(s)
	case *ast.ExprStmt:
		g.genExpr(s.Expr)
	default:
		panic(fmt.Sprintf("genStmt: received unknown statement: %T", stmt))
	}
}

func (g *Generator) genVarDeclStmt(stmt *ast.VarDeclStmt) {
	slot := g.newSlot(stmt.Name, stmt.DeclaredType)

	if stmt.Value != nil {
		value := g.genExpr(stmt.Value)
		g.emit(&Store{Slot: slot, Value: value})
	}
}

// genNestedFunction lowers a function declared inside another body. The
// emitted function is a sibling in the module; the surrounding insertion
// state is saved and restored around it.
func (g *Generator) genNestedFunction(stmt *ast.FuncDeclStmt) {
	fn, entry, block := g.fn, g.entry, g.block
	vars := g.vars
	tempCount, blockCount := g.tempCount, g.blockCount

	g.genFunction(stmt)

	g.fn, g.entry, g.block = fn, entry, block
	g.vars = vars
	g.tempCount, g.blockCount = tempCount, blockCount
}

func (g *Generator) genIfStmt(stmt *ast.IfStmt) {
	cond := g.genExpr(stmt.Cond)

	thenBlock := g.newBlock("if.then")
	merge := g.newBlock("if.merge")

	elseTarget := merge
	var elseBlock *BasicBlock
	if stmt.Else != nil {
		elseBlock = g.newBlock("if.else")
		elseTarget = elseBlock
	}

	g.block.Term = &CondBr{Cond: cond, Then: thenBlock, Else: elseTarget}

	mergeReached := stmt.Else == nil

	g.startBlock(thenBlock)
	g.genStmt(stmt.Then)
	if g.block != nil && !g.block.Terminated() {
		g.block.Term = &Br{Target: merge}
		mergeReached = true
	}

	if elseBlock != nil {
		g.startBlock(elseBlock)
		g.genStmt(stmt.Else)
		if g.block != nil && !g.block.Terminated() {
			g.block.Term = &Br{Target: merge}
			mergeReached = true
		}
	}

	if mergeReached {
		g.startBlock(merge)
	} else {
		g.block = nil
	}
}

func (g *Generator) genWhileStmt(stmt *ast.WhileStmt) {
	condBlock := g.newBlock("while.cond")
	bodyBlock := g.newBlock("while.body")
	afterBlock := g.newBlock("while.after")

	g.block.Term = &Br{Target: condBlock}

	g.startBlock(condBlock)
	cond := g.genExpr(stmt.Cond)
	g.block.Term = &CondBr{Cond: cond, Then: bodyBlock, Else: afterBlock}

	g.startBlock(bodyBlock)
	g.genStmt(stmt.Body)
	if g.block != nil && !g.block.Terminated() {
		g.block.Term = &Br{Target: condBlock}
	}

	g.startBlock(afterBlock)
}

func (g *Generator) genReturnStmt(stmt *ast.ReturnStmt) {
	var value Value
	if stmt.Value != nil {
		value = g.genExpr(stmt.Value)
	}

	g.block.Term = &Ret{Value: value}
	g.block = nil
}

func (g *Generator) genExpr(expr ast.Expr) Value {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return &Const{Value: e.Value, Type: e.Type()}

	case *ast.IdentExpr:
		slot, ok := g.vars[e.Name]
		if !ok {
			g.reportError(fmt.Sprintf("undefined variable: %s", e.Name), e.Location)
			return zeroValue(types.Int)
		}
		dst := g.newTemp(slot.Type)
		g.emit(&Load{Dst: dst, Slot: slot})
		return dst

	case *ast.BinaryExpr:
		left := g.genExpr(e.Left)
		right := g.genExpr(e.Right)
		dst := g.newTemp(e.Type())
		g.emit(&BinOp{Dst: dst, Op: opFor(e.Op), Left: left, Right: right})
		return dst

	case *ast.UnaryExpr:
		operand := g.genExpr(e.Operand)
		dst := g.newTemp(e.Type())
		g.emit(&UnOp{Dst: dst, Op: opFor(e.Op), Operand: operand})
		return dst

	case *ast.AssignExpr:
		value := g.genExpr(e.Value)
		slot, ok := g.vars[e.Name]
		if !ok {
			g.reportError(fmt.Sprintf("undefined variable: %s", e.Name), e.Location)
			return value
		}
		g.emit(&Store{Slot: slot, Value: value})
		return value

	case *ast.CallExpr:
		return g.genCallExpr(e)
	}

	panic(fmt.Sprintf("genExpr: received unknown expression: %T", expr))
}

func (g *Generator) genCallExpr(expr *ast.CallExpr) Value {
	if expr.Name == "print" {
		return g.genPrintCall(expr)
	}

	args := make([]Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		args = append(args, g.genExpr(arg))
	}

	call := &Call{Callee: expr.Name, Args: args, RetType: expr.Type()}
	if expr.Type() != types.Void {
		call.Dst = g.newTemp(expr.Type())
	}
	g.emit(call)

	if call.Dst == nil {
		return nil
	}
	return call.Dst
}

// genPrintCall lowers print to the variadic printf prototype with a fixed
// format string.
func (g *Generator) genPrintCall(expr *ast.CallExpr) Value {
	args := []Value{&Const{Value: "%s\n", Type: types.String}}
	for _, arg := range expr.Args {
		args = append(args, g.genExpr(arg))
	}

	g.emit(&Call{
		Callee:   "printf",
		Args:     args,
		RetType:  types.Int,
		Variadic: true,
	})

	return nil
}

func opFor(op ast.Operator) Op {
	switch op {
	case ast.Add:
		return OpAdd
	case ast.Sub:
		return OpSub
	case ast.Mul:
		return OpMul
	case ast.Div:
		return OpDiv
	case ast.Mod:
		return OpMod
	case ast.Eq:
		return OpEq
	case ast.Neq:
		return OpNeq
	case ast.Lt:
		return OpLt
	case ast.Leq:
		return OpLeq
	case ast.Gt:
		return OpGt
	case ast.Geq:
		return OpGeq
	case ast.And:
		return OpAnd
	case ast.Or:
		return OpOr
	case ast.Neg:
		return OpNeg
	case ast.Not:
		return OpNot
	}

	panic("illegal operator received")
}
