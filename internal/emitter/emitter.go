// Package emitter translates the block IR into LLVM IR. It is a thin
// walk over the module: slots become allocas, temps become LLVM values,
// and every coercion between int and float is materialized here, where
// the value widths are concrete.
package emitter

import (
	"fmt"
	"strconv"

	"tinygo.org/x/go-llvm"

	"github.com/scarlet-lang/scarlet/internal/ir"
	"github.com/scarlet-lang/scarlet/internal/types"
)

type Emitter struct {
	irModule *ir.Module

	context llvm.Context
	module  llvm.Module
	builder llvm.Builder

	funcsMap map[string]llvm.Value
	irFuncs  map[string]*ir.Function

	currentIRFunc *ir.Function
	currentFunc   llvm.Value
	slotsMap      map[*ir.Slot]llvm.Value
	tempsMap      map[*ir.Temp]llvm.Value
	blocksMap     map[*ir.BasicBlock]llvm.BasicBlock
	paramsMap     map[*ir.Slot]llvm.Value
}

func NewEmitter(irModule *ir.Module) *Emitter {
	context := llvm.NewContext()
	return &Emitter{
		irModule: irModule,

		context: context,
		module:  context.NewModule(irModule.Name),
		builder: context.NewBuilder(),

		funcsMap: make(map[string]llvm.Value),
		irFuncs:  make(map[string]*ir.Function),
	}
}

func (e *Emitter) Emit() llvm.Module {
	for _, fn := range e.irModule.Functions {
		e.declareFunction(fn)
	}

	for _, fn := range e.irModule.Functions {
		if !fn.IsPrototype() {
			e.emitFunction(fn)
		}
	}

	return e.module
}

func (e *Emitter) llvmType(t types.DataType) llvm.Type {
	switch t {
	case types.Void:
		return e.context.VoidType()
	case types.Float:
		return e.context.DoubleType()
	case types.Bool:
		return e.context.Int1Type()
	case types.String:
		return llvm.PointerType(e.context.Int8Type(), 0)
	default:
		return e.context.Int32Type()
	}
}

func (e *Emitter) declareFunction(fn *ir.Function) {
	paramTypes := make([]llvm.Type, 0, len(fn.Params))
	for _, param := range fn.Params {
		paramTypes = append(paramTypes, e.llvmType(param.Type))
	}

	funcType := llvm.FunctionType(e.llvmType(fn.ReturnType), paramTypes, fn.Variadic)
	e.funcsMap[fn.Name] = llvm.AddFunction(e.module, fn.Name, funcType)
	e.irFuncs[fn.Name] = fn
}

func (e *Emitter) emitFunction(fn *ir.Function) {
	e.currentIRFunc = fn
	e.currentFunc = e.funcsMap[fn.Name]
	e.slotsMap = make(map[*ir.Slot]llvm.Value)
	e.tempsMap = make(map[*ir.Temp]llvm.Value)
	e.blocksMap = make(map[*ir.BasicBlock]llvm.BasicBlock)
	e.paramsMap = make(map[*ir.Slot]llvm.Value)

	for i, param := range fn.Params {
		e.paramsMap[param] = e.currentFunc.Param(i)
	}

	for _, block := range fn.Blocks {
		e.blocksMap[block] = llvm.AddBasicBlock(e.currentFunc, block.Label)
	}

	for _, block := range fn.Blocks {
		e.builder.SetInsertPointAtEnd(e.blocksMap[block])
		for _, instr := range block.Instrs {
			e.emitInstr(instr)
		}
		e.emitTerminator(block.Term)
	}
}

func (e *Emitter) emitInstr(instr ir.Instr) {
	switch i := instr.(type) {
	case *ir.Alloca:
		e.slotsMap[i.Slot] = e.builder.CreateAlloca(e.llvmType(i.Slot.Type), i.Slot.Name)
	case *ir.Load:
		e.tempsMap[i.Dst] = e.builder.CreateLoad(
			e.llvmType(i.Slot.Type), e.slotsMap[i.Slot], "")
	case *ir.Store:
		value := e.coerce(e.value(i.Value), i.Value.ValueType(), i.Slot.Type)
		e.builder.CreateStore(value, e.slotsMap[i.Slot])
	case *ir.BinOp:
		e.emitBinOp(i)
	case *ir.UnOp:
		e.emitUnOp(i)
	case *ir.Call:
		e.emitCall(i)
	default:
		panic(fmt.Sprintf("emitInstr: received unknown instruction: %T", instr))
	}
}

func (e *Emitter) emitTerminator(term ir.Terminator) {
	switch t := term.(type) {
	case *ir.Br:
		e.builder.CreateBr(e.blocksMap[t.Target])
	case *ir.CondBr:
		e.builder.CreateCondBr(e.value(t.Cond), e.blocksMap[t.Then], e.blocksMap[t.Else])
	case *ir.Ret:
		if t.Value == nil {
			e.builder.CreateRetVoid()
			return
		}
		value := e.coerce(e.value(t.Value), t.Value.ValueType(), e.currentIRFunc.ReturnType)
		e.builder.CreateRet(value)
	default:
		panic(fmt.Sprintf("emitTerminator: received unknown terminator: %T", term))
	}
}

func (e *Emitter) value(v ir.Value) llvm.Value {
	switch val := v.(type) {
	case *ir.Const:
		return e.constValue(val)
	case *ir.Temp:
		return e.tempsMap[val]
	case *ir.Arg:
		return e.paramsMap[val.Slot]
	}

	panic(fmt.Sprintf("value: received unknown value: %T", v))
}

func (e *Emitter) constValue(c *ir.Const) llvm.Value {
	switch c.Type {
	case types.Int:
		n, _ := strconv.ParseInt(c.Value, 10, 64)
		return llvm.ConstInt(e.context.Int32Type(), uint64(n), true)
	case types.Float:
		f, _ := strconv.ParseFloat(c.Value, 64)
		return llvm.ConstFloat(e.context.DoubleType(), f)
	case types.Bool:
		if c.Value == "true" {
			return llvm.ConstInt(e.context.Int1Type(), 1, false)
		}
		return llvm.ConstInt(e.context.Int1Type(), 0, false)
	case types.String:
		return e.builder.CreateGlobalStringPtr(c.Value, ".str")
	default:
		return llvm.ConstInt(e.context.Int32Type(), 0, true)
	}
}

// coerce bridges int and float where the IR was permissive about mixing
// them. Equal types pass through untouched.
func (e *Emitter) coerce(value llvm.Value, from, to types.DataType) llvm.Value {
	switch {
	case from == types.Int && to == types.Float:
		return e.builder.CreateSIToFP(value, e.context.DoubleType(), "")
	case from == types.Float && to == types.Int:
		return e.builder.CreateFPToSI(value, e.context.Int32Type(), "")
	default:
		return value
	}
}

func (e *Emitter) emitBinOp(i *ir.BinOp) {
	leftType := i.Left.ValueType()
	rightType := i.Right.ValueType()

	isFloat := leftType == types.Float || rightType == types.Float
	operandType := types.Int
	if isFloat {
		operandType = types.Float
	}

	// coerce is an identity for bool and string operands, so only the
	// mixed int/float cases actually convert.
	left := e.coerce(e.value(i.Left), leftType, operandType)
	right := e.coerce(e.value(i.Right), rightType, operandType)

	var result llvm.Value
	switch i.Op {
	case ir.OpAdd:
		if isFloat {
			result = e.builder.CreateFAdd(left, right, "")
		} else {
			result = e.builder.CreateAdd(left, right, "")
		}
	case ir.OpSub:
		if isFloat {
			result = e.builder.CreateFSub(left, right, "")
		} else {
			result = e.builder.CreateSub(left, right, "")
		}
	case ir.OpMul:
		if isFloat {
			result = e.builder.CreateFMul(left, right, "")
		} else {
			result = e.builder.CreateMul(left, right, "")
		}
	case ir.OpDiv:
		if isFloat {
			result = e.builder.CreateFDiv(left, right, "")
		} else {
			result = e.builder.CreateSDiv(left, right, "")
		}
	case ir.OpMod:
		result = e.builder.CreateSRem(left, right, "")
	case ir.OpEq:
		if isFloat {
			result = e.builder.CreateFCmp(llvm.FloatOEQ, left, right, "")
		} else {
			result = e.builder.CreateICmp(llvm.IntEQ, left, right, "")
		}
	case ir.OpNeq:
		if isFloat {
			result = e.builder.CreateFCmp(llvm.FloatONE, left, right, "")
		} else {
			result = e.builder.CreateICmp(llvm.IntNE, left, right, "")
		}
	case ir.OpLt:
		if isFloat {
			result = e.builder.CreateFCmp(llvm.FloatOLT, left, right, "")
		} else {
			result = e.builder.CreateICmp(llvm.IntSLT, left, right, "")
		}
	case ir.OpLeq:
		if isFloat {
			result = e.builder.CreateFCmp(llvm.FloatOLE, left, right, "")
		} else {
			result = e.builder.CreateICmp(llvm.IntSLE, left, right, "")
		}
	case ir.OpGt:
		if isFloat {
			result = e.builder.CreateFCmp(llvm.FloatOGT, left, right, "")
		} else {
			result = e.builder.CreateICmp(llvm.IntSGT, left, right, "")
		}
	case ir.OpGeq:
		if isFloat {
			result = e.builder.CreateFCmp(llvm.FloatOGE, left, right, "")
		} else {
			result = e.builder.CreateICmp(llvm.IntSGE, left, right, "")
		}
	case ir.OpAnd:
		result = e.builder.CreateAnd(left, right, "")
	case ir.OpOr:
		result = e.builder.CreateOr(left, right, "")
	default:
		panic(fmt.Sprintf("emitBinOp: received unknown op: %s", i.Op))
	}

	e.tempsMap[i.Dst] = result
}

func (e *Emitter) emitUnOp(i *ir.UnOp) {
	operand := e.value(i.Operand)

	var result llvm.Value
	switch i.Op {
	case ir.OpNeg:
		if i.Operand.ValueType() == types.Float {
			result = e.builder.CreateFNeg(operand, "")
		} else {
			result = e.builder.CreateNeg(operand, "")
		}
	case ir.OpNot:
		result = e.builder.CreateNot(operand, "")
	default:
		panic(fmt.Sprintf("emitUnOp: received unknown op: %s", i.Op))
	}

	e.tempsMap[i.Dst] = result
}

func (e *Emitter) emitCall(i *ir.Call) {
	callee := e.funcsMap[i.Callee]
	proto := e.irFuncs[i.Callee]

	args := make([]llvm.Value, 0, len(i.Args))
	for n, arg := range i.Args {
		value := e.value(arg)
		// Fixed parameters get the same int/float bridging as stores;
		// variadic extras pass through as they are.
		if n < len(proto.Params) {
			value = e.coerce(value, arg.ValueType(), proto.Params[n].Type)
		}
		args = append(args, value)
	}

	result := e.builder.CreateCall(
		callee.GlobalValueType(), callee, args, "")

	if i.Dst != nil {
		e.tempsMap[i.Dst] = result
	}
}
