// Package ir defines the intermediate representation the front end lowers
// to: a module of functions, each a list of basic blocks over stack slots.
// There is no register allocation here. Every variable lives in a slot,
// reads go through Load and writes through Store, and each block ends with
// exactly one terminator.
package ir

import (
	"github.com/scarlet-lang/scarlet/internal/types"
)

type Module struct {
	Name      string
	Functions []*Function
}

type Function struct {
	Name       string
	Params     []*Slot
	ReturnType types.DataType

	Slots  []*Slot
	Blocks []*BasicBlock

	// Variadic marks external prototypes like printf; such functions
	// have no blocks.
	Variadic bool
}

// IsPrototype reports whether the function is an external declaration
// with no body.
func (f *Function) IsPrototype() bool { return len(f.Blocks) == 0 }

// Slot is one stack allocation, produced by an Alloca in the entry block.
type Slot struct {
	Name  string
	Type  types.DataType
	Index int
}

type BasicBlock struct {
	ID     int
	Label  string
	Instrs []Instr
	Term   Terminator
}

// Terminated reports whether the block already ends with a terminator.
func (b *BasicBlock) Terminated() bool { return b.Term != nil }

// Value is anything an instruction can read: a constant, a temporary
// produced by an earlier instruction, or a function parameter.
type Value interface {
	ValueType() types.DataType
	valueNode()
}

type Const struct {
	Value string
	Type  types.DataType
}

func (c *Const) ValueType() types.DataType { return c.Type }
func (c *Const) valueNode()                {}

// Temp is an SSA-like name for an instruction result. Temps are numbered
// per function.
type Temp struct {
	ID   int
	Type types.DataType
}

func (t *Temp) ValueType() types.DataType { return t.Type }
func (t *Temp) valueNode()                {}

// Arg reads a function parameter by position.
type Arg struct {
	Slot *Slot
}

func (a *Arg) ValueType() types.DataType { return a.Slot.Type }
func (a *Arg) valueNode()                {}

type Instr interface {
	instrNode()
}

// Alloca reserves a slot. The generator only ever places these in the
// entry block.
type Alloca struct {
	Slot *Slot
}

type Load struct {
	Dst  *Temp
	Slot *Slot
}

type Store struct {
	Slot  *Slot
	Value Value
}

type BinOp struct {
	Dst   *Temp
	Op    Op
	Left  Value
	Right Value
}

type UnOp struct {
	Dst     *Temp
	Op      Op
	Operand Value
}

// Call invokes a function by name. Dst is nil for void calls.
type Call struct {
	Dst      *Temp
	Callee   string
	Args     []Value
	RetType  types.DataType
	Variadic bool
}

func (*Alloca) instrNode() {}
func (*Load) instrNode()   {}
func (*Store) instrNode()  {}
func (*BinOp) instrNode()  {}
func (*UnOp) instrNode()   {}
func (*Call) instrNode()   {}

type Terminator interface {
	Successors() []*BasicBlock
	termNode()
}

// Br is an unconditional branch.
type Br struct {
	Target *BasicBlock
}

func (b *Br) Successors() []*BasicBlock { return []*BasicBlock{b.Target} }
func (b *Br) termNode()                 {}

type CondBr struct {
	Cond Value
	Then *BasicBlock
	Else *BasicBlock
}

func (b *CondBr) Successors() []*BasicBlock { return []*BasicBlock{b.Then, b.Else} }
func (b *CondBr) termNode()                 {}

// Ret returns from the function. Value is nil for void returns.
type Ret struct {
	Value Value
}

func (r *Ret) Successors() []*BasicBlock { return nil }
func (r *Ret) termNode()                 {}

// Op names the arithmetic, comparison and logical operations of BinOp
// and UnOp.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLeq
	OpGt
	OpGeq
	OpAnd
	OpOr
	OpNeg
	OpNot
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpEq:
		return "eq"
	case OpNeq:
		return "neq"
	case OpLt:
		return "lt"
	case OpLeq:
		return "leq"
	case OpGt:
		return "gt"
	case OpGeq:
		return "geq"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	}

	panic("illegal op received")
}
