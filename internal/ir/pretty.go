package ir

import (
	"fmt"
	"strings"

	"github.com/scarlet-lang/scarlet/internal/types"
)

// String renders the module in a readable text form, mostly for the
// --print-ir flag and tests.
func (m *Module) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "module %s\n", m.Name)
	for _, fn := range m.Functions {
		sb.WriteString("\n")
		sb.WriteString(fn.String())
	}

	return sb.String()
}

func (f *Function) String() string {
	var sb strings.Builder

	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("%s %s", p.Name, p.Type))
	}

	if f.IsPrototype() {
		variadic := ""
		if f.Variadic {
			variadic = ", ..."
		}
		fmt.Fprintf(&sb, "declare %s(%s%s) %s\n",
			f.Name, strings.Join(params, ", "), variadic, f.ReturnType)
		return sb.String()
	}

	fmt.Fprintf(&sb, "func %s(%s) %s {\n", f.Name, strings.Join(params, ", "), f.ReturnType)
	for _, block := range f.Blocks {
		fmt.Fprintf(&sb, "%s:\n", block.Label)
		for _, instr := range block.Instrs {
			fmt.Fprintf(&sb, "  %s\n", instrString(instr))
		}
		if block.Term != nil {
			fmt.Fprintf(&sb, "  %s\n", termString(block.Term))
		}
	}
	sb.WriteString("}\n")

	return sb.String()
}

func valueString(v Value) string {
	switch val := v.(type) {
	case *Const:
		if val.Type == types.String {
			return fmt.Sprintf("%q", val.Value)
		}
		return val.Value
	case *Temp:
		return fmt.Sprintf("%%t%d", val.ID)
	case *Arg:
		return fmt.Sprintf("%%arg.%s", val.Slot.Name)
	}

	panic(fmt.Sprintf("valueString: received unknown value: %T", v))
}

func instrString(instr Instr) string {
	switch i := instr.(type) {
	case *Alloca:
		return fmt.Sprintf("%%%s = alloca %s", i.Slot.Name, i.Slot.Type)
	case *Load:
		return fmt.Sprintf("%%t%d = load %s %%%s", i.Dst.ID, i.Slot.Type, i.Slot.Name)
	case *Store:
		return fmt.Sprintf("store %s, %%%s", valueString(i.Value), i.Slot.Name)
	case *BinOp:
		return fmt.Sprintf("%%t%d = %s %s, %s",
			i.Dst.ID, i.Op, valueString(i.Left), valueString(i.Right))
	case *UnOp:
		return fmt.Sprintf("%%t%d = %s %s", i.Dst.ID, i.Op, valueString(i.Operand))
	case *Call:
		args := make([]string, 0, len(i.Args))
		for _, arg := range i.Args {
			args = append(args, valueString(arg))
		}
		if i.Dst == nil {
			return fmt.Sprintf("call %s(%s)", i.Callee, strings.Join(args, ", "))
		}
		return fmt.Sprintf("%%t%d = call %s(%s)", i.Dst.ID, i.Callee, strings.Join(args, ", "))
	}

	panic(fmt.Sprintf("instrString: received unknown instruction: %T", instr))
}

func termString(term Terminator) string {
	switch t := term.(type) {
	case *Br:
		return fmt.Sprintf("br %s", t.Target.Label)
	case *CondBr:
		return fmt.Sprintf("condbr %s, %s, %s",
			valueString(t.Cond), t.Then.Label, t.Else.Label)
	case *Ret:
		if t.Value == nil {
			return "ret"
		}
		return fmt.Sprintf("ret %s", valueString(t.Value))
	}

	panic(fmt.Sprintf("termString: received unknown terminator: %T", term))
}
