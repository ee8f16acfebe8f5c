package ast

import "fmt"

type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Mod

	Eq
	Neq
	Lt
	Leq
	Gt
	Geq

	And
	Or

	Neg
	Not
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Leq:
		return "<="
	case Gt:
		return ">"
	case Geq:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	case Neg:
		return "-"
	case Not:
		return "!"
	default:
		panic(fmt.Sprintf("Operator.String(): received illegal operator: %d", op))
	}
}

func (op Operator) IsArithmetic() bool {
	switch op {
	case Add, Sub, Mul, Div, Mod:
		return true
	}

	return false
}

func (op Operator) IsComparison() bool {
	switch op {
	case Eq, Neq, Lt, Leq, Gt, Geq:
		return true
	}

	return false
}

func (op Operator) IsLogical() bool {
	return op == And || op == Or
}
