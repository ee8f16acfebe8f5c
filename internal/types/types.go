package types

import "fmt"

// DataType is the fixed set of types the language knows about. Unknown is
// the "not yet determined" placeholder the parser leaves behind and semantic
// analysis fills in.
type DataType int

const (
	Unknown DataType = iota
	Void
	Int
	Float
	Bool
	String
	Function
)

func (dt DataType) String() string {
	switch dt {
	case Unknown:
		return "unknown"
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Function:
		return "function"
	default:
		panic(fmt.Sprintf("DataType.String(): received illegal data type: %d", dt))
	}
}

func (dt DataType) IsNumeric() bool {
	return dt == Int || dt == Float
}

// Compatible reports whether a value of type from may be used where to is
// expected. Unknown is compatible with anything, and int/float convert
// implicitly in both directions.
func Compatible(from, to DataType) bool {
	if from == to {
		return true
	}
	if from == Unknown || to == Unknown {
		return true
	}

	if from == Int && to == Float {
		return true
	}
	if from == Float && to == Int {
		return true
	}

	return false
}

// ByName resolves a type annotation spelled in source to its DataType.
func ByName(name string) (DataType, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "bool":
		return Bool, true
	case "string":
		return String, true
	case "void":
		return Void, true
	default:
		return Unknown, false
	}
}
