package semantic_analyzer

import (
	"github.com/scarlet-lang/scarlet/internal/ast"
	"github.com/scarlet-lang/scarlet/internal/types"
)

// resultType gives the type a binary expression produces, or Unknown when
// the operand combination is invalid. Arithmetic on two numerics widens to
// float when either side is float; comparisons always produce bool as long
// as the operands themselves type-checked; logical operators need bool on
// both sides.
func resultType(op ast.Operator, left, right types.DataType) types.DataType {
	switch {
	case op.IsArithmetic():
		if left == types.Int && right == types.Int {
			return types.Int
		}
		if left.IsNumeric() && right.IsNumeric() {
			if left == types.Float || right == types.Float {
				return types.Float
			}
			return types.Int
		}

	case op.IsComparison():
		return types.Bool

	case op.IsLogical():
		if left == types.Bool && right == types.Bool {
			return types.Bool
		}
	}

	return types.Unknown
}

// unaryResultType gives the type a unary expression produces. Negation
// preserves its numeric operand type; logical not needs bool.
func unaryResultType(op ast.Operator, operand types.DataType) types.DataType {
	switch op {
	case ast.Neg:
		if operand.IsNumeric() {
			return operand
		}
	case ast.Not:
		if operand == types.Bool {
			return types.Bool
		}
	}

	return types.Unknown
}
