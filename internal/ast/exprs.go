package ast

import (
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

// LiteralExpr keeps the raw lexeme; the parser already knows the literal's
// type, so ExprType is filled in at construction.
type LiteralExpr struct {
	Value string

	Location lexer.Location
	ExprType types.DataType
}

type IdentExpr struct {
	Name string

	Location lexer.Location
	ExprType types.DataType
}

type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr

	Location lexer.Location
	ExprType types.DataType
}

type UnaryExpr struct {
	Op      Operator
	Operand Expr

	Location lexer.Location
	ExprType types.DataType
}

// AssignExpr yields the stored value, so assignments chain right to left.
type AssignExpr struct {
	Name  string
	Value Expr

	Location lexer.Location
	ExprType types.DataType
}

type CallExpr struct {
	Name string
	Args []Expr

	Location lexer.Location
	ExprType types.DataType
}

func (e *LiteralExpr) ExprNode() {}
func (e *IdentExpr) ExprNode()   {}
func (e *BinaryExpr) ExprNode()  {}
func (e *UnaryExpr) ExprNode()   {}
func (e *AssignExpr) ExprNode()  {}
func (e *CallExpr) ExprNode()    {}

func (e *LiteralExpr) Loc() lexer.Location { return e.Location }
func (e *IdentExpr) Loc() lexer.Location   { return e.Location }
func (e *BinaryExpr) Loc() lexer.Location  { return e.Location }
func (e *UnaryExpr) Loc() lexer.Location   { return e.Location }
func (e *AssignExpr) Loc() lexer.Location  { return e.Location }
func (e *CallExpr) Loc() lexer.Location    { return e.Location }

func (e *LiteralExpr) Type() types.DataType { return e.ExprType }
func (e *IdentExpr) Type() types.DataType   { return e.ExprType }
func (e *BinaryExpr) Type() types.DataType  { return e.ExprType }
func (e *UnaryExpr) Type() types.DataType   { return e.ExprType }
func (e *AssignExpr) Type() types.DataType  { return e.ExprType }
func (e *CallExpr) Type() types.DataType    { return e.ExprType }

func (e *LiteralExpr) SetType(t types.DataType) { e.ExprType = t }
func (e *IdentExpr) SetType(t types.DataType)   { e.ExprType = t }
func (e *BinaryExpr) SetType(t types.DataType)  { e.ExprType = t }
func (e *UnaryExpr) SetType(t types.DataType)   { e.ExprType = t }
func (e *AssignExpr) SetType(t types.DataType)  { e.ExprType = t }
func (e *CallExpr) SetType(t types.DataType)    { e.ExprType = t }
