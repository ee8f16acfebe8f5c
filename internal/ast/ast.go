package ast

import (
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

// The AST is a closed set of node variants. Every consuming stage walks it
// with an exhaustive type switch over Expr and Stmt, so adding a variant
// means updating every switch.
type Node interface {
	Loc() lexer.Location
}

type Stmt interface {
	Node
	StmtNode()
}

// Expr nodes additionally carry the result type semantic analysis assigns;
// it starts out as types.Unknown. Semantic analysis is the only stage that
// mutates the tree, and only through SetType.
type Expr interface {
	Node
	ExprNode()
	Type() types.DataType
	SetType(t types.DataType)
}

// Program is the entry node: the ordered top-level statements of one source
// unit. It has no location of its own.
type Program struct {
	Stmts []Stmt
}
