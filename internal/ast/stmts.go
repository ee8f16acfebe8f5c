package ast

import (
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

type BlockStmt struct {
	Stmts []Stmt

	Location lexer.Location
}

// VarDeclStmt covers all three declaration keywords; const only differs by
// marking the symbol constant. DeclaredType stays Unknown when the source
// has no annotation and the initializer decides the type later.
type VarDeclStmt struct {
	Name         string
	DeclaredType types.DataType
	Value        Expr
	Const        bool

	Location lexer.Location
}

type FuncParam struct {
	Name string
	Type types.DataType
}

type FuncDeclStmt struct {
	Name       string
	ReturnType types.DataType
	Params     []FuncParam
	Body       *BlockStmt

	Location lexer.Location
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt

	Location lexer.Location
}

type WhileStmt struct {
	Cond Expr
	Body Stmt

	Location lexer.Location
}

type ReturnStmt struct {
	Value Expr

	Location lexer.Location
}

type ExprStmt struct {
	Expr Expr

	Location lexer.Location
}

func (s *BlockStmt) StmtNode()    {}
func (s *VarDeclStmt) StmtNode()  {}
func (s *FuncDeclStmt) StmtNode() {}
func (s *IfStmt) StmtNode()       {}
func (s *WhileStmt) StmtNode()    {}
func (s *ReturnStmt) StmtNode()   {}
func (s *ExprStmt) StmtNode()     {}

func (s *BlockStmt) Loc() lexer.Location    { return s.Location }
func (s *VarDeclStmt) Loc() lexer.Location  { return s.Location }
func (s *FuncDeclStmt) Loc() lexer.Location { return s.Location }
func (s *IfStmt) Loc() lexer.Location       { return s.Location }
func (s *WhileStmt) Loc() lexer.Location    { return s.Location }
func (s *ReturnStmt) Loc() lexer.Location   { return s.Location }
func (s *ExprStmt) Loc() lexer.Location     { return s.Location }
