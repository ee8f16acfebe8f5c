package semantic_analyzer

import (
	"github.com/scarlet-lang/scarlet/internal/lexer"
	"github.com/scarlet-lang/scarlet/internal/types"
)

// Symbol is the resolved information behind a name. Variables use Type;
// functions use ParameterTypes/ReturnType and carry types.Function in Type.
type Symbol struct {
	Name       string
	Type       types.DataType
	IsFunction bool
	IsConstant bool
	Location   lexer.Location

	ParameterTypes []types.DataType
	ReturnType     types.DataType
}

// SymbolTable is a stack of lexical scopes. The scope at index 0 is the
// permanent global scope; it holds the built-ins and top-level declarations
// and is never popped.
type SymbolTable struct {
	scopes []map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		scopes: make([]map[string]*Symbol, 0, 4),
	}
	st.EnterScope()

	return st
}

func (st *SymbolTable) EnterScope() {
	st.scopes = append(st.scopes, make(map[string]*Symbol))
}

// ExitScope pops the innermost scope. Popping the global scope is a no-op.
func (st *SymbolTable) ExitScope() {
	if len(st.scopes) > 1 {
		st.scopes = st.scopes[:len(st.scopes)-1]
	}
}

// Insert adds a symbol to the innermost scope. It reports false when the
// name already exists there; shadowing an outer scope is allowed.
func (st *SymbolTable) Insert(name string, symbol *Symbol) bool {
	if _, ok := st.LookupCurrentScope(name); ok {
		return false
	}

	st.scopes[len(st.scopes)-1][name] = symbol
	return true
}

// Lookup walks from the innermost scope outwards and returns the first
// match, so inner declarations shadow outer ones.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if symbol, ok := st.scopes[i][name]; ok {
			return symbol, true
		}
	}

	return nil, false
}

func (st *SymbolTable) LookupCurrentScope(name string) (*Symbol, bool) {
	symbol, ok := st.scopes[len(st.scopes)-1][name]
	return symbol, ok
}

func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}
