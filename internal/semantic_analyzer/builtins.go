package semantic_analyzer

import "github.com/scarlet-lang/scarlet/internal/types"

// registerBuiltins seeds the global scope with the functions every program
// may call without declaring.
func registerBuiltins(st *SymbolTable) {
	st.Insert("print", &Symbol{
		Name:           "print",
		Type:           types.Function,
		IsFunction:     true,
		ParameterTypes: []types.DataType{types.String},
		ReturnType:     types.Void,
	})

	st.Insert("input", &Symbol{
		Name:           "input",
		Type:           types.Function,
		IsFunction:     true,
		ParameterTypes: []types.DataType{},
		ReturnType:     types.String,
	})

	st.Insert("sqrt", &Symbol{
		Name:           "sqrt",
		Type:           types.Function,
		IsFunction:     true,
		ParameterTypes: []types.DataType{types.Float},
		ReturnType:     types.Float,
	})
}
