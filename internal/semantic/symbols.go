package semantic

import (
	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/types"
)

// SymbolTable is one scope in the scope tree: a name-to-symbol map with a
// parent-linked lookup chain (spec §3: "A tree of scopes... name lookup
// walks parent scopes"). Every table also carries a stable index into the
// Resolver's scope arena, so a resolved reference is a (ScopeIndex,
// SlotIndex) pair rather than a name — the interpreter does no string
// lookups at runtime (spec §9, "Graph shape").
type SymbolTable struct {
	parent  *SymbolTable
	index   int
	symbols map[string]*ast.Symbol
	order   []string // declaration order, for a deterministic --symbols dump
}

func newSymbolTable(parent *SymbolTable, index int) *SymbolTable {
	return &SymbolTable{parent: parent, index: index, symbols: make(map[string]*ast.Symbol)}
}

// Index returns this scope's position in the resolver's scope arena.
func (st *SymbolTable) Index() int { return st.index }

// Parent returns the enclosing scope, or nil for the program scope.
func (st *SymbolTable) Parent() *SymbolTable { return st.parent }

// Define adds a variable symbol to this scope at the next free slot.
// Returns nil if name is already declared directly in this scope (spec
// §4.3: "Redeclaring a name already present in the current scope is an
// error"); shadowing a name from an enclosing scope is not checked here.
func (st *SymbolTable) Define(name string, typ *types.Type, isParam bool) *ast.Symbol {
	if _, exists := st.symbols[name]; exists {
		return nil
	}
	sym := &ast.Symbol{
		Name:       name,
		Type:       typ,
		IsParam:    isParam,
		ScopeIndex: st.index,
		SlotIndex:  len(st.order),
	}
	st.symbols[name] = sym
	st.order = append(st.order, name)
	return sym
}

// DefineFunction registers fn in this scope (always the program scope,
// spec §3: "Functions live only in the program scope").
func (st *SymbolTable) DefineFunction(fn *ast.FunctionDecl) *ast.Symbol {
	if _, exists := st.symbols[fn.Name]; exists {
		return nil
	}
	sym := &ast.Symbol{
		Name:       fn.Name,
		Type:       fn.ReturnType,
		IsFunction: true,
		Func:       fn,
		ScopeIndex: st.index,
		SlotIndex:  len(st.order),
	}
	st.symbols[fn.Name] = sym
	st.order = append(st.order, fn.Name)
	return sym
}

// Lookup searches this scope and its ancestors, innermost first.
func (st *SymbolTable) Lookup(name string) (*ast.Symbol, bool) {
	for s := st; s != nil; s = s.parent {
		if sym, ok := s.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, ignoring ancestors.
func (st *SymbolTable) LookupLocal(name string) (*ast.Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Names returns the names declared directly in this scope, in declaration
// order (used by the CLI's --symbols dump).
func (st *SymbolTable) Names() []string {
	return st.order
}
