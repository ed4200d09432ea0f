package ast

import "github.com/mlang-run/minilang/internal/types"

// Symbol is what an Identifier or Call resolves to after semantic
// analysis: a stable (scope, slot) pair rather than a name, so the
// interpreter does no string lookups at runtime (spec §9: "resolve names
// to (scope_index, slot_index) at analysis time").
type Symbol struct {
	Name       string
	Type       *types.Type
	IsParam    bool
	ScopeIndex int
	SlotIndex  int
	IsFunction bool
	Func       *FunctionDecl
}
