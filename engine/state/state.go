// Package state holds the immutable game definitions and the accessors for
// the mutable narrative state the dialogue layer reads.
package state

import (
	"sort"

	"github.com/nathoo/ontherocks/types"
)

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game        types.GameDef
	Ingredients map[string]types.ComponentDef
	Glasses     map[string]types.GlassDef
	Patrons     map[string]types.PatronDef
	Nodes       map[string]types.NodeDef
	Rules       []types.RuleDef
	Handlers    []types.EventHandler
}

// NewState creates a fresh narrative state from definitions. The game opens
// in the dialogue state at Game.Start.
func NewState(defs *Defs) *types.State {
	return &types.State{
		GameState:  types.GameStateDialogues,
		Flags:      map[string]bool{},
		Counters:   map[string]int{},
		Vars:       map[string]float64{},
		TurnCount:  0,
		CommandLog: []string{},
	}
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(s *types.State, name string) bool {
	return s.Flags[name]
}

// GetCounter returns the value of a counter. Unset counters return 0.
func GetCounter(s *types.State, name string) int {
	return s.Counters[name]
}

// GetVar returns a dialogue variable. Unset variables read as 0.
func GetVar(s *types.State, name string) float64 {
	return s.Vars[name]
}

// Vars adapts a State's variable namespace to the variable store the affect
// bridge writes into.
type Vars struct {
	S *types.State
}

// SetNumber writes a numeric dialogue variable.
func (v Vars) SetNumber(name string, value float64) {
	if v.S.Vars == nil {
		v.S.Vars = map[string]float64{}
	}
	v.S.Vars[name] = value
}

// Number reads a numeric dialogue variable.
func (v Vars) Number(name string) float64 {
	return v.S.Vars[name]
}

// IngredientIDs returns every ingredient ID in sorted order.
func IngredientIDs(defs *Defs) []string {
	ids := make([]string, 0, len(defs.Ingredients))
	for id := range defs.Ingredients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IngredientList returns the ingredient definitions sorted by ID.
func IngredientList(defs *Defs) []types.ComponentDef {
	ids := IngredientIDs(defs)
	out := make([]types.ComponentDef, 0, len(ids))
	for _, id := range ids {
		out = append(out, defs.Ingredients[id])
	}
	return out
}

// GlassIDs returns every glass ID in sorted order.
func GlassIDs(defs *Defs) []string {
	ids := make([]string, 0, len(defs.Glasses))
	for id := range defs.Glasses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PatronFor returns the patron for the current dialogue state.
func PatronFor(s *types.State, defs *Defs) (types.PatronDef, bool) {
	p, ok := defs.Patrons[s.Patron]
	return p, ok
}
