// Package loader loads Lua bar content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// rawDef holds a curried definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// rawRule holds a rule before compilation.
type rawRule struct {
	id         string
	when       *lua.LTable
	conditions *lua.LTable // may be nil
	then       *lua.LTable
	order      int
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	eventType string
	table     *lua.LTable
}

func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func getNumber(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings reads an array of strings. A single string is accepted as a
// one-element list.
func getStrings(tbl *lua.LTable, key string) []string {
	switch v := tbl.RawGetString(key).(type) {
	case lua.LString:
		return []string{string(v)}
	case *lua.LTable:
		var out []string
		for i := 1; i <= v.MaxN(); i++ {
			if s, ok := v.RawGetInt(i).(lua.LString); ok {
				out = append(out, string(s))
			}
		}
		return out
	}
	return nil
}

// arrayTables returns the table elements of an array table, in order.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	if tbl == nil {
		return nil
	}
	var out []*lua.LTable
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(val)
	case *lua.LTable:
		if n := val.MaxN(); n > 0 {
			arr := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Ingredients: map[string]types.ComponentDef{},
		Glasses:     map[string]types.GlassDef{},
		Patrons:     map[string]types.PatronDef{},
		Nodes:       map[string]types.NodeDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.ingredients {
		if _, dup := defs.Ingredients[raw.id]; dup {
			return nil, fmt.Errorf("ingredient %q defined twice", raw.id)
		}
		defs.Ingredients[raw.id] = compileIngredient(raw)
	}
	for _, raw := range coll.glasses {
		if _, dup := defs.Glasses[raw.id]; dup {
			return nil, fmt.Errorf("glass %q defined twice", raw.id)
		}
		defs.Glasses[raw.id] = compileGlass(raw)
	}
	for _, raw := range coll.patrons {
		if _, dup := defs.Patrons[raw.id]; dup {
			return nil, fmt.Errorf("patron %q defined twice", raw.id)
		}
		defs.Patrons[raw.id] = compilePatron(raw)
	}
	for _, raw := range coll.nodes {
		if _, dup := defs.Nodes[raw.id]; dup {
			return nil, fmt.Errorf("node %q defined twice", raw.id)
		}
		defs.Nodes[raw.id] = compileNode(raw)
	}

	for _, raw := range coll.rules {
		defs.Rules = append(defs.Rules, compileRule(raw))
	}
	for _, raw := range coll.handlers {
		defs.Handlers = append(defs.Handlers, compileHandler(raw))
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Start:   getString(tbl, "start"),
		Glass:   getString(tbl, "glass"),
		Intro:   getString(tbl, "intro"),
	}
}

func compileIngredient(raw rawDef) types.ComponentDef {
	tbl := raw.table
	def := types.ComponentDef{
		ID:            raw.id,
		Name:          getString(tbl, "name"),
		Description:   getString(tbl, "description"),
		Size:          getNumber(tbl, "size"),
		Taste:         types.Taste(getString(tbl, "taste")),
		PrimaryEffect: types.PrimaryEffect(getString(tbl, "effect")),
		Hazard:        getString(tbl, "hazard"),
	}
	if sec := getTable(tbl, "secondary"); sec != nil {
		def.Secondary = types.SecondaryEffect{
			Kind: types.SecondaryKind(getString(sec, "kind")),
			Condition: types.EffectCondition{
				VolumeNeeded: getNumber(sec, "volume"),
				Catalyst:     getString(sec, "catalyst"),
			},
		}
	}
	return def
}

func compileGlass(raw rawDef) types.GlassDef {
	return types.GlassDef{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Shape:       types.GlassShape(getString(raw.table, "shape")),
		Capacity:    getNumber(raw.table, "capacity"),
		Description: getString(raw.table, "description"),
	}
}

func compilePatron(raw rawDef) types.PatronDef {
	return types.PatronDef{
		ID:     raw.id,
		Name:   getString(raw.table, "name"),
		Enters: getString(raw.table, "enters"),
		Served: getString(raw.table, "served"),
	}
}

func compileNode(raw rawDef) types.NodeDef {
	tbl := raw.table
	node := types.NodeDef{
		ID:       raw.id,
		Speaker:  getString(tbl, "speaker"),
		Lines:    getStrings(tbl, "lines"),
		Commands: compileCommands(getTable(tbl, "commands")),
		Next:     getString(tbl, "next"),
	}
	for _, opt := range arrayTables(getTable(tbl, "options")) {
		node.Options = append(node.Options, types.OptionDef{
			Text:     getString(opt, "text"),
			Next:     getString(opt, "next"),
			Requires: compileConditions(getTable(opt, "requires")),
			Commands: compileCommands(getTable(opt, "commands")),
		})
	}
	return node
}

func compileRule(raw rawRule) types.RuleDef {
	return types.RuleDef{
		ID: raw.id,
		When: types.MatchCriteria{
			Verb:      getString(raw.when, "verb"),
			Object:    getString(raw.when, "object"),
			GameState: getString(raw.when, "state"),
		},
		Conditions:  compileConditions(raw.conditions),
		Commands:    compileCommands(raw.then),
		Priority:    getInt(raw.when, "priority"),
		SourceOrder: raw.order,
	}
}

func compileConditions(tbl *lua.LTable) []types.Condition {
	var conditions []types.Condition
	for _, c := range arrayTables(tbl) {
		conditions = append(conditions, compileCondition(c))
	}
	return conditions
}

func compileCondition(tbl *lua.LTable) types.Condition {
	condType := getString(tbl, "type")
	if condType == "not" {
		if innerTbl := getTable(tbl, "inner"); innerTbl != nil {
			inner := compileCondition(innerTbl)
			return types.Condition{Type: "not", Inner: &inner}
		}
	}
	return types.Condition{Type: condType, Params: params(tbl)}
}

func compileCommands(tbl *lua.LTable) []types.Command {
	var cmds []types.Command
	for _, c := range arrayTables(tbl) {
		cmds = append(cmds, types.Command{Type: getString(c, "type"), Params: params(c)})
	}
	return cmds
}

// params copies every string-keyed field except "type".
func params(tbl *lua.LTable) map[string]any {
	p := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok && ks != "type" {
			p[string(ks)] = toGoValue(v)
		}
	})
	return p
}

func compileHandler(raw rawHandler) types.EventHandler {
	return types.EventHandler{
		EventType:  raw.eventType,
		Conditions: compileConditions(getTable(raw.table, "conditions")),
		Commands:   compileCommands(getTable(raw.table, "commands")),
	}
}

// sortedLuaFiles puts game.lua first and sorts the rest.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
