package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// argKind says how a helper argument is checked.
type argKind int

const (
	argString argKind = iota
	argNumber
	argBool
	argOptNumber // number, default 1
	argTable
)

type arg struct {
	key  string
	kind argKind
}

// helper describes a Lua function that returns a {type = ..., key = value}
// table, the shape compileCondition and compileCommand read back.
type helper struct {
	name string
	typ  string
	args []arg
}

var conditionHelpers = []helper{
	{"FlagSet", "flag_set", []arg{{"flag", argString}}},
	{"FlagNot", "flag_not", []arg{{"flag", argString}}},
	{"FlagIs", "flag_is", []arg{{"flag", argString}, {"value", argBool}}},
	{"CounterGt", "counter_gt", []arg{{"counter", argString}, {"value", argNumber}}},
	{"CounterLt", "counter_lt", []arg{{"counter", argString}, {"value", argNumber}}},
	{"VarGt", "var_gt", []arg{{"var", argString}, {"value", argNumber}}},
	{"VarGte", "var_gte", []arg{{"var", argString}, {"value", argNumber}}},
	{"VarLt", "var_lt", []arg{{"var", argString}, {"value", argNumber}}},
	{"DrinkIs", "drink_is", []arg{{"identity", argString}}},
	{"PatronIs", "patron_is", []arg{{"patron", argString}}},
	{"GameStateIs", "game_state_is", []arg{{"state", argString}}},
	{"Not", "not", []arg{{"inner", argTable}}},
}

var commandHelpers = []helper{
	{"Say", "say", []arg{{"text", argString}}},
	{"SetFlag", "set_flag", []arg{{"flag", argString}, {"value", argBool}}},
	{"IncCounter", "inc_counter", []arg{{"counter", argString}, {"amount", argOptNumber}}},
	{"SetCounter", "set_counter", []arg{{"counter", argString}, {"value", argNumber}}},
	{"SetVar", "set_var", []arg{{"var", argString}, {"value", argNumber}}},
	{"ChangeGameState", "change_gamestate", []arg{{"state", argString}}},
	{"ChangeDialogState", "change_dialog_state", []arg{{"patron", argString}}},
	{"ConsumeDrink", "consume_drink", nil},
	{"StartNode", "start_node", []arg{{"node", argString}}},
	{"EmitEvent", "emit_event", []arg{{"event", argString}}},
	{"Stop", "stop", nil},
}

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	for _, h := range conditionHelpers {
		registerHelper(L, h)
	}
	for _, h := range commandHelpers {
		registerHelper(L, h)
	}
}

func registerHelper(L *lua.LState, h helper) {
	L.SetGlobal(h.name, L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(h.typ))
		for i, a := range h.args {
			n := i + 1
			switch a.kind {
			case argString:
				tbl.RawSetString(a.key, lua.LString(L.CheckString(n)))
			case argNumber:
				tbl.RawSetString(a.key, L.CheckNumber(n))
			case argBool:
				tbl.RawSetString(a.key, lua.LBool(L.CheckBool(n)))
			case argOptNumber:
				tbl.RawSetString(a.key, L.OptNumber(n, 1))
			case argTable:
				tbl.RawSetString(a.key, L.CheckTable(n))
			}
		}
		L.Push(tbl)
		return 1
	}))
}

// curried registers a constructor used as Name "id" { ... }.
func curried(L *lua.LState, name string, collect func(id string, tbl *lua.LTable)) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			collect(id, L.CheckTable(1))
			return 0
		}))
		return 1
	}))
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "intro", glass = "wine" }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	curried(L, "Ingredient", func(id string, tbl *lua.LTable) {
		coll.ingredients = append(coll.ingredients, rawDef{id: id, table: tbl})
	})
	curried(L, "Glass", func(id string, tbl *lua.LTable) {
		coll.glasses = append(coll.glasses, rawDef{id: id, table: tbl})
	})
	curried(L, "Patron", func(id string, tbl *lua.LTable) {
		coll.patrons = append(coll.patrons, rawDef{id: id, table: tbl})
	})
	curried(L, "Node", func(id string, tbl *lua.LTable) {
		coll.nodes = append(coll.nodes, rawDef{id: id, table: tbl})
	})

	// Option("text", { next = "...", requires = {...}, commands = {...} })
	// The second argument is optional.
	L.SetGlobal("Option", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := L.OptTable(2, L.NewTable())
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// Rule("id", when, conditions, then) or Rule("id", when, then).
	L.SetGlobal("Rule", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		when := L.CheckTable(2)

		var conditions, then *lua.LTable
		if L.Get(4) != lua.LNil {
			if t, ok := L.Get(3).(*lua.LTable); ok {
				conditions = t
			}
			then = L.CheckTable(4)
		} else {
			then = L.CheckTable(3)
		}

		coll.rules = append(coll.rules, rawRule{
			id:         id,
			when:       when,
			conditions: conditions,
			then:       then,
			order:      coll.nextSourceOrder(),
		})
		return 0
	}))

	// On("event_type", { conditions = {...}, commands = {...} })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		eventType := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{eventType: eventType, table: tbl})
		return 0
	}))

	// When { verb = "..." } and Then { ... } are pass-through for readability.
	passThrough := L.NewFunction(func(L *lua.LState) int {
		L.Push(L.CheckTable(1))
		return 1
	})
	L.SetGlobal("When", passThrough)
	L.SetGlobal("Then", passThrough)
}
