// Package rules evaluates conditions and selects content-defined overrides
// for player commands.
package rules

import (
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// EvalCondition evaluates a single condition against the current state.
// Unknown condition types are false.
func EvalCondition(c types.Condition, s *types.State) bool {
	switch c.Type {
	case "flag_set":
		flag, _ := c.Params["flag"].(string)
		return state.GetFlag(s, flag)

	case "flag_not":
		flag, _ := c.Params["flag"].(string)
		return !state.GetFlag(s, flag)

	case "flag_is":
		flag, _ := c.Params["flag"].(string)
		value, _ := c.Params["value"].(bool)
		return state.GetFlag(s, flag) == value

	case "counter_gt":
		counter, _ := c.Params["counter"].(string)
		return state.GetCounter(s, counter) > toInt(c.Params["value"])

	case "counter_lt":
		counter, _ := c.Params["counter"].(string)
		return state.GetCounter(s, counter) < toInt(c.Params["value"])

	case "var_gt":
		name, _ := c.Params["var"].(string)
		return state.GetVar(s, name) > toFloat(c.Params["value"])

	case "var_gte":
		name, _ := c.Params["var"].(string)
		return state.GetVar(s, name) >= toFloat(c.Params["value"])

	case "var_lt":
		name, _ := c.Params["var"].(string)
		return state.GetVar(s, name) < toFloat(c.Params["value"])

	case "drink_is":
		identity, _ := c.Params["identity"].(string)
		return string(s.HeldDrink) == identity

	case "patron_is":
		patron, _ := c.Params["patron"].(string)
		return s.Patron == patron

	case "game_state_is":
		gs, _ := c.Params["state"].(string)
		return s.GameState == gs

	case "not":
		if c.Inner == nil {
			return true
		}
		return !EvalCondition(*c.Inner, s)

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, s *types.State) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s) {
			return false
		}
	}
	return true
}

// toInt converts an any value to int, handling float64 from Lua.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
