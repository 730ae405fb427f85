// Package command applies dialogue and rule commands to the narrative state.
// Every command type is one atomic operation.
package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/ontherocks/engine/classify"
	"github.com/nathoo/ontherocks/engine/events"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// Events emitted only by commands. The engine reacts to NodeRequested by
// entering the named dialogue node.
const (
	FlagChanged        = "flag_changed"
	DialogStateChanged = "dialog_state_changed"
	DrinkConsumed      = "drink_consumed"
	NodeRequested      = "node_requested"
)

// Context carries the player command being handled, for interpolation.
type Context struct {
	Verb     string
	ObjectID string
}

// Apply runs commands in order against the state. It returns the events
// emitted and the output text collected. A "stop" command ends the list.
func Apply(s *types.State, defs *state.Defs, cmds []types.Command, ctx Context) ([]types.Event, []string) {
	var evts []types.Event
	var output []string

	for _, cmd := range cmds {
		switch cmd.Type {
		case "say":
			text, _ := cmd.Params["text"].(string)
			output = append(output, Interpolate(text, s, defs, ctx))

		case "set_flag":
			flag, _ := cmd.Params["flag"].(string)
			value, _ := cmd.Params["value"].(bool)
			s.Flags[flag] = value
			evts = append(evts, types.Event{
				Type: FlagChanged,
				Data: map[string]any{"flag": flag, "value": value},
			})

		case "inc_counter":
			counter, _ := cmd.Params["counter"].(string)
			s.Counters[counter] += toInt(cmd.Params["amount"])

		case "set_counter":
			counter, _ := cmd.Params["counter"].(string)
			s.Counters[counter] = toInt(cmd.Params["value"])

		case "set_var":
			name, _ := cmd.Params["var"].(string)
			state.Vars{S: s}.SetNumber(name, toFloat(cmd.Params["value"]))

		case "change_gamestate":
			gs, _ := cmd.Params["state"].(string)
			if !ValidGameState(gs) || gs == s.GameState {
				continue
			}
			from := s.GameState
			s.GameState = gs
			evts = append(evts, types.Event{
				Type: events.GameStateChanged,
				Data: map[string]any{"from": from, "to": gs},
			})

		case "change_dialog_state":
			patron, _ := cmd.Params["patron"].(string)
			s.Patron = patron
			evts = append(evts, types.Event{
				Type: DialogStateChanged,
				Data: map[string]any{"patron": patron},
			})

		case "consume_drink":
			drink := s.HeldDrink
			s.HeldDrink = ""
			evts = append(evts, types.Event{
				Type: DrinkConsumed,
				Data: map[string]any{"drink": string(drink)},
			})

		case "start_node":
			node, _ := cmd.Params["node"].(string)
			evts = append(evts, types.Event{
				Type: NodeRequested,
				Data: map[string]any{"node": node},
			})

		case "emit_event":
			event, _ := cmd.Params["event"].(string)
			evts = append(evts, types.Event{
				Type: event,
				Data: map[string]any{},
			})

		case "stop":
			return evts, output

		default:
			// Unknown command type, ignored.
		}
	}

	return evts, output
}

// ValidGameState reports whether gs is one of the engine's game states.
func ValidGameState(gs string) bool {
	switch gs {
	case types.GameStateMenu, types.GameStateDialogues, types.GameStateCrafting, types.GameStateEndNight:
		return true
	}
	return false
}

// Interpolate replaces template variables in text.
func Interpolate(text string, s *types.State, defs *state.Defs, ctx Context) string {
	if !strings.Contains(text, "{") {
		return text
	}
	patron := s.Patron
	if p, ok := state.PatronFor(s, defs); ok && p.Name != "" {
		patron = p.Name
	}
	r := strings.NewReplacer(
		"{verb}", ctx.Verb,
		"{object}", ctx.ObjectID,
		"{object.name}", objectName(ctx.ObjectID, defs),
		"{patron}", patron,
		"{drink}", string(s.HeldDrink),
		"{drink.name}", classify.Name(s.HeldDrink),
		"{turn}", fmt.Sprintf("%d", s.TurnCount),
	)
	text = r.Replace(text)

	// {var.calming_effect} and friends.
	if strings.Contains(text, "{var.") {
		names := make([]string, 0, len(s.Vars))
		for name := range s.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			text = strings.ReplaceAll(text, "{var."+name+"}", formatNumber(s.Vars[name]))
		}
	}
	return text
}

func objectName(id string, defs *state.Defs) string {
	if id == "" {
		return ""
	}
	if def, ok := defs.Ingredients[id]; ok && def.Name != "" {
		return def.Name
	}
	if def, ok := defs.Glasses[id]; ok && def.Name != "" {
		return def.Name
	}
	return id
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

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
