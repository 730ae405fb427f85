// Package events implements single-pass event handler dispatch.
// Event handlers produce additional commands but do not recurse.
package events

import (
	"github.com/nathoo/ontherocks/engine/rules"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// Event types emitted by the engine.
const (
	IngredientAdded  = "ingredient_added"
	GlassFull        = "glass_full"
	GlassReset       = "glass_reset"
	GlassChanged     = "glass_changed"
	DrinkCrafted     = "drink_crafted"
	EffectsChanged   = "effects_changed"
	DialogueStarted  = "dialogue_started"
	GameStateChanged = "game_state_changed"
)

// Dispatch runs event handlers against the emitted events. Single pass,
// no recursion. Returns additional commands produced by matching handlers.
func Dispatch(events []types.Event, s *types.State, defs *state.Defs) []types.Command {
	var result []types.Command

	for _, event := range events {
		for _, handler := range defs.Handlers {
			if handler.EventType != event.Type {
				continue
			}
			if !rules.EvalAllConditions(handler.Conditions, s) {
				continue
			}
			result = append(result, handler.Commands...)
		}
	}

	return result
}
