package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/ontherocks/engine/affect"
	"github.com/nathoo/ontherocks/engine/dialogue"
	"github.com/nathoo/ontherocks/engine/events"
	"github.com/nathoo/ontherocks/engine/glass"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// builtin handles a verb no content rule claimed.
func (e *Engine) builtin(t *turn, intent types.Intent, objectID string) {
	switch intent.Verb {
	case "look":
		e.describe(t)
		return
	case "mood":
		e.mood(t)
		return
	case "help":
		e.help(t)
		return
	case "menu":
		e.shelf(t)
		return
	case "examine":
		e.examine(t, objectID)
		return
	}

	switch e.State.GameState {
	case types.GameStateCrafting:
		e.crafting(t, intent, objectID)
	case types.GameStateDialogues:
		e.talking(t, intent)
	case types.GameStateMenu:
		if intent.Verb == "start" {
			e.run(t, []types.Command{{
				Type:   "change_gamestate",
				Params: map[string]any{"state": types.GameStateDialogues},
			}})
			return
		}
		t.say("The bar is closed. Type 'start' to open up.")
	case types.GameStateEndNight:
		t.say("The bar is closed for the night.")
	}
}

// crafting handles verbs while the player is behind the bar.
func (e *Engine) crafting(t *turn, intent types.Intent, objectID string) {
	switch intent.Verb {
	case "add":
		if objectID == "" {
			t.say("Pour what?")
			return
		}
		e.pour(t, objectID)
	case "reset":
		e.Bar.Reset()
		t.emit(events.GlassReset, map[string]any{"glass": e.Bar.Glass().ID})
		t.say("You tip the glass out and start over.")
	case "glass":
		e.switchGlass(t, objectID)
	case "craft":
		e.craft(t)
	case "choose", "continue":
		t.say("You're behind the bar. Mix something and serve it.")
	default:
		t.say(fmt.Sprintf("You don't know how to %q.", intent.Verb))
	}
}

func (e *Engine) pour(t *turn, id string) {
	err := e.Bar.Add(id)
	var full *glass.CapacityExceededError
	switch {
	case errors.As(err, &full):
		t.emit(events.GlassFull, map[string]any{
			"ingredient": id,
			"volume":     full.Current,
			"capacity":   full.Capacity,
		})
		t.say("The glass is full.")
		return
	case err != nil:
		t.say(playerMessage(err))
		return
	}

	def := e.Defs.Ingredients[id]
	t.emit(events.IngredientAdded, map[string]any{
		"ingredient": id,
		"volume":     e.Bar.CurrentVolume(),
		"capacity":   e.Bar.Capacity(),
	})
	t.say(fmt.Sprintf("You pour %s into the glass. (%g/%g)",
		ingredientName(def), e.Bar.CurrentVolume(), e.Bar.Capacity()))
}

func (e *Engine) switchGlass(t *turn, id string) {
	if id == "" {
		g := e.Bar.Glass()
		t.say(fmt.Sprintf("You're pouring into a %s. (%g/%g)", glassName(g), e.Bar.CurrentVolume(), g.Capacity))
		return
	}
	def, ok := e.Defs.Glasses[id]
	if !ok {
		t.say(fmt.Sprintf("There's no %q glass behind the bar.", id))
		return
	}
	if def.ID == e.Bar.Glass().ID {
		t.say(fmt.Sprintf("You're already holding a %s.", glassName(def)))
		return
	}
	if err := e.Bar.UseGlass(def); err != nil {
		t.say(playerMessage(err))
		return
	}
	t.emit(events.GlassChanged, map[string]any{"glass": def.ID, "shape": string(def.Shape)})
	t.say(fmt.Sprintf("You reach for a %s. (0/%g)", glassName(def), def.Capacity))
}

// craft finalizes the glass and hands it to the current patron.
func (e *Engine) craft(t *turn) {
	node := ""
	patron, hasPatron := state.PatronFor(e.State, e.Defs)
	if hasPatron {
		node = patron.Served
	}
	empty := e.Bar.CurrentVolume() == 0

	out, err := e.Bar.Craft(node, nodeStarter{e: e, t: t})

	t.emit(events.DrinkCrafted, map[string]any{
		"drink":  string(out.Drink.Identity),
		"taste":  string(out.Drink.Taste.Primary),
		"shape":  string(out.Drink.Shape),
		"served": out.ID.String(),
	})
	if out.Changed {
		t.emit(events.EffectsChanged, deltaData(out.Delta))
	}

	// The drink is announced before the dialogue lines that react to it.
	announce := fmt.Sprintf("You slide a %s across the bar.", IdentityName(out.Drink.Identity))
	if empty {
		announce = fmt.Sprintf("You slide an empty glass across the bar. It counts as a %s.", IdentityName(out.Drink.Identity))
	}
	t.result.Output = append([]string{announce}, t.result.Output...)

	if err != nil {
		e.logger.Printf("engine: %v", err)
		t.say(playerMessage(err))
		return
	}
	if out.Node == "" {
		e.State.HeldDrink = out.Drink.Identity
		who := "Nobody"
		if hasPatron {
			who = patronName(patron)
		}
		t.say(fmt.Sprintf("%s is waiting for that drink.", who))
		e.freshGlass(t)
	}
}

// talking handles verbs while a conversation is running.
func (e *Engine) talking(t *turn, intent types.Intent) {
	switch intent.Verb {
	case "choose":
		n, err := strconv.Atoi(intent.Object)
		if err != nil {
			t.say("Choose which option? Give its number.")
			return
		}
		opt, err := dialogue.Choose(n, e.State, e.Defs)
		if err != nil {
			t.say(sentence(err.Error()))
			return
		}
		t.say("> " + opt.Text)
		e.run(t, opt.Commands)
		if opt.Next != "" && e.State.Node == "" && e.State.GameState == types.GameStateDialogues {
			if err := e.enterNode(t, opt.Next); err != nil {
				t.say(err.Error())
			}
			return
		}
		e.trailOff(t)
	case "continue":
		next, err := dialogue.Continue(e.State, e.Defs)
		if err != nil {
			t.say(sentence(err.Error()))
			return
		}
		if next == "" {
			e.trailOff(t)
			return
		}
		if err := e.enterNode(t, next); err != nil {
			t.say(err.Error())
		}
	case "add", "reset", "craft", "glass":
		t.say("Finish the conversation first.")
	default:
		t.say(fmt.Sprintf("You don't know how to %q.", intent.Verb))
	}
}

// trailOff reports a conversation that ended without moving the game on.
func (e *Engine) trailOff(t *turn) {
	if e.State.Node == "" && e.State.GameState == types.GameStateDialogues {
		t.say("The conversation trails off.")
	}
}

// describe prints where the player is.
func (e *Engine) describe(t *turn) {
	switch e.State.GameState {
	case types.GameStateCrafting:
		g := e.Bar.Glass()
		t.say(fmt.Sprintf("Behind the bar. %s: %g/%g.", capitalize(glassName(g)), e.Bar.CurrentVolume(), g.Capacity))
		contents := e.Bar.Contents()
		if len(contents) == 0 {
			t.say("The glass is empty.")
		}
		for _, id := range sortedKeys(contents) {
			t.say(fmt.Sprintf("  %s: %g", ingredientName(e.Defs.Ingredients[id]), contents[id]))
		}
		if p, ok := state.PatronFor(e.State, e.Defs); ok {
			t.say(fmt.Sprintf("%s is waiting.", patronName(p)))
		}
	case types.GameStateDialogues:
		node, ok := dialogue.Current(e.State, e.Defs)
		if !ok {
			t.say("The bar is quiet.")
			return
		}
		for _, line := range node.Lines {
			t.say(speakerLine(node.Speaker, line, e.State, e.Defs, t.ctx))
		}
		e.showOptions(t)
	case types.GameStateEndNight:
		t.say("The chairs are up and the lights are low. The night is over.")
	default:
		title := e.Defs.Game.Title
		if title == "" {
			title = "The bar"
		}
		t.say(fmt.Sprintf("%s is closed. Type 'start' to open up.", title))
	}
}

func (e *Engine) shelf(t *turn) {
	defs := state.IngredientList(e.Defs)
	if len(defs) == 0 {
		t.say("The shelf is bare.")
		return
	}
	t.say("On the shelf:")
	for _, d := range defs {
		t.say(fmt.Sprintf("  %-16s %s, %s (%g)", ingredientName(d), d.Taste, effectName(d.PrimaryEffect), d.Size))
	}
}

func (e *Engine) examine(t *turn, id string) {
	if id == "" {
		e.describe(t)
		return
	}
	d, ok := e.Defs.Ingredients[id]
	if !ok {
		t.say(fmt.Sprintf("You see no %s.", id))
		return
	}
	if d.Description != "" {
		t.say(d.Description)
	}
	t.say(fmt.Sprintf("%s: %s taste, %s effect, %g per pour.", ingredientName(d), d.Taste, effectName(d.PrimaryEffect), d.Size))
	if d.Secondary.Kind != "" {
		t.say(fmt.Sprintf("Said to turn %s past %g.", d.Secondary.Kind, d.Secondary.Condition.VolumeNeeded))
	}
}

// mood prints the affect registry.
func (e *Engine) mood(t *turn) {
	t.say(e.Mood()...)
}

// Mood renders one meter line per affect, in catalog effect order.
func (e *Engine) Mood() []string {
	reg := e.Bar.Registry()
	lines := make([]string, 0, len(types.Effects))
	for _, eff := range types.Effects {
		n := reg.Get(eff)
		lines = append(lines, fmt.Sprintf("  %-16s %s %d", effectName(eff), meter(n), n))
	}
	return lines
}

func (e *Engine) help(t *turn) {
	switch e.State.GameState {
	case types.GameStateCrafting:
		t.say(
			"Behind the bar:",
			"  pour <ingredient>  add a serving to the glass",
			"  use <glass>        switch to another empty glass",
			"  empty              tip the glass out",
			"  serve              finish the drink and hand it over",
			"  shelf              list the ingredients",
		)
	default:
		t.say(
			"In conversation:",
			"  <number>           pick a reply",
			"  continue           move the conversation along",
		)
	}
	t.say("Any time: look, mood, examine <ingredient>")
}

func meter(n int) string {
	if n < 0 {
		n = 0
	}
	if n > affect.Max {
		n = affect.Max
	}
	return strings.Repeat("#", n) + strings.Repeat(".", affect.Max-n)
}

func deltaData(delta map[types.PrimaryEffect]int) map[string]any {
	data := make(map[string]any, len(delta))
	for eff, v := range delta {
		data[string(eff)] = v
	}
	return data
}
