// Package engine provides the Step() orchestrator that wires together
// parsing, resolution, rules, the bar, commands, dialogue and events into a
// single turn.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/nathoo/ontherocks/engine/bar"
	"github.com/nathoo/ontherocks/engine/catalog"
	"github.com/nathoo/ontherocks/engine/command"
	"github.com/nathoo/ontherocks/engine/dialogue"
	"github.com/nathoo/ontherocks/engine/events"
	"github.com/nathoo/ontherocks/engine/parser"
	"github.com/nathoo/ontherocks/engine/resolve"
	"github.com/nathoo/ontherocks/engine/rules"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// maxNodeChain bounds how many nodes one turn may enter through node
// commands, so a cycle in content cannot hang the game.
const maxNodeChain = 32

// Engine holds the game definitions, the narrative state and the bar. A new
// Engine is a new game.
type Engine struct {
	Defs  *state.Defs
	State *types.State
	Bar   *bar.Bar

	glass  types.GlassDef // issued at the start of every crafting session
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger *log.Logger
	glass  string
}

// WithLogger routes engine and bar trace logging to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithGlass overrides the glass issued for crafting sessions.
func WithGlass(id string) Option {
	return func(o *options) { o.glass = id }
}

// New creates an engine from definitions.
func New(defs *state.Defs, opts ...Option) (*Engine, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard, "", 0)
	}

	cat, err := catalog.FromMap(defs.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	glass, err := pickGlass(defs, o.glass)
	if err != nil {
		return nil, err
	}

	s := state.NewState(defs)
	return &Engine{
		Defs:   defs,
		State:  s,
		Bar:    bar.New(cat, glass, state.Vars{S: s}, o.logger),
		glass:  glass,
		logger: o.logger,
	}, nil
}

// pickGlass chooses the session glass: the override, then the game's
// default, then the first defined glass, then the house wine glass.
func pickGlass(defs *state.Defs, override string) (types.GlassDef, error) {
	id := override
	if id == "" {
		id = defs.Game.Glass
	}
	if id != "" {
		g, ok := defs.Glasses[id]
		if !ok {
			return types.GlassDef{}, fmt.Errorf("unknown glass %q", id)
		}
		return g, nil
	}
	if ids := state.GlassIDs(defs); len(ids) > 0 {
		return defs.Glasses[ids[0]], nil
	}
	return catalog.DefaultGlasses()[0], nil
}

// turn accumulates the result of one Step or Start.
type turn struct {
	result types.Result
	ctx    command.Context
	nodes  int
}

func (t *turn) say(lines ...string) {
	t.result.Output = append(t.result.Output, lines...)
}

func (t *turn) emit(typ string, data map[string]any) {
	t.result.Events = append(t.result.Events, types.Event{Type: typ, Data: data})
}

// Start opens the night at the game's start node.
func (e *Engine) Start() types.Result {
	t := &turn{}
	if e.Defs.Game.Start != "" {
		if err := e.startDialogue(t, e.Defs.Game.Start); err != nil {
			t.say(err.Error())
		}
	} else {
		e.describe(t)
	}
	e.dispatch(t)
	return t.result
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	t := &turn{}

	// 1. Parse input.
	intent := parser.Parse(input)

	// 2. Log the command.
	e.State.CommandLog = append(e.State.CommandLog, input)
	e.logger.Printf("engine: turn %d %q -> %s %q", e.State.TurnCount, input, intent.Verb, intent.Object)

	// 3. Empty input.
	if intent.Verb == "" {
		t.say("What do you want to do?")
		return t.result
	}

	// 4. Resolve the object against ingredients or glasses.
	objectID, resolveErr := e.resolveObject(intent)

	// 5. If resolution failed, let rules see the raw name before giving up.
	if resolveErr != nil && objectID == "" {
		objectID = intent.Object
	}
	t.ctx = command.Context{Verb: intent.Verb, ObjectID: objectID}

	// 6. Content rules override built-in behavior.
	cmds, matched := rules.Evaluate(e.State, e.Defs, intent.Verb, objectID)

	switch {
	case matched:
		e.run(t, cmds)
	case resolveErr != nil:
		t.say(playerMessage(resolveErr))
		e.State.TurnCount++
		return t.result
	default:
		e.builtin(t, intent, objectID)
	}

	// 7. Dispatch events (single pass).
	e.dispatch(t)

	// 8. Increment turn count.
	e.State.TurnCount++

	return t.result
}

// resolveObject maps intent.Object to an ID for verbs that take one.
func (e *Engine) resolveObject(intent types.Intent) (string, error) {
	if intent.Object == "" {
		return "", nil
	}
	switch intent.Verb {
	case "add", "examine":
		return resolve.Ingredient(e.Defs, intent.Object)
	case "glass":
		return resolve.Glass(e.Defs, intent.Object)
	default:
		return intent.Object, nil
	}
}

// run applies commands and reacts to the events they emit.
func (e *Engine) run(t *turn, cmds []types.Command) {
	if len(cmds) == 0 {
		return
	}
	evts, output := command.Apply(e.State, e.Defs, cmds, t.ctx)
	t.result.Commands = append(t.result.Commands, cmds...)
	t.result.Events = append(t.result.Events, evts...)
	t.say(output...)
	e.react(t, evts)
}

// react performs the engine side of command events: entering requested
// nodes and moving between game states.
func (e *Engine) react(t *turn, evts []types.Event) {
	for _, ev := range evts {
		switch ev.Type {
		case command.NodeRequested:
			node, _ := ev.Data["node"].(string)
			if err := e.enterNode(t, node); err != nil {
				t.say(err.Error())
			}
		case events.GameStateChanged:
			to, _ := ev.Data["to"].(string)
			e.onGameState(t, to)
		}
	}
}

// dispatch runs event handlers once over everything emitted this turn.
// Events produced by handler commands are reacted to but not re-dispatched.
func (e *Engine) dispatch(t *turn) {
	cmds := events.Dispatch(t.result.Events, e.State, e.Defs)
	e.run(t, cmds)
}

// onGameState runs when a command moves the game to a new state.
func (e *Engine) onGameState(t *turn, to string) {
	switch to {
	case types.GameStateCrafting:
		dialogue.End(e.State)
		e.freshGlass(t)
	case types.GameStateDialogues:
		if e.State.Node != "" {
			return
		}
		p, ok := state.PatronFor(e.State, e.Defs)
		if !ok || p.Enters == "" {
			t.say("The bar is quiet.")
			return
		}
		if err := e.startDialogue(t, p.Enters); err != nil {
			t.say(err.Error())
		}
	case types.GameStateEndNight:
		dialogue.End(e.State)
		t.say("The last patron drifts out. The night is over.")
	case types.GameStateMenu:
		dialogue.End(e.State)
		t.say("You step away from the bar. Type 'start' to open up again.")
	}
}

// freshGlass issues an empty session glass.
func (e *Engine) freshGlass(t *turn) {
	e.Bar.Reset()
	if e.Bar.Glass().ID != e.glass.ID {
		// The bar was emptied above, so this cannot fail.
		_ = e.Bar.UseGlass(e.glass)
	}
	g := e.Bar.Glass()
	t.say(fmt.Sprintf("You set out a clean %s. (0/%g)", glassName(g), g.Capacity))
}

// startDialogue opens a dialogue session at node. Affect variables are
// pushed before the node's own commands run.
func (e *Engine) startDialogue(t *turn, node string) error {
	if _, ok := e.Defs.Nodes[node]; !ok {
		return &dialogue.NodeNotFoundError{Node: node}
	}
	if e.State.GameState != types.GameStateDialogues {
		from := e.State.GameState
		e.State.GameState = types.GameStateDialogues
		t.emit(events.GameStateChanged, map[string]any{"from": from, "to": types.GameStateDialogues})
	}
	e.Bar.PushVariables()
	t.emit(events.DialogueStarted, map[string]any{"node": node, "patron": e.State.Patron})
	return e.enterNode(t, node)
}

// enterNode makes node active, prints it and runs its entry commands.
func (e *Engine) enterNode(t *turn, id string) error {
	t.nodes++
	if t.nodes > maxNodeChain {
		e.logger.Printf("engine: node chain limit reached at %q", id)
		return fmt.Errorf("dialogue stopped: too many nodes in one turn")
	}
	node, err := dialogue.Enter(id, e.State, e.Defs)
	if err != nil {
		return err
	}
	e.logger.Printf("engine: entered node %s", id)
	for _, line := range node.Lines {
		t.say(speakerLine(node.Speaker, line, e.State, e.Defs, t.ctx))
	}
	e.run(t, node.Commands)
	if e.State.Node == id {
		e.showOptions(t)
	}
	return nil
}

// showOptions prints the active node's visible options, or a continue hint.
func (e *Engine) showOptions(t *turn) {
	opts := dialogue.AvailableOptions(e.State, e.Defs)
	for i, opt := range opts {
		t.say(fmt.Sprintf("  %d. %s", i+1, opt.Text))
	}
	if len(opts) == 0 {
		if node, ok := dialogue.Current(e.State, e.Defs); ok && node.Next != "" {
			t.say("  (continue)")
		}
	}
}

// nodeStarter lets the bar hand a crafted drink to the dialogue layer.
type nodeStarter struct {
	e *Engine
	t *turn
}

func (n nodeStarter) StartNode(name string) error {
	if last, ok := n.e.Bar.LastServed(); ok {
		n.e.State.HeldDrink = last.Drink.Identity
	}
	return n.e.startDialogue(n.t, name)
}

// playerMessage turns typed errors into text for the player.
func playerMessage(err error) string {
	var nf *resolve.NotFoundError
	var amb *resolve.AmbiguityError
	var unknown *catalog.UnknownComponentError
	switch {
	case errors.As(err, &nf), errors.As(err, &amb):
		return sentence(err.Error())
	case errors.As(err, &unknown):
		return fmt.Sprintf("Nothing called %q sits on the shelf.", unknown.ID)
	case errors.Is(err, bar.ErrGlassNotEmpty):
		return "Empty the glass before switching."
	default:
		return sentence(err.Error())
	}
}
