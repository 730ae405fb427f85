package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/ontherocks/engine/command"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var validCommandTypes = map[string]bool{
	"say":                 true,
	"set_flag":            true,
	"inc_counter":         true,
	"set_counter":         true,
	"set_var":             true,
	"change_gamestate":    true,
	"change_dialog_state": true,
	"consume_drink":       true,
	"start_node":          true,
	"emit_event":          true,
	"stop":                true,
}

var validConditionTypes = map[string]bool{
	"flag_set":      true,
	"flag_not":      true,
	"flag_is":       true,
	"counter_gt":    true,
	"counter_lt":    true,
	"var_gt":        true,
	"var_gte":       true,
	"var_lt":        true,
	"drink_is":      true,
	"patron_is":     true,
	"game_state_is": true,
	"not":           true,
}

// knownVerbs are the verbs the parser can produce.
var knownVerbs = map[string]bool{
	"add": true, "reset": true, "craft": true, "glass": true,
	"menu": true, "examine": true, "choose": true, "continue": true,
	"look": true, "mood": true, "help": true, "start": true,
}

var knownIdentities = map[types.Identity]bool{
	types.IdentityBinaryBarrel:   true,
	types.IdentityBotanicalSurge: true,
	types.IdentityEventHorizon:   true,
	types.IdentityStellarLumen:   true,
	types.IdentityEchoBloom:      true,
	types.IdentityOldMemory:      true,
	types.IdentityCryoDrop:       true,
	types.IdentityCosmopolitan:   true,
	types.IdentitySynthCascade:   true,
	types.IdentityZeroPhase:      true,
}

var knownSecondary = map[types.SecondaryKind]bool{
	types.SecondaryEuphoric:       true,
	types.SecondaryAgitated:       true,
	types.SecondaryHallucinogenic: true,
	types.SecondaryParanoia:       true,
	types.SecondaryAggressive:     true,
	types.SecondarySedated:        true,
}

// validator gathers errors and warnings over one Defs.
type validator struct {
	defs     *state.Defs
	errors   []string
	warnings []string
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for referential integrity and
// consistency. Warnings never fail the load.
func validate(defs *state.Defs) ([]string, error) {
	v := &validator{defs: defs}

	if defs.Game.Title == "" {
		v.errorf("Game.title is required")
	}
	if defs.Game.Start == "" {
		v.errorf("Game.start is required")
	} else if _, ok := defs.Nodes[defs.Game.Start]; !ok {
		v.errorf("start node %q not found in defined nodes", defs.Game.Start)
	}
	if g := defs.Game.Glass; g != "" {
		if _, ok := defs.Glasses[g]; !ok {
			v.errorf("Game.glass %q not found in defined glasses", g)
		}
	}

	if len(defs.Ingredients) == 0 {
		v.warnf("no ingredients defined; the shelf will be empty")
	}
	for _, id := range sortedIDs(defs.Ingredients) {
		v.ingredient(defs.Ingredients[id])
	}
	for _, id := range sortedIDs(defs.Glasses) {
		v.glass(defs.Glasses[id])
	}
	for _, id := range sortedIDs(defs.Patrons) {
		p := defs.Patrons[id]
		v.nodeRef(fmt.Sprintf("patron %q enters", id), p.Enters)
		v.nodeRef(fmt.Sprintf("patron %q served", id), p.Served)
	}
	for _, id := range sortedIDs(defs.Nodes) {
		v.node(defs.Nodes[id])
	}

	ruleIDs := map[string]bool{}
	for _, rule := range defs.Rules {
		if ruleIDs[rule.ID] {
			v.errorf("duplicate rule ID %q", rule.ID)
		}
		ruleIDs[rule.ID] = true
		v.rule(rule)
	}

	for _, h := range defs.Handlers {
		v.conditions(h.Conditions)
		v.commands(h.Commands)
	}

	if len(v.errors) > 0 {
		return v.warnings, &ValidationError{Errors: v.errors}
	}
	return v.warnings, nil
}

func (v *validator) ingredient(d types.ComponentDef) {
	if d.Size <= 0 {
		v.errorf("ingredient %q size must be positive, got %g", d.ID, d.Size)
	}
	if !validTaste(d.Taste) {
		v.errorf("ingredient %q has unknown taste %q", d.ID, d.Taste)
	}
	if d.PrimaryEffect != "" && !validEffect(d.PrimaryEffect) {
		v.errorf("ingredient %q has unknown effect %q", d.ID, d.PrimaryEffect)
	}
	if d.PrimaryEffect == "" {
		v.warnf("ingredient %q has no effect", d.ID)
	}
	sec := d.Secondary
	if sec.Kind == "" {
		return
	}
	if !knownSecondary[sec.Kind] {
		v.errorf("ingredient %q has unknown secondary effect %q", d.ID, sec.Kind)
	}
	if sec.Condition.VolumeNeeded < 0 {
		v.errorf("ingredient %q secondary volume must not be negative", d.ID)
	}
	if c := sec.Condition.Catalyst; c != "" {
		if _, ok := v.defs.Ingredients[c]; !ok {
			v.errorf("ingredient %q catalyst %q is not a defined ingredient", d.ID, c)
		}
	}
}

func (v *validator) glass(g types.GlassDef) {
	if g.Capacity <= 0 {
		v.errorf("glass %q capacity must be positive, got %g", g.ID, g.Capacity)
	}
	switch g.Shape {
	case types.ShapeWine, types.ShapeWhiskey, types.ShapeCocktail:
	default:
		v.warnf("glass %q has unknown shape %q; drinks will classify as cocktails", g.ID, g.Shape)
	}
}

func (v *validator) node(n types.NodeDef) {
	v.nodeRef(fmt.Sprintf("node %q next", n.ID), n.Next)
	v.commands(n.Commands)
	for i, opt := range n.Options {
		if opt.Text == "" {
			v.errorf("node %q option %d has no text", n.ID, i+1)
		}
		v.nodeRef(fmt.Sprintf("node %q option %d", n.ID, i+1), opt.Next)
		v.conditions(opt.Requires)
		v.commands(opt.Commands)
	}
	if len(n.Lines) == 0 && len(n.Options) == 0 && len(n.Commands) == 0 {
		v.warnf("node %q is empty", n.ID)
	}
}

func (v *validator) rule(r types.RuleDef) {
	v.conditions(r.Conditions)
	v.commands(r.Commands)
	if r.When.Verb == "" {
		v.errorf("rule %q has no verb", r.ID)
	} else if !knownVerbs[r.When.Verb] {
		v.warnf("rule %q uses unrecognized verb %q", r.ID, r.When.Verb)
	}
	if gs := r.When.GameState; gs != "" && !command.ValidGameState(gs) {
		v.errorf("rule %q matches unknown game state %q", r.ID, gs)
	}
}

// nodeRef checks an optional node reference.
func (v *validator) nodeRef(what, id string) {
	if id == "" || isTemplate(id) {
		return
	}
	if _, ok := v.defs.Nodes[id]; !ok {
		v.errorf("%s points to undefined node %q", what, id)
	}
}

func (v *validator) conditions(conds []types.Condition) {
	for _, c := range conds {
		if !validConditionTypes[c.Type] {
			v.errorf("unknown condition type %q", c.Type)
			continue
		}
		switch c.Type {
		case "patron_is":
			if p, _ := c.Params["patron"].(string); !isTemplate(p) {
				if _, ok := v.defs.Patrons[p]; !ok {
					v.errorf("condition patron_is references undefined patron %q", p)
				}
			}
		case "game_state_is":
			if gs, _ := c.Params["state"].(string); !command.ValidGameState(gs) {
				v.errorf("condition game_state_is references unknown game state %q", gs)
			}
		case "drink_is":
			if id, _ := c.Params["identity"].(string); !knownIdentities[types.Identity(id)] {
				v.warnf("condition drink_is references unknown drink %q", id)
			}
		case "not":
			if c.Inner != nil {
				v.conditions([]types.Condition{*c.Inner})
			}
		}
	}
}

func (v *validator) commands(cmds []types.Command) {
	for _, cmd := range cmds {
		if !validCommandTypes[cmd.Type] {
			v.errorf("unknown command type %q", cmd.Type)
			continue
		}
		switch cmd.Type {
		case "start_node":
			node, _ := cmd.Params["node"].(string)
			v.nodeRef("command start_node", node)
		case "change_gamestate":
			if gs, _ := cmd.Params["state"].(string); !command.ValidGameState(gs) {
				v.errorf("command change_gamestate references unknown game state %q", gs)
			}
		case "change_dialog_state":
			if p, _ := cmd.Params["patron"].(string); !isTemplate(p) {
				if _, ok := v.defs.Patrons[p]; !ok {
					v.errorf("command change_dialog_state references undefined patron %q", p)
				}
			}
		}
	}
}

func validTaste(t types.Taste) bool {
	for _, known := range types.Tastes {
		if t == known {
			return true
		}
	}
	return false
}

func validEffect(e types.PrimaryEffect) bool {
	for _, known := range types.Effects {
		if e == known {
			return true
		}
	}
	return false
}

// isTemplate returns true if the string contains a template variable.
func isTemplate(s string) bool {
	return strings.Contains(s, "{") && strings.Contains(s, "}")
}

func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
