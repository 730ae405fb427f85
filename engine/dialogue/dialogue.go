// Package dialogue walks patron conversation nodes.
package dialogue

import (
	"fmt"

	"github.com/nathoo/ontherocks/engine/rules"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// NodeNotFoundError reports a jump to a node that was never defined.
type NodeNotFoundError struct {
	Node string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("dialogue node %q not found", e.Node)
}

// ChoiceError reports a choice outside the visible options.
type ChoiceError struct {
	Choice    int
	Available int
}

func (e *ChoiceError) Error() string {
	if e.Available == 0 {
		return "there is nothing to choose right now"
	}
	return fmt.Sprintf("choose a number between 1 and %d", e.Available)
}

// Enter makes id the active node and returns its definition. The caller runs
// the node's entry commands and prints its lines.
func Enter(id string, s *types.State, defs *state.Defs) (types.NodeDef, error) {
	node, ok := defs.Nodes[id]
	if !ok {
		return types.NodeDef{}, &NodeNotFoundError{Node: id}
	}
	s.Node = id
	return node, nil
}

// Current returns the active node, if any.
func Current(s *types.State, defs *state.Defs) (types.NodeDef, bool) {
	if s.Node == "" {
		return types.NodeDef{}, false
	}
	node, ok := defs.Nodes[s.Node]
	return node, ok
}

// AvailableOptions returns the options of the active node whose
// requirements are met, in definition order.
func AvailableOptions(s *types.State, defs *state.Defs) []types.OptionDef {
	node, ok := Current(s, defs)
	if !ok {
		return nil
	}
	var result []types.OptionDef
	for _, opt := range node.Options {
		if rules.EvalAllConditions(opt.Requires, s) {
			result = append(result, opt)
		}
	}
	return result
}

// Choose selects the n-th (1-based) available option. The active node is
// cleared; the caller runs the option's commands and enters opt.Next.
func Choose(n int, s *types.State, defs *state.Defs) (types.OptionDef, error) {
	opts := AvailableOptions(s, defs)
	if n < 1 || n > len(opts) {
		return types.OptionDef{}, &ChoiceError{Choice: n, Available: len(opts)}
	}
	s.Node = ""
	return opts[n-1], nil
}

// Continue follows the active node's Next link when it has no visible
// options. It returns the next node ID, or "" when the conversation ends.
func Continue(s *types.State, defs *state.Defs) (string, error) {
	node, ok := Current(s, defs)
	if !ok {
		return "", nil
	}
	if len(AvailableOptions(s, defs)) > 0 {
		return "", &ChoiceError{Available: len(AvailableOptions(s, defs))}
	}
	s.Node = ""
	return node.Next, nil
}

// End clears the active node.
func End(s *types.State) {
	s.Node = ""
}
