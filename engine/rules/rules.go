package rules

import (
	"sort"

	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// Evaluate selects the content rule for a resolved command and returns its
// commands. The bool reports whether a rule matched; when it is false the
// engine falls back to its built-in handling of the verb.
func Evaluate(s *types.State, defs *state.Defs, verb, objectID string) ([]types.Command, bool) {
	if winner := Select(defs.Rules, s, verb, objectID); winner != nil {
		return winner.Commands, true
	}
	return nil, false
}

// Select filters rules by match and conditions, ranks the survivors and
// returns the first, or nil when nothing matches.
// Ranking: specificity (desc), priority (desc), source order (asc).
func Select(rules []types.RuleDef, s *types.State, verb, objectID string) *types.RuleDef {
	var candidates []types.RuleDef
	for _, rule := range rules {
		if !MatchesIntent(rule.When, verb, objectID, s) {
			continue
		}
		if !EvalAllConditions(rule.Conditions, s) {
			continue
		}
		candidates = append(candidates, rule)
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := Specificity(candidates[i]), Specificity(candidates[j])
		if si != sj {
			return si > sj
		}
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].SourceOrder < candidates[j].SourceOrder
	})

	return &candidates[0]
}
