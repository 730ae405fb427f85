package rules

import (
	"github.com/nathoo/ontherocks/types"
)

// MatchesIntent checks if a rule's When criteria match the resolved command.
func MatchesIntent(when types.MatchCriteria, verb, objectID string, s *types.State) bool {
	if when.Verb != verb {
		return false
	}
	if when.Object != "" && when.Object != objectID {
		return false
	}
	if when.GameState != "" && when.GameState != s.GameState {
		return false
	}
	return true
}

// Specificity returns a numeric score for ranking rules.
// Higher is more specific.
func Specificity(rule types.RuleDef) int {
	score := 0
	if rule.When.Object != "" {
		score += 2
	}
	if rule.When.GameState != "" {
		score++
	}
	return score
}
