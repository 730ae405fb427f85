// Package resolve maps player-typed names to ingredient and glass IDs.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/nathoo/ontherocks/engine/state"
)

// AmbiguityError indicates multiple definitions matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates nothing matched a name. Suggestions holds close
// spellings, best first.
type NotFoundError struct {
	Kind        string // "ingredient" or "glass"
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("there's no %s called %q behind the bar", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Did you mean %s?", strings.Join(e.Suggestions, " or "))
	}
	return msg
}

// maxSuggestions caps NotFoundError.Suggestions.
const maxSuggestions = 3

type candidate struct {
	id   string
	name string
}

// Ingredient resolves a name to an ingredient ID.
func Ingredient(defs *state.Defs, name string) (string, error) {
	cands := make([]candidate, 0, len(defs.Ingredients))
	for _, id := range state.IngredientIDs(defs) {
		cands = append(cands, candidate{id: id, name: defs.Ingredients[id].Name})
	}
	return resolveName("ingredient", cands, name)
}

// Glass resolves a name to a glass ID. A shape name ("whiskey") matches
// glasses of that shape.
func Glass(defs *state.Defs, name string) (string, error) {
	cands := make([]candidate, 0, len(defs.Glasses))
	for _, id := range state.GlassIDs(defs) {
		g := defs.Glasses[id]
		cands = append(cands, candidate{id: id, name: g.Name})
		if string(g.Shape) != id {
			cands = append(cands, candidate{id: id, name: string(g.Shape)})
		}
	}
	return resolveName("glass", cands, name)
}

// resolveName resolves a single name against candidates, in order:
// exact ID, exact name, underscore-normalized ID, single word of a name.
func resolveName(kind string, cands []candidate, name string) (string, error) {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	for _, c := range cands {
		if c.id == nameLower {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range cands {
		if matchesName(c, nameLower) && !containsStr(matches, c.id) {
			matches = append(matches, c.id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, Name: name, Suggestions: suggest(cands, nameLower)}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: name, Candidates: matches}
	}
}

// matchesName checks a candidate against a lowercased query.
// Supports exact name match, word-based partial match, and ID match.
func matchesName(c candidate, nameLower string) bool {
	fullLower := strings.ToLower(c.name)
	if fullLower != "" {
		if fullLower == nameLower {
			return true
		}
		// "void" matches "void reserve", "icegel" matches every icegel.
		for _, word := range strings.Fields(fullLower) {
			if word == nameLower {
				return true
			}
		}
	}
	idLower := strings.ToLower(c.id)
	if strings.ReplaceAll(nameLower, " ", "_") == idLower {
		return true
	}
	return false
}

// suggest returns the IDs whose ID or name is within edit distance of the
// query, closest first.
func suggest(cands []candidate, nameLower string) []string {
	if len(nameLower) < 3 {
		return nil
	}
	query := strings.ReplaceAll(nameLower, " ", "_")
	best := map[string]int{}
	consider := func(id, text string) {
		if text == "" {
			return
		}
		dist := levenshtein.ComputeDistance(query, text)
		if dist > levenshteinLimit(len(text)) {
			return
		}
		if prev, ok := best[id]; !ok || dist < prev {
			best[id] = dist
		}
	}
	for _, c := range cands {
		consider(c.id, strings.ToLower(c.id))
		consider(c.id, strings.ReplaceAll(strings.ToLower(c.name), " ", "_"))
	}

	ids := make([]string, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if best[ids[i]] != best[ids[j]] {
			return best[ids[i]] < best[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > maxSuggestions {
		ids = ids[:maxSuggestions]
	}
	return ids
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func containsStr(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
