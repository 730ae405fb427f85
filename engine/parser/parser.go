// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/ontherocks/types"
)

var verbAliases = map[string]string{
	// Pour
	"pour":   "add",
	"splash": "add",
	"drip":   "add",
	"put":    "add",

	// Start over
	"empty":   "reset",
	"dump":    "reset",
	"clear":   "reset",
	"restart": "reset",
	"tip":     "reset",

	// Finish the drink
	"mix":    "craft",
	"serve":  "craft",
	"shake":  "craft",
	"stir":   "craft",
	"finish": "craft",
	"done":   "craft",

	// Glass selection
	"use":  "glass",
	"swap": "glass",

	// Shelf
	"ingredients": "menu",
	"shelf":       "menu",
	"bottles":     "menu",
	"list":        "menu",

	// Examine
	"x":        "examine",
	"inspect":  "examine",
	"check":    "examine",
	"describe": "examine",
	"smell":    "examine",
	"sniff":    "examine",
	"taste":    "examine",

	// Dialogue
	"pick":   "choose",
	"option": "choose",
	"answer": "choose",
	"c":      "continue",
	"next":   "continue",
	"ok":     "continue",

	// Opening up
	"open":  "start",
	"begin": "start",

	// Miscellaneous
	"l":       "look",
	"vibe":    "mood",
	"effects": "mood",
	"h":       "help",
	"?":       "help",
}

var prepositions = map[string]bool{
	"into": true, "in": true, "to": true,
	"on": true, "with": true, "from": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "some": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Bare number picks a dialogue option.
	if len(words) == 1 {
		if _, err := strconv.Atoi(words[0]); err == nil {
			return types.Intent{Verb: "choose", Object: words[0]}
		}
	}

	// Handle multi-word verb phrases before general parsing.
	words = expandMultiWordVerbs(words)
	if len(words) == 0 {
		return types.Intent{}
	}

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	// Everything after the first preposition is scenery ("pour X into the glass").
	object := beforePreposition(rest)
	if verb == "glass" {
		object = strings.TrimSuffix(strings.TrimSpace(object), " glass")
	}

	return types.Intent{
		Verb:   verb,
		Object: object,
	}
}

// expandMultiWordVerbs handles "look at", "go on", "start over" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "at" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "go", "carry":
		if words[1] == "on" {
			return append([]string{"continue"}, words[2:]...)
		}
	case "start":
		if words[1] == "over" {
			return append([]string{"reset"}, words[2:]...)
		}
	case "put", "pour", "drop":
		if words[1] == "in" {
			return append([]string{"add"}, words[2:]...)
		}
	case "hand", "slide":
		if words[1] == "over" {
			return append([]string{"craft"}, words[2:]...)
		}
	case "switch", "change":
		if words[1] == "glass" || words[1] == "to" {
			return append([]string{"glass"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// beforePreposition joins the words up to the first preposition.
func beforePreposition(words []string) string {
	for i, w := range words {
		if prepositions[w] {
			return strings.Join(words[:i], " ")
		}
	}
	return strings.Join(words, " ")
}
