package engine

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/ontherocks/engine/classify"
	"github.com/nathoo/ontherocks/engine/command"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// DisplayName turns an ID like "void_reserve" into "Void Reserve".
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

// IdentityName splits a drink identity like "BotanicalSurge" into words.
func IdentityName(id types.Identity) string {
	return classify.Name(id)
}

func ingredientName(d types.ComponentDef) string {
	if d.Name != "" {
		return d.Name
	}
	return DisplayName(d.ID)
}

func glassName(g types.GlassDef) string {
	if g.Name != "" {
		return strings.ToLower(g.Name)
	}
	return strings.ReplaceAll(g.ID, "_", " ") + " glass"
}

func patronName(p types.PatronDef) string {
	if p.Name != "" {
		return p.Name
	}
	return DisplayName(p.ID)
}

func effectName(e types.PrimaryEffect) string {
	return strings.ReplaceAll(string(e), "_", " ")
}

// speakerLine renders one node line. A speaker naming a patron is shown by
// the patron's name; an empty speaker is narration.
func speakerLine(speaker, line string, s *types.State, defs *state.Defs, ctx command.Context) string {
	line = command.Interpolate(line, s, defs, ctx)
	if speaker == "" {
		return line
	}
	if p, ok := defs.Patrons[speaker]; ok {
		speaker = patronName(p)
	}
	return speaker + ": " + line
}

// sentence capitalizes s and closes it with a full stop unless it already
// ends in punctuation.
func sentence(s string) string {
	s = capitalize(s)
	if s == "" || strings.ContainsAny(s[len(s)-1:], ".?!") {
		return s
	}
	return s + "."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
