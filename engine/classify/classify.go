// Package classify ranks the accumulated profile of a glass and maps it to a
// named drink identity.
package classify

import (
	"sort"
	"strings"
	"unicode"

	"github.com/nathoo/ontherocks/types"
)

// rule is one guarded row of a shape's decision table. An empty guard field
// matches any taste.
type rule struct {
	Primary   types.Taste
	Secondary types.Taste
	Identity  types.Identity
}

// table holds the ordered rules for a shape. The last row has no guards and
// acts as the default.
var tables = map[types.GlassShape][]rule{
	types.ShapeWine: {
		{Primary: types.TasteSour, Identity: types.IdentityBinaryBarrel},
		{Primary: types.TasteUmami, Identity: types.IdentityBotanicalSurge},
		{Primary: types.TasteSweet, Secondary: types.TasteSpicy, Identity: types.IdentityEventHorizon},
		{Identity: types.IdentityStellarLumen},
	},
	types.ShapeWhiskey: {
		{Primary: types.TasteUmami, Identity: types.IdentityEchoBloom},
		{Primary: types.TasteBitter, Identity: types.IdentityOldMemory},
		{Identity: types.IdentityCryoDrop},
	},
	types.ShapeCocktail: {
		{Primary: types.TasteCitrus, Identity: types.IdentityCosmopolitan},
		{Primary: types.TasteSpicy, Identity: types.IdentitySynthCascade},
		{Identity: types.IdentityZeroPhase},
	},
}

// Classify returns the identity for a shape and ranked taste pair. Rules are
// evaluated top to bottom; the first match wins. Unknown shapes classify
// as cocktails.
func Classify(shape types.GlassShape, primary, secondary types.Taste) types.Identity {
	rules, ok := tables[shape]
	if !ok {
		rules = tables[types.ShapeCocktail]
	}
	for _, r := range rules {
		if matches(r, primary, secondary) {
			return r.Identity
		}
	}
	// Unreachable while every table ends in a default row.
	return rules[len(rules)-1].Identity
}

// Name splits an identity like "BotanicalSurge" into "Botanical Surge".
func Name(id types.Identity) string {
	var b strings.Builder
	for i, r := range string(id) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Default returns the identity an empty glass of the given shape yields.
func Default(shape types.GlassShape) types.Identity {
	return Classify(shape, types.TasteNone, types.TasteNone)
}

func matches(r rule, primary, secondary types.Taste) bool {
	if r.Primary != "" && r.Primary != primary {
		return false
	}
	if r.Secondary != "" && r.Secondary != secondary {
		return false
	}
	return true
}

// RankTastes orders the tastes present in weights by descending weight and
// returns the top two. Equal weights keep the order of types.Tastes. Missing
// ranks are TasteNone.
func RankTastes(weights map[types.Taste]float64) types.TastePair {
	ranked := rank(types.Tastes, weights)
	pair := types.TastePair{Primary: types.TasteNone, Secondary: types.TasteNone}
	if len(ranked) > 0 {
		pair.Primary = ranked[0]
	}
	if len(ranked) > 1 {
		pair.Secondary = ranked[1]
	}
	return pair
}

// RankEffects is RankTastes for primary effects. Missing ranks are the
// empty effect.
func RankEffects(weights map[types.PrimaryEffect]float64) types.EffectPair {
	ranked := rank(types.Effects, weights)
	var pair types.EffectPair
	if len(ranked) > 0 {
		pair.Primary = ranked[0]
	}
	if len(ranked) > 1 {
		pair.Secondary = ranked[1]
	}
	return pair
}

// rank returns the keys of weights sorted by descending weight, ties in
// declaration order. Keys outside order sort after every declared key,
// alphabetically.
func rank[K ~string](order []K, weights map[K]float64) []K {
	pos := make(map[K]int, len(order))
	for i, k := range order {
		pos[k] = i
	}
	position := func(k K) int {
		if p, ok := pos[k]; ok {
			return p
		}
		return len(order)
	}

	keys := make([]K, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		wi, wj := weights[keys[i]], weights[keys[j]]
		if wi != wj {
			return wi > wj
		}
		pi, pj := position(keys[i]), position(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})
	return keys
}
