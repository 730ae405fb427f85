// Package convert turns a finished drink into an affect delta.
package convert

import (
	"math"

	"github.com/nathoo/ontherocks/types"
)

// MaxIntensity is the ceiling for any single effect category.
const MaxIntensity = 10

// Lookup resolves an ingredient ID to its definition. *catalog.Catalog
// satisfies it.
type Lookup interface {
	Get(id string) (types.ComponentDef, error)
}

// fallback is keyed by the drink's primary taste and used only when no
// ingredient resolves to an effect.
var fallback = map[types.Taste]map[types.PrimaryEffect]int{
	types.TasteSweet:  {types.EffectHealing: 7, types.EffectCalming: 3},
	types.TasteSour:   {types.EffectEnergizing: 8, types.EffectMindEnhancing: 2},
	types.TasteBitter: {types.EffectTruthInducing: 9},
	types.TasteSpicy:  {types.EffectCourageBoosting: 8, types.EffectEnergizing: 4},
}

var fallbackDefault = map[types.PrimaryEffect]int{types.EffectCalming: 5}

// Convert computes the affect delta for d. Each ingredient contributes
// round(min(volume/10, 1) * 10) to its primary effect, summed per category
// and clamped at MaxIntensity. Ingredients lookup cannot resolve are skipped.
// When nothing resolves, the delta comes from the drink's primary taste.
func Convert(d types.Drink, lookup Lookup) map[types.PrimaryEffect]int {
	effects := Primary(d, lookup)
	if len(effects) > 0 {
		return effects
	}
	return Fallback(d.Taste.Primary)
}

// Primary runs the ingredient path only. It may return an empty map.
func Primary(d types.Drink, lookup Lookup) map[types.PrimaryEffect]int {
	effects := map[types.PrimaryEffect]int{}
	if lookup == nil {
		return effects
	}
	for id, volume := range d.Ingredients {
		def, err := lookup.Get(id)
		if err != nil {
			continue
		}
		if def.PrimaryEffect == "" {
			continue
		}
		effects[def.PrimaryEffect] = min(effects[def.PrimaryEffect]+Strength(volume), MaxIntensity)
	}
	return effects
}

// Strength maps a poured volume to an intensity in [0, 10].
func Strength(volume float64) int {
	if volume <= 0 {
		return 0
	}
	return int(math.Round(math.Min(volume/10.0, 1.0) * 10))
}

// Fallback returns the fixed delta for a primary taste. The result is a
// fresh map the caller may keep.
func Fallback(primary types.Taste) map[types.PrimaryEffect]int {
	src, ok := fallback[primary]
	if !ok {
		src = fallbackDefault
	}
	out := make(map[types.PrimaryEffect]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
