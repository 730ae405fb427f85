// Package affect keeps the persistent mood intensities produced by served
// drinks and projects them into dialogue variables.
package affect

import (
	"github.com/nathoo/ontherocks/types"
)

// Max is the ceiling of every intensity.
const Max = 10

// VarNames maps each effect category to the dialogue variable it is exposed
// as. Every category in types.Effects has an entry.
var VarNames = map[types.PrimaryEffect]string{
	types.EffectCalming:         "calming_effect",
	types.EffectEnergizing:      "energizing_effect",
	types.EffectMindEnhancing:   "mind_enhancing_effect",
	types.EffectCourageBoosting: "courage_boosting_effect",
	types.EffectTruthInducing:   "truth_inducing_effect",
	types.EffectHealing:         "healing_effect",
}

// Registry accumulates intensities across crafting sessions. Values start at
// zero, only grow, and never exceed Max. The zero value is ready to use.
type Registry struct {
	intensities map[types.PrimaryEffect]int
	changed     bool
}

// NewRegistry returns an all-zero registry.
func NewRegistry() *Registry {
	return &Registry{intensities: map[types.PrimaryEffect]int{}}
}

// Apply merges delta into the registry, clamping each category at Max.
// Negative values are ignored. It reports whether any value changed and, if
// so, raises the changed flag.
func (r *Registry) Apply(delta map[types.PrimaryEffect]int) bool {
	if r.intensities == nil {
		r.intensities = map[types.PrimaryEffect]int{}
	}
	changed := false
	for effect, v := range delta {
		if v <= 0 {
			continue
		}
		before := r.intensities[effect]
		after := min(before+v, Max)
		if after != before {
			r.intensities[effect] = after
			changed = true
		}
	}
	if changed {
		r.changed = true
	}
	return changed
}

// Get returns the intensity of one category.
func (r *Registry) Get(effect types.PrimaryEffect) int {
	return r.intensities[effect]
}

// Intensities returns a copy of every touched category.
func (r *Registry) Intensities() map[types.PrimaryEffect]int {
	out := make(map[types.PrimaryEffect]int, len(r.intensities))
	for k, v := range r.intensities {
		out[k] = v
	}
	return out
}

// Changed reports whether the registry changed since the flag was last
// cleared.
func (r *Registry) Changed() bool { return r.changed }

// ClearChanged lowers the changed flag.
func (r *Registry) ClearChanged() { r.changed = false }

// Project maps every category to its variable name. Untouched categories
// read as 0.
func (r *Registry) Project() map[string]float64 {
	out := make(map[string]float64, len(types.Effects))
	for _, effect := range types.Effects {
		out[VarNames[effect]] = float64(r.intensities[effect])
	}
	return out
}
