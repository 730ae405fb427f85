// Package glass implements the container a drink is composed in.
//
// A Glass accumulates per-ingredient volumes along with running taste and
// effect weights. Total volume never reaches capacity: an add is accepted
// only when current + size < capacity, and a rejected add changes nothing.
package glass

import (
	"errors"
	"fmt"
	"maps"

	"github.com/nathoo/ontherocks/engine/classify"
	"github.com/nathoo/ontherocks/types"
)

// ErrContainerFull is matched by every CapacityExceededError.
var ErrContainerFull = errors.New("container full")

// CapacityExceededError reports an add rejected by the capacity guard.
type CapacityExceededError struct {
	Component string
	Size      float64
	Current   float64
	Capacity  float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("cannot add %s (%g): glass holds %g of %g", e.Component, e.Size, e.Current, e.Capacity)
}

// Is lets errors.Is match ErrContainerFull.
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrContainerFull
}

// Glass is the mutable accumulator for one crafting session.
type Glass struct {
	def           types.GlassDef
	volume        float64
	contributions map[string]float64
	tastes        map[types.Taste]float64
	effects       map[types.PrimaryEffect]float64
}

// New returns an empty glass for def.
func New(def types.GlassDef) *Glass {
	g := &Glass{def: def}
	g.Reset()
	return g
}

// Add pours one serving of c. On rejection the glass is unchanged and the
// returned error is a *CapacityExceededError.
func (g *Glass) Add(c types.ComponentDef) error {
	current := g.volume
	if !(current+c.Size < g.def.Capacity) {
		return &CapacityExceededError{
			Component: c.ID,
			Size:      c.Size,
			Current:   current,
			Capacity:  g.def.Capacity,
		}
	}
	g.volume += c.Size
	g.contributions[c.ID] += c.Size
	g.tastes[c.Taste] += c.Size
	g.effects[c.PrimaryEffect] += c.Size
	return nil
}

// CurrentVolume returns the total volume poured so far, summed in pour
// order.
func (g *Glass) CurrentVolume() float64 { return g.volume }

// Capacity returns the glass's hard volume bound.
func (g *Glass) Capacity() float64 { return g.def.Capacity }

// Shape returns the glass shape.
func (g *Glass) Shape() types.GlassShape { return g.def.Shape }

// Def returns the glass definition.
func (g *Glass) Def() types.GlassDef { return g.def }

// Empty reports whether nothing has been poured.
func (g *Glass) Empty() bool { return len(g.contributions) == 0 }

// Reset clears everything poured so far.
func (g *Glass) Reset() {
	g.volume = 0
	g.contributions = map[string]float64{}
	g.tastes = map[types.Taste]float64{}
	g.effects = map[types.PrimaryEffect]float64{}
}

// Finalize snapshots the glass into a Drink and clears it. The drink holds
// copies only. An empty glass yields taste (none, none) and the shape's
// default identity.
func (g *Glass) Finalize() types.Drink {
	taste := classify.RankTastes(g.tastes)
	d := types.Drink{
		Ingredients: maps.Clone(g.contributions),
		Shape:       g.def.Shape,
		Taste:       taste,
		Effect:      classify.RankEffects(g.effects),
		Identity:    classify.Classify(g.def.Shape, taste.Primary, taste.Secondary),
	}
	g.Reset()
	return d
}

// Contributions returns a copy of the per-ingredient volumes.
func (g *Glass) Contributions() map[string]float64 {
	return maps.Clone(g.contributions)
}

// TasteWeights returns a copy of the per-taste volumes.
func (g *Glass) TasteWeights() map[types.Taste]float64 {
	return maps.Clone(g.tastes)
}

// EffectWeights returns a copy of the per-effect volumes.
func (g *Glass) EffectWeights() map[types.PrimaryEffect]float64 {
	return maps.Clone(g.effects)
}
