// Package bar runs crafting sessions: pouring into a glass, finalizing the
// drink, converting it into an affect delta and handing the result to the
// dialogue layer.
package bar

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/nathoo/ontherocks/engine/affect"
	"github.com/nathoo/ontherocks/engine/catalog"
	"github.com/nathoo/ontherocks/engine/convert"
	"github.com/nathoo/ontherocks/engine/glass"
	"github.com/nathoo/ontherocks/types"
)

// Phase is a step of the crafting state machine.
type Phase int

const (
	Idle Phase = iota
	Composing
	Finalized
	Converted
	Projected
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Finalized:
		return "finalized"
	case Converted:
		return "converted"
	case Projected:
		return "projected"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ErrGlassNotEmpty is returned when switching glasses mid-composition.
var ErrGlassNotEmpty = errors.New("glass is not empty")

// NodeStarter hands control back to the dialogue layer at a named node.
type NodeStarter interface {
	StartNode(name string) error
}

// Served records one crafted drink.
type Served struct {
	ID    uuid.UUID
	Drink types.Drink
	Delta map[types.PrimaryEffect]int
}

// Outcome is the result of a successful craft.
type Outcome struct {
	Served
	Changed bool   // the registry moved
	Pushed  bool   // variables were written to the store
	Node    string // dialogue node started, empty if none
}

// Bar owns the glass of the current session and the affect registry that
// outlives it.
type Bar struct {
	cat    *catalog.Catalog
	glass  *glass.Glass
	reg    *affect.Registry
	bridge *affect.Bridge
	logger *log.Logger
	phase  Phase
	served []Served
}

// New creates a bar pouring from cat into an empty glass of def. Projected
// variables are written to store. A nil store keeps the registry without
// publishing it. A nil logger discards output.
func New(cat *catalog.Catalog, def types.GlassDef, store affect.VariableStore, logger *log.Logger) *Bar {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	reg := affect.NewRegistry()
	return &Bar{
		cat:    cat,
		glass:  glass.New(def),
		reg:    reg,
		bridge: affect.NewBridge(reg, store, logger),
		logger: logger,
		phase:  Idle,
	}
}

// Add pours one serving of the ingredient id. Unknown IDs return
// *catalog.UnknownComponentError and a full glass returns
// *glass.CapacityExceededError; neither changes anything.
func (b *Bar) Add(id string) error {
	c, err := b.cat.Get(id)
	if err != nil {
		b.logger.Printf("bar: rejected %q: %v", id, err)
		return err
	}
	if err := b.glass.Add(c); err != nil {
		b.logger.Printf("bar: glass full: %v", err)
		return err
	}
	b.phase = Composing
	b.logger.Printf("bar: added %s, glass %g/%g", id, b.glass.CurrentVolume(), b.glass.Capacity())
	return nil
}

// Reset empties the glass and abandons the session.
func (b *Bar) Reset() {
	b.glass.Reset()
	b.phase = Idle
	b.logger.Printf("bar: glass reset")
}

// UseGlass replaces the glass with an empty one of def. It fails while
// anything has been poured.
func (b *Bar) UseGlass(def types.GlassDef) error {
	if !b.glass.Empty() {
		return ErrGlassNotEmpty
	}
	b.glass = glass.New(def)
	b.phase = Idle
	b.logger.Printf("bar: using glass %s (%s, %g)", def.ID, def.Shape, def.Capacity)
	return nil
}

// Finalize snapshots and clears the glass without converting the drink.
func (b *Bar) Finalize() types.Drink {
	d := b.glass.Finalize()
	b.phase = Finalized
	b.logger.Printf("bar: finalized %s (taste %s/%s, effect %s/%s)",
		d.Identity, d.Taste.Primary, d.Taste.Secondary, d.Effect.Primary, d.Effect.Secondary)
	return d
}

// Serve converts d, merges the delta into the registry and syncs the
// dialogue variables. The drink is recorded in the served log.
func (b *Bar) Serve(d types.Drink) Outcome {
	delta := convert.Convert(d, b.cat)
	b.phase = Converted
	changed := b.reg.Apply(delta)
	b.logger.Printf("bar: delta %v, registry changed %v", delta, changed)

	pushed := b.bridge.Sync()
	b.phase = Projected

	s := Served{ID: uuid.New(), Drink: d, Delta: delta}
	b.served = append(b.served, s)
	return Outcome{Served: s, Changed: changed, Pushed: pushed}
}

// Craft runs finalize, convert, apply and sync as one step, then starts the
// dialogue at node when both node and starter are set. The bar returns to
// Idle even when starting the node fails; the registry keeps the delta.
func (b *Bar) Craft(node string, starter NodeStarter) (Outcome, error) {
	out := b.Serve(b.Finalize())
	b.phase = Idle
	if node == "" || starter == nil {
		return out, nil
	}
	if err := starter.StartNode(node); err != nil {
		return out, fmt.Errorf("starting node %q: %w", node, err)
	}
	out.Node = node
	return out, nil
}

// PushVariables writes every projected variable, changed or not. Used when a
// dialogue session opens.
func (b *Bar) PushVariables() {
	b.bridge.Push()
}

// CurrentVolume returns the volume poured into the current glass.
func (b *Bar) CurrentVolume() float64 { return b.glass.CurrentVolume() }

// Capacity returns the current glass's capacity.
func (b *Bar) Capacity() float64 { return b.glass.Capacity() }

// Glass returns the current glass definition.
func (b *Bar) Glass() types.GlassDef { return b.glass.Def() }

// Contents returns a copy of what has been poured so far.
func (b *Bar) Contents() map[string]float64 { return b.glass.Contributions() }

// Phase returns the current crafting phase.
func (b *Bar) Phase() Phase { return b.phase }

// Registry returns the affect registry.
func (b *Bar) Registry() *affect.Registry { return b.reg }

// Catalog returns the ingredient catalog.
func (b *Bar) Catalog() *catalog.Catalog { return b.cat }

// LastServed returns the most recent drink, if any.
func (b *Bar) LastServed() (Served, bool) {
	if len(b.served) == 0 {
		return Served{}, false
	}
	return b.served[len(b.served)-1], true
}

// ServedLog returns the drinks crafted so far, oldest first.
func (b *Bar) ServedLog() []Served {
	out := make([]Served, len(b.served))
	copy(out, b.served)
	return out
}
