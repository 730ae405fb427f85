// Package catalog holds the static ingredient definitions a bar can pour.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/ontherocks/types"
)

// ErrUnknownComponent is matched by every UnknownComponentError.
var ErrUnknownComponent = errors.New("unknown component")

// UnknownComponentError reports a component reference that is not in the
// catalog. It is a misuse signal, never fatal.
type UnknownComponentError struct {
	ID string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component %q", e.ID)
}

// Is lets errors.Is match ErrUnknownComponent.
func (e *UnknownComponentError) Is(target error) bool {
	return target == ErrUnknownComponent
}

// Catalog is an immutable set of ingredient definitions keyed by ID.
type Catalog struct {
	byID map[string]types.ComponentDef
	ids  []string
}

// New builds a catalog. IDs must be non-empty and unique, and sizes must be
// positive.
func New(defs []types.ComponentDef) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]types.ComponentDef, len(defs))}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("component with empty ID")
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate component %q", d.ID)
		}
		if d.Size <= 0 {
			return nil, fmt.Errorf("component %q: size must be positive, got %v", d.ID, d.Size)
		}
		c.byID[d.ID] = d
		c.ids = append(c.ids, d.ID)
	}
	sort.Strings(c.ids)
	return c, nil
}

// FromMap builds a catalog from loaded definitions.
func FromMap(defs map[string]types.ComponentDef) (*Catalog, error) {
	list := make([]types.ComponentDef, 0, len(defs))
	for _, d := range defs {
		list = append(list, d)
	}
	return New(list)
}

// Get returns the definition for id, or an *UnknownComponentError.
func (c *Catalog) Get(id string) (types.ComponentDef, error) {
	d, ok := c.byID[id]
	if !ok {
		return types.ComponentDef{}, &UnknownComponentError{ID: id}
	}
	return d, nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns all component IDs in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// All returns all definitions sorted by ID.
func (c *Catalog) All() []types.ComponentDef {
	out := make([]types.ComponentDef, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of components.
func (c *Catalog) Len() int {
	return len(c.ids)
}
