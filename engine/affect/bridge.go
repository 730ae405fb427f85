package affect

import (
	"log"
	"sort"
)

// VariableStore is the dialogue layer's numeric variable namespace.
type VariableStore interface {
	SetNumber(name string, value float64)
}

// Bridge pushes a registry's projection into a VariableStore.
type Bridge struct {
	reg    *Registry
	store  VariableStore
	logger *log.Logger
}

// NewBridge connects reg to store. A nil store detaches the bridge: pushes
// only clear the changed flag. A nil logger discards output.
func NewBridge(reg *Registry, store VariableStore, logger *log.Logger) *Bridge {
	return &Bridge{reg: reg, store: store, logger: logger}
}

// Sync pushes the projection when the registry has changed and clears the
// flag. It reports whether variables were written.
func (b *Bridge) Sync() bool {
	if !b.reg.Changed() {
		return false
	}
	b.Push()
	return b.store != nil
}

// Push writes all six variables unconditionally and clears the changed flag.
func (b *Bridge) Push() {
	if b.store == nil {
		b.reg.ClearChanged()
		return
	}
	vars := b.reg.Project()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.store.SetNumber(name, vars[name])
	}
	b.reg.ClearChanged()
	if b.logger != nil {
		b.logger.Printf("affect: pushed %d variables %v", len(vars), vars)
	}
}
