package affect

import (
	"testing"

	"github.com/nathoo/ontherocks/types"
)

type fakeStore struct {
	vars   map[string]float64
	writes int
}

func (f *fakeStore) SetNumber(name string, value float64) {
	if f.vars == nil {
		f.vars = map[string]float64{}
	}
	f.vars[name] = value
	f.writes++
}

func TestNewRegistry_AllZero(t *testing.T) {
	r := NewRegistry()
	for _, e := range types.Effects {
		if got := r.Get(e); got != 0 {
			t.Errorf("Get(%s) = %d, want 0", e, got)
		}
	}
	if r.Changed() {
		t.Error("fresh registry should not be marked changed")
	}
}

func TestApply_AccumulatesAndClamps(t *testing.T) {
	r := NewRegistry()

	r.Apply(map[types.PrimaryEffect]int{types.EffectCalming: 6})
	r.Apply(map[types.PrimaryEffect]int{types.EffectCalming: 6})

	if got := r.Get(types.EffectCalming); got != 10 {
		t.Errorf("calming = %d, want 10", got)
	}
}

func TestApply_NeverDecreases(t *testing.T) {
	tests := []struct {
		name  string
		start map[types.PrimaryEffect]int
		delta map[types.PrimaryEffect]int
	}{
		{"zero delta", map[types.PrimaryEffect]int{types.EffectHealing: 4}, map[types.PrimaryEffect]int{types.EffectHealing: 0}},
		{"negative delta", map[types.PrimaryEffect]int{types.EffectHealing: 4}, map[types.PrimaryEffect]int{types.EffectHealing: -3}},
		{"at max", map[types.PrimaryEffect]int{types.EffectHealing: 10}, map[types.PrimaryEffect]int{types.EffectHealing: 7}},
		{"mixed", map[types.PrimaryEffect]int{types.EffectHealing: 9, types.EffectCalming: 2}, map[types.PrimaryEffect]int{types.EffectHealing: 5, types.EffectCalming: -9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Apply(tt.start)
			before := r.Intensities()

			r.Apply(tt.delta)

			for _, e := range types.Effects {
				got := r.Get(e)
				if got < before[e] {
					t.Errorf("%s decreased: %d -> %d", e, before[e], got)
				}
				if got > Max {
					t.Errorf("%s = %d exceeds %d", e, got, Max)
				}
			}
		})
	}
}

func TestApply_ReportsChange(t *testing.T) {
	r := NewRegistry()

	if !r.Apply(map[types.PrimaryEffect]int{types.EffectEnergizing: 3}) {
		t.Error("expected change on first apply")
	}
	if !r.Changed() {
		t.Error("expected changed flag set")
	}

	r.ClearChanged()
	r.Apply(map[types.PrimaryEffect]int{types.EffectEnergizing: 7})
	r.ClearChanged()

	if r.Apply(map[types.PrimaryEffect]int{types.EffectEnergizing: 2}) {
		t.Error("apply at max should report no change")
	}
	if r.Changed() {
		t.Error("changed flag should stay clear when nothing moved")
	}
}

func TestZeroValueRegistry(t *testing.T) {
	var r Registry
	r.Apply(map[types.PrimaryEffect]int{types.EffectTruthInducing: 9})
	if got := r.Get(types.EffectTruthInducing); got != 9 {
		t.Errorf("truth_inducing = %d, want 9", got)
	}
}

func TestProject_AllSixNames(t *testing.T) {
	r := NewRegistry()
	r.Apply(map[types.PrimaryEffect]int{types.EffectCourageBoosting: 8, types.EffectEnergizing: 4})

	got := r.Project()

	want := map[string]float64{
		"calming_effect":          0,
		"energizing_effect":       4,
		"mind_enhancing_effect":   0,
		"courage_boosting_effect": 8,
		"truth_inducing_effect":   0,
		"healing_effect":          0,
	}
	if len(got) != len(want) {
		t.Fatalf("Project() has %d entries, want %d: %v", len(got), len(want), got)
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("Project()[%s] = %v, want %v", name, got[name], v)
		}
	}
}

func TestVarNames_CoverEveryEffect(t *testing.T) {
	for _, e := range types.Effects {
		if VarNames[e] == "" {
			t.Errorf("no variable name for %s", e)
		}
	}
}

func TestBridge_SyncOnlyWhenChanged(t *testing.T) {
	r := NewRegistry()
	store := &fakeStore{}
	b := NewBridge(r, store, nil)

	if b.Sync() {
		t.Error("Sync on unchanged registry should not push")
	}
	if store.writes != 0 {
		t.Errorf("writes = %d, want 0", store.writes)
	}

	r.Apply(map[types.PrimaryEffect]int{types.EffectCalming: 6})
	if !b.Sync() {
		t.Error("Sync after change should push")
	}
	if store.vars["calming_effect"] != 6 {
		t.Errorf("calming_effect = %v, want 6", store.vars["calming_effect"])
	}
	if store.writes != 6 {
		t.Errorf("writes = %d, want 6", store.writes)
	}
	if r.Changed() {
		t.Error("Sync should clear the changed flag")
	}
	if b.Sync() {
		t.Error("second Sync without change should not push")
	}
}

func TestBridge_PushIsUnconditional(t *testing.T) {
	r := NewRegistry()
	store := &fakeStore{}
	b := NewBridge(r, store, nil)

	b.Push()

	if store.writes != 6 {
		t.Errorf("writes = %d, want 6", store.writes)
	}
	if v, ok := store.vars["healing_effect"]; !ok || v != 0 {
		t.Errorf("healing_effect = %v (present %v), want 0", v, ok)
	}
}

func TestBridge_NilStore(t *testing.T) {
	r := NewRegistry()
	b := NewBridge(r, nil, nil)

	r.Apply(map[types.PrimaryEffect]int{types.EffectEnergizing: 3})
	if b.Sync() {
		t.Error("Sync without a store should report no push")
	}
	if r.Changed() {
		t.Error("Sync should clear the changed flag even without a store")
	}
	b.Push()
	if got := r.Get(types.EffectEnergizing); got != 3 {
		t.Errorf("energizing = %d, want 3", got)
	}
}
