package rules

import (
	"testing"

	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

func condTestState() *types.State {
	s := state.NewState(&state.Defs{})
	s.Patron = "zara"
	s.HeldDrink = types.IdentityCosmopolitan
	s.Flags["intel_zara_secret"] = true
	s.Counters["drinks_served"] = 3
	s.Vars["truth_inducing_effect"] = 7
	return s
}

func TestEvalCondition(t *testing.T) {
	s := condTestState()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{
			name: "flag_set: flag is true",
			cond: types.Condition{Type: "flag_set", Params: map[string]any{"flag": "intel_zara_secret"}},
			want: true,
		},
		{
			name: "flag_set: flag is unset",
			cond: types.Condition{Type: "flag_set", Params: map[string]any{"flag": "intel_carl_debt"}},
			want: false,
		},
		{
			name: "flag_not: flag is unset",
			cond: types.Condition{Type: "flag_not", Params: map[string]any{"flag": "intel_carl_debt"}},
			want: true,
		},
		{
			name: "flag_is: matches false",
			cond: types.Condition{Type: "flag_is", Params: map[string]any{"flag": "intel_carl_debt", "value": false}},
			want: true,
		},
		{
			name: "counter_gt: above threshold",
			cond: types.Condition{Type: "counter_gt", Params: map[string]any{"counter": "drinks_served", "value": 2}},
			want: true,
		},
		{
			name: "counter_gt: float from Lua",
			cond: types.Condition{Type: "counter_gt", Params: map[string]any{"counter": "drinks_served", "value": float64(3)}},
			want: false,
		},
		{
			name: "counter_lt: below threshold",
			cond: types.Condition{Type: "counter_lt", Params: map[string]any{"counter": "drinks_served", "value": 4}},
			want: true,
		},
		{
			name: "var_gt: projected variable",
			cond: types.Condition{Type: "var_gt", Params: map[string]any{"var": "truth_inducing_effect", "value": float64(6)}},
			want: true,
		},
		{
			name: "var_gte: equal passes",
			cond: types.Condition{Type: "var_gte", Params: map[string]any{"var": "truth_inducing_effect", "value": 7}},
			want: true,
		},
		{
			name: "var_lt: unset variable reads zero",
			cond: types.Condition{Type: "var_lt", Params: map[string]any{"var": "calming_effect", "value": float64(1)}},
			want: true,
		},
		{
			name: "drink_is: held drink",
			cond: types.Condition{Type: "drink_is", Params: map[string]any{"identity": "Cosmopolitan"}},
			want: true,
		},
		{
			name: "drink_is: other drink",
			cond: types.Condition{Type: "drink_is", Params: map[string]any{"identity": "ZeroPhase"}},
			want: false,
		},
		{
			name: "patron_is",
			cond: types.Condition{Type: "patron_is", Params: map[string]any{"patron": "zara"}},
			want: true,
		},
		{
			name: "game_state_is",
			cond: types.Condition{Type: "game_state_is", Params: map[string]any{"state": "crafting"}},
			want: false,
		},
		{
			name: "not: negates inner",
			cond: types.Condition{Type: "not", Inner: &types.Condition{Type: "flag_set", Params: map[string]any{"flag": "intel_zara_secret"}}},
			want: false,
		},
		{
			name: "not: nil inner is true",
			cond: types.Condition{Type: "not"},
			want: true,
		},
		{
			name: "unknown type is false",
			cond: types.Condition{Type: "moon_phase"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvalCondition(tt.cond, s); got != tt.want {
				t.Errorf("EvalCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalAllConditions(t *testing.T) {
	s := condTestState()
	pass := types.Condition{Type: "flag_set", Params: map[string]any{"flag": "intel_zara_secret"}}
	fail := types.Condition{Type: "flag_set", Params: map[string]any{"flag": "nope"}}

	if !EvalAllConditions(nil, s) {
		t.Error("empty list should be vacuously true")
	}
	if !EvalAllConditions([]types.Condition{pass, pass}, s) {
		t.Error("all passing should be true")
	}
	if EvalAllConditions([]types.Condition{pass, fail}, s) {
		t.Error("one failing should be false")
	}
}
