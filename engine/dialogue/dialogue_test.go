package dialogue

import (
	"errors"
	"testing"

	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Nodes: map[string]types.NodeDef{
			"CarlEnters": {
				ID:      "CarlEnters",
				Speaker: "Carl",
				Lines:   []string{"Rough shift. Make it strong."},
				Options: []types.OptionDef{
					{Text: "Coming right up.", Next: "CarlWaits"},
					{
						Text: "You look nervous, Carl.",
						Next: "CarlConfides",
						Requires: []types.Condition{
							{Type: "var_gte", Params: map[string]any{"var": "truth_inducing_effect", "value": float64(5)}},
						},
					},
				},
			},
			"CarlWaits": {
				ID:    "CarlWaits",
				Lines: []string{"Carl drums on the counter."},
				Next:  "CarlLeaves",
			},
			"CarlConfides": {ID: "CarlConfides", Lines: []string{"I owe the wrong people."}},
			"CarlLeaves":   {ID: "CarlLeaves", Lines: []string{"Carl leaves."}},
		},
	}
}

func TestEnter(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	node, err := Enter("CarlEnters", s, defs)
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if node.Speaker != "Carl" {
		t.Errorf("Speaker = %q, want Carl", node.Speaker)
	}
	if s.Node != "CarlEnters" {
		t.Errorf("s.Node = %q, want CarlEnters", s.Node)
	}
}

func TestEnter_Missing(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	_, err := Enter("Nowhere", s, defs)

	var nf *NodeNotFoundError
	if !errors.As(err, &nf) || nf.Node != "Nowhere" {
		t.Errorf("err = %v, want NodeNotFoundError for Nowhere", err)
	}
	if s.Node != "" {
		t.Errorf("s.Node = %q, want unchanged", s.Node)
	}
}

func TestAvailableOptions_GatedByVariables(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	Enter("CarlEnters", s, defs)

	if got := AvailableOptions(s, defs); len(got) != 1 {
		t.Fatalf("expected 1 option before truth serum, got %d", len(got))
	}

	s.Vars["truth_inducing_effect"] = 5
	got := AvailableOptions(s, defs)
	if len(got) != 2 {
		t.Fatalf("expected 2 options, got %d", len(got))
	}
	if got[1].Next != "CarlConfides" {
		t.Errorf("option 2 next = %q, want CarlConfides", got[1].Next)
	}
}

func TestAvailableOptions_NoActiveNode(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	if got := AvailableOptions(s, defs); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestChoose(t *testing.T) {
	defs := testDefs()

	tests := []struct {
		name     string
		choice   int
		wantNext string
		wantErr  bool
	}{
		{"first option", 1, "CarlWaits", false},
		{"hidden option", 2, "", true},
		{"zero", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewState(defs)
			Enter("CarlEnters", s, defs)

			opt, err := Choose(tt.choice, s, defs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Choose() error = %v, wantErr %v", err, tt.wantErr)
			}
			if opt.Next != tt.wantNext {
				t.Errorf("Next = %q, want %q", opt.Next, tt.wantNext)
			}
			if !tt.wantErr && s.Node != "" {
				t.Error("expected active node cleared after a choice")
			}
		})
	}
}

func TestChoiceError_Message(t *testing.T) {
	if got := (&ChoiceError{Choice: 3, Available: 2}).Error(); got != "choose a number between 1 and 2" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ChoiceError{}).Error(); got != "there is nothing to choose right now" {
		t.Errorf("Error() = %q", got)
	}
}

func TestContinue(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	Enter("CarlWaits", s, defs)

	next, err := Continue(s, defs)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if next != "CarlLeaves" {
		t.Errorf("next = %q, want CarlLeaves", next)
	}
	if s.Node != "" {
		t.Errorf("s.Node = %q, want cleared", s.Node)
	}
}

func TestContinue_BlockedByOptions(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	Enter("CarlEnters", s, defs)

	if _, err := Continue(s, defs); err == nil {
		t.Error("expected error while options are visible")
	}
	if s.Node != "CarlEnters" {
		t.Error("node should stay active")
	}
}

func TestContinue_EndOfConversation(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)
	Enter("CarlConfides", s, defs)

	next, err := Continue(s, defs)
	if err != nil || next != "" {
		t.Errorf("Continue() = %q, %v; want end of conversation", next, err)
	}
}
