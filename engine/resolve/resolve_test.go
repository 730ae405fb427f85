package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Ingredients: map[string]types.ComponentDef{
			"void_reserve":  {ID: "void_reserve", Name: "Void Reserve", Size: 10},
			"sweetflux":     {ID: "sweetflux", Name: "Sweetflux", Size: 10},
			"citraplasm":    {ID: "citraplasm", Name: "Citraplasm", Size: 10},
			"blue_icegel":   {ID: "blue_icegel", Name: "Blue Icegel", Size: 10},
			"red_icegel":    {ID: "red_icegel", Name: "Red Icegel", Size: 11},
			"circuit_juice": {ID: "circuit_juice", Name: "Circuit Juice", Size: 10},
		},
		Glasses: map[string]types.GlassDef{
			"wine":    {ID: "wine", Name: "Wine Glass", Shape: types.ShapeWine, Capacity: 100},
			"tumbler": {ID: "tumbler", Name: "Old Tumbler", Shape: types.ShapeWhiskey, Capacity: 60},
		},
	}
}

func TestIngredient(t *testing.T) {
	defs := testDefs()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact id", "void_reserve", "void_reserve"},
		{"exact name", "Void Reserve", "void_reserve"},
		{"lowercase name", "sweetflux", "sweetflux"},
		{"single word", "juice", "circuit_juice"},
		{"underscore normalization", "circuit juice", "circuit_juice"},
		{"surrounding space", "  citraplasm ", "citraplasm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ingredient(defs, tt.query)
			if err != nil {
				t.Fatalf("Ingredient(%q): %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("Ingredient(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestIngredient_Ambiguous(t *testing.T) {
	defs := testDefs()

	_, err := Ingredient(defs, "icegel")

	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguityError, got %v", err)
	}
	if len(amb.Candidates) != 2 || amb.Candidates[0] != "blue_icegel" || amb.Candidates[1] != "red_icegel" {
		t.Errorf("Candidates = %v, want [blue_icegel red_icegel]", amb.Candidates)
	}
	if !strings.Contains(err.Error(), "which icegel?") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIngredient_NotFoundSuggests(t *testing.T) {
	defs := testDefs()

	tests := []struct {
		query string
		want  string
	}{
		{"sweetflx", "sweetflux"},
		{"citroplasm", "citraplasm"},
		{"void resrve", "void_reserve"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := Ingredient(defs, tt.query)

			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
			if len(nf.Suggestions) == 0 || nf.Suggestions[0] != tt.want {
				t.Errorf("Suggestions = %v, want %s first", nf.Suggestions, tt.want)
			}
			if !strings.Contains(nf.Error(), "Did you mean") {
				t.Errorf("Error() = %q, want a suggestion", nf.Error())
			}
		})
	}
}

func TestIngredient_NotFoundNoSuggestion(t *testing.T) {
	defs := testDefs()

	_, err := Ingredient(defs, "motor oil")

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nf.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", nf.Suggestions)
	}
	if nf.Kind != "ingredient" {
		t.Errorf("Kind = %q, want ingredient", nf.Kind)
	}
}

func TestGlass(t *testing.T) {
	defs := testDefs()

	tests := []struct {
		query string
		want  string
	}{
		{"wine", "wine"},
		{"tumbler", "tumbler"},
		{"old tumbler", "tumbler"},
		{"whiskey", "tumbler"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Glass(defs, tt.query)
			if err != nil {
				t.Fatalf("Glass(%q): %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("Glass(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestGlass_NotFound(t *testing.T) {
	defs := testDefs()

	_, err := Glass(defs, "tankard")

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "glass" {
		t.Errorf("err = %v, want glass NotFoundError", err)
	}
}
