package catalog

import "github.com/nathoo/ontherocks/types"

func secondary(kind types.SecondaryKind, volume float64) types.SecondaryEffect {
	return types.SecondaryEffect{Kind: kind, Condition: types.EffectCondition{VolumeNeeded: volume}}
}

// DefaultComponents returns the house ingredients. The shipped Lua content
// defines the same set.
func DefaultComponents() []types.ComponentDef {
	return []types.ComponentDef{
		{
			ID: "blue_icegel", Name: "Blue Icegel", Description: "Cools down drinks.",
			Size: 10, Taste: types.TasteNone, PrimaryEffect: types.EffectCalming,
			Secondary: secondary(types.SecondarySedated, 90),
		},
		{
			ID: "red_icegel", Name: "Red Icegel", Description: "Cools down drinks with a bite.",
			Size: 11, Taste: types.TasteSpicy, PrimaryEffect: types.EffectEnergizing,
			Secondary: secondary(types.SecondaryAgitated, 90),
		},
		{
			ID: "green_icegel", Name: "Green Icegel", Description: "Cools down drinks and leaves them sweet.",
			Size: 12, Taste: types.TasteSweet, PrimaryEffect: types.EffectHealing,
			Secondary: secondary(types.SecondaryEuphoric, 90),
		},
		{
			ID: "fizzion_mist", Name: "Fizzion Mist", Description: "A bubbly, sour liquid that crackles with energy.",
			Size: 10, Taste: types.TasteSour, PrimaryEffect: types.EffectEnergizing,
			Secondary: secondary(types.SecondaryAggressive, 90),
		},
		{
			ID: "sweetflux", Name: "Sweetflux", Description: "A luminous, sugary syrup that flows like liquid light.",
			Size: 10, Taste: types.TasteSweet, PrimaryEffect: types.EffectHealing,
			Secondary: secondary(types.SecondaryEuphoric, 90),
		},
		{
			ID: "citraplasm", Name: "Citraplasm", Description: "A zesty plasma with a sharp citrus bite.",
			Size: 10, Taste: types.TasteCitrus, PrimaryEffect: types.EffectMindEnhancing,
			Secondary: secondary(types.SecondaryHallucinogenic, 90),
		},
		{
			ID: "synth_vapor", Name: "Synth Vapor", Description: "A clear synthetic spirit with an energizing kick.",
			Size: 10, Taste: types.TasteBitter, PrimaryEffect: types.EffectEnergizing,
			Secondary: secondary(types.SecondaryAggressive, 90),
		},
		{
			ID: "circuit_juice", Name: "Circuit Juice", Description: "A sharp botanical spirit with a metallic tang.",
			Size: 10, Taste: types.TasteBitter, PrimaryEffect: types.EffectEnergizing,
			Secondary: secondary(types.SecondaryAggressive, 90),
		},
		{
			ID: "void_reserve", Name: "Void Reserve", Description: "A dense, inky fluid with a deep, earthy taste.",
			Size: 10, Taste: types.TasteUmami, PrimaryEffect: types.EffectCalming,
			Secondary: secondary(types.SecondarySedated, 40),
		},
	}
}

// DefaultGlasses returns the three house glasses.
func DefaultGlasses() []types.GlassDef {
	return []types.GlassDef{
		{ID: "wine", Name: "Wine Glass", Shape: types.ShapeWine, Capacity: 100},
		{ID: "whiskey", Name: "Whiskey Tumbler", Shape: types.ShapeWhiskey, Capacity: 60},
		{ID: "cocktail", Name: "Cocktail Coupe", Shape: types.ShapeCocktail, Capacity: 80},
	}
}

// Default returns a catalog of DefaultComponents.
func Default() *Catalog {
	c, err := New(DefaultComponents())
	if err != nil {
		panic("catalog: invalid default components: " + err.Error())
	}
	return c
}
