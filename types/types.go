// Package types defines the shared data structures for the bar engine.
// This package contains only type definitions and enumerations, no logic.
package types

// Taste is the flavour category an ingredient contributes to a drink.
type Taste string

const (
	TasteNone   Taste = "none"
	TasteSweet  Taste = "sweet"
	TasteSour   Taste = "sour"
	TasteBitter Taste = "bitter"
	TasteCitrus Taste = "citrus"
	TasteUmami  Taste = "umami"
	TasteSpicy  Taste = "spicy"
)

// Tastes lists every taste in declaration order. Ranking breaks equal
// weights by position in this slice, so the order must never change.
var Tastes = []Taste{
	TasteNone,
	TasteSweet,
	TasteSour,
	TasteBitter,
	TasteCitrus,
	TasteUmami,
	TasteSpicy,
}

// PrimaryEffect is the affect category an ingredient pushes on whoever
// drinks it. The empty value means "no effect".
type PrimaryEffect string

const (
	EffectCalming         PrimaryEffect = "calming"
	EffectEnergizing      PrimaryEffect = "energizing"
	EffectMindEnhancing   PrimaryEffect = "mind_enhancing"
	EffectCourageBoosting PrimaryEffect = "courage_boosting"
	EffectTruthInducing   PrimaryEffect = "truth_inducing"
	EffectHealing         PrimaryEffect = "healing"
)

// Effects lists every primary effect in declaration order (same tie-break
// contract as Tastes).
var Effects = []PrimaryEffect{
	EffectCalming,
	EffectEnergizing,
	EffectMindEnhancing,
	EffectCourageBoosting,
	EffectTruthInducing,
	EffectHealing,
}

// SecondaryKind names a rarer compound effect an ingredient may unlock.
type SecondaryKind string

const (
	SecondaryEuphoric       SecondaryKind = "euphoric"
	SecondaryAgitated       SecondaryKind = "agitated"
	SecondaryHallucinogenic SecondaryKind = "hallucinogenic"
	SecondaryParanoia       SecondaryKind = "paranoia"
	SecondaryAggressive     SecondaryKind = "aggressive"
	SecondarySedated        SecondaryKind = "sedated"
)

// EffectCondition gates a secondary effect. Loaded and validated, but not
// evaluated by the engine yet.
type EffectCondition struct {
	VolumeNeeded float64
	Catalyst     string // optional ingredient ID
}

// SecondaryEffect is a secondary effect kind plus its gating condition.
type SecondaryEffect struct {
	Kind      SecondaryKind
	Condition EffectCondition
}

// ComponentDef is an immutable catalog entry for a pourable ingredient.
type ComponentDef struct {
	ID            string
	Name          string
	Description   string
	Size          float64 // volume consumed per pour
	Taste         Taste
	PrimaryEffect PrimaryEffect
	Secondary     SecondaryEffect
	Hazard        string // reserved
}

// GlassShape selects the classification table for a drink.
type GlassShape string

const (
	ShapeWhiskey  GlassShape = "whiskey"
	ShapeWine     GlassShape = "wine"
	ShapeCocktail GlassShape = "cocktail"
)

// GlassDef is the definition of a glass the player can pour into.
type GlassDef struct {
	ID          string
	Name        string
	Shape       GlassShape
	Capacity    float64
	Description string
}

// Identity is the named classification of a finished drink.
type Identity string

const (
	IdentityBinaryBarrel   Identity = "BinaryBarrel"
	IdentityBotanicalSurge Identity = "BotanicalSurge"
	IdentityEventHorizon   Identity = "EventHorizon"
	IdentityStellarLumen   Identity = "StellarLumen"
	IdentityEchoBloom      Identity = "EchoBloom"
	IdentityOldMemory      Identity = "OldMemory"
	IdentityCryoDrop       Identity = "CryoDrop"
	IdentityCosmopolitan   Identity = "Cosmopolitan"
	IdentitySynthCascade   Identity = "SynthCascade"
	IdentityZeroPhase      Identity = "ZeroPhase"
)

// TastePair holds the two highest-weighted tastes, primary first.
type TastePair struct {
	Primary   Taste
	Secondary Taste
}

// EffectPair holds the two highest-weighted primary effects, primary first.
type EffectPair struct {
	Primary   PrimaryEffect
	Secondary PrimaryEffect
}

// Drink is the snapshot of a glass taken at finalize time. Ingredients is a
// copy keyed by ingredient ID; nothing points back into the glass.
type Drink struct {
	Ingredients map[string]float64
	Shape       GlassShape
	Taste       TastePair
	Effect      EffectPair
	Identity    Identity
}

// Game states the narrative layer moves between.
const (
	GameStateMenu      = "menu"
	GameStateDialogues = "dialogues"
	GameStateCrafting  = "crafting"
	GameStateEndNight  = "end_night"
)

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
}

// Command is a single instruction the dialogue layer runs
// (set_flag, change_gamestate, consume_drink, ...).
type Command struct {
	Type   string
	Params map[string]any
}

// Event is emitted after commands or bar operations are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Commands []Command
	Events   []Event
	Output   []string
}

// Condition is a predicate over dialogue state (flags, counters, variables).
type Condition struct {
	Type   string         // "flag_set", "var_gt", "drink_is", etc.
	Params map[string]any // condition-specific parameters
	Inner  *Condition     // for Not(): the negated inner condition
}

// OptionDef is a selectable reply within a dialogue node.
type OptionDef struct {
	Text     string
	Next     string // node to jump to; empty ends the dialogue
	Requires []Condition
	Commands []Command
}

// NodeDef is a single dialogue node.
type NodeDef struct {
	ID       string
	Speaker  string
	Lines    []string
	Options  []OptionDef
	Commands []Command // run when the node is entered
	Next     string    // followed by "continue" when there are no options
}

// PatronDef ties a patron to the nodes that open their scene and react to
// the drink they are served.
type PatronDef struct {
	ID     string
	Name   string
	Enters string
	Served string
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // first dialogue node
	Glass   string // glass issued for crafting sessions
	Intro   string
}

// MatchCriteria specifies what a player command must look like for a rule to
// fire.
type MatchCriteria struct {
	Verb      string
	Object    string // optional: resolved ingredient or glass ID
	GameState string // optional: only while in this game state
}

// RuleDef is a content-defined override for a player command.
type RuleDef struct {
	ID          string
	When        MatchCriteria
	Conditions  []Condition
	Commands    []Command
	Priority    int
	SourceOrder int
}

// EventHandler is a rule triggered by an event rather than a player command.
type EventHandler struct {
	EventType  string
	Conditions []Condition
	Commands   []Command
}

// State is the mutable narrative state the dialogue layer reads and writes.
// Bar state (glass, affect registry) is owned by the engine, not stored here.
type State struct {
	GameState  string
	Patron     string // current dialogue state (patron ID)
	Node       string // active dialogue node, empty when none
	HeldDrink  Identity
	Flags      map[string]bool
	Counters   map[string]int
	Vars       map[string]float64
	TurnCount  int
	CommandLog []string
}
