package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/ontherocks/engine"
	"github.com/nathoo/ontherocks/engine/catalog"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

var testSpeakers = map[string]bool{"Carl": true, "The Stranger": true}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"Carl: Something to take the edge off.", kindSpeech},
		{"The Stranger: Something with a kick.", kindSpeech},
		{"Note: the sign is broken.", kindNarration},
		{"  1. Coming right up.", kindOption},
		{"  12. Another round?", kindOption},
		{"  (continue)", kindOption},
		{"1. Not indented.", kindNarration},
		{"> Coming right up.", kindChoice},
		{"You pour Sweetflux into the glass. (10/100)", kindAction},
		{"You slide a Botanical Surge across the bar.", kindAction},
		{"You set out a clean wine glass. (0/100)", kindAction},
		{"The glass is full.", kindError},
		{"Finish the conversation first.", kindError},
		{"There's no ingredient called \"rum\" behind the bar.", kindError},
		{"[Trace output enabled.]", kindSystem},
		{"[trace] Events: 2", kindTrace},
		{"Rain streaks the window.", kindNarration},
		{"", kindNarration},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line, testSpeakers)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"Rain streaks the window and the neon sign buzzes.", 30,
			"Rain streaks the window and\nthe neon sign buzzes."},
		{"", 80, ""},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestGauge(t *testing.T) {
	tests := []struct {
		volume, capacity float64
		want             string
	}{
		{0, 100, "[..........]"},
		{40, 100, "[####......]"},
		{100, 100, "[##########]"},
		{30, 60, "[#####.....]"},
		{5, 0, "[..........]"},
	}
	for _, tt := range tests {
		if got := gauge(tt.volume, tt.capacity); got != tt.want {
			t.Errorf("gauge(%g, %g) = %q, want %q", tt.volume, tt.capacity, got, tt.want)
		}
	}
}

func TestMoodColor(t *testing.T) {
	tests := []struct {
		n    int
		want lipgloss.Color
	}{
		{0, "#808080"},
		{10, "#ff4040"},
		{-3, "#808080"},
		{25, "#ff4040"},
	}
	for _, tt := range tests {
		if got := moodColor(tt.n); got != tt.want {
			t.Errorf("moodColor(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestMoodLabel(t *testing.T) {
	tests := []struct {
		eff  types.PrimaryEffect
		want string
	}{
		{types.EffectCalming, "Calming"},
		{types.EffectMindEnhancing, "Mind"},
		{types.EffectCourageBoosting, "Courage"},
	}
	for _, tt := range tests {
		if got := moodLabel(tt.eff); got != tt.want {
			t.Errorf("moodLabel(%q) = %q, want %q", tt.eff, got, tt.want)
		}
	}
}

func TestHistory_PushAndPrev(t *testing.T) {
	h := NewHistory(5)
	h.Push("shelf")
	h.Push("pour sweetflux")
	h.Push("serve")

	prev, ok := h.Prev()
	if !ok || prev != "serve" {
		t.Errorf("expected 'serve', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "pour sweetflux" {
		t.Errorf("expected 'pour sweetflux', got %q (ok=%v)", prev, ok)
	}

	prev, ok = h.Prev()
	if !ok || prev != "shelf" {
		t.Errorf("expected 'shelf', got %q (ok=%v)", prev, ok)
	}

	// At oldest, stays there.
	prev, ok = h.Prev()
	if !ok || prev != "shelf" {
		t.Errorf("expected 'shelf' at boundary, got %q (ok=%v)", prev, ok)
	}
}

func TestHistory_Next(t *testing.T) {
	h := NewHistory(5)
	h.Push("shelf")
	h.Push("pour sweetflux")

	h.Prev() // "pour sweetflux"
	h.Prev() // "shelf"

	next, ok := h.Next()
	if !ok || next != "pour sweetflux" {
		t.Errorf("expected 'pour sweetflux', got %q (ok=%v)", next, ok)
	}

	_, ok = h.Next()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	_, ok := h.Prev()
	if ok {
		t.Error("expected false on empty history")
	}
	_, ok = h.Next()
	if ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	prev, _ := h.Prev()
	if prev != "c" {
		t.Errorf("expected 'c', got %q", prev)
	}
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b', got %q", prev)
	}
	// "a" is gone.
	prev, _ = h.Prev()
	if prev != "b" {
		t.Errorf("expected 'b' at boundary, got %q", prev)
	}
}

func TestHistory_NoDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("shelf")
	h.Push("shelf") // skipped
	h.Push("shelf") // skipped

	if h.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", h.Len())
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("shelf")
	h.Push("pour sweetflux")

	h.Prev() // "pour sweetflux"
	h.ResetCursor()

	// After reset, Prev starts from the end again.
	prev, ok := h.Prev()
	if !ok || prev != "pour sweetflux" {
		t.Errorf("expected 'pour sweetflux' after reset, got %q", prev)
	}
}

func TestHistory_Recent(t *testing.T) {
	h := NewHistory(3)
	for _, cmd := range []string{"shelf", "pour sweetflux", "pour citraplasm", "serve"} {
		h.Push(cmd)
	}

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{}},
		{2, []string{"pour citraplasm", "serve"}},
		{10, []string{"pour sweetflux", "pour citraplasm", "serve"}},
	}
	for _, tt := range tests {
		got := h.Recent(tt.n)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Recent(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

// testDefs returns a one-patron night for TUI testing.
func testDefs() *state.Defs {
	ingredients := map[string]types.ComponentDef{}
	for _, c := range catalog.DefaultComponents() {
		ingredients[c.ID] = c
	}
	glasses := map[string]types.GlassDef{}
	for _, g := range catalog.DefaultGlasses() {
		glasses[g.ID] = g
	}
	return &state.Defs{
		Game: types.GameDef{
			Title:   "Test Bar",
			Author:  "Test",
			Version: "1.0",
			Start:   "open",
			Glass:   "wine",
		},
		Ingredients: ingredients,
		Glasses:     glasses,
		Patrons: map[string]types.PatronDef{
			"carl": {ID: "carl", Name: "Carl", Enters: "open", Served: "open"},
		},
		Nodes: map[string]types.NodeDef{
			"open": {
				ID:      "open",
				Speaker: "carl",
				Lines:   []string{"Evening."},
				Commands: []types.Command{
					{Type: "change_dialog_state", Params: map[string]any{"patron": "carl"}},
				},
			},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	eng, err := engine.New(testDefs())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return New(eng, Options{HistorySize: 5})
}

func TestNew_Options(t *testing.T) {
	eng, err := engine.New(testDefs())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	m := New(eng, Options{Trace: true, HistorySize: 3})
	if !m.trace {
		t.Error("expected trace to start enabled")
	}
	if len(m.history.ring) != 3 {
		t.Errorf("history max = %d, want 3", len(m.history.ring))
	}
	if !m.speakers["Carl"] {
		t.Errorf("speakers = %v, want Carl", m.speakers)
	}

	m = New(eng, Options{})
	if len(m.history.ring) != 100 {
		t.Errorf("default history max = %d, want 100", len(m.history.ring))
	}
}

func TestHandleMeta_Quit(t *testing.T) {
	m := newTestModel(t)

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}

	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/quit", "/mood", "/state", "pour <ingredient>", "continue"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := newTestModel(t)

	output, _ := m.handleMeta("/trace")
	if !m.trace {
		t.Error("expected trace to be enabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected enabled message, got %v", output)
	}

	output, _ = m.handleMeta("/trace")
	if m.trace {
		t.Error("expected trace to be disabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected disabled message, got %v", output)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := newTestModel(t)

	output, quit := m.handleMeta("/save")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m := newTestModel(t)
	m.engine.Start()

	output, quit := m.handleMeta("/state")
	if quit {
		t.Error("state should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, want := range []string{"Turn: 0", "Game state: dialogues", "Patron: carl", "Glass: wine 0/100"} {
		if !strings.Contains(joined, want) {
			t.Errorf("state output missing %q:\n%s", want, joined)
		}
	}
}

func TestHandleMeta_Mood(t *testing.T) {
	m := newTestModel(t)

	output, _ := m.handleMeta("/mood")
	if len(output) != len(types.Effects) {
		t.Errorf("expected %d mood lines, got %v", len(types.Effects), output)
	}
}

func TestFormatTrace(t *testing.T) {
	result := types.Result{
		Commands: []types.Command{{Type: "say", Params: map[string]any{"text": "hi"}}},
		Events:   []types.Event{{Type: "glass_full"}},
	}
	lines := formatTrace(result)
	want := []string{"[trace] Commands: 1", "[trace]   say map[text:hi]", "[trace] Events: 1", "[trace]   glass_full map[]"}
	if len(lines) != len(want) {
		t.Fatalf("formatTrace = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestHandleMeta_History(t *testing.T) {
	m := newTestModel(t)
	m.history.Push("shelf")
	m.history.Push("pour sweetflux")

	output, _ := m.handleMeta("/history")
	want := []string{"  1. shelf", "  2. pour sweetflux"}
	if strings.Join(output, "\n") != strings.Join(want, "\n") {
		t.Errorf("/history = %v, want %v", output, want)
	}

	m = newTestModel(t)
	output, _ = m.handleMeta("/history")
	if len(output) != 1 || output[0] != "No commands yet." {
		t.Errorf("/history on empty = %v", output)
	}
}

func submitLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	return m.submit()
}

func TestSubmit_RecordsTurn(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submitLine(t, m, "look")

	if cmd != nil {
		t.Error("a game turn should not return a command")
	}
	if len(m.transcript) < 2 {
		t.Fatalf("transcript = %v", m.transcript)
	}
	if got := m.transcript[0]; got != (entry{text: "> look", kind: kindInput}) {
		t.Errorf("first entry = %+v, want echoed input", got)
	}
	if last := m.transcript[len(m.transcript)-1]; last.text != "" {
		t.Errorf("last entry = %+v, want blank separator", last)
	}
	if m.lastCmd != "look" {
		t.Errorf("lastCmd = %q, want %q", m.lastCmd, "look")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
}

func TestSubmit_Again(t *testing.T) {
	m := newTestModel(t)

	m, _ = submitLine(t, m, "g")
	if got := m.transcript[1]; got != (entry{text: "Nothing to repeat.", kind: kindMeta}) {
		t.Errorf("entry = %+v, want nothing to repeat", got)
	}

	m, _ = submitLine(t, m, "mood")
	m, _ = submitLine(t, m, "again")
	echoes := 0
	for _, e := range m.transcript {
		if e.text == "> mood" {
			echoes++
		}
	}
	if echoes != 2 {
		t.Errorf("mood ran %d times, want 2", echoes)
	}
}

func TestSubmit_Quit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := submitLine(t, m, "/quit")

	if cmd == nil || !m.quitting {
		t.Errorf("quitting = %v, cmd = %v, want tea.Quit", m.quitting, cmd)
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}

func TestHandleKey_HistoryNavigation(t *testing.T) {
	m := newTestModel(t)
	m, _ = submitLine(t, m, "shelf")

	m, _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if !handled || m.input.Value() != "shelf" {
		t.Errorf("after up: handled=%v input=%q, want shelf", handled, m.input.Value())
	}
	m, _, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" {
		t.Errorf("after down: input = %q, want empty", m.input.Value())
	}
	if _, _, handled := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); handled {
		t.Error("plain runes should fall through to the input")
	}
}

func TestResize_ReservesBars(t *testing.T) {
	m := newTestModel(t)
	m.record(turnMsg{lines: []string{"The lights come on."}})

	m.resize(40, 20)

	if !m.ready || m.view.Height != 17 || m.view.Width != 40 {
		t.Errorf("viewport = %dx%d ready=%v, want 40x17", m.view.Width, m.view.Height, m.ready)
	}
	m.resize(40, 2)
	if m.view.Height != 1 {
		t.Errorf("viewport height = %d, want 1", m.view.Height)
	}
}

