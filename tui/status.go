package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/ontherocks/engine"
	"github.com/nathoo/ontherocks/engine/state"
	"github.com/nathoo/ontherocks/types"
)

// gaugeWidth is the number of cells in the glass fill gauge.
const gaugeWidth = 10

// renderStatusBar produces a full-width inverted status line showing the
// patron, the game state, the glass and the turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	b := m.engine.Bar

	who := "nobody"
	if p, ok := state.PatronFor(s, m.defs); ok {
		who = p.Name
		if who == "" {
			who = engine.DisplayName(p.ID)
		}
	}

	left := fmt.Sprintf(" %s | %s", who, s.GameState)
	right := fmt.Sprintf("T:%d ", s.TurnCount)

	g := b.Glass()
	name := g.Name
	if name == "" {
		name = engine.DisplayName(g.ID)
	}
	candidate := fmt.Sprintf("%s %s %g/%g | T:%d ", name, gauge(b.CurrentVolume(), b.Capacity()), b.CurrentVolume(), b.Capacity(), s.TurnCount)
	if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
		right = candidate
	} else {
		right = fmt.Sprintf("%g/%g | T:%d ", b.CurrentVolume(), b.Capacity(), s.TurnCount)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// gauge draws a fill bar like "[####......]".
func gauge(volume, capacity float64) string {
	filled := 0
	if capacity > 0 {
		filled = int(volume / capacity * gaugeWidth)
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", gaugeWidth-filled) + "]"
}

// renderMoodBar shows every affect intensity, each coloured by how strong
// it is.
func (m Model) renderMoodBar() string {
	reg := m.engine.Bar.Registry()
	parts := make([]string, 0, len(types.Effects))
	for _, eff := range types.Effects {
		n := reg.Get(eff)
		label := fmt.Sprintf("%s %d", moodLabel(eff), n)
		parts = append(parts, lipgloss.NewStyle().Foreground(moodColor(n)).Render(label))
	}
	line := styleMoodTitle.Render(" Mood ") + " " + strings.Join(parts, "  ")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// moodLabel is the short name shown in the mood line.
func moodLabel(eff types.PrimaryEffect) string {
	word, _, _ := strings.Cut(string(eff), "_")
	return engine.DisplayName(word)
}

// moodColor blends from grey at intensity 0 to red at intensity 10.
func moodColor(n int) lipgloss.Color {
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	t := float64(n) / 10
	lerp := func(a, b int) int { return a + int(float64(b-a)*t) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", lerp(0x80, 0xff), lerp(0x80, 0x40), lerp(0x80, 0x40)))
}
