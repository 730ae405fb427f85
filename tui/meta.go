package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/ontherocks/types"
)

// historyShown caps how many commands /history lists.
const historyShown = 20

var helpText = []string{
	"System:",
	"  /quit                    Close the bar",
	"  /help                    Show this help",
	"  /state                   Dump the session state",
	"  /mood                    Show the patron mood meters",
	"  /history                 List recent commands",
	"  /trace                   Toggle trace output",
	"",
	"Behind the bar:",
	"  pour <ingredient> (add)  Add a serving to the glass",
	"  use <glass> (glass)      Switch to another empty glass",
	"  empty (reset)            Tip the glass out",
	"  serve (craft, mix)       Hand the drink over",
	"  shelf (menu)             List the ingredients",
	"  examine <ingredient> (x) Look closely at an ingredient",
	"",
	"In conversation:",
	"  <number> (choose)        Pick a reply",
	"  continue (c)             Move the conversation along",
	"",
	"Anywhere: look (l), mood, again (g)",
	"Keys: PgUp/PgDn scroll, Up/Down walk the command history",
}

// handleMeta runs a slash command and reports whether to quit.
func (m *Model) handleMeta(input string) ([]string, bool) {
	name := strings.Fields(input)[0]
	switch name {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true
	case "/help":
		return helpText, false
	case "/state":
		return m.stateLines(), false
	case "/mood":
		return m.engine.Mood(), false
	case "/history":
		return m.historyLines(), false
	case "/trace":
		m.trace = !m.trace
		return []string{fmt.Sprintf("Trace output %s.", onOff(m.trace))}, false
	}
	return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, false
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func (m *Model) historyLines() []string {
	recent := m.history.Recent(historyShown)
	if len(recent) == 0 {
		return []string{"No commands yet."}
	}
	out := make([]string, len(recent))
	for i, cmd := range recent {
		out[i] = fmt.Sprintf("  %d. %s", i+1, cmd)
	}
	return out
}

func (m *Model) stateLines() []string {
	s, b := m.engine.State, m.engine.Bar
	out := []string{
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Game state: %s", s.GameState),
		fmt.Sprintf("Patron: %s", orNone(s.Patron)),
		fmt.Sprintf("Node: %s", orNone(s.Node)),
		fmt.Sprintf("Glass: %s %g/%g (%s)", b.Glass().ID, b.CurrentVolume(), b.Capacity(), b.Phase()),
	}
	if s.HeldDrink != "" {
		out = append(out, fmt.Sprintf("Held drink: %s", s.HeldDrink))
	}
	if len(s.Flags) > 0 {
		out = append(out, fmt.Sprintf("Flags: %v", s.Flags))
	}
	if len(s.Counters) > 0 {
		out = append(out, fmt.Sprintf("Counters: %v", s.Counters))
	}
	names := make([]string, 0, len(s.Vars))
	for name := range s.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, fmt.Sprintf("Var %s = %g", name, s.Vars[name]))
	}
	return out
}

func formatTrace(result types.Result) []string {
	var lines []string
	if n := len(result.Commands); n > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Commands: %d", n))
		for _, c := range result.Commands {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", c.Type, c.Params))
		}
	}
	if n := len(result.Events); n > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", n))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
