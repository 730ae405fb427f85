package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleMoodTitle = lipgloss.NewStyle().
			Background(lipgloss.Color("53")).
			Foreground(lipgloss.Color("225")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleSpeaker = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	styleSpeech = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleOption = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleAction = lipgloss.NewStyle().
			Foreground(lipgloss.Color("80"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindSpeech
	kindOption
	kindChoice
	kindAction
	kindSystem
	kindError
	kindTrace
	kindInput // echoed player command
	kindMeta  // slash command output
)

// classifyLine determines what kind of output line this is. speakers holds
// the names that can open a line of speech ("Carl: ...").
func classifyLine(line string, speakers map[string]bool) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "> "):
		return kindChoice
	case isOption(line):
		return kindOption
	case strings.HasPrefix(line, "You pour"),
		strings.HasPrefix(line, "You slide"),
		strings.HasPrefix(line, "You set out"),
		strings.HasPrefix(line, "You reach for"),
		strings.HasPrefix(line, "You tip"):
		return kindAction
	case strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "There's no"),
		strings.HasPrefix(line, "Nothing called"),
		strings.HasPrefix(line, "You see no"),
		strings.HasPrefix(line, "Finish the"),
		strings.HasPrefix(line, "Empty the glass"),
		strings.HasPrefix(line, "The glass is full"):
		return kindError
	case speakerOf(line, speakers) != "":
		return kindSpeech
	default:
		return kindNarration
	}
}

// isOption matches a numbered reply ("  2. Coming right up.") or the
// continue hint.
func isOption(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(trimmed) == len(line) {
		return false
	}
	if trimmed == "(continue)" {
		return true
	}
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(trimmed[i:], ". ")
}

// speakerOf returns the speaker prefix of a line of speech, or "".
func speakerOf(line string, speakers map[string]bool) string {
	name, _, ok := strings.Cut(line, ": ")
	if !ok || !speakers[name] {
		return ""
	}
	return name
}

// styledSpeech renders "Carl: text" with the speaker name highlighted.
func styledSpeech(line string) string {
	name, rest, ok := strings.Cut(line, ": ")
	if !ok {
		return styleSpeech.Render(line)
	}
	return styleSpeaker.Render(name+":") + " " + styleSpeech.Render(rest)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

// renderLine styles an already wrapped line.
func renderLine(line string, kind lineKind) string {
	switch kind {
	case kindSpeech:
		return styledSpeech(line)
	case kindOption:
		return styleOption.Render(line)
	case kindChoice, kindInput:
		return stylePlayerInput.Render(line)
	case kindAction:
		return styleAction.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindMeta:
		return styledSystemMsg(line)
	}
	return styleNarration.Render(line)
}
