// Package tui is the full-screen bar front end: a scrolling transcript, the
// mood and status bars, and a command prompt with history.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/ontherocks/engine"
	"github.com/nathoo/ontherocks/engine/state"
)

// Options configures a Model.
type Options struct {
	Trace       bool
	HistorySize int
}

const defaultHistorySize = 100

// Model is the Bubble Tea model for the bar TUI.
type Model struct {
	engine *engine.Engine
	defs   *state.Defs

	view    viewport.Model
	input   textinput.Model
	history *History
	keys    keyMap

	transcript []entry
	speakers   map[string]bool

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

type keyMap struct {
	Quit   key.Binding
	Submit key.Binding
	Older  key.Binding
	Newer  key.Binding
	Scroll key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Submit: key.NewBinding(key.WithKeys("enter")),
		Older:  key.NewBinding(key.WithKeys("up")),
		Newer:  key.NewBinding(key.WithKeys("down")),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown")),
	}
}

// scrollKeys leaves Up and Down to the command history.
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}

// New creates a TUI model wired to eng.
func New(eng *engine.Engine, opts Options) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.PromptStyle = styleInputPrompt
	in.CharLimit = 256
	in.Focus()

	size := opts.HistorySize
	if size <= 0 {
		size = defaultHistorySize
	}
	return Model{
		engine:   eng,
		defs:     eng.Defs,
		input:    in,
		history:  NewHistory(size),
		keys:     defaultKeys(),
		speakers: speakerNames(eng.Defs),
		trace:    opts.Trace,
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(New(eng, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func speakerNames(defs *state.Defs) map[string]bool {
	names := map[string]bool{}
	for id, p := range defs.Patrons {
		names[engine.DisplayName(id)] = true
		if p.Name != "" {
			names[p.Name] = true
		}
	}
	return names
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.openNight)
}

// openNight prints the title card and the start node.
func (m Model) openNight() tea.Msg {
	g := m.defs.Game
	lines := []string{g.Title + " v" + g.Version + " by " + g.Author, ""}
	if g.Intro != "" {
		lines = append(lines, g.Intro, "")
	}
	result := m.engine.Start()
	lines = append(lines, result.Output...)
	if m.trace {
		lines = append(lines, formatTrace(result)...)
	}
	return turnMsg{lines: lines}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	case turnMsg:
		m.record(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Submit):
		next, cmd := m.submit()
		return next, cmd, true
	case key.Matches(msg, m.keys.Older):
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil, true
	case key.Matches(msg, m.keys.Newer):
		next, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.input.SetValue(next)
		m.input.CursorEnd()
		return m, nil, true
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// resize fits the transcript above the mood bar, status bar and prompt.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(height-3, 1)
	if m.ready {
		m.view.Width = width
		m.view.Height = rows
	} else {
		m.view = viewport.New(width, rows)
		m.view.KeyMap = scrollKeys()
		m.ready = true
	}
	m.redraw()
}

// submit runs the prompt line as a meta-command or a game turn.
func (m Model) submit() (Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	m.history.Push(line)
	m.history.ResetCursor()

	if lower := strings.ToLower(line); lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m.record(turnMsg{echo: line, lines: []string{"Nothing to repeat."}, meta: true})
			return m, nil
		}
		line = m.lastCmd
	}

	if strings.HasPrefix(line, "/") {
		out, quit := m.handleMeta(line)
		m.record(turnMsg{echo: line, lines: out, meta: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.lastCmd = line
	result := m.engine.Step(line)
	out := result.Output
	if m.trace {
		out = append(out, formatTrace(result)...)
	}
	m.record(turnMsg{echo: line, lines: out})
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return strings.Join([]string{
		m.view.View(),
		m.renderMoodBar(),
		m.renderStatusBar(),
		m.input.View(),
	}, "\n")
}
