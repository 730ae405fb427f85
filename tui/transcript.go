package tui

import "strings"

// entry is one unstyled transcript line. Lines are kept raw so a resize
// can re-wrap them.
type entry struct {
	text string
	kind lineKind
}

// turnMsg carries one turn of output into Update.
type turnMsg struct {
	echo  string // player input, empty for the opening
	lines []string
	meta  bool
}

// record appends a turn to the transcript, followed by a blank separator.
func (m *Model) record(msg turnMsg) {
	if msg.echo != "" {
		m.transcript = append(m.transcript, entry{text: "> " + msg.echo, kind: kindInput})
	}
	for _, line := range msg.lines {
		kind := kindMeta
		if !msg.meta {
			kind = classifyLine(line, m.speakers)
		}
		m.transcript = append(m.transcript, entry{text: line, kind: kind})
	}
	m.transcript = append(m.transcript, entry{})
	m.redraw()
}

func (m *Model) redraw() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)
	rows := make([]string, len(m.transcript))
	for i, e := range m.transcript {
		if e.text != "" {
			rows[i] = renderLine(wordWrap(e.text, width), e.kind)
		}
	}
	m.view.SetContent(strings.Join(rows, "\n"))
	m.view.GotoBottom()
}

// wordWrap breaks text at spaces so no line exceeds width, except a single
// word longer than width.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	return strings.Join(append(lines, cur.String()), "\n")
}
