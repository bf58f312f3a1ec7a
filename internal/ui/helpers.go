package ui

import (
	"sort"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// fitText wraps or truncates note text to width depending on wrap_text.
func (m *Model) fitText(text string, width int) string {
	text = strings.TrimRight(text, "\n")
	if m.config.WrapText {
		return wordwrap.String(text, width)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = truncateText(line, width)
	}
	return strings.Join(lines, "\n")
}

// keysFor lists the keys bound to action, sorted for stable help output.
func (m *Model) keysFor(action string) []string {
	var keys []string
	for key, bound := range m.config.KeyBindings {
		if bound == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (m *Model) resizeEditor() {
	width := editorWidth
	if m.width > 0 && m.width-8 < width {
		width = m.width - 8
	}
	height := editorHeight
	if m.height > 0 && m.height-10 < height {
		height = m.height - 10
	}

	m.editor.SetWidth(max(width, 10))
	m.editor.SetHeight(max(height, 3))
}

func truncateText(s string, width int) string {
	return truncate.StringWithTail(s, uint(width), "…")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " …"
	}
	return s
}
