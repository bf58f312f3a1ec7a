package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	editorWidth  = 60
	editorHeight = 10
	panelWidth   = 40
)

var helpActions = []struct {
	action string
	desc   string
}{
	{"prev_day", "Previous day"},
	{"next_day", "Next day"},
	{"prev_week", "Previous week"},
	{"next_week", "Next week"},
	{"prev_month", "Previous month"},
	{"next_month", "Next month"},
	{"prev_year", "Previous year"},
	{"next_year", "Next year"},
	{"today", "Go to today"},
	{"goto_date", "Go to a date"},
	{"edit_note", "Edit appointments for the day"},
	{"external_edit", "Edit appointments in $EDITOR"},
	{"help", "Toggle help"},
	{"quit", "Quit"},
}

func (m *Model) viewCalendar() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderGrid(), " ", m.renderNotePanel())

	sections := []string{body}
	if m.mode == ViewGoto {
		sections = append(sections, "", m.gotoInput.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if gap := m.height - lipgloss.Height(content) - 1; gap > 0 {
		content += strings.Repeat("\n", gap)
	}

	return content + "\n" + m.renderStatusBar()
}

// renderNotePanel shows the selected day's note and the month's noted days.
func (m *Model) renderNotePanel() string {
	width := m.panelWidth()
	key := m.view.Key(m.day)

	var lines []string
	lines = append(lines, m.styles.Header.Render(key.Time(time.Local).Format(m.config.DateFormat)))
	lines = append(lines, "")

	if text := m.view.Store().Get(key); text != "" {
		for _, line := range strings.Split(m.fitText(text, width), "\n") {
			lines = append(lines, m.styles.Normal.Render(line))
		}
	} else {
		lines = append(lines, m.styles.Help.Render("(no appointments)"))
	}

	g := m.view.Grid()
	noted := m.view.Store().InMonth(g.Year, int(g.Month))
	if len(noted) > 0 {
		lines = append(lines, "")
		lines = append(lines, m.styles.Header.Render(fmt.Sprintf("This month (%d)", len(noted))))

		days := make([]int, 0, len(noted))
		for day := range noted {
			days = append(days, day)
		}
		sort.Ints(days)

		for _, day := range days {
			entry := fmt.Sprintf("%2d  %s", day, firstLine(noted[day]))
			lines = append(lines, m.styles.Note.UnsetUnderline().Render(truncateText(entry, width)))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) panelWidth() int {
	gridBox := gridWidth + 2*gridOriginX
	width := m.width - gridBox - 1
	if width > panelWidth {
		width = panelWidth
	}
	if width < 16 {
		width = 16
	}
	return width
}

func (m *Model) viewEditor() string {
	var sections []string

	title := "Edit appointments"
	if session := m.view.Editing(); session != nil {
		title = session.Prompt
	}
	sections = append(sections, m.styles.Header.Render(title))
	sections = append(sections, m.styles.Normal.Render("Enter or edit appointments for this day:"))
	sections = append(sections, "")
	sections = append(sections, m.editor.View())
	sections = append(sections, "")
	sections = append(sections, m.styles.Help.Render("Esc or Ctrl+S to close, your text is kept"))

	box := m.styles.Border.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewHelp() string {
	help := []string{
		m.styles.Header.Render("calnote Help"),
		"",
	}

	for _, h := range helpActions {
		keys := m.keysFor(h.action)
		if len(keys) == 0 {
			continue
		}
		help = append(help, m.styles.Help.Render(fmt.Sprintf("  %-12s - %s", strings.Join(keys, "/"), h.desc)))
	}

	help = append(help, "")
	help = append(help, m.styles.Help.Render("  Click a day to edit it, scroll to change month."))
	help = append(help, "")
	help = append(help, m.styles.Help.Render("Press any key to return..."))

	return lipgloss.JoinVertical(lipgloss.Left, help...)
}

func (m *Model) renderStatusBar() string {
	storage := "in memory"
	if m.file != nil {
		storage = m.file.Path
	}

	left := fmt.Sprintf(" %s | Notes: %d | %s",
		m.view.Title(),
		m.view.Store().Len(),
		storage)

	right := "? for help | q to quit"

	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}
