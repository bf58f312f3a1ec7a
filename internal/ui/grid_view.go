package ui

import (
	"fmt"
	"strings"

	"github.com/cwarden/calnote/internal/calendar"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth = 5
	gridWidth = calendar.Columns * cellWidth

	// Screen position of the first content cell: border and padding on the
	// left, border, title, spacer and weekday row above.
	gridOriginX = 2
	gridOriginY = 4

	noteMarker = "•"
)

// renderGrid draws the month as a bordered 7x6 grid with a weekday header.
func (m *Model) renderGrid() string {
	g := m.view.Grid()
	noted := m.view.Store().InMonth(g.Year, int(g.Month))
	today := m.view.TodayKey()

	var lines []string
	lines = append(lines, lipgloss.PlaceHorizontal(gridWidth, lipgloss.Center, m.styles.Header.Render(g.Title())))
	lines = append(lines, "")

	var header strings.Builder
	for col, name := range calendar.WeekdayNames {
		label := fmt.Sprintf(" %-3s ", name)
		if isWeekendColumn(col) {
			header.WriteString(m.styles.Weekend.Bold(true).Render(label))
		} else {
			header.WriteString(m.styles.Normal.Bold(true).Render(label))
		}
	}
	lines = append(lines, header.String())

	for _, row := range g.Rows() {
		var line strings.Builder
		for _, cell := range row {
			line.WriteString(m.renderCell(g, cell, noted, today))
		}
		lines = append(lines, line.String())
	}

	return m.styles.Border.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderCell(g calendar.Grid, cell calendar.Cell, noted map[int]string, today calendar.DateKey) string {
	if cell.Blank() {
		return strings.Repeat(" ", cellWidth)
	}

	marker := " "
	if _, ok := noted[cell.Day]; ok {
		marker = noteMarker
	}
	text := fmt.Sprintf(" %2d%s ", cell.Day, marker)

	switch {
	case cell.Day == m.day:
		return m.styles.Selected.Render(text)
	case g.Key(cell.Day) == today:
		return m.styles.Today.Render(text)
	case marker == noteMarker:
		return m.styles.Note.Render(text)
	case isWeekendColumn(cell.Column):
		return m.styles.Weekend.Render(text)
	default:
		return m.styles.Normal.Render(text)
	}
}

// dayAt maps a screen position to a day of the displayed month.
func (m *Model) dayAt(x, y int) (int, bool) {
	if x < gridOriginX || y < gridOriginY {
		return 0, false
	}

	col := (x - gridOriginX) / cellWidth
	row := y - gridOriginY
	if col >= calendar.Columns || row >= calendar.ContentRows {
		return 0, false
	}

	cell := m.view.Grid().Cell(row, col)
	if cell.Blank() {
		return 0, false
	}
	return cell.Day, true
}

func isWeekendColumn(col int) bool {
	return col == 0 || col == calendar.Columns-1
}
