package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cwarden/calnote/internal/calendar"
	"github.com/cwarden/calnote/internal/config"
	"github.com/cwarden/calnote/internal/editor"
	"github.com/cwarden/calnote/internal/monthview"
	"github.com/cwarden/calnote/internal/notes"
	"github.com/cwarden/calnote/internal/parser"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ViewMode int

const (
	ViewCalendar ViewMode = iota
	ViewEditor
	ViewGoto
	ViewHelp
)

const messageDuration = 3 * time.Second

type Model struct {
	// Core components
	config   *config.Config
	view     *monthview.MonthView
	file     *notes.File
	parser   *parser.DateParser
	external *editor.External
	logger   *slog.Logger
	now      func() time.Time

	// View state
	mode ViewMode
	day  int // cursor day within the displayed month

	// UI state
	width     int
	height    int
	message   string
	messageID int

	// Modal editor and goto prompt
	editor     textarea.Model
	editorSeed string // editor value right after seeding, before any typing
	gotoInput  textinput.Model

	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	Header   lipgloss.Style
	Note     lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Border   lipgloss.Style
	Error    lipgloss.Style
}

// Options carries the optional collaborators of the model.
type Options struct {
	// Notes is the backing file; nil keeps notes in memory only.
	Notes  *notes.File
	Logger *slog.Logger
	Now    func() time.Time
}

func NewModel(cfg *config.Config, view *monthview.MonthView, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	ta := textarea.New()
	ta.Placeholder = "Nothing planned..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(editorWidth)
	ta.SetHeight(editorHeight)

	ti := textinput.New()
	ti.Placeholder = "e.g. 2025-06, next month, 15/06/2025"
	ti.Prompt = "Go to: "
	ti.CharLimit = 64
	ti.Width = 40

	m := &Model{
		config:    cfg,
		view:      view,
		file:      opts.Notes,
		parser:    parser.NewDateParser(),
		external:  editor.NewExternal(cfg.Editor),
		logger:    opts.Logger,
		now:       opts.Now,
		mode:      ViewCalendar,
		editor:    ta,
		gotoInput: ti,
		styles:    StylesFromConfig(cfg.Colors),
	}

	today := view.TodayKey()
	if today.Year == view.Year() && today.Month == int(view.Month()) {
		m.day = today.Day
	} else {
		m.day = 1
	}

	return m
}

// StylesFromConfig builds styles from color specs (ANSI numbers, names or
// hex values). "default" leaves the terminal color in place.
func StylesFromConfig(colors map[string]string) Styles {
	fg := func(element string) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c, ok := colors[element]; ok && c != "" && c != "default" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}

	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color("235")).
		Bold(true)
	if c, ok := colors["selected"]; ok && c != "" && c != "default" {
		selected = selected.Background(lipgloss.Color(c))
	} else {
		selected = selected.Reverse(true)
	}

	return Styles{
		Normal:   fg("normal"),
		Selected: selected,
		Today:    fg("today").Bold(true),
		Weekend:  fg("weekend"),
		Header:   fg("header").Bold(true),
		Note:     fg("note").Underline(true),
		Help:     fg("help"),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors["border"])),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("calnote")
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case externalEditDoneMsg:
		return m.finishExternalEdit(msg)

	case NotesFileChangedMsg:
		return m.reloadNotes()

	case messageTimeoutMsg:
		if msg.id == m.messageID {
			m.message = ""
		}
		return m, nil
	}

	// Cursor blink and friends belong to whichever input has focus.
	var cmd tea.Cmd
	switch m.mode {
	case ViewEditor:
		m.editor, cmd = m.editor.Update(msg)
	case ViewGoto:
		m.gotoInput, cmd = m.gotoInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ViewEditor:
		return m.viewEditor()
	case ViewHelp:
		return m.viewHelp()
	default:
		return m.viewCalendar()
	}
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewEditor:
		return m.handleEditorKeys(msg)
	case ViewGoto:
		return m.handleGotoKeys(msg)
	case ViewHelp:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.mode = ViewCalendar
		return m, nil
	}

	return m.handleCalendarAction(m.config.ActionFor(msg.String()))
}

func (m *Model) handleCalendarAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case "quit":
		return m, tea.Quit

	case "help":
		m.mode = ViewHelp

	case "today":
		key, err := m.view.Today()
		if err != nil {
			return m, m.showMessage(fmt.Sprintf("Today is outside %d-%d", m.view.MinYear(), m.view.MaxYear()))
		}
		m.day = key.Day

	case "goto_date":
		m.mode = ViewGoto
		m.gotoInput.Reset()
		return m, m.gotoInput.Focus()

	case "edit_note":
		return m.openEditor(m.day)

	case "external_edit":
		return m.openExternalEditor(m.day)

	case "next_day":
		return m, m.moveDays(1)
	case "prev_day":
		return m, m.moveDays(-1)
	case "next_week":
		return m, m.moveDays(7)
	case "prev_week":
		return m, m.moveDays(-7)

	case "next_month":
		return m, m.navigate(m.view.NextMonth)
	case "prev_month":
		return m, m.navigate(m.view.PrevMonth)
	case "next_year":
		return m, m.navigate(m.view.NextYear)
	case "prev_year":
		return m, m.navigate(m.view.PrevYear)
	}

	return m, nil
}

// navigate applies a month/year step and keeps the cursor inside the month.
func (m *Model) navigate(step func() bool) tea.Cmd {
	if !step() {
		return m.showMessage(fmt.Sprintf("Calendar covers %d-%d", m.view.MinYear(), m.view.MaxYear()))
	}
	m.clampDay()
	return nil
}

// moveDays moves the cursor, following it into neighbouring months.
func (m *Model) moveDays(n int) tea.Cmd {
	target := time.Date(m.view.Year(), m.view.Month(), m.day+n, 12, 0, 0, 0, time.UTC)
	if err := m.view.Select(target.Year(), target.Month()); err != nil {
		return m.showMessage(fmt.Sprintf("Calendar covers %d-%d", m.view.MinYear(), m.view.MaxYear()))
	}
	m.day = target.Day()
	return nil
}

func (m *Model) clampDay() {
	days := m.view.Grid().DaysInMonth
	if m.day > days {
		m.day = days
	}
	if m.day < 1 {
		m.day = 1
	}
}

// openEditor starts the modal editor for a day of the displayed month.
func (m *Model) openEditor(day int) (tea.Model, tea.Cmd) {
	session, err := m.view.BeginEdit(day, int(m.view.Month()), m.view.Year())
	if err != nil {
		return m, m.showMessage(err.Error())
	}

	m.day = day
	m.mode = ViewEditor
	m.resizeEditor()
	m.editor.SetValue(session.Initial)
	m.editorSeed = m.editor.Value()
	return m, m.editor.Focus()
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		return m, m.closeEditor()
	case "ctrl+c":
		// Closing the dialog always keeps the text, even on the way out.
		m.closeEditor()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// closeEditor dismisses the dialog and commits whatever text it holds.
func (m *Model) closeEditor() tea.Cmd {
	text := m.editor.Value()
	m.editor.Blur()
	m.mode = ViewCalendar

	session := m.view.Editing()
	if session == nil {
		return nil
	}
	key := session.Key

	// The textarea normalizes tabs and line endings; an untouched note
	// keeps its stored form.
	if text == m.editorSeed {
		text = session.Initial
	}

	change, err := m.view.Commit(text)
	if err != nil {
		return m.showMessage(err.Error())
	}
	return m.afterCommit(key, change)
}

func (m *Model) afterCommit(key calendar.DateKey, change notes.Change) tea.Cmd {
	if change == notes.Unchanged {
		return nil
	}
	if err := m.save(); err != nil {
		m.logger.Error("failed to save notes", slog.Any("error", err))
		return m.showMessage(fmt.Sprintf("Error: %v", err))
	}
	return m.showMessage(fmt.Sprintf("Note %s for %s", change, key))
}

func (m *Model) save() error {
	if m.file == nil {
		return nil
	}
	return m.file.Save(m.view.Store())
}

func (m *Model) openExternalEditor(day int) (tea.Model, tea.Cmd) {
	session, err := m.view.BeginEdit(day, int(m.view.Month()), m.view.Year())
	if err != nil {
		return m, m.showMessage(err.Error())
	}

	path, err := m.external.Prepare(session.Initial)
	if err != nil {
		m.view.Abort()
		return m, m.showMessage(fmt.Sprintf("Error: %v", err))
	}

	cmd, err := m.external.Cmd(context.Background(), path)
	if err != nil {
		m.view.Abort()
		os.Remove(path)
		return m, m.showMessage(fmt.Sprintf("Error: %v", err))
	}

	m.day = day
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditDoneMsg{path: path, err: err}
	})
}

func (m *Model) finishExternalEdit(msg externalEditDoneMsg) (tea.Model, tea.Cmd) {
	session := m.view.Editing()
	if session == nil {
		os.Remove(msg.path)
		return m, nil
	}
	key := session.Key

	if msg.err != nil {
		m.view.Abort()
		os.Remove(msg.path)
		m.logger.Warn("external editor failed", slog.String("date", key.String()), slog.Any("error", msg.err))
		return m, m.showMessage(fmt.Sprintf("Editor failed: %v", msg.err))
	}

	text, err := m.external.Collect(msg.path)
	if err != nil {
		m.view.Abort()
		return m, m.showMessage(fmt.Sprintf("Error: %v", err))
	}

	change, err := m.view.Commit(text)
	if err != nil {
		return m, m.showMessage(err.Error())
	}
	return m, m.afterCommit(key, change)
}

func (m *Model) handleGotoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ViewCalendar
		m.gotoInput.Blur()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.mode = ViewCalendar
		m.gotoInput.Blur()
		return m, m.gotoDate(m.gotoInput.Value())
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) gotoDate(input string) tea.Cmd {
	m.parser.SetNow(m.now())
	date, err := m.parser.Parse(input)
	if err != nil {
		return m.showMessage(fmt.Sprintf("Error: %v", err))
	}
	if err := m.view.Select(date.Year(), date.Month()); err != nil {
		return m.showMessage(fmt.Sprintf("Error: %v", err))
	}
	m.day = date.Day()
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ViewCalendar {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			return m, m.navigate(m.view.PrevMonth)
		}
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			return m, m.navigate(m.view.NextMonth)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if day, ok := m.dayAt(msg.X, msg.Y); ok {
			return m.openEditor(day)
		}
	}

	return m, nil
}

func (m *Model) reloadNotes() (tea.Model, tea.Cmd) {
	if m.file == nil {
		return m, nil
	}

	changed, err := m.file.LoadInto(m.view.Store())
	if err != nil {
		m.logger.Error("failed to reload notes", slog.String("path", m.file.Path), slog.Any("error", err))
		return m, m.showMessage(fmt.Sprintf("Reload failed: %v", err))
	}
	if changed {
		return m, m.showMessage("Notes reloaded")
	}
	return m, nil
}

// showMessage sets the status message and schedules its removal.
func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageID++
	id := m.messageID
	return tea.Tick(messageDuration, func(time.Time) tea.Msg {
		return messageTimeoutMsg{id: id}
	})
}

// Message types

// NotesFileChangedMsg tells the model the notes file changed on disk.
type NotesFileChangedMsg struct{}

type messageTimeoutMsg struct {
	id int
}

type externalEditDoneMsg struct {
	path string
	err  error
}
