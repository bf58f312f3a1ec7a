// Package monthview owns the month being displayed and the note editing
// cycle for its days.
package monthview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwarden/calnote/internal/calendar"
	"github.com/cwarden/calnote/internal/notes"
)

const (
	DefaultMinYear = 1990
	DefaultMaxYear = 2100
)

var (
	ErrInvalidMonth     = errors.New("month out of range")
	ErrYearOutOfRange   = errors.New("year out of range")
	ErrEditInProgress   = errors.New("another day is being edited")
	ErrNoEditInProgress = errors.New("no day is being edited")
)

// Prompter asks the user for text and blocks until they are done.
// There is no cancel: whatever is returned is the answer.
type Prompter interface {
	RequestText(ctx context.Context, prompt, initial string) (string, error)
}

// Session is an open edit of one day's note.
type Session struct {
	Key     calendar.DateKey
	Prompt  string
	Initial string
}

type Options struct {
	MinYear int
	MaxYear int
	Now     func() time.Time
	Logger  *slog.Logger
}

// MonthView tracks the selected year and month and edits notes in store.
type MonthView struct {
	store   *notes.Store
	minYear int
	maxYear int
	now     func() time.Time
	logger  *slog.Logger

	year    int
	month   time.Month
	grid    calendar.Grid
	editing *Session
}

// New creates a view showing the current month, clamped to the year range.
func New(store *notes.Store, opts Options) *MonthView {
	if opts.MinYear == 0 {
		opts.MinYear = DefaultMinYear
	}
	if opts.MaxYear == 0 {
		opts.MaxYear = DefaultMaxYear
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	v := &MonthView{
		store:   store,
		minYear: opts.MinYear,
		maxYear: opts.MaxYear,
		now:     opts.Now,
		logger:  opts.Logger,
	}

	now := v.now()
	year := min(max(now.Year(), v.minYear), v.maxYear)
	v.selectUnchecked(year, now.Month())
	return v
}

func (v *MonthView) Store() *notes.Store { return v.store }
func (v *MonthView) Year() int           { return v.year }
func (v *MonthView) Month() time.Month   { return v.month }
func (v *MonthView) Grid() calendar.Grid { return v.grid }
func (v *MonthView) Title() string       { return v.grid.Title() }
func (v *MonthView) MinYear() int        { return v.minYear }
func (v *MonthView) MaxYear() int        { return v.maxYear }

// Select shows month of year.
func (v *MonthView) Select(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if year < v.minYear || year > v.maxYear {
		return fmt.Errorf("%w: %d not in %d-%d", ErrYearOutOfRange, year, v.minYear, v.maxYear)
	}
	v.selectUnchecked(year, month)
	return nil
}

func (v *MonthView) selectUnchecked(year int, month time.Month) {
	v.year = year
	v.month = month
	v.grid = calendar.Layout(year, month)
}

// SelectYear keeps the month and changes the year.
func (v *MonthView) SelectYear(year int) error {
	return v.Select(year, v.month)
}

// SelectMonth keeps the year and changes the month.
func (v *MonthView) SelectMonth(month time.Month) error {
	return v.Select(v.year, month)
}

// NextMonth advances one month, rolling into the next year. It reports
// false at the end of the year range.
func (v *MonthView) NextMonth() bool {
	return v.shift(0, 1)
}

func (v *MonthView) PrevMonth() bool {
	return v.shift(0, -1)
}

func (v *MonthView) NextYear() bool {
	return v.shift(1, 0)
}

func (v *MonthView) PrevYear() bool {
	return v.shift(-1, 0)
}

func (v *MonthView) shift(years, months int) bool {
	t := time.Date(v.year+years, v.month+time.Month(months), 1, 12, 0, 0, 0, time.UTC)
	return v.Select(t.Year(), t.Month()) == nil
}

// Today selects the current month and returns today's key.
func (v *MonthView) Today() (calendar.DateKey, error) {
	now := v.now()
	if err := v.Select(now.Year(), now.Month()); err != nil {
		return calendar.DateKey{}, err
	}
	return calendar.KeyFor(now), nil
}

// TodayKey returns the key of the current day without navigating.
func (v *MonthView) TodayKey() calendar.DateKey {
	return calendar.KeyFor(v.now())
}

// Key resolves a day of the displayed month.
func (v *MonthView) Key(day int) calendar.DateKey {
	return v.grid.Key(day)
}

// Editing returns the open session, or nil when idle.
func (v *MonthView) Editing() *Session {
	return v.editing
}

// BeginEdit opens day/month/year for editing, seeded with its current note.
func (v *MonthView) BeginEdit(day, month, year int) (Session, error) {
	if v.editing != nil {
		return Session{}, ErrEditInProgress
	}

	key := calendar.NewDateKey(day, month, year)
	s := Session{
		Key:     key,
		Prompt:  "Meetings for " + key.String(),
		Initial: v.store.Get(key),
	}
	v.editing = &s
	v.logger.Debug("edit started", slog.String("date", key.String()))
	return s, nil
}

// Commit ends the open session with text, which is always accepted.
func (v *MonthView) Commit(text string) (notes.Change, error) {
	if v.editing == nil {
		return notes.Unchanged, ErrNoEditInProgress
	}

	key := v.editing.Key
	v.editing = nil

	change := v.store.Save(key, text)
	v.logger.Info("note saved", slog.String("date", key.String()), slog.String("change", change.String()))
	return change, nil
}

// Abort closes the open session without touching the store. Used when the
// collaborator itself failed, not as a user-facing cancel.
func (v *MonthView) Abort() {
	v.editing = nil
}

// OpenEditor runs a whole edit cycle through a blocking prompter.
func (v *MonthView) OpenEditor(ctx context.Context, day, month, year int, p Prompter) (notes.Change, error) {
	s, err := v.BeginEdit(day, month, year)
	if err != nil {
		return notes.Unchanged, err
	}

	text, err := p.RequestText(ctx, s.Prompt, s.Initial)
	if err != nil {
		v.Abort()
		return notes.Unchanged, fmt.Errorf("editing %s: %w", s.Key, err)
	}

	return v.Commit(text)
}
