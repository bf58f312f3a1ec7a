package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwarden/calnote/internal/calendar"
)

var ErrUnrecognized = errors.New("unrecognized date")

var (
	relativeRe  = regexp.MustCompile(`^(next|last|this)\s+(day|week|month|year)$`)
	weekdayRe   = regexp.MustCompile(`^(next|this)\s+(mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)$`)
	inRe        = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months|year|years)$`)
	agoRe       = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)\s+ago$`)
	isoDateRe   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	isoMonthRe  = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	keyDateRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	monthNameRe = regexp.MustCompile(`^(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)(?:\s+(\d{1,2}))?(?:,?\s+(\d{4}))?$`)
	dayMonthRe  = regexp.MustCompile(`^(\d{1,2})\s+(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)(?:\s+(\d{4}))?$`)
)

// DateParser turns short date expressions into a calendar day.
type DateParser struct {
	now      time.Time
	location *time.Location
}

func NewDateParser() *DateParser {
	return &DateParser{
		now:      time.Now(),
		location: time.Local,
	}
}

func (p *DateParser) SetNow(now time.Time) {
	p.now = now
	p.location = now.Location()
}

// Parse returns midnight of the day described by input.
func (p *DateParser) Parse(input string) (time.Time, error) {
	lower := strings.ToLower(strings.Join(strings.Fields(input), " "))
	if lower == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnrecognized)
	}

	if date, ok := p.parseRelative(lower); ok {
		return date, nil
	}

	date, ok, err := p.parseAbsolute(lower)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		return date, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, input)
}

func (p *DateParser) parseRelative(lower string) (time.Time, bool) {
	today := p.today()

	switch lower {
	case "today", "now":
		return today, true
	case "tomorrow", "tmrw":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	}

	if matches := relativeRe.FindStringSubmatch(lower); matches != nil {
		n := 0
		switch matches[1] {
		case "next":
			n = 1
		case "last":
			n = -1
		}
		return p.shift(today, n, matches[2]), true
	}

	if matches := weekdayRe.FindStringSubmatch(lower); matches != nil {
		return p.findNextWeekday(p.parseWeekday(matches[2]), matches[1] == "next"), true
	}

	if matches := inRe.FindStringSubmatch(lower); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		return p.shift(today, n, matches[2]), true
	}

	if matches := agoRe.FindStringSubmatch(lower); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		return p.shift(today, -n, matches[2]), true
	}

	return time.Time{}, false
}

func (p *DateParser) parseAbsolute(lower string) (time.Time, bool, error) {
	// YYYY-MM-DD
	if matches := isoDateRe.FindStringSubmatch(lower); matches != nil {
		date, err := p.date(atoi(matches[1]), atoi(matches[2]), atoi(matches[3]))
		return date, err == nil, err
	}

	// YYYY-MM
	if matches := isoMonthRe.FindStringSubmatch(lower); matches != nil {
		date, err := p.date(atoi(matches[1]), atoi(matches[2]), 1)
		return date, err == nil, err
	}

	// DD/MM/YYYY, the same order notes are keyed by
	if matches := keyDateRe.FindStringSubmatch(lower); matches != nil {
		date, err := p.date(atoi(matches[3]), atoi(matches[2]), atoi(matches[1]))
		return date, err == nil, err
	}

	// Month [DD][, YYYY]
	if matches := monthNameRe.FindStringSubmatch(lower); matches != nil {
		day := 1
		if matches[2] != "" {
			day = atoi(matches[2])
		}
		year := p.now.Year()
		if matches[3] != "" {
			year = atoi(matches[3])
		}
		date, err := p.date(year, int(p.parseMonth(matches[1])), day)
		return date, err == nil, err
	}

	// DD Month [YYYY]
	if matches := dayMonthRe.FindStringSubmatch(lower); matches != nil {
		year := p.now.Year()
		if matches[3] != "" {
			year = atoi(matches[3])
		}
		date, err := p.date(year, int(p.parseMonth(matches[2])), atoi(matches[1]))
		return date, err == nil, err
	}

	return time.Time{}, false, nil
}

// date builds a day, rejecting values time.Date would silently normalize.
func (p *DateParser) date(year, month, day int) (time.Time, error) {
	key := calendar.NewDateKey(day, month, year)
	if !key.Valid() {
		return time.Time{}, fmt.Errorf("%w: no such day %04d-%02d-%02d", ErrUnrecognized, year, month, day)
	}
	return key.Time(p.location), nil
}

func (p *DateParser) shift(from time.Time, n int, unit string) time.Time {
	switch {
	case strings.HasPrefix(unit, "day"):
		return from.AddDate(0, 0, n)
	case strings.HasPrefix(unit, "week"):
		return from.AddDate(0, 0, n*7)
	case strings.HasPrefix(unit, "month"):
		return addMonths(from, n)
	case strings.HasPrefix(unit, "year"):
		return addMonths(from, n*12)
	}
	return from
}

// addMonths moves by whole months, clamping the day to the target month
// (Jan 31 + 1 month is the last day of February).
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := min(t.Day(), calendar.DaysInMonth(first.Year(), first.Month()))
	return first.AddDate(0, 0, day-1)
}

func (p *DateParser) parseWeekday(s string) time.Weekday {
	switch s {
	case "sun", "sunday":
		return time.Sunday
	case "mon", "monday":
		return time.Monday
	case "tue", "tuesday":
		return time.Tuesday
	case "wed", "wednesday":
		return time.Wednesday
	case "thu", "thursday":
		return time.Thursday
	case "fri", "friday":
		return time.Friday
	default:
		return time.Saturday
	}
}

func (p *DateParser) parseMonth(s string) time.Month {
	for i, name := range calendar.MonthNames {
		if strings.HasPrefix(strings.ToLower(name), s[:3]) {
			return time.Month(i + 1)
		}
	}
	return time.January
}

func (p *DateParser) findNextWeekday(target time.Weekday, skipThisWeek bool) time.Time {
	date := p.today()
	daysUntilTarget := int(target - date.Weekday())

	if daysUntilTarget <= 0 || skipThisWeek {
		daysUntilTarget += 7
	}

	return date.AddDate(0, 0, daysUntilTarget)
}

func (p *DateParser) today() time.Time {
	y, m, d := p.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.location)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
