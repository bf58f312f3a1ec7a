package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey identifies a calendar day. Month is 1-based.
type DateKey struct {
	Day   int
	Month int
	Year  int
}

func NewDateKey(day, month, year int) DateKey {
	return DateKey{Day: day, Month: month, Year: year}
}

// KeyFor returns the key of the calendar day t falls on in its own location.
func KeyFor(t time.Time) DateKey {
	return DateKey{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// String formats the key as dd/mm/yyyy.
func (k DateKey) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", k.Day, k.Month, k.Year)
}

// Time returns midnight of the day in loc.
func (k DateKey) Time(loc *time.Location) time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, loc)
}

func (k DateKey) Valid() bool {
	if k.Month < 1 || k.Month > 12 || k.Day < 1 {
		return false
	}
	return k.Day <= DaysInMonth(k.Year, time.Month(k.Month))
}

// Before orders keys chronologically.
func (k DateKey) Before(o DateKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.Day < o.Day
}

// ParseDateKey parses the dd/mm/yyyy form produced by String.
func ParseDateKey(s string) (DateKey, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
		}
		nums[i] = n
	}

	k := DateKey{Day: nums[0], Month: nums[1], Year: nums[2]}
	if !k.Valid() {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return k, nil
}
