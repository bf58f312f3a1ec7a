package calendar

import (
	"fmt"
	"time"
)

const (
	Columns     = 7
	ContentRows = 6
	// Cells is the number of day slots in a month grid, independent of month length.
	Cells = Columns * ContentRows
)

var WeekdayNames = [Columns]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Cell is one slot of the month grid. Day is 0 for blank cells.
type Cell struct {
	Day    int
	Row    int
	Column int
}

func (c Cell) Blank() bool {
	return c.Day == 0
}

// Grid is the row-major layout of a month, Sunday in column 0.
type Grid struct {
	Year         int
	Month        time.Month
	FirstWeekday time.Weekday
	DaysInMonth  int
	Cells        [Cells]Cell
}

// Layout computes the grid for month (1-12) of year. An out of range month
// is a programming error and panics.
func Layout(year int, month time.Month) Grid {
	if month < time.January || month > time.December {
		panic(fmt.Sprintf("calendar: invalid month %d", month))
	}

	g := Grid{
		Year:         year,
		Month:        month,
		FirstWeekday: FirstWeekday(year, month),
		DaysInMonth:  DaysInMonth(year, month),
	}

	offset := int(g.FirstWeekday)
	for i := 0; i < Cells; i++ {
		day := i - offset + 1
		if day < 1 || day > g.DaysInMonth {
			day = 0
		}
		g.Cells[i] = Cell{Day: day, Row: i / Columns, Column: i % Columns}
	}

	return g
}

// FirstWeekday returns the weekday of the first day of the month.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 12, 0, 0, 0, time.UTC).Weekday()
}

// DaysInMonth returns the number of days in the month, honouring leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Cell returns the cell at a content row (0-5) and column (0-6).
func (g Grid) Cell(row, col int) Cell {
	return g.Cells[row*Columns+col]
}

// IndexOf returns the flat index of day, or -1 if the day is not in the month.
func (g Grid) IndexOf(day int) int {
	if day < 1 || day > g.DaysInMonth {
		return -1
	}
	return int(g.FirstWeekday) + day - 1
}

// Rows returns the content rows of the grid.
func (g Grid) Rows() [][]Cell {
	rows := make([][]Cell, ContentRows)
	for r := range rows {
		rows[r] = g.Cells[r*Columns : (r+1)*Columns]
	}
	return rows
}

// NonBlank counts the cells that carry a day number.
func (g Grid) NonBlank() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Blank() {
			n++
		}
	}
	return n
}

// Title is the header label, e.g. "January 2024".
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", MonthNames[g.Month-1], g.Year)
}

// Key returns the date key for a day of this month.
func (g Grid) Key(day int) DateKey {
	return DateKey{Day: day, Month: int(g.Month), Year: g.Year}
}
