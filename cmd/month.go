package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cwarden/calnote/internal/calendar"
	"github.com/cwarden/calnote/internal/parser"
	"github.com/spf13/cobra"

	"github.com/charmbracelet/lipgloss"
)

var monthCmd = &cobra.Command{
	Use:   "month [date]",
	Short: "Print a month grid and exit",
	Long: `Print the month containing date (default: the current month) as a
grid. Days with a note are marked with "*". The date accepts the same forms
as the goto prompt, e.g. 2025-06, "june 2025" or "next month".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMonth,
}

func init() {
	rootCmd.AddCommand(monthCmd)
}

func runMonth(cmd *cobra.Command, args []string) error {
	date, err := dateArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, _, err := loadNotes(logger)
	if err != nil {
		return err
	}

	g := calendar.Layout(date.Year(), date.Month())
	writeMonth(cmd.OutOrStdout(), g, store.InMonth(g.Year, int(g.Month)))
	return nil
}

// dateArg parses the optional date argument, defaulting to today.
func dateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		return time.Now(), nil
	}

	date, err := parser.NewDateParser().Parse(args[0])
	if err != nil {
		return time.Time{}, err
	}
	if err := checkYear(date.Year()); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// checkYear rejects years the calendar cannot display.
func checkYear(year int) error {
	if year < cfg.MinYear || year > cfg.MaxYear {
		return fmt.Errorf("year %d outside %d-%d", year, cfg.MinYear, cfg.MaxYear)
	}
	return nil
}

const monthCellWidth = 4

func writeMonth(w io.Writer, g calendar.Grid, noted map[int]string) {
	width := calendar.Columns * monthCellWidth
	fmt.Fprintln(w, strings.TrimRight(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.Title()), " "))

	var header strings.Builder
	for _, name := range calendar.WeekdayNames {
		fmt.Fprintf(&header, "%-*s", monthCellWidth, name)
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	for _, row := range g.Rows() {
		var line strings.Builder
		for _, cell := range row {
			if cell.Blank() {
				line.WriteString(strings.Repeat(" ", monthCellWidth))
				continue
			}
			marker := " "
			if _, ok := noted[cell.Day]; ok {
				marker = "*"
			}
			fmt.Fprintf(&line, "%2d%s ", cell.Day, marker)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
