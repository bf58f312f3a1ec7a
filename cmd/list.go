package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cwarden/calnote/internal/notes"
	"github.com/spf13/cobra"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const listWrapWidth = 72

var listCmd = &cobra.Command{
	Use:   "list [month]",
	Short: "List notes from the notes file and exit",
	Long: `List every note in the notes file in date order, or only the notes
of the month containing the given date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if cfg.NotesFile == "" {
		return fmt.Errorf("no notes file configured (use --notes or set notes_file)")
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

	entries := store.Entries()
	if len(args) > 0 {
		date, err := dateArg(args)
		if err != nil {
			return err
		}
		entries = filterMonth(entries, date.Year(), date.Month())
	}

	writeEntries(cmd.OutOrStdout(), entries, cfg.DateFormat)
	return nil
}

func filterMonth(entries []notes.Entry, year int, month time.Month) []notes.Entry {
	var out []notes.Entry
	for _, e := range entries {
		if e.Key.Year == year && e.Key.Month == int(month) {
			out = append(out, e)
		}
	}
	return out
}

func writeEntries(w io.Writer, entries []notes.Entry, dateFormat string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.Key, e.Key.Time(time.Local).Format(dateFormat))
		text := wordwrap.String(strings.TrimSpace(e.Text), listWrapWidth)
		fmt.Fprintln(w, indent.String(text, 4))
	}
}
