package cmd

import (
	"fmt"

	"github.com/cwarden/calnote/internal/calendar"
	"github.com/cwarden/calnote/internal/editor"
	"github.com/cwarden/calnote/internal/notes"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <date>",
	Short: "Edit one day's note in $EDITOR",
	Long: `Open the note for date (dd/mm/yyyy, or any form the goto prompt
accepts) in the configured editor and save the result to the notes file.
Whatever the editor leaves in the file is kept; an empty file deletes the note.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if cfg.NotesFile == "" {
		return fmt.Errorf("no notes file configured (use --notes or set notes_file)")
	}

	key, err := calendar.ParseDateKey(args[0])
	if err != nil {
		date, perr := dateArg(args)
		if perr != nil {
			return perr
		}
		key = calendar.KeyFor(date)
	}
	if err := checkYear(key.Year); err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, file, err := loadNotes(logger)
	if err != nil {
		return err
	}

	view := newMonthView(store, logger)
	change, err := view.OpenEditor(cmd.Context(), key.Day, key.Month, key.Year, editor.NewExternal(cfg.Editor))
	if err != nil {
		return fmt.Errorf("editing %s: %w", key, err)
	}

	if change != notes.Unchanged {
		if err := file.Save(store); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Note %s for %s\n", change, key)
	return nil
}
