package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cwarden/calnote/internal/config"
	"github.com/cwarden/calnote/internal/monthview"
	"github.com/cwarden/calnote/internal/notes"
	"github.com/cwarden/calnote/internal/ui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	cfgFile   string
	notesFile string
	logFile   string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "calnote",
	Short: "A terminal month calendar with notes for each day",
	Long: `calnote shows a month at a time and lets you attach free-text
appointments to any day. Notes live in memory unless a notes file is
configured with --notes or "set notes_file" in the config file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE:              runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&notesFile, "notes", "n", "", "Notes file to load and save (default: memory only)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if notesFile != "" {
		cfg.NotesFile = notesFile
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return nil
}

// newLogger opens the log file through bubbletea so that nothing is written
// to the terminal the TUI owns. Without a log file, logs are discarded.
func newLogger() (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := tea.LogToFile(cfg.LogFile, "calnote")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger, func() { f.Close() }, nil
}

// loadNotes builds the store, filled from the notes file when one is set.
func loadNotes(logger *slog.Logger) (*notes.Store, *notes.File, error) {
	store := notes.NewStore()
	if cfg.NotesFile == "" {
		return store, nil, nil
	}

	file := notes.NewFile(cfg.NotesFile, logger)
	if _, err := file.LoadInto(store); err != nil {
		return nil, nil, err
	}
	return store, file, nil
}

func newMonthView(store *notes.Store, logger *slog.Logger) *monthview.MonthView {
	return monthview.New(store, monthview.Options{
		MinYear: cfg.MinYear,
		MaxYear: cfg.MaxYear,
		Logger:  logger,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, file, err := loadNotes(logger)
	if err != nil {
		return err
	}

	model := ui.NewModel(cfg, newMonthView(store, logger), ui.Options{
		Notes:  file,
		Logger: logger,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	if file != nil {
		watcher, err := notes.NewWatcher(file.Path, func(string) {
			p.Send(ui.NotesFileChangedMsg{})
		}, logger)
		if err != nil {
			logger.Warn("not watching notes file", slog.String("path", file.Path), slog.Any("error", err))
		} else {
			defer watcher.Close()
		}
	}

	logger.Info("starting", slog.String("notes", cfg.NotesFile), slog.Int("notes_loaded", store.Len()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
