package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MinYear != 1990 || cfg.MaxYear != 2100 {
		t.Errorf("Wrong default year range: %d-%d", cfg.MinYear, cfg.MaxYear)
	}

	if cfg.NotesFile != "" {
		t.Errorf("Notes should stay in memory by default, got file %q", cfg.NotesFile)
	}

	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Wrong default log level: %v", cfg.LogLevel)
	}

	if !cfg.Mouse {
		t.Error("Mouse should be enabled by default")
	}

	if cfg.ActionFor("q") != "quit" {
		t.Errorf("Wrong quit key binding: %s", cfg.ActionFor("q"))
	}

	if cfg.ActionFor("enter") != "edit_note" {
		t.Errorf("Wrong enter key binding: %s", cfg.ActionFor("enter"))
	}

	for key, action := range cfg.KeyBindings {
		if !isAction(action) {
			t.Errorf("Default binding %s -> %s is not a known action", key, action)
		}
	}
}

func TestParseLine(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		line     string
		check    func(*Config) bool
		hasError bool
	}{
		{
			line: "set min_year 2000",
			check: func(c *Config) bool {
				return c.MinYear == 2000
			},
		},
		{
			line: "set mouse false",
			check: func(c *Config) bool {
				return !c.Mouse
			},
		},
		{
			line: "  set editor \"code --wait\"  ",
			check: func(c *Config) bool {
				return c.Editor == "code --wait"
			},
		},
		{
			line: "bind n next_month",
			check: func(c *Config) bool {
				return c.KeyBindings["n"] == "next_month"
			},
		},
		{
			line:     "bind x launch_rockets",
			hasError: true,
		},
		{
			line: "color today yellow",
			check: func(c *Config) bool {
				return c.Colors["today"] == "yellow"
			},
		},
		{
			line:     "invalid command",
			hasError: true,
		},
		{
			line: "# comment line",
		},
		{
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := cfg.parseLine(tt.line)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Check failed for line: %s", tt.line)
			}
		})
	}
}

func TestSetVariable(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		value    string
		check    func(*Config) bool
		hasError bool
	}{
		{
			name:  "notes_file",
			value: "~/notes.yaml",
			check: func(c *Config) bool {
				return filepath.IsAbs(c.NotesFile) && strings.HasSuffix(c.NotesFile, "notes.yaml")
			},
		},
		{
			name:  "max_year",
			value: "2200",
			check: func(c *Config) bool {
				return c.MaxYear == 2200
			},
		},
		{
			name:     "max_year",
			value:    "soon",
			hasError: true,
		},
		{
			name:  "log_level",
			value: "debug",
			check: func(c *Config) bool {
				return c.LogLevel == slog.LevelDebug
			},
		},
		{
			name:     "log_level",
			value:    "chatty",
			hasError: true,
		},
		{
			name:  "wrap_text",
			value: "0",
			check: func(c *Config) bool {
				return !c.WrapText
			},
		},
		{
			name:  "date_format",
			value: "2006-01-02",
			check: func(c *Config) bool {
				return c.DateFormat == "2006-01-02"
			},
		},
		{
			name:     "unknown_variable",
			value:    "something",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			err := cfg.setVariable(tt.name, tt.value)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Check failed for %s = %s", tt.name, tt.value)
			}
		})
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "calnoterc")
	notesFile := filepath.Join(tmpDir, "notes.yaml")

	content := `# Test config file
set notes_file ` + notesFile + `
set editor emacs
set min_year 2000
set max_year 2050
set log_level warn

bind Q quit
bind ? help

color today cyan
`

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if cfg.NotesFile != notesFile {
		t.Errorf("Wrong notes file: %s", cfg.NotesFile)
	}

	if cfg.Editor != "emacs" {
		t.Errorf("Wrong editor: %s", cfg.Editor)
	}

	if cfg.MinYear != 2000 || cfg.MaxYear != 2050 {
		t.Errorf("Wrong year range: %d-%d", cfg.MinYear, cfg.MaxYear)
	}

	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("Wrong log level: %v", cfg.LogLevel)
	}

	if cfg.KeyBindings["Q"] != "quit" {
		t.Errorf("Wrong quit binding: %s", cfg.KeyBindings["Q"])
	}

	if cfg.Colors["today"] != "cyan" {
		t.Errorf("Wrong today color: %s", cfg.Colors["today"])
	}
}

func TestLoadConfigSearchPath(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "calnote", "calnoterc")
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configFile, []byte("set max_year 2030\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CALNOTE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MaxYear != 2030 {
		t.Errorf("Wrong max year: %d", cfg.MaxYear)
	}
}

func TestLoadConfigRejectsInvertedRange(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "calnoterc")
	if err := os.WriteFile(configFile, []byte("set min_year 2050\nset max_year 2000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(configFile); err == nil {
		t.Error("Expected error for min_year after max_year")
	}
}

func TestLoadConfigReportsLine(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "calnoterc")
	if err := os.WriteFile(configFile, []byte("set editor vim\nbogus\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(configFile)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected line 2 error, got %v", err)
	}
}
