package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwarden/calnote/internal/editor"
)

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

// Actions that keys can be bound to.
var Actions = []string{
	"quit", "help", "today", "goto_date", "edit_note", "external_edit",
	"next_day", "prev_day", "next_week", "prev_week",
	"next_month", "prev_month", "next_year", "prev_year",
}

type Config struct {
	// File settings
	NotesFile string
	Editor    string

	// Calendar range
	MinYear int
	MaxYear int

	// Display settings
	DateFormat string
	WrapText   bool
	Mouse      bool

	// Logging
	LogFile  string
	LogLevel slog.Level

	// UI settings
	Colors      map[string]string
	KeyBindings map[string]string // key -> action
}

func DefaultConfig() *Config {
	return &Config{
		Editor: editor.DefaultCommand(),

		MinYear: 1990,
		MaxYear: 2100,

		DateFormat: "Mon Jan 2, 2006",
		WrapText:   true,
		Mouse:      true,

		LogLevel: slog.LevelInfo,

		Colors: map[string]string{
			"normal":   "252",
			"today":    "220",
			"selected": "220",
			"weekend":  "39",
			"note":     "40",
			"header":   "220",
			"help":     "241",
			"border":   "238",
		},

		KeyBindings: map[string]string{
			"q":      "quit",
			"ctrl+c": "quit",
			"?":      "help",
			"t":      "today",
			"g":      "goto_date",
			"enter":  "edit_note",
			"e":      "external_edit",
			"l":      "next_day",
			"right":  "next_day",
			"h":      "prev_day",
			"left":   "prev_day",
			"j":      "next_week",
			"down":   "next_week",
			"k":      "prev_week",
			"up":     "prev_week",
			">":      "next_month",
			"<":      "prev_month",
			"}":      "next_year",
			"]":      "next_year",
			"{":      "prev_year",
			"[":      "prev_year",
		},
	}
}

// SearchPaths lists candidate config files in lookup order.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	paths := []string{os.Getenv("CALNOTE_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "calnote", "calnoterc"))
	}
	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", "calnote", "calnoterc"),
			filepath.Join(home, ".calnoterc"),
		)
	}
	return paths
}

// LoadConfig reads path, or the first existing file from SearchPaths when
// path is empty. Having no config file at all is fine.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := config.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		return config, config.Validate()
	}

	for _, candidate := range SearchPaths() {
		if candidate == "" {
			continue
		}

		if _, err := os.Stat(candidate); err == nil {
			if err := config.loadFromFile(candidate); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", candidate, err)
			}
			break
		}
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("min_year %d is after max_year %d", c.MinYear, c.MaxYear)
	}
	return nil
}

// ActionFor returns the action bound to key, or "".
func (c *Config) ActionFor(key string) string {
	return c.KeyBindings[key]
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if err := c.parseLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		if !isAction(matches[2]) {
			return fmt.Errorf("unknown action: %s", matches[2])
		}
		c.KeyBindings[matches[1]] = matches[2]
		return nil
	}

	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	value = strings.Trim(value, `"'`)

	switch name {
	case "notes_file":
		c.NotesFile = expandHome(value)

	case "editor":
		c.Editor = value

	case "min_year":
		year, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid min_year: %s", value)
		}
		c.MinYear = year

	case "max_year":
		year, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid max_year: %s", value)
		}
		c.MaxYear = year

	case "date_format":
		c.DateFormat = value

	case "wrap_text":
		c.WrapText = parseBool(value)

	case "mouse":
		c.Mouse = parseBool(value)

	case "log_file":
		c.LogFile = expandHome(value)

	case "log_level":
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid log_level: %s", value)
		}
		c.LogLevel = level

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func isAction(name string) bool {
	for _, a := range Actions {
		if a == name {
			return true
		}
	}
	return false
}

func parseBool(value string) bool {
	return strings.ToLower(value) == "true" || value == "1"
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
