package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwarden/calnote/internal/calendar"
	"gopkg.in/yaml.v3"
)

const (
	BackupSuffix    = ".bak"
	TmpSuffix       = ".tmp"
	FilePermissions = 0o644
)

var ErrInvalidKey = errors.New("invalid note key")

// File persists a Store as a YAML mapping of "dd/mm/yyyy" to note text.
type File struct {
	Path   string
	logger *slog.Logger
}

func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{Path: path, logger: logger}
}

// Load reads the notes file. A missing file yields no notes.
func (f *File) Load() (map[calendar.DateKey]string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Debug("notes file not found, starting empty", slog.String("path", f.Path))
		return map[calendar.DateKey]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading notes file: %w", err)
	}

	return Decode(data)
}

// LoadInto replaces the contents of s with the file contents and reports
// whether anything changed.
func (f *File) LoadInto(s *Store) (bool, error) {
	entries, err := f.Load()
	if err != nil {
		return false, err
	}
	changed := s.Replace(entries)
	f.logger.Debug("notes loaded", slog.String("path", f.Path), slog.Int("count", s.Len()), slog.Bool("changed", changed))
	return changed, nil
}

// Save writes the store atomically, keeping the previous file as a backup.
func (f *File) Save(s *Store) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating notes directory: %w", err)
		}
	}

	tmp := f.Path + TmpSuffix
	if err := os.WriteFile(tmp, data, FilePermissions); err != nil {
		return fmt.Errorf("writing notes file: %w", err)
	}

	if _, err := os.Stat(f.Path); err == nil {
		if err := os.Rename(f.Path, f.Path+BackupSuffix); err != nil {
			f.logger.Warn("failed to create notes backup", slog.String("path", f.Path), slog.Any("error", err))
		}
	}

	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("replacing notes file: %w", err)
	}

	f.logger.Info("notes saved", slog.String("path", f.Path), slog.Int("count", s.Len()))
	return nil
}

// Encode renders the store in chronological key order.
func Encode(s *Store) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range s.Entries() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key.String()},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Text},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding notes: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding notes: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a notes document. Blank notes are skipped.
func Decode(data []byte) (map[calendar.DateKey]string, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding notes: %w", err)
	}

	entries := make(map[calendar.DateKey]string, len(raw))
	for k, v := range raw {
		key, err := calendar.ParseDateKey(k)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, k)
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		entries[key] = v
	}
	return entries, nil
}
