package notes

import (
	"sort"
	"strings"

	"github.com/cwarden/calnote/internal/calendar"
)

// Change describes what a Save did to the store.
type Change int

const (
	Unchanged Change = iota
	Created
	Updated
	Deleted
)

func (c Change) String() string {
	switch c {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

type Entry struct {
	Key  calendar.DateKey
	Text string
}

// Store holds day notes in memory. It never holds an empty or
// whitespace-only note. Not safe for concurrent use; the UI mutates it from
// its update loop only.
type Store struct {
	entries map[calendar.DateKey]string
}

func NewStore() *Store {
	return &Store{entries: make(map[calendar.DateKey]string)}
}

// Get returns the note for key, or "" when there is none.
func (s *Store) Get(key calendar.DateKey) string {
	return s.entries[key]
}

func (s *Store) Lookup(key calendar.DateKey) (string, bool) {
	text, ok := s.entries[key]
	return text, ok
}

// Save stores text for key. Emptiness is judged on the trimmed text but the
// text is stored as typed. Blank text removes the entry.
func (s *Store) Save(key calendar.DateKey, text string) Change {
	old, exists := s.entries[key]

	if strings.TrimSpace(text) == "" {
		if !exists {
			return Unchanged
		}
		delete(s.entries, key)
		return Deleted
	}

	switch {
	case !exists:
		s.entries[key] = text
		return Created
	case old == text:
		return Unchanged
	default:
		s.entries[key] = text
		return Updated
	}
}

func (s *Store) Remove(key calendar.DateKey) bool {
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns all notes in chronological order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.entries))
	for k, v := range s.entries {
		entries = append(entries, Entry{Key: k, Text: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Before(entries[j].Key)
	})
	return entries
}

// InMonth returns the notes of one month keyed by day.
func (s *Store) InMonth(year, month int) map[int]string {
	days := make(map[int]string)
	for k, v := range s.entries {
		if k.Year == year && k.Month == month {
			days[k.Day] = v
		}
	}
	return days
}

// Snapshot returns a copy of the underlying map.
func (s *Store) Snapshot() map[calendar.DateKey]string {
	out := make(map[calendar.DateKey]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Replace swaps the store contents for entries, dropping blank notes.
// It reports whether anything changed.
func (s *Store) Replace(entries map[calendar.DateKey]string) bool {
	next := make(map[calendar.DateKey]string, len(entries))
	for k, v := range entries {
		if strings.TrimSpace(v) != "" {
			next[k] = v
		}
	}

	changed := len(next) != len(s.entries)
	if !changed {
		for k, v := range next {
			if old, ok := s.entries[k]; !ok || old != v {
				changed = true
				break
			}
		}
	}

	s.entries = next
	return changed
}
