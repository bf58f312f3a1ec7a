package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwarden/calnote/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	f := NewFile(path, nil)

	s := NewStore()
	s.Save(calendar.NewDateKey(15, 6, 2025), "Lunch at noon")
	s.Save(calendar.NewDateKey(1, 1, 2025), "line one\nline two\n")
	s.Save(calendar.NewDateKey(2, 1, 2025), "  padded  ")
	require.NoError(t, f.Save(s))

	loaded := NewStore()
	changed, err := f.LoadInto(loaded)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, s.Snapshot(), loaded.Snapshot())
}

func TestFileChronologicalOrder(t *testing.T) {
	s := NewStore()
	s.Save(calendar.NewDateKey(1, 2, 2025), "b")
	s.Save(calendar.NewDateKey(28, 1, 2025), "a")

	data, err := Encode(s)
	require.NoError(t, err)
	assert.Equal(t, "28/01/2025: a\n01/02/2025: b\n", string(data))
}

func TestFileMissingIsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	entries, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	f := NewFile(path, nil)

	s := NewStore()
	s.Save(calendar.NewDateKey(1, 1, 2025), "first")
	require.NoError(t, f.Save(s))
	s.Save(calendar.NewDateKey(1, 1, 2025), "second")
	require.NoError(t, f.Save(s))

	backup, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	assert.Contains(t, string(backup), "first")

	_, err = os.Stat(path + TmpSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestDecodeRejectsBadKeys(t *testing.T) {
	_, err := Decode([]byte("2025-01-01: nope\n"))
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestDecodeSkipsBlankNotes(t *testing.T) {
	entries, err := Decode([]byte("01/01/2025: \"  \"\n02/01/2025: ok\n"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWatcherReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	f := NewFile(path, nil)
	require.NoError(t, f.Save(NewStore()))

	changes := make(chan string, 4)
	w, err := NewWatcher(path, func(p string) { changes <- p }, nil)
	require.NoError(t, err)
	defer w.Close()

	s := NewStore()
	s.Save(calendar.NewDateKey(1, 1, 2025), "external edit")
	require.NoError(t, f.Save(s))

	select {
	case p := <-changes:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherCreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "share", "calnote", "notes.yaml")

	changes := make(chan string, 4)
	w, err := NewWatcher(path, func(p string) { changes <- p }, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.DirExists(t, filepath.Dir(path))

	s := NewStore()
	s.Save(calendar.NewDateKey(2, 1, 2025), "first save")
	require.NoError(t, NewFile(path, nil).Save(s))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification for a file in a new directory")
	}
}
