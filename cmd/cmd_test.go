package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwarden/calnote/internal/calendar"
)

// execute runs the root command with a clean environment and flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("CALNOTE_CONFIG", "")

	cfgFile, notesFile, logFile = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeNotes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWriteMonth(t *testing.T) {
	var buf bytes.Buffer
	writeMonth(&buf, calendar.Layout(2024, 1), map[int]string{3: "Standup"})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2+calendar.ContentRows {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 2+calendar.ContentRows, buf.String())
	}

	if strings.TrimSpace(lines[0]) != "January 2024" {
		t.Errorf("title = %q", lines[0])
	}
	if lines[1] != "Sun Mon Tue Wed Thu Fri Sat" {
		t.Errorf("header = %q", lines[1])
	}
	if lines[2] != "     1   2   3*  4   5   6" {
		t.Errorf("first row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], " 7   8") {
		t.Errorf("second row = %q", lines[3])
	}
	if lines[7] != "" {
		t.Errorf("last row should be blank, got %q", lines[7])
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "calnote dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestListCommand(t *testing.T) {
	path := writeNotes(t, "15/06/2025: Lunch at noon\n02/07/2025: Dentist\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "all notes",
			args: []string{"list", "--notes", path},
			want: "15/06/2025  Sun Jun 15, 2025\n    Lunch at noon\n" +
				"02/07/2025  Wed Jul 2, 2025\n    Dentist\n",
		},
		{
			name: "one month",
			args: []string{"list", "--notes", path, "2025-06"},
			want: "15/06/2025  Sun Jun 15, 2025\n    Lunch at noon\n",
		},
		{
			name: "empty month",
			args: []string{"list", "--notes", path, "2025-08"},
			want: "No notes found.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestListRequiresNotesFile(t *testing.T) {
	if _, err := execute(t, "list"); err == nil {
		t.Error("expected an error without a notes file")
	}
}

func TestMonthRejectsOutOfRange(t *testing.T) {
	if _, err := execute(t, "month", "1850-01"); err == nil {
		t.Error("expected an error for a year outside the range")
	}
}

func TestEditCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nprintf 'Dentist at 9' > \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDITOR", script)

	path := writeNotes(t, "01/06/2025: Standup\n")

	out, err := execute(t, "edit", "15/06/2025", "--notes", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Note created for 15/06/2025\n" {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "01/06/2025: Standup\n15/06/2025: Dentist at 9\n"
	if string(data) != want {
		t.Errorf("notes file = %q, want %q", data, want)
	}
}

func TestEditRejectsOutOfRange(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nprintf 'too early' > \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDITOR", script)

	const content = "01/06/2025: Standup\n"
	path := writeNotes(t, content)

	for _, date := range []string{"01/01/1800", "1800-01-01"} {
		if _, err := execute(t, "edit", date, "--notes", path); err == nil {
			t.Errorf("edit %s: expected an error for a year outside the range", date)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("notes file changed to %q", data)
	}
}
