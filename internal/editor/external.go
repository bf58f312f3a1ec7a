package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// DefaultCommand picks the editor from $EDITOR, $VISUAL, then vi.
func DefaultCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return "vi"
}

// External edits text in an external editor through a temporary file.
type External struct {
	Command string
	TempDir string
}

func NewExternal(command string) *External {
	if strings.TrimSpace(command) == "" {
		command = DefaultCommand()
	}
	return &External{Command: command}
}

// Prepare writes initial to a new temporary file and returns its path.
func (e *External) Prepare(initial string) (string, error) {
	f, err := os.CreateTemp(e.TempDir, "calnote-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(initial); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp file: %w", err)
	}
	return f.Name(), nil
}

// Cmd builds the editor invocation for path.
func (e *External) Cmd(ctx context.Context, path string) (*exec.Cmd, error) {
	args, err := shlex.Split(e.Command)
	if err != nil {
		return nil, fmt.Errorf("parsing editor command %q: %w", e.Command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	args = append(args, path)
	return exec.CommandContext(ctx, args[0], args[1:]...), nil
}

// Collect reads the edited file back and removes it.
func (e *External) Collect(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading edited text: %w", err)
	}
	return string(data), nil
}

// RequestText runs the editor attached to the current terminal and blocks
// until it exits.
func (e *External) RequestText(ctx context.Context, prompt, initial string) (string, error) {
	path, err := e.Prepare(initial)
	if err != nil {
		return "", err
	}

	cmd, err := e.Cmd(ctx, path)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if prompt != "" {
		fmt.Fprintln(os.Stderr, prompt)
	}
	if err := cmd.Run(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("running %s: %w", e.Command, err)
	}

	return e.Collect(path)
}
