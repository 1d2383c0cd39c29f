// Package editor opens note locations in the user's text editor.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultEditor is used when neither $VISUAL nor $EDITOR is set.
const DefaultEditor = "vi"

// Navigator implements core.Navigator by running an editor process.
type Navigator struct {
	// Editor is the command line of the editor, e.g. "code -w".
	Editor string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// New returns a Navigator for the editor configured in the environment,
// attached to the terminal of the current process.
func New(logger *slog.Logger) *Navigator {
	return &Navigator{
		Editor: FromEnv(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// FromEnv returns $VISUAL, then $EDITOR, then DefaultEditor.
func FromEnv() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return DefaultEditor
}

// Open runs the editor at path:line and waits for it to exit.
func (n *Navigator) Open(ctx context.Context, path string, line int) error {
	cmd, err := n.Cmd(ctx, path, line)
	if err != nil {
		return err
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = n.Stdin, n.Stdout, n.Stderr

	if n.Logger != nil {
		n.Logger.Debug("opening editor", "cmd", cmd.Args)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open %s:%d: %w", path, line, err)
	}
	return nil
}

// Cmd builds the editor process without starting it.
func (n *Navigator) Cmd(ctx context.Context, path string, line int) (*exec.Cmd, error) {
	editor := n.Editor
	if editor == "" {
		editor = FromEnv()
	}
	args := Command(editor, path, line)
	if len(args) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	return exec.CommandContext(ctx, args[0], args[1:]...), nil
}

// Command returns the argument vector that opens path at line with editor.
// Editors are recognized by the base name of their executable; unknown
// editors get the "+line" convention most terminal editors understand.
func Command(editor, path string, line int) []string {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil
	}
	if line < 1 {
		line = 1
	}
	ln := strconv.Itoa(line)
	at := path + ":" + ln

	name := strings.TrimSuffix(strings.ToLower(filepath.Base(fields[0])), ".exe")
	switch name {
	case "code", "code-insiders", "codium", "cursor", "windsurf":
		return append(fields, "--goto", at)
	case "subl", "sublime_text", "zed", "hx", "helix", "mate":
		return append(fields, at)
	case "idea", "goland", "webstorm", "pycharm", "clion":
		return append(fields, "--line", ln, path)
	case "notepad":
		return append(fields, path)
	default:
		return append(fields, "+"+ln, path)
	}
}
