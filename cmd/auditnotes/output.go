package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/session"
)

var (
	fileColor    = color.New(color.FgCyan, color.Bold)
	checkedColor = color.New(color.FgGreen)
	todoColor    = color.New(color.FgYellow)
	lineColor    = color.New(color.Faint)
	okColor      = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// progressPrinter redraws "N/M files scanned" on stderr when it is a terminal.
func progressPrinter() core.ProgressFunc {
	if !isTerminal(os.Stderr) {
		return nil
	}
	return func(done, total int) {
		st := session.Status{Phase: session.PhaseScanning, Done: done, Total: total}
		fmt.Fprintf(os.Stderr, "\r%s", st)
		if done == total {
			fmt.Fprint(os.Stderr, "\r\033[K")
		}
	}
}

func printReport(w io.Writer, document string, r *session.Report) {
	switch {
	case r.NoFiles:
		warnColor.Fprintln(w, "No files to scan; the checklist was left untouched.")
		return
	case r.Loaded:
		fmt.Fprintf(w, "Loaded %d notes in %d files (%d checked) from %s\n", r.Notes, r.Files, r.Checked, document)
	default:
		okColor.Fprint(w, "✔ ")
		fmt.Fprintf(w, "%d notes in %d scanned files (%d checked) written to %s\n", r.Notes, r.Files, r.Checked, document)
	}
	printWarning(w, r.Warning)
}

func printWarning(w io.Writer, err error) {
	if err == nil {
		return
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			warnColor.Fprintf(w, "warning: %v\n", e)
		}
		return
	}
	warnColor.Fprintf(w, "warning: %v\n", err)
}

// printCollection lists the notes of c grouped by file.
func printCollection(w io.Writer, c *core.Collection, uncheckedOnly bool) {
	if c.NoteCount() == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}

	for _, f := range c.Files() {
		var notes []core.Note
		for _, n := range f.Notes {
			if uncheckedOnly && n.Checked {
				continue
			}
			notes = append(notes, n)
		}
		if len(notes) == 0 {
			continue
		}

		fileColor.Fprintln(w, f.Display)
		for _, n := range notes {
			box := "[ ]"
			if n.Checked {
				box = checkedColor.Sprint("[x]")
			}
			content := n.Content
			if n.Kind.Checkable() && !n.Checked {
				content = todoColor.Sprint(content)
			}
			fmt.Fprintf(w, "  %s %s %s\n", box, lineColor.Sprintf("%5d", n.Line), content)
		}
	}
	fmt.Fprintf(w, "\n%d/%d checked\n", c.CheckedCount(), c.NoteCount())
}
