// Package scan finds annotation markers in source text.
//
// The Matcher decides whether a single line carries a marker; the Scanner
// walks the files of a core.Source one at a time, tracks block comments per
// file and builds a core.Collection.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/auditnotes/pkg/core"
)

// Mode selects which lines are offered to the Matcher.
type Mode string

const (
	// ModeComments only matches comment content: block comment lines, lines
	// starting with "//" and the trailing comment part of a code line.
	ModeComments Mode = "comments"
	// ModeAll matches every line of text.
	ModeAll Mode = "all"
)

// DefaultMode is used when no mode is configured.
const DefaultMode = ModeComments

// ParseMode converts a configuration value into a Mode.
// An empty value yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeComments:
		return ModeComments, nil
	case ModeAll:
		return ModeAll, nil
	}
	return "", fmt.Errorf("unknown scan mode %q (want %q or %q)", s, ModeComments, ModeAll)
}

// Config holds the configuration of a Scanner.
type Config struct {
	Markers MarkerConfig
	Mode    Mode
	Logger  *slog.Logger
}

// Scanner produces note collections from a core.Source.
type Scanner struct {
	matcher *Matcher
	mode    Mode
	logger  *slog.Logger
}

// New creates a Scanner.
func New(cfg Config) *Scanner {
	mode := cfg.Mode
	if mode == "" {
		mode = DefaultMode
	}
	return &Scanner{
		matcher: NewMatcher(cfg.Markers),
		mode:    mode,
		logger:  cfg.Logger,
	}
}

// Skipped records a file that could not be read.
type Skipped struct {
	Identity string
	Display  string
	Err      error
}

// Result is the outcome of a scan.
type Result struct {
	Notes   *core.Collection
	Files   int
	Skipped []Skipped
}

// Warning joins the errors of all skipped files, or returns nil.
// Every joined error matches core.ErrSourceUnavailable.
func (r *Result) Warning() error {
	errs := make([]error, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		errs = append(errs, s.Err)
	}
	return errors.Join(errs...)
}

// Scan reads every file of src in order and collects their notes.
//
// Files are processed strictly one after another; progress is called once per
// file, after that file is done, including files that had to be skipped.
// Unreadable files never abort the scan. A cancelled context stops the scan
// between files and returns the context error.
func (s *Scanner) Scan(ctx context.Context, src core.Source, progress core.ProgressFunc) (*Result, error) {
	files, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}

	res := &Result{Notes: core.NewCollection(), Files: len(files)}
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := src.Read(ctx, f.Identity)
		if err != nil {
			skipErr := fmt.Errorf("%w: %s: %w", core.ErrSourceUnavailable, f.Identity, err)
			res.Skipped = append(res.Skipped, Skipped{Identity: f.Identity, Display: f.Display, Err: skipErr})
			if s.logger != nil {
				s.logger.Warn("skipping unreadable file", "path", f.Identity, "error", err)
			}
		} else {
			for _, n := range s.ScanText(text) {
				res.Notes.Append(f.Identity, f.Display, n)
			}
		}

		if progress != nil {
			progress(i+1, len(files))
		}
	}

	if s.logger != nil {
		s.logger.Debug("scan finished",
			"files", res.Files,
			"matched_files", res.Notes.Len(),
			"notes", res.Notes.NoteCount(),
			"skipped", len(res.Skipped),
		)
	}
	return res, nil
}

// ScanText returns the notes of a single file's text, in line order.
// Block comment state starts closed for every call.
func (s *Scanner) ScanText(text string) []core.Note {
	var notes []core.Note
	inBlock := false

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "/*") {
			inBlock = true
		}

		if subject, ok := s.subject(line, inBlock); ok {
			if kind, hit := s.matcher.Classify(subject); hit {
				if content := stripComment(trimmed); content != "" {
					notes = append(notes, core.Note{Line: i + 1, Content: content, Kind: kind})
				}
			}
		}

		if inBlock && strings.HasSuffix(trimmed, "*/") {
			inBlock = false
		}
	}
	return notes
}

// subject returns the part of line the matcher should look at.
func (s *Scanner) subject(line string, inBlock bool) (string, bool) {
	if s.mode == ModeAll || inBlock {
		return line, true
	}
	if i := strings.Index(line, "//"); i >= 0 {
		return line[i:], true
	}
	if i := strings.Index(line, "/*"); i >= 0 {
		return line[i:], true
	}
	return "", false
}

// stripComment removes leading comment tokens ("//", "/*", "*") and a
// trailing "*/" from an already trimmed line.
func stripComment(s string) string {
	switch {
	case strings.HasPrefix(s, "//"):
		s = strings.TrimLeft(s, "/")
	case strings.HasPrefix(s, "/*"):
		s = strings.TrimLeft(s[2:], "*")
	case strings.HasPrefix(s, "*") && !strings.HasPrefix(s, "*/"):
		s = strings.TrimLeft(s, "*")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "*/")
	return strings.TrimSpace(s)
}
