// Package session owns the checklist of one project between user actions.
//
// A Session ties the scanner, the checklist codec and the document store
// together: it runs scan-and-save, loads the persisted document, applies
// toggles and keeps the resulting collection in memory for presentation
// layers. Every operation that touches the document is serialized.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/auditnotes/pkg/checklist"
	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/scan"
)

// ErrNoCollection is returned by Save when nothing was scanned or loaded yet.
var ErrNoCollection = errors.New("no audit notes loaded")

// ErrNoNavigator is returned by Navigate when no navigator is configured.
var ErrNoNavigator = errors.New("no navigator configured")

// Config holds the collaborators of a Session.
type Config struct {
	Store     core.Store
	Source    core.Source
	Scanner   *scan.Scanner
	Navigator core.Navigator
	Logger    *slog.Logger
}

// Report describes the outcome of ScanAndSave or Open.
type Report struct {
	// Loaded is true when Open used the existing document instead of scanning.
	Loaded bool
	// NoFiles is true when the source offered no files; nothing was written.
	NoFiles bool
	// Written is true when the document was persisted.
	Written bool
	Files   int
	Notes   int
	Checked int
	Skipped []scan.Skipped
	// Warning joins non-fatal conditions: skipped files and a malformed baseline.
	Warning error
}

// Session is the explicitly owned replacement for a process-wide "current
// checklist". It is safe for concurrent use.
type Session struct {
	store     core.Store
	source    core.Source
	scanner   *scan.Scanner
	navigator core.Navigator
	logger    *slog.Logger

	// mu serializes operations on the document.
	mu sync.Mutex

	// stateMu guards the fields below, so readers never wait for a scan.
	stateMu  sync.RWMutex
	current  *core.Collection
	status   Status
	dirty    bool
	scans    int
	lastScan time.Time
	lastErr  error
}

// New creates a Session. Store, Source and Scanner are required.
func New(cfg Config) (*Session, error) {
	if cfg.Store == nil {
		return nil, errors.New("session: store is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("session: source is required")
	}
	if cfg.Scanner == nil {
		return nil, errors.New("session: scanner is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		store:     cfg.Store,
		source:    cfg.Source,
		scanner:   cfg.Scanner,
		navigator: cfg.Navigator,
		logger:    logger,
	}, nil
}

// Document returns the location of the checklist document.
func (s *Session) Document() string {
	return s.store.Locate()
}

// ScanAndSave scans the source, merges the checked state of the persisted
// document into the fresh result and writes the merged checklist.
//
// When the source offers no files, or ctx is cancelled before the write,
// the document is left untouched. A write failure keeps the merged
// collection in memory so Save can retry it.
func (s *Session) ScanAndSave(ctx context.Context, progress core.ProgressFunc) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanAndSave(ctx, progress)
}

func (s *Session) scanAndSave(ctx context.Context, progress core.ProgressFunc) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var warning error
	baseline, err := s.baseline(ctx)
	if errors.Is(err, core.ErrMalformedDocument) {
		warning = err
	} else if err != nil {
		return nil, s.fail(err)
	}

	s.setStatus(Status{Phase: PhaseScanning})
	res, err := s.scanner.Scan(ctx, s.source, func(done, total int) {
		s.setStatus(Status{Phase: PhaseScanning, Done: done, Total: total})
		if progress != nil {
			progress(done, total)
		}
	})
	if err != nil {
		s.setStatus(Status{Phase: PhaseNotStarted})
		return nil, s.fail(err)
	}

	report := &Report{
		Files:   res.Files,
		Skipped: res.Skipped,
		Warning: errors.Join(warning, res.Warning()),
	}

	if res.Files == 0 {
		s.logger.Info("no files to scan, document left untouched", "document", s.store.Locate())
		report.NoFiles = true
		s.setStatus(Status{Phase: PhaseEmpty})
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		s.setStatus(Status{Phase: PhaseNotStarted})
		return nil, err
	}

	merged := core.Merge(baseline, res.Notes)
	report.Notes = merged.NoteCount()
	report.Checked = merged.CheckedCount()

	s.stateMu.Lock()
	s.current = merged
	s.dirty = true
	s.scans++
	s.lastScan = time.Now()
	s.stateMu.Unlock()

	if err := s.persist(ctx, ReasonScan); err != nil {
		return report, err
	}
	report.Written = true

	s.setStatus(completed(merged))
	s.logger.Info("audit notes saved",
		"document", s.store.Locate(),
		"files", report.Files,
		"notes", report.Notes,
		"checked", report.Checked,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// baseline decodes the persisted document, if any. A malformed document
// yields an empty baseline together with core.ErrMalformedDocument.
func (s *Session) baseline(ctx context.Context) (*core.Collection, error) {
	text, err := s.store.Read(ctx)
	if errors.Is(err, core.ErrDocumentNotFound) {
		return core.NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}

	c, err := checklist.Decode(text)
	if errors.Is(err, core.ErrMalformedDocument) {
		s.logger.Warn("ignoring malformed document, checked state starts over", "document", s.store.Locate())
		return c, fmt.Errorf("%s: %w", s.store.Locate(), err)
	}
	return c, err
}

// Load decodes the persisted document into the session and returns a copy.
// It returns core.ErrDocumentNotFound when there is no document. A malformed
// document replaces the session with an empty collection and returns it
// together with core.ErrMalformedDocument.
func (s *Session) Load(ctx context.Context) (*core.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) (*core.Collection, error) {
	text, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	c, err := checklist.Decode(text)
	if err != nil && !errors.Is(err, core.ErrMalformedDocument) {
		return nil, err
	}

	s.stateMu.Lock()
	s.current = c
	s.dirty = false
	s.stateMu.Unlock()
	s.setStatus(completed(c))

	s.logger.Debug("audit notes loaded", "document", s.store.Locate(), "files", c.Len(), "notes", c.NoteCount())
	return c.Clone(), err
}

// Open loads the existing document and falls back to ScanAndSave when
// there is none.
func (s *Session) Open(ctx context.Context, progress core.ProgressFunc) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	switch {
	case errors.Is(err, core.ErrDocumentNotFound):
		s.logger.Info("no document yet, scanning", "document", s.store.Locate())
		return s.scanAndSave(ctx, progress)
	case err != nil && !errors.Is(err, core.ErrMalformedDocument):
		return nil, err
	}

	return &Report{
		Loaded:  true,
		Files:   c.Len(),
		Notes:   c.NoteCount(),
		Checked: c.CheckedCount(),
		Warning: err,
	}, nil
}

// Clear deletes the document and forgets the in-memory collection.
// core.ErrDocumentNotFound is returned unchanged when there is nothing to delete.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(core.WithChangeReason(ctx, ReasonClear)); err != nil {
		if !errors.Is(err, core.ErrDocumentNotFound) {
			return s.fail(err)
		}
		return err
	}

	s.stateMu.Lock()
	s.current = nil
	s.dirty = false
	s.stateMu.Unlock()
	s.setStatus(Status{Phase: PhaseNotStarted})

	s.logger.Info("audit notes cleared", "document", s.store.Locate())
	return nil
}

// Toggle sets the checked state of one note and persists the checklist
// before returning. A note that is not in the current collection is ignored.
func (s *Session) Toggle(ctx context.Context, identity string, line int, content string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stateMu.Lock()
	found := s.current.SetChecked(identity, line, content, checked)
	display := identity
	if found {
		s.dirty = true
		if entry, ok := s.current.Get(identity); ok {
			display = entry.Display
		}
	}
	s.stateMu.Unlock()

	if !found {
		s.logger.Debug("toggle ignored, note not found", "identity", identity, "line", line)
		return nil
	}

	if err := s.persist(ctx, toggleReason(display, line, content, checked)); err != nil {
		return err
	}
	s.setStatus(completed(s.Current()))
	return nil
}

// Save writes the in-memory collection again, e.g. after a failed write.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stateMu.RLock()
	loaded := s.current != nil
	s.stateMu.RUnlock()
	if !loaded {
		return ErrNoCollection
	}
	return s.persist(ctx, ReasonSave)
}

// Navigate opens a note location through the configured navigator.
// It does not touch the checklist and does not wait for other operations.
func (s *Session) Navigate(ctx context.Context, identity string, line int) error {
	if s.navigator == nil {
		return ErrNoNavigator
	}
	return s.navigator.Open(ctx, identity, line)
}

// Current returns a copy of the in-memory collection, or nil before the
// first scan or load.
func (s *Session) Current() *core.Collection {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

// Find returns the note of identity at line in the current collection.
func (s *Session) Find(identity string, line int) (core.Note, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	entry, ok := s.current.Get(identity)
	if !ok {
		return core.Note{}, false
	}
	for _, n := range entry.Notes {
		if n.Line == line {
			return n, true
		}
	}
	return core.Note{}, false
}

// Dirty reports whether the in-memory collection differs from the document.
func (s *Session) Dirty() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.dirty
}

// persist encodes the current collection and writes it. Callers hold mu.
func (s *Session) persist(ctx context.Context, reason string) error {
	s.stateMu.RLock()
	text := checklist.Encode(s.current)
	s.stateMu.RUnlock()

	if err := s.store.Write(core.WithChangeReason(ctx, reason), text); err != nil {
		s.logger.Error("failed to save audit notes, keeping them in memory", "document", s.store.Locate(), "error", err)
		return s.fail(err)
	}

	s.stateMu.Lock()
	s.dirty = false
	s.lastErr = nil
	s.stateMu.Unlock()
	return nil
}

func (s *Session) fail(err error) error {
	s.stateMu.Lock()
	s.lastErr = err
	s.stateMu.Unlock()
	return err
}
