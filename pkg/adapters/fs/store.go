package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/git"
)

// DefaultDocumentName is the checklist file created at the project root.
const DefaultDocumentName = "audit-notes.md"

// Config holds the configuration for the filesystem store.
type Config struct {
	Root      string
	Document  string // file name relative to Root, defaults to DefaultDocumentName
	Versioned bool   // commit the document to git on every write and delete
	Logger    *slog.Logger
}

// Store implements core.Store with one markdown file at the project root.
type Store struct {
	config Config
	path   string
	git    *git.Client

	mu        sync.RWMutex
	writes    int
	lastWrite *time.Time
}

// NewStore creates a filesystem-backed document store.
func NewStore(config Config) *Store {
	if config.Document == "" {
		config.Document = DefaultDocumentName
	}
	return &Store{
		config: config,
		path:   filepath.Join(config.Root, config.Document),
		git:    git.NewClient(config.Root, config.Logger),
	}
}

// Initialize checks that the store can operate: the root must be an existing
// directory and, when versioned, a git work tree.
func (s *Store) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.config.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", core.ErrNoWorkspace, s.config.Root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", core.ErrNoWorkspace, s.config.Root)
	}

	if s.config.Versioned {
		if !git.IsInstalled() {
			return fmt.Errorf("git is not installed")
		}
		if !s.git.IsRepo(ctx) {
			return fmt.Errorf("path is not a git repository: %s", s.config.Root)
		}
	}
	return nil
}

// Locate returns the path of the document.
func (s *Store) Locate() string {
	return s.path
}

// Exists reports whether the document is on disk.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Read returns the document text.
func (s *Store) Read(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", core.ErrDocumentNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return string(data), nil
}

// Write replaces the document with text.
//
// Workflow:
//  1. Write atomically (temp file + rename) so a failure leaves the previous
//     document untouched.
//  2. (If versioned) 'git add' and 'git commit' with the context change reason.
func (s *Store) Write(ctx context.Context, text string) error {
	if err := writeFileAtomic(s.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrWriteFailure, err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastWrite = &now
	s.writes++
	s.mu.Unlock()

	if s.config.Logger != nil {
		s.config.Logger.Debug("document written", "path", s.path, "bytes", len(text))
	}

	if !s.config.Versioned {
		return nil
	}
	if err := s.commit(ctx, "update audit notes", func(ctx context.Context) error {
		return s.git.Add(ctx, s.config.Document)
	}); err != nil {
		return fmt.Errorf("%w: %w", core.ErrWriteFailure, err)
	}
	return nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return core.ErrDocumentNotFound
	}

	if s.config.Versioned && s.git.IsTracked(ctx, s.config.Document) {
		return s.commit(ctx, "clear audit notes", func(ctx context.Context) error {
			return s.git.Rm(ctx, s.config.Document)
		})
	}

	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

// commit runs stage under the git lock and commits the document if it changed.
func (s *Store) commit(ctx context.Context, fallback string, stage func(context.Context) error) error {
	unlock, err := s.git.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := stage(ctx); err != nil {
		return fmt.Errorf("failed to stage document: %w", err)
	}

	status, err := s.git.Status(ctx, s.config.Document)
	if err != nil {
		return fmt.Errorf("failed to read git status: %w", err)
	}
	if status == "" {
		return nil
	}

	msg := fallback
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}
	if err := s.git.Commit(ctx, msg, s.config.Document); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}
