package core

import "context"

// SourceFile describes one file offered for scanning.
type SourceFile struct {
	// Identity is the absolute path of the file.
	Identity string
	// Display is the human-facing path, usually relative to the project root.
	Display string
}

// Source yields the files of a project and their text.
// Implementations decide which files qualify (extensions, exclusions).
type Source interface {
	// List returns the files to scan, in the order they should be scanned.
	List(ctx context.Context) ([]SourceFile, error)

	// Read returns the full text of a listed file.
	Read(ctx context.Context, identity string) (string, error)
}

// Store defines the lifecycle of the single checklist document of a project.
// Adhering to this interface keeps the session independent of where the
// document lives (local file, versioned file, memory).
type Store interface {
	// Exists reports whether the document is currently persisted.
	Exists(ctx context.Context) (bool, error)

	// Read returns the document text, or ErrDocumentNotFound.
	Read(ctx context.Context) (string, error)

	// Write replaces the whole document.
	Write(ctx context.Context, text string) error

	// Delete removes the document, or returns ErrDocumentNotFound.
	Delete(ctx context.Context) error

	// Locate returns the path of the document.
	Locate() string
}

// Navigator opens a file location for editing.
type Navigator interface {
	Open(ctx context.Context, identity string, line int) error
}

// ProgressFunc receives the number of files processed so far and the total.
type ProgressFunc func(done, total int)

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit
// message) to stores that version the document.
const ChangeReasonKey contextKey = "change_reason"

// WithChangeReason returns a context carrying reason under ChangeReasonKey.
func WithChangeReason(ctx context.Context, reason string) context.Context {
	return context.WithValue(ctx, ChangeReasonKey, reason)
}
