package core

import "errors"

// Common errors.
var (
	// ErrSourceUnavailable is reported for a file whose text could not be read.
	// Scans skip such files and continue.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoWorkspace means no project root could be resolved.
	ErrNoWorkspace = errors.New("no workspace found")

	// ErrDocumentNotFound means the checklist document does not exist yet.
	ErrDocumentNotFound = errors.New("audit notes document not found")

	// ErrWriteFailure wraps any failure to persist the checklist document.
	ErrWriteFailure = errors.New("failed to write audit notes document")

	// ErrMalformedDocument is returned alongside an empty collection when a
	// document contains no recognizable entries. It is a warning, not a failure.
	ErrMalformedDocument = errors.New("audit notes document has no recognizable entries")
)
