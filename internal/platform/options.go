package platform

import (
	"log/slog"

	"github.com/aretw0/auditnotes/pkg/core"
)

// options holds the internal configuration of a workspace.
type options struct {
	logger       *slog.Logger
	navigator    core.Navigator
	store        core.Store
	settings     *Settings
	overrides    []func(*Settings)
	errorHandler func(error)
}

// Option defines a functional option for configuring a workspace.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNavigator sets how note locations are opened.
func WithNavigator(nav core.Navigator) Option {
	return func(o *options) {
		o.navigator = nav
	}
}

// WithStore injects a custom document store (e.g. in-memory for tests).
// If provided, the filesystem store is skipped and versioning is ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithSettings replaces the settings file of the project.
func WithSettings(s Settings) Option {
	return func(o *options) {
		o.settings = &s
	}
}

// WithMarkers overrides the markers to look for.
func WithMarkers(markers ...string) Option {
	return override(func(s *Settings) { s.Markers = markers })
}

// WithCheckableMarkers overrides which markers render as actionable.
func WithCheckableMarkers(markers ...string) Option {
	return override(func(s *Settings) { s.CheckableMarkers = markers })
}

// WithExtensions overrides the file extensions to scan.
func WithExtensions(exts ...string) Option {
	return override(func(s *Settings) { s.FileExtensions = exts })
}

// WithExclude overrides the exclusion globs.
func WithExclude(patterns ...string) Option {
	return override(func(s *Settings) { s.Exclude = patterns })
}

// WithScanMode selects "comments" or "all".
func WithScanMode(mode string) Option {
	return override(func(s *Settings) { s.ScanMode = mode })
}

// WithDocument overrides the document file name, relative to the root.
func WithDocument(name string) Option {
	return override(func(s *Settings) { s.Document = name })
}

// WithVersioning enables or disables committing the document with git.
func WithVersioning(enabled bool) Option {
	return override(func(s *Settings) { s.Versioned = enabled })
}

// WithWatcherErrorHandler registers a callback for errors of the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

func override(fn func(*Settings)) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, fn)
	}
}
