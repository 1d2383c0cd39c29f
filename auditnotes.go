package auditnotes

import (
	"log/slog"

	"github.com/aretw0/auditnotes/internal/platform"
	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/session"
)

// --- Types ---

// Session is the owned state of one project's checklist.
type Session = session.Session

// Report describes the outcome of a scan or open.
type Report = session.Report

// Workspace is a project with its settings and wired components.
type Workspace = platform.Workspace

// Settings is the content of the .auditnotes.yaml file.
type Settings = platform.Settings

// Collection is a set of notes grouped by file.
type Collection = core.Collection

// Note is one matched annotation.
type Note = core.Note

// --- Configuration ---

// Option defines a functional option for configuring a workspace.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithNavigator sets how note locations are opened.
func WithNavigator(nav core.Navigator) Option {
	return platform.WithNavigator(nav)
}

// WithStore injects a custom document store.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithSettings replaces the settings file of the project.
func WithSettings(s Settings) Option {
	return platform.WithSettings(s)
}

// WithMarkers overrides the markers to look for.
func WithMarkers(markers ...string) Option {
	return platform.WithMarkers(markers...)
}

// WithCheckableMarkers overrides which markers render as actionable.
func WithCheckableMarkers(markers ...string) Option {
	return platform.WithCheckableMarkers(markers...)
}

// WithExtensions overrides the file extensions to scan.
func WithExtensions(exts ...string) Option {
	return platform.WithExtensions(exts...)
}

// WithExclude overrides the exclusion globs.
func WithExclude(patterns ...string) Option {
	return platform.WithExclude(patterns...)
}

// WithScanMode selects "comments" or "all".
func WithScanMode(mode string) Option {
	return platform.WithScanMode(mode)
}

// WithDocument overrides the document file name.
func WithDocument(name string) Option {
	return platform.WithDocument(name)
}

// WithVersioning enables or disables committing the document with git.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithWatcherErrorHandler registers a callback for errors of the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the project at root and returns its session.
func New(root string, opts ...Option) (*Session, error) {
	return platform.New(root, opts...)
}

// Open opens the project at root and returns the whole workspace.
func Open(root string, opts ...Option) (*Workspace, error) {
	return platform.Open(root, opts...)
}

// --- Utils ---

// FindRoot looks upwards from startDir for a project root.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return platform.DefaultSettings()
}

// SettingsFile is the name of the per-project settings file.
const SettingsFile = platform.SettingsFile

// ErrSettingsExist is returned by WriteSettings when the file is already there.
var ErrSettingsExist = platform.ErrSettingsExist

// WriteSettings writes s to the settings file of root.
func WriteSettings(root string, s Settings, force bool) (string, error) {
	return platform.WriteSettings(root, s, force)
}
