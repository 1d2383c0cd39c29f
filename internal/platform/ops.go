package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/auditnotes/pkg/adapters/fs"
	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/scan"
	"github.com/aretw0/auditnotes/pkg/session"
)

// Workspace is one project with its settings and wired components.
type Workspace struct {
	Root     string
	Settings Settings
	Session  *session.Session
	Source   *fs.Source
	Store    core.Store

	options *options
}

// Open resolves the settings of the project at root and wires the store,
// source, scanner and session.
//
// root must be an existing directory; otherwise core.ErrNoWorkspace is
// returned before any other I/O.
func Open(root string, opts ...Option) (*Workspace, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNoWorkspace, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", core.ErrNoWorkspace, abs)
	}

	settings, err := resolveSettings(abs, o)
	if err != nil {
		return nil, err
	}
	mode, err := scan.ParseMode(settings.ScanMode)
	if err != nil {
		return nil, err
	}

	store := o.store
	if store == nil {
		fsStore := fs.NewStore(fs.Config{
			Root:      abs,
			Document:  settings.Document,
			Versioned: settings.Versioned,
			Logger:    o.logger,
		})
		if err := fsStore.Initialize(context.Background()); err != nil {
			return nil, err
		}
		store = fsStore
	}

	source, err := fs.NewSource(fs.SourceConfig{
		Root:       abs,
		Extensions: settings.FileExtensions,
		Exclude:    settings.Exclude,
		Ignore:     []string{filepath.ToSlash(settings.Document)},
		Logger:     o.logger,
	})
	if err != nil {
		return nil, err
	}

	scanner := scan.New(scan.Config{
		Markers: scan.MarkerConfig{
			Markers:   settings.Markers,
			Checkable: settings.CheckableMarkers,
		},
		Mode:   mode,
		Logger: o.logger,
	})

	sess, err := session.New(session.Config{
		Store:     store,
		Source:    source,
		Scanner:   scanner,
		Navigator: o.navigator,
		Logger:    o.logger,
	})
	if err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("workspace opened",
			"root", abs,
			"document", store.Locate(),
			"mode", mode,
			"extensions", settings.FileExtensions,
			"versioned", settings.Versioned,
		)
	}

	return &Workspace{
		Root:     abs,
		Settings: settings,
		Session:  sess,
		Source:   source,
		Store:    store,
		options:  o,
	}, nil
}

func resolveSettings(root string, o *options) (Settings, error) {
	var settings Settings
	if o.settings != nil {
		settings = *o.settings
	} else {
		loaded, err := LoadSettings(root)
		if err != nil {
			return Settings{}, err
		}
		settings = loaded
	}
	for _, fn := range o.overrides {
		fn(&settings)
	}
	settings.fill(DefaultSettings())
	return settings, nil
}

// Watch reports changes to scannable files of the workspace.
func (w *Workspace) Watch(ctx context.Context) (<-chan core.Event, error) {
	return fs.NewWatcher(w.Source, fs.WatchConfig{
		Logger:       w.options.logger,
		ErrorHandler: w.options.errorHandler,
	}).Watch(ctx)
}
