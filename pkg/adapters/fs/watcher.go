package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/auditnotes/pkg/core"
)

// DefaultDebounce is the quiet period before a burst of changes is delivered.
const DefaultDebounce = 200 * time.Millisecond

// WatchConfig holds the configuration of a Watcher.
type WatchConfig struct {
	Debounce     time.Duration
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// Watcher reports changes to the files a Source would scan.
type Watcher struct {
	source *Source
	config WatchConfig
}

// NewWatcher creates a Watcher for the files of src.
func NewWatcher(src *Source, config WatchConfig) *Watcher {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Watcher{source: src, config: config}
}

// Watch starts watching the source root. Events are delivered in bursts: after
// a change, the watcher waits for the debounce period without further changes
// and then sends every pending event, one per path. The channel is closed
// when ctx is done or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan core.Event, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.addRecursive(fsw, w.source.Root()); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	events := make(chan core.Event, 64)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer fsw.Close()
		return w.run(ctx, fsw, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.reportError(fmt.Errorf("watcher stopped: %w", err))
	}))
	return events, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, events chan<- core.Event) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.config.Logger != nil && w.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()

	batch := newDebouncer(w.config.Debounce, func(pending []core.Event) {
		for _, e := range pending {
			select {
			case events <- e:
			case <-ctx.Done():
				return
			}
		}
	})
	defer batch.stopAndWait()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(fsw, event, batch)

		case wErr, ok := <-fsw.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.reportError(wErr)
		}
	}
}

// handle filters one filesystem event and queues it when relevant.
func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event, batch *debouncer) {
	if w.config.Logger != nil {
		w.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fsw, event.Name); err != nil {
				w.reportError(err)
			}
			return
		}
	}

	if !w.source.Matches(event.Name) {
		return
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return
	}

	batch.add(core.Event{Type: eType, Path: event.Name, Timestamp: time.Now().Unix()})
}

// addRecursive watches dir and every directory below it that a scan would visit.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.source.Root() {
			rel, relErr := w.source.rel(path)
			if relErr != nil || d.Name() == ".git" || w.source.prunes(rel) {
				return filepath.SkipDir
			}
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) reportError(err error) {
	if w.config.Logger != nil {
		w.config.Logger.Error("watcher error", "error", err)
	}
	if w.config.ErrorHandler != nil {
		w.config.ErrorHandler(err)
	}
}

// debouncer collects events and flushes them once no new event arrived for delay.
// Later events for a path replace earlier ones; first-seen order is kept.
type debouncer struct {
	delay time.Duration
	flush func([]core.Event)

	mu      sync.Mutex
	pending []core.Event
	index   map[string]int
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration, flush func([]core.Event)) *debouncer {
	return &debouncer{delay: delay, flush: flush, index: make(map[string]int)}
}

func (d *debouncer) add(e core.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if i, ok := d.index[e.Path]; ok {
		d.pending[i] = e
	} else {
		d.index[e.Path] = len(d.pending)
		d.pending = append(d.pending, e)
	}

	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	defer d.wg.Done()

	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.index = make(map[string]int)
	d.mu.Unlock()

	if len(pending) > 0 {
		d.flush(pending)
	}
}

// stopAndWait drops future events and waits for an in-flight flush.
func (d *debouncer) stopAndWait() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()
	d.wg.Wait()
}
