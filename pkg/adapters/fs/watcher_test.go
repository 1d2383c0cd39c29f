package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/auditnotes/pkg/adapters/fs"
	"github.com/aretw0/auditnotes/pkg/core"
)

func startWatcher(t *testing.T, root string) (<-chan core.Event, context.CancelFunc) {
	t.Helper()

	src, err := fs.NewSource(fs.SourceConfig{
		Root:       root,
		Extensions: []string{"ts"},
		Exclude:    fs.DefaultExclude,
		Ignore:     []string{fs.DefaultDocumentName},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := fs.NewWatcher(src, fs.WatchConfig{Debounce: 50 * time.Millisecond}).Watch(ctx)
	require.NoError(t, err)
	return events, cancel
}

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for event")
		return core.Event{}
	}
}

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	events, cancel := startWatcher(t, root)
	defer cancel()

	// Ignored: wrong extension, the document, excluded dirs.
	writeTree(t, root, map[string]string{
		"readme.md":            "TODO",
		fs.DefaultDocumentName: "# Audit Notes",
		"node_modules/dep.ts":  "// TODO",
	})
	writeTree(t, root, map[string]string{"a.ts": "// TODO a"})

	e := nextEvent(t, events)
	assert.Equal(t, filepath.Join(root, "a.ts"), e.Path)
	assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)

	select {
	case extra := <-events:
		assert.Equal(t, filepath.Join(root, "a.ts"), extra.Path, "bursts are coalesced per path")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_NewDirectories(t *testing.T) {
	root := t.TempDir()
	events, cancel := startWatcher(t, root)
	defer cancel()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(100 * time.Millisecond)
	writeTree(t, root, map[string]string{"src/b.ts": "// TODO b"})

	e := nextEvent(t, events)
	assert.Equal(t, filepath.Join(root, "src", "b.ts"), e.Path)
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	events, cancel := startWatcher(t, t.TempDir())
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	src, err := fs.NewSource(fs.SourceConfig{Root: filepath.Join(t.TempDir(), "nope")})
	require.NoError(t, err)

	_, err = fs.NewWatcher(src, fs.WatchConfig{}).Watch(context.Background())
	assert.Error(t, err)
}
