package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/auditnotes/pkg/adapters/fs"
	"github.com/aretw0/auditnotes/pkg/core"
	"github.com/aretw0/auditnotes/pkg/git"
)

// setupStore creates a store rooted in a fresh temp dir.
func setupStore(t *testing.T, opts ...func(*fs.Config)) (*fs.Store, string) {
	t.Helper()

	root := t.TempDir()
	cfg := fs.Config{Root: root}
	for _, opt := range opts {
		opt(&cfg)
	}
	return fs.NewStore(cfg), root
}

func TestStore_Lifecycle(t *testing.T) {
	store, root := setupStore(t)
	ctx := context.Background()

	assert.Equal(t, filepath.Join(root, fs.DefaultDocumentName), store.Locate())
	require.NoError(t, store.Initialize(ctx))

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Read(ctx)
	assert.ErrorIs(t, err, core.ErrDocumentNotFound)

	require.NoError(t, store.Write(ctx, "# Audit Notes\n\nfirst\n"))
	require.NoError(t, store.Write(ctx, "# Audit Notes\n\nsecond\n"))

	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	text, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "# Audit Notes\n\nsecond\n", text, "writes are full overwrites")

	require.NoError(t, store.Delete(ctx))
	ok, _ = store.Exists(ctx)
	assert.False(t, ok)

	assert.ErrorIs(t, store.Delete(ctx), core.ErrDocumentNotFound)

	state, ok := store.State().(fs.StoreState)
	require.True(t, ok)
	assert.Equal(t, 2, state.Writes)
	assert.False(t, state.Exists)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "store", store.ComponentType())
}

func TestStore_CustomDocument(t *testing.T) {
	store, root := setupStore(t, func(c *fs.Config) { c.Document = "NOTES.md" })
	require.NoError(t, store.Write(context.Background(), "x"))

	_, err := os.Stat(filepath.Join(root, "NOTES.md"))
	assert.NoError(t, err)
}

func TestStore_WriteFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("needs unix permissions enforced")
	}
	store, root := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "previous"))
	require.NoError(t, os.Chmod(root, 0555))
	t.Cleanup(func() { _ = os.Chmod(root, 0755) })

	err := store.Write(ctx, "next")
	assert.ErrorIs(t, err, core.ErrWriteFailure)

	text, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "previous", text, "failed writes leave the document untouched")
}

func TestStore_Initialize(t *testing.T) {
	t.Run("Missing Root", func(t *testing.T) {
		store := fs.NewStore(fs.Config{Root: filepath.Join(t.TempDir(), "nope")})
		assert.ErrorIs(t, store.Initialize(context.Background()), core.ErrNoWorkspace)
	})

	t.Run("Versioned Requires Repo", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		store, _ := setupStore(t, func(c *fs.Config) { c.Versioned = true })
		assert.Error(t, store.Initialize(context.Background()))
	})
}

func TestStore_Versioned(t *testing.T) {
	if !git.IsInstalled() {
		t.Skip("git not installed")
	}

	store, root := setupStore(t, func(c *fs.Config) { c.Versioned = true })
	ctx := context.Background()

	client := git.NewClient(root, nil)
	require.NoError(t, client.Init(ctx))
	_, _ = client.Run(ctx, "config", "user.email", "test@example.com")
	_, _ = client.Run(ctx, "config", "user.name", "Test")
	require.NoError(t, store.Initialize(ctx))

	require.NoError(t, store.Write(core.WithChangeReason(ctx, "chore: scan"), "# Audit Notes\n\n"))
	assert.True(t, client.IsTracked(ctx, fs.DefaultDocumentName))

	log, err := client.Run(ctx, "log", "-1", "--format=%s")
	require.NoError(t, err)
	assert.Equal(t, "chore: scan", log)

	// Unchanged content produces no empty commit.
	require.NoError(t, store.Write(ctx, "# Audit Notes\n\n"))
	count, err := client.Run(ctx, "rev-list", "--count", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "1", count)

	require.NoError(t, store.Delete(ctx))
	assert.False(t, client.IsTracked(ctx, fs.DefaultDocumentName))
	_, err = os.Stat(store.Locate())
	assert.True(t, os.IsNotExist(err))
}
