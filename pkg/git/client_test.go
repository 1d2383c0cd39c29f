package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, nil)
	ctx := context.Background()

	unlock, err := client.Lock(ctx)
	require.NoError(t, err)

	lockPath := filepath.Join(tmpDir, DefaultLockName)
	_, err = os.Stat(lockPath)
	require.NoError(t, err, "lock file not created")

	// A second acquisition must wait until the context gives up.
	timeout, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = client.Lock(timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err), "lock file not removed after unlock")
}

func TestClient_CommitFlow(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, nil)
	ctx := context.Background()

	require.NoError(t, client.Init(ctx))
	assert.True(t, client.IsRepo(ctx))

	_, _ = client.Run(ctx, "config", "user.email", "test@example.com")
	_, _ = client.Run(ctx, "config", "user.name", "Test")

	doc := filepath.Join(tmpDir, "audit-notes.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Audit Notes\n\n"), 0644))
	assert.False(t, client.IsTracked(ctx, "audit-notes.md"))

	require.NoError(t, client.Add(ctx, "audit-notes.md"))
	require.NoError(t, client.Commit(ctx, "add notes", "audit-notes.md"))
	assert.True(t, client.IsTracked(ctx, "audit-notes.md"))

	status, err := client.Status(ctx, "audit-notes.md")
	require.NoError(t, err)
	assert.Empty(t, status)

	require.NoError(t, client.Rm(ctx, "audit-notes.md"))
	require.NoError(t, client.Commit(ctx, "remove notes", "audit-notes.md"))
	assert.False(t, client.IsTracked(ctx, "audit-notes.md"))
}
