package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/auditnotes/pkg/adapters/fs"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func displays(t *testing.T, src *fs.Source) []string {
	t.Helper()
	files, err := src.List(context.Background())
	require.NoError(t, err)
	var out []string
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Identity))
		out = append(out, f.Display)
	}
	return out
}

func TestSource_List(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.ts":                     "// TODO b",
		"a.sol":                    "// TODO a",
		"src/c.JS":                 "// TODO c",
		"src/readme.md":            "TODO not scanned",
		"node_modules/lib/x.js":    "// TODO dep",
		"pkg/node_modules/y.js":    "// TODO dep",
		"vendor/gen/z.ts":          "// TODO vendor",
		".git/hooks/pre-commit.js": "// TODO git",
		"audit-notes.md":           "# Audit Notes",
	})

	src, err := fs.NewSource(fs.SourceConfig{
		Root:       root,
		Extensions: []string{"ts", ".sol", "js", "md"},
		Exclude:    append([]string{"vendor/**"}, fs.DefaultExclude...),
		Ignore:     []string{"audit-notes.md"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.sol", "b.ts", "src/c.JS", "src/readme.md"}, displays(t, src))
}

func TestSource_Read(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.ts": "hello"})

	src, err := fs.NewSource(fs.SourceConfig{Root: root, Extensions: []string{"ts"}})
	require.NoError(t, err)

	text, err := src.Read(context.Background(), filepath.Join(root, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = src.Read(context.Background(), filepath.Join(root, "gone.ts"))
	assert.Error(t, err)
}

func TestSource_Matches(t *testing.T) {
	root := t.TempDir()
	src, err := fs.NewSource(fs.SourceConfig{
		Root:       root,
		Extensions: []string{"ts"},
		Exclude:    fs.DefaultExclude,
		Ignore:     []string{"notes.ts"},
	})
	require.NoError(t, err)

	assert.True(t, src.Matches(filepath.Join(root, "src", "a.ts")))
	assert.False(t, src.Matches(filepath.Join(root, "src", "a.go")))
	assert.False(t, src.Matches(filepath.Join(root, "node_modules", "x", "a.ts")))
	assert.False(t, src.Matches(filepath.Join(root, ".git", "a.ts")))
	assert.False(t, src.Matches(filepath.Join(root, "notes.ts")))
	assert.False(t, src.Matches(filepath.Join(filepath.Dir(root), "outside.ts")))
}

func TestSource_InvalidPattern(t *testing.T) {
	_, err := fs.NewSource(fs.SourceConfig{Root: t.TempDir(), Exclude: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestSource_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.ts": "x"})
	src, err := fs.NewSource(fs.SourceConfig{Root: root, Extensions: []string{"ts"}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
