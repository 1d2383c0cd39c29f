package editor_test

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/auditnotes/pkg/adapters/editor"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"vi", []string{"vi", "+12", "/p/a.ts"}},
		{"/usr/bin/nvim", []string{"/usr/bin/nvim", "+12", "/p/a.ts"}},
		{"emacsclient -nw", []string{"emacsclient", "-nw", "+12", "/p/a.ts"}},
		{"code -w", []string{"code", "-w", "--goto", "/p/a.ts:12"}},
		{"cursor", []string{"cursor", "--goto", "/p/a.ts:12"}},
		{"subl", []string{"subl", "/p/a.ts:12"}},
		{"hx", []string{"hx", "/p/a.ts:12"}},
		{"goland", []string{"goland", "--line", "12", "/p/a.ts"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, editor.Command(tt.editor, "/p/a.ts", 12))
		})
	}

	assert.Equal(t, []string{"vi", "+1", "x"}, editor.Command("vi", "x", 0))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	assert.Equal(t, editor.DefaultEditor, editor.FromEnv())

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", editor.FromEnv())

	t.Setenv("VISUAL", "code -w")
	assert.Equal(t, "code -w", editor.FromEnv())
}

func TestNavigator_Open(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses echo")
	}
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	var out bytes.Buffer
	nav := &editor.Navigator{Editor: "echo", Stdout: &out}
	require.NoError(t, nav.Open(context.Background(), "/p/a.ts", 7))
	assert.Equal(t, "+7 /p/a.ts", strings.TrimSpace(out.String()))

	nav.Editor = "auditnotes-no-such-editor"
	assert.Error(t, nav.Open(context.Background(), "/p/a.ts", 7))
}
