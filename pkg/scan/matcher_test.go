package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/auditnotes/pkg/core"
)

func TestMatcher_Classify(t *testing.T) {
	m := NewMatcher(DefaultMarkerConfig())

	tests := []struct {
		name string
		line string
		kind core.Kind
		ok   bool
	}{
		{"upper todo", "// TODO: fix", core.KindTodo, true},
		{"lower todo", "// todo fix", core.KindTodo, true},
		{"audit", "// @audit reentrancy", core.KindNote, true},
		{"audit info", "// @audit-info gas", core.KindNote, true},
		{"note", "/* @note keep */", core.KindNote, true},
		{"symbolic markers are case sensitive", "// @AUDIT shout", "", false},
		{"no marker", "x := 1", "", false},
		{"empty", "", "", false},
		{"checkable wins over informational", "// @audit TODO both", core.KindTodo, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := m.Classify(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.kind, kind)
		})
	}
}

func TestMatcher_EscapesMarkers(t *testing.T) {
	m := NewMatcher(MarkerConfig{Markers: []string{"a.b", "(x"}})

	_, ok := m.Classify("// axb")
	assert.False(t, ok, "dot must not act as a wildcard")

	kind, ok := m.Classify("// see a.b")
	assert.True(t, ok)
	assert.Equal(t, core.KindNote, kind)

	_, ok = m.Classify("// open (x here")
	assert.True(t, ok, "unbalanced parenthesis must be matched literally")
}

func TestMatcher_CheckableOutsideMarkers(t *testing.T) {
	m := NewMatcher(MarkerConfig{
		Markers:   []string{"@note"},
		Checkable: []string{"fixme"},
	})

	kind, ok := m.Classify("// FIXME later")
	assert.True(t, ok)
	assert.Equal(t, core.KindTodo, kind)

	kind, ok = m.Classify("// @note")
	assert.True(t, ok)
	assert.Equal(t, core.KindNote, kind)
}

func TestMatcher_Empty(t *testing.T) {
	m := NewMatcher(MarkerConfig{Markers: []string{"", "  "}})
	assert.True(t, m.Empty())

	_, ok := m.Classify("// TODO")
	assert.False(t, ok)
}
