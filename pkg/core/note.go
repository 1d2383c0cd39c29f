// Package core holds the domain model of auditnotes: notes found in source
// files, the per-file grouping, and the contracts of the collaborators
// (file source, document store, navigation) the engine depends on.
package core

import "strings"

// Kind classifies a matched annotation.
type Kind string

const (
	// KindTodo marks an actionable annotation (e.g. TODO).
	KindTodo Kind = "todo"
	// KindNote marks an informational annotation (e.g. @note, @audit).
	KindNote Kind = "note"
)

// Checkable reports whether the kind is an actionable one.
// Every note is still rendered with a checkbox; this only drives display.
func (k Kind) Checkable() bool {
	return k == KindTodo
}

// Note is one matched annotation occurrence.
// Its identity is (file identity, Line, Content); there is no separate ID.
type Note struct {
	Line    int    `json:"line" yaml:"line"`
	Content string `json:"content" yaml:"content"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// Valid reports whether the note satisfies the model invariants.
func (n Note) Valid() bool {
	return n.Line >= 1 && strings.TrimSpace(n.Content) != ""
}

// Same reports whether both notes refer to the same annotation within a file.
func (n Note) Same(line int, content string) bool {
	return n.Line == line && n.Content == content
}

// FileEntry groups the notes of one scanned file.
type FileEntry struct {
	// Identity is the absolute path of the file.
	Identity string `json:"identity" yaml:"identity"`
	// Display is the path shown to humans, usually relative to the project root.
	Display string `json:"display" yaml:"display"`
	// Notes are ordered by appearance in the file.
	Notes []Note `json:"notes" yaml:"notes"`
}

// Find returns the index of the note matching (line, content), or -1.
func (f *FileEntry) Find(line int, content string) int {
	for i := range f.Notes {
		if f.Notes[i].Same(line, content) {
			return i
		}
	}
	return -1
}

// Checked returns the number of checked notes in the entry.
func (f *FileEntry) Checked() int {
	n := 0
	for _, note := range f.Notes {
		if note.Checked {
			n++
		}
	}
	return n
}

func (f *FileEntry) clone() *FileEntry {
	cp := &FileEntry{Identity: f.Identity, Display: f.Display}
	cp.Notes = append([]Note(nil), f.Notes...)
	return cp
}
