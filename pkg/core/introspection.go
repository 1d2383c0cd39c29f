package core

import (
	"github.com/aretw0/introspection"
)

// CollectionState summarizes a collection for observability.
type CollectionState struct {
	Files   int `json:"files"`
	Notes   int `json:"notes"`
	Checked int `json:"checked"`
	Todos   int `json:"todos"`
}

// State implements introspection.Introspectable.
func (c *Collection) State() any {
	st := CollectionState{
		Files:   c.Len(),
		Notes:   c.NoteCount(),
		Checked: c.CheckedCount(),
	}
	for _, f := range c.Files() {
		for _, n := range f.Notes {
			if n.Kind.Checkable() {
				st.Todos++
			}
		}
	}
	return st
}

// ComponentType implements introspection.Component.
func (c *Collection) ComponentType() string {
	return "collection"
}

var _ introspection.Introspectable = (*Collection)(nil)
var _ introspection.Component = (*Collection)(nil)
