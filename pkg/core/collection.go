package core

// Collection maps file identities to their notes, preserving insertion order.
// A file without notes is never present.
//
// Read methods tolerate a nil receiver, which behaves as an empty collection.
type Collection struct {
	order []string
	files map[string]*FileEntry
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{files: make(map[string]*FileEntry)}
}

// Append adds a note to the entry of identity, creating the entry on first use.
// Invalid notes are dropped.
func (c *Collection) Append(identity, display string, n Note) {
	if !n.Valid() {
		return
	}
	entry, ok := c.files[identity]
	if !ok {
		if display == "" {
			display = identity
		}
		entry = &FileEntry{Identity: identity, Display: display}
		c.files[identity] = entry
		c.order = append(c.order, identity)
	}
	entry.Notes = append(entry.Notes, n)
}

// Add appends every note of entry under entry.Identity.
func (c *Collection) Add(entry FileEntry) {
	for _, n := range entry.Notes {
		c.Append(entry.Identity, entry.Display, n)
	}
}

// Get returns the entry for identity.
func (c *Collection) Get(identity string) (*FileEntry, bool) {
	if c == nil {
		return nil, false
	}
	entry, ok := c.files[identity]
	return entry, ok
}

// Files returns the entries in insertion order.
func (c *Collection) Files() []*FileEntry {
	if c == nil {
		return nil
	}
	out := make([]*FileEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.files[id])
	}
	return out
}

// Len returns the number of files in the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// NoteCount returns the number of notes across all files.
func (c *Collection) NoteCount() int {
	total := 0
	for _, f := range c.Files() {
		total += len(f.Notes)
	}
	return total
}

// CheckedCount returns the number of checked notes across all files.
func (c *Collection) CheckedCount() int {
	total := 0
	for _, f := range c.Files() {
		total += f.Checked()
	}
	return total
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	for _, f := range c.Files() {
		cp := f.clone()
		out.files[cp.Identity] = cp
		out.order = append(out.order, cp.Identity)
	}
	return out
}
