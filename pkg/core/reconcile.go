package core

// Merge carries the checked state of baseline over to a copy of fresh.
//
// The fresh collection decides which files and notes exist; baseline only
// contributes Checked, matched by (identity, line, content). Files present only
// in baseline are dropped. A note whose text changed or whose line moved is
// treated as new and starts unchecked. Neither input is modified.
func Merge(baseline, fresh *Collection) *Collection {
	out := fresh.Clone()
	for _, entry := range out.Files() {
		prev, ok := baseline.Get(entry.Identity)
		if !ok {
			continue
		}
		for i := range entry.Notes {
			if j := prev.Find(entry.Notes[i].Line, entry.Notes[i].Content); j >= 0 {
				entry.Notes[i].Checked = prev.Notes[j].Checked
			}
		}
	}
	return out
}

// SetChecked updates the note identified by (identity, line, content).
// It returns false and changes nothing when no such note exists, which happens
// when a presenter still shows notes from before the latest scan.
func (c *Collection) SetChecked(identity string, line int, content string, checked bool) bool {
	entry, ok := c.Get(identity)
	if !ok {
		return false
	}
	i := entry.Find(line, content)
	if i < 0 {
		return false
	}
	entry.Notes[i].Checked = checked
	return true
}
