// Package auditnotes is the composition root of the audit notes tool.
//
// It finds annotation markers (TODO, @audit, @note, ...) in source comments,
// groups them per file and keeps a markdown checklist at
// <root>/audit-notes.md. Re-scanning merges the checked state of the existing
// checklist into the fresh result, so progress survives as long as a note
// keeps its line number and text.
//
// Features:
//
//   - **Configurable markers**: keyword markers match case-insensitively,
//     symbolic markers exactly; checkable markers render as actionable.
//   - **Comment aware**: only comment text is scanned by default; "all" mode
//     scans every line.
//   - **Plain document**: the checklist is hand-editable markdown and the only
//     durable state.
//   - **Optional versioning**: the checklist can be committed with git on
//     every change.
//
// Usage:
//
//	s, err := auditnotes.New(".", auditnotes.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	// Scan, merge and write audit-notes.md
//	report, err := s.ScanAndSave(ctx, nil)
package auditnotes
