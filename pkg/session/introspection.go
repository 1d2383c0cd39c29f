package session

import (
	"time"

	"github.com/aretw0/introspection"
)

// State is the snapshot returned by Session.State.
type State struct {
	Document  string     `json:"document"`
	Status    string     `json:"status"`
	Loaded    bool       `json:"loaded"`
	Dirty     bool       `json:"dirty"`
	Files     int        `json:"files"`
	Notes     int        `json:"notes"`
	Checked   int        `json:"checked"`
	Scans     int        `json:"scans"`
	LastScan  *time.Time `json:"last_scan,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	st := State{
		Document: s.store.Locate(),
		Status:   Status{Phase: PhaseNotStarted}.String(),
		Loaded:   s.current != nil,
		Dirty:    s.dirty,
		Files:    s.current.Len(),
		Notes:    s.current.NoteCount(),
		Checked:  s.current.CheckedCount(),
		Scans:    s.scans,
	}
	if s.status.Phase != "" {
		st.Status = s.status.String()
	}
	if !s.lastScan.IsZero() {
		t := s.lastScan
		st.LastScan = &t
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var (
	_ introspection.Introspectable = (*Session)(nil)
	_ introspection.Component      = (*Session)(nil)
)
