package session

import (
	"fmt"

	"github.com/aretw0/auditnotes/pkg/core"
)

// Phase is the coarse progress state of a session.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseScanning   Phase = "scanning"
	PhaseCompleted  Phase = "completed"
	PhaseEmpty      Phase = "empty"
)

// Status is what a progress indicator shows for a session.
type Status struct {
	Phase Phase `json:"phase"`
	Done  int   `json:"done,omitempty"`
	Total int   `json:"total,omitempty"`
}

func (s Status) String() string {
	switch s.Phase {
	case PhaseScanning:
		return fmt.Sprintf("%d/%d files scanned", s.Done, s.Total)
	case PhaseCompleted:
		return "Completed"
	case PhaseEmpty:
		return "No notes found"
	default:
		return "Not Started"
	}
}

// Status returns the current progress state.
func (s *Session) Status() Status {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.status.Phase == "" {
		return Status{Phase: PhaseNotStarted}
	}
	return s.status
}

func (s *Session) setStatus(st Status) {
	s.stateMu.Lock()
	s.status = st
	s.stateMu.Unlock()
}

func completed(c *core.Collection) Status {
	if c.NoteCount() == 0 {
		return Status{Phase: PhaseEmpty}
	}
	return Status{Phase: PhaseCompleted}
}
