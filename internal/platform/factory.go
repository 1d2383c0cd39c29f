package platform

import (
	"github.com/aretw0/auditnotes/pkg/session"
)

// New opens the project at root and returns its session.
//
//	s, err := auditnotes.New(".", auditnotes.WithMarkers("TODO", "@audit"))
func New(root string, opts ...Option) (*session.Session, error) {
	ws, err := Open(root, opts...)
	if err != nil {
		return nil, err
	}
	return ws.Session, nil
}
