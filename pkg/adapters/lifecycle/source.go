// Package lifecycle exposes source file changes as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/auditnotes/pkg/core"
)

// Rescan asks for one new scan. It carries every change that was queued
// when it was emitted, in arrival order.
type Rescan struct {
	Changes []core.Event
}

// String implements lifecycle.Event.
func (r Rescan) String() string {
	paths := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		paths[i] = c.String()
	}
	return fmt.Sprintf("RESCAN (%d changes) %s", len(r.Changes), strings.Join(paths, ", "))
}

type rescanSource struct {
	changes <-chan core.Event
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting a Rescan for each burst of
// changes. Changes that arrive while the consumer is still busy with the
// previous Rescan are folded into the next one.
func NewSource(changes <-chan core.Event) lifecycle.Source {
	return &rescanSource{
		changes: changes,
		out:     make(chan lifecycle.Event),
	}
}

func (s *rescanSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *rescanSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var first core.Event
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.changes:
				if !ok {
					return nil
				}
				first = e
			}

			batch, open := s.drain(first)
			select {
			case s.out <- Rescan{Changes: batch}:
			case <-ctx.Done():
				return nil
			}
			if !open {
				return nil
			}
		}
	})
	return nil
}

// drain collects the changes already queued behind first. It reports false
// once the change channel is closed.
func (s *rescanSource) drain(first core.Event) ([]core.Event, bool) {
	batch := []core.Event{first}
	for {
		select {
		case e, ok := <-s.changes:
			if !ok {
				return batch, false
			}
			batch = append(batch, e)
		default:
			return batch, true
		}
	}
}
