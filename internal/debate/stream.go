package debate

import (
	"context"
	"strings"
	"time"

	"github.com/nexusdebate/pkg/models"
)

// EventKind tags every item yielded by the streaming driver so callers
// branch on the tag, never on type introspection.
type EventKind string

const (
	EventMessage  EventKind = "message"
	EventComplete EventKind = "complete"
	EventError    EventKind = "error"
)

// Event is one item emitted by Stream: either a single debate message,
// the terminal completed context, or a terminal error.
type Event struct {
	Kind    EventKind
	Message *models.DebateMessage
	Final   *Context
	Err     error
}

// Stream runs the same transition table as Run but emits every message
// as it becomes available, for incremental rendering. Pacing delays
// are cosmetic: they shape delivery timing for a live UI and are fully
// cancellable, but the message sequence is identical to Run's for the
// same query and agent behavior.
//
// The channel closes after exactly one terminal event (complete or
// error).
func (e *Engine) Stream(ctx context.Context, query, sessionID string) <-chan Event {
	// One slot of buffer so a terminal event sent after cancellation
	// does not block the producer goroutine.
	out := make(chan Event, 1)

	go func() {
		defer close(out)

		if strings.TrimSpace(query) == "" {
			tryEmit(out, Event{Kind: EventError, Err: ErrEmptyQuery})
			return
		}

		dc := newContext(query, sessionID)
		emitted := 0

		for dc.State != StateComplete {
			// Simulated "thinking" pause before each non-initial phase.
			if dc.State != StateInit {
				if !e.pause(ctx, e.pacing.Thinking) {
					tryEmit(out, Event{Kind: EventError, Final: dc, Err: ctx.Err()})
					return
				}
			}

			if err := e.executeState(ctx, dc); err != nil {
				tryEmit(out, Event{Kind: EventError, Final: dc, Err: err})
				return
			}

			// Yield every message appended during this step.
			for ; emitted < len(dc.Messages); emitted++ {
				msg := dc.Messages[emitted]
				if !emit(ctx, out, Event{Kind: EventMessage, Message: &msg}) {
					return
				}
				if !e.pause(ctx, e.pacing.Message) {
					tryEmit(out, Event{Kind: EventError, Final: dc, Err: ctx.Err()})
					return
				}
			}

			dc.State = transitions[dc.State]
		}

		emit(ctx, out, Event{Kind: EventComplete, Final: dc})
	}()

	return out
}

// emit sends one event unless the consumer is gone.
func emit(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// tryEmit delivers a terminal event without ever blocking.
func tryEmit(out chan<- Event, ev Event) {
	select {
	case out <- ev:
	default:
	}
}

// pause sleeps for d, returning false if the context was cancelled.
func (e *Engine) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
