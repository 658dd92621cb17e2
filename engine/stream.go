package engine

import (
	"context"

	"github.com/hupe1980/agentgate/core"
	"github.com/hupe1980/agentgate/model"
)

// Stream is a finite, non-restartable sequence of generation events plus the
// run's final result. Events arrive in strict emission order. Consumers that
// stop draining early forfeit intermediate events but may still call Wait for
// the final messages and error.
type Stream struct {
	events chan core.StreamEvent
	done   chan struct{}

	messages []core.Message
	err      error
}

// Events returns the event channel. It is closed after the terminal finish
// (or error) event once the underlying loop halts.
func (s *Stream) Events() <-chan core.StreamEvent { return s.events }

// Wait blocks until the run completes and returns the produced messages and
// the terminal error, matching the blocking Run contract.
func (s *Stream) Wait() ([]core.Message, error) {
	<-s.done
	return s.messages, s.err
}

// RunStream executes the bounded loop while exposing every intermediate
// generation event. The producer is not throttled by a slow consumer beyond
// the event buffer; if the buffer fills, emission blocks until the consumer
// catches up or ctx is cancelled. Cancelling ctx is the supported way to
// abandon a stream: it propagates to the in-flight provider call on a best
// effort basis and unblocks the producer.
func (e *Engine) RunStream(ctx context.Context, m model.Model, instructions string, history []core.Message) *Stream {
	s := &Stream{
		events: make(chan core.StreamEvent, e.opts.EventBufferSize),
		done:   make(chan struct{}),
	}

	emit := func(ev core.StreamEvent) {
		select {
		case s.events <- ev:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(s.done)
		defer close(s.events)

		msgs, err := e.run(ctx, m, instructions, history, emit)
		if err != nil {
			emit(core.ErrorEvent{Message: err.Error()})
		}

		s.messages = msgs
		s.err = err
	}()

	return s
}
