// Package jobs runs the background work of the dashboard: named functions
// bound to events delivered through a Redis queue.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"stockdash/internal/model"
)

const (
	MaxAttempts = 3

	defaultRetryDelay = 5 * time.Second
	defaultPopTimeout = 5 * time.Second
)

type Func func(ctx context.Context, event model.Event) error

type Runner struct {
	queue       *Queue
	funcs       map[string]Func
	maxAttempts int
	retryDelay  time.Duration
	popTimeout  time.Duration
}

func NewRunner(queue *Queue) *Runner {
	return &Runner{
		queue:       queue,
		funcs:       make(map[string]Func),
		maxAttempts: MaxAttempts,
		retryDelay:  defaultRetryDelay,
		popTimeout:  defaultPopTimeout,
	}
}

// Handle binds fn to the event name, replacing any earlier binding.
func (r *Runner) Handle(name string, fn Func) {
	r.funcs[name] = fn
}

// Run processes events until ctx is cancelled or the queue fails.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		event, err := r.queue.Pop(ctx, r.popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("error popping from event queue", "error", err)
			return err
		}

		if event == nil {
			continue
		}

		r.Process(ctx, *event)
	}
}

// Process runs the function bound to event. Failed events go back on the
// queue until they have used up their attempts, then to the dead letter list.
func (r *Runner) Process(ctx context.Context, event model.Event) {
	fn, ok := r.funcs[event.Name]
	if !ok {
		slog.Warn("no function bound to event, moving to dead letter", "event", event.Name, "event_id", event.ID)
		r.deadLetter(ctx, event)
		return
	}

	err := fn(ctx, event)
	if err == nil {
		slog.Info("event processed", "event", event.Name, "event_id", event.ID)
		return
	}

	event.Attempts++
	if event.Attempts >= r.maxAttempts {
		slog.Warn("event exceeded max attempts, moving to dead letter", "event", event.Name, "event_id", event.ID, "attempts", event.Attempts, "error", err)
		r.deadLetter(ctx, event)
		return
	}

	slog.Error("error processing event, retrying", "event", event.Name, "event_id", event.ID, "attempts", event.Attempts, "error", err)
	if err := r.queue.Publish(ctx, event); err != nil {
		slog.Error("error requeueing event", "event_id", event.ID, "error", err)
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(r.retryDelay):
	}
}

func (r *Runner) deadLetter(ctx context.Context, event model.Event) {
	if err := r.queue.DeadLetter(ctx, event); err != nil {
		slog.Error("error moving event to dead letter", "event_id", event.ID, "error", err)
	}
}
