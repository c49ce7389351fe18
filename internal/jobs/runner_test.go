package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"stockdash/internal/model"

	"github.com/go-playground/assert/v2"
)

func newTestRunner(t *testing.T) (*Runner, *Queue) {
	t.Helper()
	q, _ := newTestQueue(t)
	r := NewRunner(q)
	r.retryDelay = 0
	r.popTimeout = 50 * time.Millisecond
	return r, q
}

func TestRunner_ProcessSuccess(t *testing.T) {
	r, q := newTestRunner(t)
	ctx := context.Background()

	var got model.Event
	r.Handle("app/test", func(ctx context.Context, event model.Event) error {
		got = event
		return nil
	})

	r.Process(ctx, model.Event{ID: "ev-1", Name: "app/test"})

	assert.Equal(t, "ev-1", got.ID)
	n, _ := q.Len(ctx)
	assert.Equal(t, int64(0), n)
}

func TestRunner_ProcessFailureRequeues(t *testing.T) {
	r, q := newTestRunner(t)
	ctx := context.Background()

	r.Handle("app/test", func(ctx context.Context, event model.Event) error {
		return errors.New("boom")
	})

	r.Process(ctx, model.Event{ID: "ev-1", Name: "app/test"})

	ev, err := q.Pop(ctx, time.Second)
	assert.Equal(t, nil, err)
	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, 1, ev.Attempts)
}

func TestRunner_ProcessDeadLettersAfterMaxAttempts(t *testing.T) {
	r, q := newTestRunner(t)
	ctx := context.Background()

	r.Handle("app/test", func(ctx context.Context, event model.Event) error {
		return errors.New("boom")
	})

	r.Process(ctx, model.Event{ID: "ev-1", Name: "app/test", Attempts: MaxAttempts - 1})

	n, _ := q.Len(ctx)
	assert.Equal(t, int64(0), n)

	dead, err := q.rdb.LLen(ctx, q.deadKey).Result()
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), dead)
}

func TestRunner_ProcessUnknownEvent(t *testing.T) {
	r, q := newTestRunner(t)
	ctx := context.Background()

	r.Process(ctx, model.Event{ID: "ev-1", Name: "app/unknown"})

	dead, err := q.rdb.LLen(ctx, q.deadKey).Result()
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), dead)
}

func TestRunner_RunRetriesUntilSuccess(t *testing.T) {
	r, q := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan struct{})
	r.Handle("app/test", func(ctx context.Context, event model.Event) error {
		if calls.Add(1) < 2 {
			return errors.New("flaky")
		}
		close(done)
		return nil
	})

	assert.Equal(t, nil, q.Publish(ctx, model.Event{Name: "app/test"}))

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("event was not retried")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.Equal(t, nil, err)
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, int32(2), calls.Load())
}
