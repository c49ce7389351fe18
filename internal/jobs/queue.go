package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stockdash/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Queue is a FIFO of events on a Redis list, with a second list for events
// that ran out of attempts.
type Queue struct {
	rdb     *redis.Client
	key     string
	deadKey string
}

func NewQueue(rdb *redis.Client, key, deadKey string) *Queue {
	return &Queue{rdb: rdb, key: key, deadKey: deadKey}
}

func (q *Queue) Publish(ctx context.Context, event model.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return q.push(ctx, q.key, event)
}

// Pop waits up to timeout for the next event. It returns nil, nil on timeout.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*model.Event, error) {
	result, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	return &event, nil
}

func (q *Queue) DeadLetter(ctx context.Context, event model.Event) error {
	return q.push(ctx, q.deadKey, event)
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}

func (q *Queue) push(ctx context.Context, key string, event model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	return q.rdb.LPush(ctx, key, data).Err()
}
