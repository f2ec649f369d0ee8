package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Outbox queues messages for the mail worker. Delivery is fire-and-forget
// from the enqueuing request's point of view.
type Outbox struct {
	rdb   *redis.Client
	queue string
}

func NewOutbox(rdb *redis.Client, queue string) *Outbox {
	return &Outbox{rdb: rdb, queue: queue}
}

func (o *Outbox) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal mail message: %w", err)
	}
	if err := o.rdb.LPush(ctx, o.queue, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail message: %w", err)
	}
	return nil
}
