package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crackthechain/internal/platform/mailer"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MailWorker drains the outbound mail queue and hands each message to the
// sender. Delivery failures are logged, never retried; the queue entry is
// already gone by the time the send is attempted.
type MailWorker struct {
	rdb    *redis.Client
	sender *mailer.Sender
	queue  string
}

func NewMailWorker(rdb *redis.Client, sender *mailer.Sender, queue string) *MailWorker {
	return &MailWorker{rdb: rdb, sender: sender, queue: queue}
}

func (w *MailWorker) Start(ctx context.Context) {
	log.Info().Str("queue", w.queue).Msg("Mail worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Mail worker stopping...")
			return
		default:
			entry, err := w.rdb.BRPop(ctx, 0*time.Second, w.queue).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					time.Sleep(1 * time.Second)
					continue
				}
				log.Error().Err(err).Str("queue", w.queue).Msg("Failed to pop from mail queue")
				time.Sleep(5 * time.Second)
				continue
			}

			// entry is [queueName, value]
			if len(entry) < 2 || entry[1] == "" {
				log.Warn().Msg("Mail queue returned an empty entry")
				continue
			}

			var msg mailer.Message
			if err := json.Unmarshal([]byte(entry[1]), &msg); err != nil {
				log.Error().Err(err).Msg("Failed to decode mail message, dropping it")
				continue
			}

			if err := w.sender.Send(ctx, msg); err != nil {
				log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("Failed to deliver email")
				continue
			}
		}
	}
}
