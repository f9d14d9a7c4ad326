// Package notify broadcasts grievance changes over Redis pub/sub so open
// admin dashboards know to reload.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// Event is the message published on the change channel.
type Event struct {
	ID           string    `json:"id"`
	Reason       string    `json:"reason"`
	GrievanceIDs []uint    `json:"grievance_ids"`
	At           time.Time `json:"at"`
}

type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	return &Publisher{
		rdb:     rdb,
		channel: channel,
	}
}

// GrievancesChanged publishes an event. Failures are logged only; a missed
// refresh must never fail the write that triggered it.
func (p *Publisher) GrievancesChanged(reason string, grievanceIDs ...uint) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.Publish(ctx, newEvent(reason, grievanceIDs)); err != nil {
		slog.Warn("change notification failed", "reason", reason, "channel", p.channel, "error", err)
	}
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis PUBLISH: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (p *Publisher) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.rdb.Ping(ctx).Err()
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}

func newEvent(reason string, grievanceIDs []uint) Event {
	if grievanceIDs == nil {
		grievanceIDs = []uint{}
	}
	return Event{
		ID:           uuid.New().String(),
		Reason:       reason,
		GrievanceIDs: grievanceIDs,
		At:           time.Now().UTC(),
	}
}
