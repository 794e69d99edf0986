package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gymguider/fitness-api/internal/core/domain"
)

const defaultChannel = "gymguider.events"

// EventPublisher fans domain events out over Redis pub/sub as JSON.
type EventPublisher struct {
	client  *redis.Client
	channel string
}

func NewEventPublisher(client *redis.Client, channel string) *EventPublisher {
	if channel == "" {
		channel = defaultChannel
	}
	return &EventPublisher{client: client, channel: channel}
}

// Send publishes event on the configured channel.
func (p *EventPublisher) Send(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}
