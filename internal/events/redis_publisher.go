package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "devboard:events:" // Pub/Sub channel per entity: devboard:events:{entity}
	recentKey     = "devboard:events:recent"
	recentLimit   = 1000
)

// RedisPublisher fans events out on a per-entity Pub/Sub channel and keeps
// the most recent ones in a capped list for late readers.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, Channel(e.Entity), data)
	pipe.LPush(ctx, recentKey, data)
	pipe.LTrim(ctx, recentKey, 0, recentLimit-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (p *RedisPublisher) Recent(ctx context.Context, n int64) ([]Event, error) {
	raw, err := p.client.LRange(ctx, recentKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent events: %w", err)
	}

	out := make([]Event, 0, len(raw))
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Channel is the Pub/Sub channel carrying events for entity.
func Channel(entity string) string {
	return channelPrefix + entity
}
