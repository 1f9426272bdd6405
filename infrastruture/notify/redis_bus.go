// Package notify implements the trajectory event bus on Redis pub/sub.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akeshari98/wall-robot-control-system/service/i"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/redis/go-redis/v9"
)

const defaultChannel = "robot_updates"

// RedisBus publishes trajectory lifecycle events on a Redis channel and
// fans them out to local subscribers. Cross-process consumers can attach
// to the same channel directly.
type RedisBus struct {
	client  *redis.Client
	channel string
	logger  i.Logger
}

// NewRedisBus creates a RedisBus on the given channel. An empty channel
// name selects the default.
func NewRedisBus(client *redis.Client, channel string, logger i.Logger) (*RedisBus, error) {
	if client == nil {
		return nil, errors.New("redis bus requires a client")
	}
	if logger == nil {
		return nil, errors.New("redis bus requires a logger")
	}
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisBus{
		client:  client,
		channel: channel,
		logger:  logger,
	}, nil
}

// Publish sends one event to the channel as JSON.
func (b *RedisBus) Publish(ctx context.Context, event trajectory.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", b.channel, err)
	}
	return nil
}

// Subscribe attaches to the channel and returns a stream of decoded
// events. The returned cleanup function closes the subscription and,
// eventually, the stream. Messages that fail to decode are logged and
// dropped rather than tearing the stream down.
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan trajectory.Event, func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	// Force the subscription to be established before returning, so a
	// caller never misses events published right after Subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribing to %s: %w", b.channel, err)
	}

	events := make(chan trajectory.Event)
	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event trajectory.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warning(fmt.Sprintf("Dropping undecodable event on %s: %v", b.channel, err))
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cleanup := func() {
		if err := pubsub.Close(); err != nil {
			b.logger.Warning(fmt.Sprintf("Closing subscription to %s: %v", b.channel, err))
		}
	}
	return events, cleanup, nil
}
