package i

import (
	"context"

	"github.com/akeshari98/wall-robot-control-system/trajectory"
)

// EventBus is the publish/subscribe channel for trajectory lifecycle
// notifications. The planning service only publishes; subscription is
// for fan-out surfaces such as the event stream endpoint.
type EventBus interface {
	// Publish sends one event to every subscriber of the channel.
	Publish(ctx context.Context, event trajectory.Event) error

	// Subscribe returns a stream of events and a cleanup function that
	// must be called to release the subscription.
	Subscribe(ctx context.Context) (<-chan trajectory.Event, func(), error)
}
