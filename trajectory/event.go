package trajectory

import "github.com/google/uuid"

// EventKind discriminates trajectory lifecycle events.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventDeleted EventKind = "deleted"
)

// Event is published on the notification channel whenever a trajectory is
// created or deleted. Exactly one event is emitted per lifecycle change.
type Event struct {
	Kind EventKind `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
