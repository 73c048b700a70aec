package events

import "context"

// EventPublisher defines the interface for sending and receiving events.
// This interface allows for loose coupling and easier testing by depending
// on behavior rather than concrete implementation.
type EventPublisher interface {
	// SendEvent delivers an event to the current subscribers
	SendEvent(event Event) error

	// Subscribe streams events for userID ("" for every user) until ctx is done
	Subscribe(ctx context.Context, userID string) (<-chan Event, error)

	// Close ends all subscriptions
	Close() error
}

// Compile-time verification that *Broker implements EventPublisher
var _ EventPublisher = (*Broker)(nil)
