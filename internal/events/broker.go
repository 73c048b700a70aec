package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// subscriberBuffer is the number of undelivered events a slow subscriber may
// hold before new events are dropped for it
const subscriberBuffer = 32

type subscriber struct {
	userID string
	ch     chan Event
}

// Broker fans events out to in-process subscribers
type Broker struct {
	mu     sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
	done   chan struct{}

	sequence atomic.Int64
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[uint64]*subscriber),
		done: make(chan struct{}),
	}
}

// SendEvent stamps the event and delivers it without blocking. Subscribers
// whose buffer is full miss the event.
func (b *Broker) SendEvent(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.SequenceID = b.sequence.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	for id, sub := range b.subs {
		if sub.userID != "" && sub.userID != event.UserID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			slog.Warn("dropping event for slow subscriber",
				"subscriber", id,
				"event_type", event.Type,
				"user_id", event.UserID)
		}
	}
	return nil
}

// Subscribe registers a subscriber. The returned channel is closed when ctx
// is done or the broker is closed.
func (b *Broker) Subscribe(ctx context.Context, userID string) (<-chan Event, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBrokerClosed
	}
	id := b.nextID
	b.nextID++
	sub := &subscriber{userID: userID, ch: make(chan Event, subscriberBuffer)}
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.remove(id)
	}()

	return sub.ch, nil
}

// Subscribers returns the number of active subscriptions
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription. Further sends fail with ErrBrokerClosed.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	return nil
}

func (b *Broker) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}
