package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// failingPublisher always fails to send
type failingPublisher struct {
	attempts int
}

func (f *failingPublisher) SendEvent(Event) error {
	f.attempts++
	return errors.New("simulated send failure")
}

func (f *failingPublisher) Subscribe(context.Context, string) (<-chan Event, error) {
	return nil, nil
}

func (f *failingPublisher) Close() error { return nil }

func TestPublish_NilClient(t *testing.T) {
	assert.NotPanics(t, func() {
		Publish(nil, Event{Type: EventTreeChanged})
	})
}

func TestPublish_SwallowsErrors(t *testing.T) {
	f := &failingPublisher{}
	Publish(f, Event{Type: EventSettingsChanged, UserID: "u1"})
	assert.Equal(t, 1, f.attempts)
}
