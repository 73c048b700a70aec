package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed before event arrived")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_DeliversToMatchingUser(t *testing.T) {
	b := NewBroker()
	defer func() { _ = b.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice, err := b.Subscribe(ctx, "alice")
	require.NoError(t, err)
	everyone, err := b.Subscribe(ctx, "")
	require.NoError(t, err)

	require.NoError(t, b.SendEvent(Event{Type: EventTreeChanged, UserID: "bob"}))
	require.NoError(t, b.SendEvent(Event{Type: EventTreeChanged, UserID: "alice", Member: "John"}))

	got := receive(t, alice)
	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, "John", got.Member)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())

	first := receive(t, everyone)
	second := receive(t, everyone)
	assert.Equal(t, "bob", first.UserID)
	assert.Equal(t, "alice", second.UserID)
	assert.Less(t, first.SequenceID, second.SequenceID)
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker()
	defer func() { _ = b.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Subscribers())

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected closed channel")
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}
	assert.Equal(t, 0, b.Subscribers())
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	defer func() { _ = b.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := b.Subscribe(ctx, "")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range subscriberBuffer * 3 {
			_ = b.SendEvent(Event{Type: EventTreeChanged})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SendEvent blocked on a full subscriber")
	}
}

func TestBroker_Closed(t *testing.T) {
	b := NewBroker()

	ch, err := b.Subscribe(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed by Close")
	}

	assert.ErrorIs(t, b.SendEvent(Event{}), ErrBrokerClosed)
	_, err = b.Subscribe(context.Background(), "")
	assert.ErrorIs(t, err, ErrBrokerClosed)
}
