package bus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	b := New(nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.SubscribeCartUpdated(ctx)
	require.NoError(t, err)
	second, err := b.SubscribeCartUpdated(ctx)
	require.NoError(t, err)

	require.NoError(t, b.PublishCartUpdated(CartEvent{Action: "add", ProductID: "p1"}))

	for _, events := range []<-chan CartEvent{first, second} {
		select {
		case event := <-events:
			assert.Equal(t, "add", event.Action)
			assert.Equal(t, "p1", event.ProductID)
			assert.False(t, event.At.IsZero())
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for cart event")
		}
	}
}

func TestBusSubscriptionEndsOnCancel(t *testing.T) {
	b := New(nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := b.SubscribeCartUpdated(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestBusPreservesTimestamp(t *testing.T) {
	b := New(nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := b.SubscribeCartUpdated(ctx)
	require.NoError(t, err)

	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, b.PublishCartUpdated(CartEvent{Action: "remove", ProductID: "p2", At: at}))

	select {
	case event := <-events:
		assert.True(t, event.At.Equal(at))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for cart event")
	}
}
