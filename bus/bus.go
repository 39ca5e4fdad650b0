package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicCartUpdated carries a signal whenever the persisted cart changes,
// so every open view can refresh its displayed cart and item count.
const TopicCartUpdated = "cart.updated"

// CartEvent describes a cart mutation.
type CartEvent struct {
	Action    string    `json:"action"`
	ProductID string    `json:"product_id,omitempty"`
	At        time.Time `json:"at"`
}

// Bus is the in-process publish-subscribe channel between views, so a
// cart change made in one view shows up everywhere without a reload.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func New(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 16,
		}, logger),
	}
}

// PublishCartUpdated broadcasts a cart mutation to all current subscribers.
// Delivery is fire-and-forget.
func (b *Bus) PublishCartUpdated(event CartEvent) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cart event: %w", err)
	}
	return b.pubSub.Publish(TopicCartUpdated, message.NewMessage(watermill.NewUUID(), payload))
}

// SubscribeCartUpdated delivers cart events until ctx is cancelled. A view
// subscribes for its lifetime and tears the subscription down by
// cancelling the context.
func (b *Bus) SubscribeCartUpdated(ctx context.Context) (<-chan CartEvent, error) {
	messages, err := b.pubSub.Subscribe(ctx, TopicCartUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", TopicCartUpdated, err)
	}

	events := make(chan CartEvent)
	go func() {
		defer close(events)
		for msg := range messages {
			var event CartEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
