package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"equishare-storefront/internal/logger"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// FulfillmentHandler applies one fulfillment event. Returning an error leaves
// the message uncommitted.
type FulfillmentHandler func(ctx context.Context, ev FulfillmentEvent) error

type FulfillmentConsumer struct {
	reader  messageReader
	handler FulfillmentHandler
}

func NewFulfillmentConsumer(brokers []string, topic, groupID string, handler FulfillmentHandler) *FulfillmentConsumer {
	return &FulfillmentConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
		handler: handler,
	}
}

// Run consumes until ctx is cancelled. Malformed messages are committed and
// skipped; handler failures stop the loop so the message is redelivered.
func (c *FulfillmentConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("failed to fetch fulfillment message: %w", err)
		}

		var ev FulfillmentEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil || ev.OrderID == 0 || !ev.Status.Valid() {
			logger.Warn("Skipping malformed fulfillment event", "offset", msg.Offset, "partition", msg.Partition, "error", err)
		} else if err := c.handler(ctx, ev); err != nil {
			logger.Error("Fulfillment handler failed", "orderID", ev.OrderID, "error", err)
			return fmt.Errorf("failed to apply fulfillment event for order %d: %w", ev.OrderID, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("failed to commit fulfillment message: %w", err)
		}
	}
}

func (c *FulfillmentConsumer) Close() error {
	return c.reader.Close()
}
