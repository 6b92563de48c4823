package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderProducer struct {
	writer  messageWriter
	timeout time.Duration
}

func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		timeout: 10 * time.Second,
	}
}

// PublishOrderPlaced writes the order keyed by id so every event for one order
// lands on the same partition.
func (p *OrderProducer) PublishOrderPlaced(ctx context.Context, sessionID string, order domain.OrderRecord) error {
	event := NewOrderPlacedEvent(sessionID, order, time.Now().UTC())
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", "orderID", order.ID, "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logger.ExternalServiceCall("kafka", "PublishOrderPlaced", "orderID", order.ID, "eventID", event.EventID)
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: payload,
	})
	logger.ExternalServiceResult("kafka", "PublishOrderPlaced", err, "orderID", order.ID)
	return err
}

func (p *OrderProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
