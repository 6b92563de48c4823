// Package events carries order lifecycle messages over Kafka.
package events

import (
	"time"

	"github.com/google/uuid"

	"equishare-storefront/internal/domain"
)

// OrderPlacedEvent is published when a session completes checkout.
type OrderPlacedEvent struct {
	EventID         string             `json:"eventId"`
	OrderID         int64              `json:"orderId"`
	SessionID       string             `json:"sessionId"`
	ActorID         int64              `json:"actorId,omitempty"`
	Lines           []domain.OrderLine `json:"lines"`
	TotalCents      int64              `json:"totalCents"`
	DurationDays    int                `json:"durationDays"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Phone           string             `json:"phone"`
	Status          domain.OrderStatus `json:"status"`
	Timestamp       time.Time          `json:"timestamp"`
}

// FulfillmentEvent reports a status change decided by fulfillment.
type FulfillmentEvent struct {
	EventID   string             `json:"eventId,omitempty"`
	OrderID   int64              `json:"orderId"`
	SessionID string             `json:"sessionId"`
	Status    domain.OrderStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp,omitempty"`
}

func NewOrderPlacedEvent(sessionID string, o domain.OrderRecord, now time.Time) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventID:         uuid.NewString(),
		OrderID:         o.ID,
		SessionID:       sessionID,
		ActorID:         o.ActorID,
		Lines:           o.Lines,
		TotalCents:      o.TotalCents,
		DurationDays:    o.DurationDays,
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		Status:          o.Status,
		Timestamp:       now,
	}
}
