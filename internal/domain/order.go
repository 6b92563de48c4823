package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusActive    OrderStatus = "active"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusActive, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type OrderLine struct {
	ItemID           int64    `json:"item_id"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	Quantity         int      `json:"quantity"`
	Days             int      `json:"days"`
}

// OrderRecord is the immutable snapshot produced at checkout. Only Status and
// UpdatedAt change afterwards, driven by fulfillment events.
type OrderRecord struct {
	ID              int64       `json:"id"`
	ActorID         int64       `json:"actor_id,omitempty"`
	Lines           []OrderLine `json:"lines"`
	TotalCents      int64       `json:"total_cents"`
	DurationDays    int         `json:"duration_days"`
	DeliveryAddress string      `json:"delivery_address"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes,omitempty"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CheckoutDetails carries the delivery information entered at checkout.
type CheckoutDetails struct {
	DeliveryAddress string `json:"delivery_address"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`
}
