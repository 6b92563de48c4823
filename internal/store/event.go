package store

import (
	"time"

	"equishare-storefront/internal/domain"
)

type EventKind string

const (
	EventItemAdded          EventKind = "item_added"
	EventCartChanged        EventKind = "cart_changed"
	EventOrderPlaced        EventKind = "order_placed"
	EventCheckoutRejected   EventKind = "checkout_rejected"
	EventCatalogLoaded      EventKind = "catalog_loaded"
	EventSessionChanged     EventKind = "session_changed"
	EventOrderStatusChanged EventKind = "order_status_changed"
)

// Event is published to subscribers after an intent has been applied. Only the
// fields relevant to Kind are set.
type Event struct {
	Kind      EventKind
	At        time.Time
	ItemID    int64
	ItemName  string
	ItemCount int
	Order     *domain.OrderRecord
	Actor     *domain.Actor
	Err       error
}
