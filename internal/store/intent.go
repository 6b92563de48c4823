package store

import (
	"time"

	"equishare-storefront/internal/domain"
)

// Intent is a request to change application state. The set of intents is
// closed: only types in this package implement it.
type Intent interface {
	intent()
}

type SetSession struct {
	Actor *domain.Actor
}

type AddToCart struct {
	ItemID int64
}

type RemoveFromCart struct {
	ItemID int64
}

// SetQuantity sets an exact line quantity. Zero or less removes the line.
type SetQuantity struct {
	ItemID   int64
	Quantity int
}

type ClearCart struct{}

// Checkout turns the cart into an order. At is stamped by the Store when left
// zero. ID is used when it is above the session's last order id; otherwise
// one is derived from At.
type Checkout struct {
	DurationDays int
	Details      domain.CheckoutDetails
	At           time.Time
	ID           int64
}

type SetCategory struct {
	Category domain.Category
}

type SetSearchTerm struct {
	Term string
}

type SetSort struct {
	Key       domain.SortKey
	Direction domain.SortDirection
}

// BeginCatalogLoad starts a new catalog load and reserves its generation.
type BeginCatalogLoad struct{}

// LoadCatalog replaces the catalog. Results older than the latest
// BeginCatalogLoad are dropped. Generation 0 marks an untracked load, which
// always applies.
type LoadCatalog struct {
	Items      []domain.CatalogItem
	Generation uint64
}

type CatalogLoadFailed struct {
	Generation uint64
	Message    string
}

// Logout resets the state to its defaults, keeping only the locale.
type Logout struct{}

type SetLocale struct {
	Locale domain.Locale
}

// SetOrderStatus applies a fulfillment update to a placed order.
type SetOrderStatus struct {
	OrderID int64
	Status  domain.OrderStatus
	At      time.Time
}

// LoadOrders replaces the order history with the server's copy.
type LoadOrders struct {
	Orders []domain.OrderRecord
}

func (SetSession) intent()        {}
func (AddToCart) intent()         {}
func (RemoveFromCart) intent()    {}
func (SetQuantity) intent()       {}
func (ClearCart) intent()         {}
func (Checkout) intent()          {}
func (SetCategory) intent()       {}
func (SetSearchTerm) intent()     {}
func (SetSort) intent()           {}
func (BeginCatalogLoad) intent()  {}
func (LoadCatalog) intent()       {}
func (CatalogLoadFailed) intent() {}
func (Logout) intent()            {}
func (SetLocale) intent()         {}
func (SetOrderStatus) intent()    {}
func (LoadOrders) intent()        {}
