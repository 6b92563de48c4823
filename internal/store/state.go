package store

import (
	"equishare-storefront/internal/cart"
	"equishare-storefront/internal/catalog"
	"equishare-storefront/internal/domain"
)

// State is one immutable snapshot of a session. Slices are shared between
// snapshots and must not be modified by readers.
type State struct {
	Session   *domain.Actor
	Catalog   []domain.CatalogItem
	Cart      cart.Cart
	Orders    []domain.OrderRecord
	Criteria  domain.Criteria
	Locale    domain.Locale
	Loading   bool
	LoadError string

	// CatalogGeneration is the generation of the most recent catalog load.
	CatalogGeneration uint64
	// LastOrderID is the highest order id issued in this session.
	LastOrderID int64
}

// Initial returns the empty state for a new session.
func Initial(locale domain.Locale) State {
	if !locale.Valid() {
		locale = domain.DefaultLocale
	}
	return State{
		Criteria: domain.DefaultCriteria(),
		Locale:   locale,
	}
}

func (s State) SubtotalPerDay() int64 {
	return s.Cart.SubtotalPerDay()
}

func (s State) ItemCount() int {
	return s.Cart.ItemCount()
}

// View derives the visible catalog from the current criteria.
func (s State) View() *catalog.View {
	return catalog.DeriveView(s.Catalog, s.Criteria)
}

func (s State) Categories() []domain.Category {
	return append([]domain.Category(nil), domain.Categories...)
}

func (s State) IsAuthenticated() bool {
	return s.Session != nil
}

// CanCheckout is true for renters and anonymous visitors.
func (s State) CanCheckout() bool {
	return s.Session == nil || s.Session.Role == domain.RoleRenter
}

func (s State) CanManageListings() bool {
	return s.Session != nil && s.Session.Role == domain.RoleOwner
}

// Order returns the order with the given id.
func (s State) Order(id int64) (domain.OrderRecord, bool) {
	for _, o := range s.Orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.OrderRecord{}, false
}
