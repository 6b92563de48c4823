package store

import (
	"strings"

	"equishare-storefront/internal/cart"
	"equishare-storefront/internal/catalog"
	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/order"
)

// Outcome reports what a dispatch did. Err carries validation and not-found
// failures; state is unchanged whenever Err is set.
type Outcome struct {
	Changed    bool
	Order      *domain.OrderRecord
	Generation uint64
	Err        error
	Events     []Event
}

func unchanged(err error) Outcome {
	return Outcome{Err: err}
}

func changed(events ...Event) Outcome {
	return Outcome{Changed: true, Events: events}
}

// Reduce applies in to s and returns the next state. It performs no I/O and
// never mutates s; unknown intents return s untouched.
func Reduce(s State, in Intent) (State, Outcome) {
	switch in := in.(type) {
	case SetSession:
		s.Session = in.Actor
		return s, changed(Event{Kind: EventSessionChanged, Actor: in.Actor})

	case AddToCart:
		item, ok := catalog.Lookup(s.Catalog, in.ItemID)
		if !ok {
			return s, unchanged(domain.NewNotFoundError("item", in.ItemID))
		}
		if s.Cart.Quantity(item.ID) >= cart.MaxQuantity {
			return s, unchanged(domain.NewValidationError("quantity", domain.ErrQuantityLimit))
		}
		next := s.Cart.Add(item)
		if _, ok := next.CheckedSubtotalPerDay(); !ok {
			return s, unchanged(domain.NewValidationError("quantity", domain.ErrAmountTooLarge))
		}
		s.Cart = next
		return s, changed(
			Event{Kind: EventItemAdded, ItemID: item.ID, ItemName: item.Name, ItemCount: s.Cart.ItemCount()},
			cartChanged(s),
		)

	case RemoveFromCart:
		if !s.Cart.Contains(in.ItemID) {
			return s, Outcome{}
		}
		s.Cart = s.Cart.Remove(in.ItemID)
		return s, changed(cartChanged(s))

	case SetQuantity:
		next, ok := s.Cart.SetQuantity(in.ItemID, in.Quantity)
		if !ok {
			return s, unchanged(domain.NewNotFoundError("cart line", in.ItemID))
		}
		if in.Quantity > cart.MaxQuantity {
			return s, unchanged(domain.NewValidationError("quantity", domain.ErrQuantityLimit))
		}
		if _, ok := next.CheckedSubtotalPerDay(); !ok {
			return s, unchanged(domain.NewValidationError("quantity", domain.ErrAmountTooLarge))
		}
		s.Cart = next
		return s, changed(cartChanged(s))

	case ClearCart:
		if s.Cart.IsEmpty() {
			return s, Outcome{}
		}
		s.Cart = s.Cart.Clear()
		return s, changed(cartChanged(s))

	case Checkout:
		return checkout(s, in)

	case SetCategory:
		c := in.Category
		if c == "" {
			c = domain.CategoryAll
		}
		s.Criteria.Category = c
		return s, changed()

	case SetSearchTerm:
		s.Criteria.SearchTerm = strings.TrimSpace(in.Term)
		return s, changed()

	case SetSort:
		if in.Key != "" {
			s.Criteria.SortKey = in.Key
		}
		if in.Direction != "" {
			s.Criteria.Direction = in.Direction
		}
		return s, changed()

	case BeginCatalogLoad:
		s.CatalogGeneration++
		s.Loading = true
		s.LoadError = ""
		out := changed()
		out.Generation = s.CatalogGeneration
		return s, out

	case LoadCatalog:
		// Generation 0 is an untracked load: it always applies and leaves any
		// tracked load in flight.
		if in.Generation != 0 {
			if in.Generation < s.CatalogGeneration {
				return s, Outcome{Generation: s.CatalogGeneration}
			}
			s.CatalogGeneration = in.Generation
			s.Loading = false
		}
		s.Catalog = append([]domain.CatalogItem(nil), in.Items...)
		s.LoadError = ""
		out := changed(Event{Kind: EventCatalogLoaded, ItemCount: len(s.Catalog)})
		out.Generation = s.CatalogGeneration
		return s, out

	case CatalogLoadFailed:
		if in.Generation != 0 && in.Generation < s.CatalogGeneration {
			return s, Outcome{Generation: s.CatalogGeneration}
		}
		if in.Generation != 0 {
			s.Loading = false
		}
		s.LoadError = in.Message
		return s, changed()

	case Logout:
		next := Initial(s.Locale)
		next.Catalog = s.Catalog
		next.CatalogGeneration = s.CatalogGeneration
		next.LastOrderID = s.LastOrderID
		return next, changed(Event{Kind: EventSessionChanged}, cartChanged(next))

	case SetLocale:
		if !in.Locale.Valid() {
			return s, unchanged(domain.NewValidationError("locale", domain.ErrUnsupportedLocale))
		}
		s.Locale = in.Locale
		return s, changed()

	case SetOrderStatus:
		return setOrderStatus(s, in)

	case LoadOrders:
		s.Orders = append([]domain.OrderRecord(nil), in.Orders...)
		for _, o := range s.Orders {
			s.LastOrderID = max(s.LastOrderID, o.ID)
		}
		return s, changed()
	}

	return s, Outcome{}
}

func cartChanged(s State) Event {
	return Event{Kind: EventCartChanged, ItemCount: s.Cart.ItemCount()}
}

func checkout(s State, in Checkout) (State, Outcome) {
	reject := func(err error) (State, Outcome) {
		return s, Outcome{Err: err, Events: []Event{{Kind: EventCheckoutRejected, Err: err}}}
	}

	if !s.CanCheckout() {
		return reject(domain.NewValidationError("session", domain.ErrCheckoutForbidden))
	}

	var actorID int64
	if s.Session != nil {
		actorID = s.Session.ID
	}
	id := in.ID
	if id <= s.LastOrderID {
		id = order.NextID(s.LastOrderID, in.At)
	}
	rec, err := order.Build(s.Cart, order.Request{
		ID:           id,
		ActorID:      actorID,
		DurationDays: in.DurationDays,
		Details:      in.Details,
		Now:          in.At,
	})
	if err != nil {
		return reject(err)
	}

	s.Orders = append(append([]domain.OrderRecord(nil), s.Orders...), rec)
	s.Cart = s.Cart.Clear()
	s.LastOrderID = id

	out := changed(Event{Kind: EventOrderPlaced, Order: &rec}, cartChanged(s))
	out.Order = &rec
	return s, out
}

func setOrderStatus(s State, in SetOrderStatus) (State, Outcome) {
	idx := -1
	for i, o := range s.Orders {
		if o.ID == in.OrderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, unchanged(domain.NewNotFoundError("order", in.OrderID))
	}

	current := s.Orders[idx]
	if current.Status == in.Status {
		return s, Outcome{Order: &current}
	}
	next, err := order.Transition(current, in.Status, in.At)
	if err != nil {
		return s, unchanged(err)
	}

	orders := append([]domain.OrderRecord(nil), s.Orders...)
	orders[idx] = next
	s.Orders = orders

	out := changed(Event{Kind: EventOrderStatusChanged, Order: &next})
	out.Order = &next
	return s, out
}
