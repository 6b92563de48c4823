package session

import (
	"context"
	"errors"
	"time"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/events"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/store"
)

// StatusUpdater persists order status changes.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error
}

// FulfillmentHandler stores each status change and mirrors it into the owning
// session when that session is still live. Unknown orders and illegal
// transitions are logged and skipped.
func FulfillmentHandler(m *Manager, orders StatusUpdater) events.FulfillmentHandler {
	return func(ctx context.Context, ev events.FulfillmentEvent) error {
		at := ev.Timestamp
		if at.IsZero() {
			at = m.clock()
		}

		err := orders.UpdateStatus(ctx, ev.OrderID, ev.Status, at)
		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.As(err, &ve):
			logger.Warn("Ignoring fulfillment event", "orderID", ev.OrderID, "status", ev.Status, "error", err)
			return nil
		case err != nil:
			return err
		}

		s, ok := m.Lookup(ev.SessionID)
		if !ok {
			return nil
		}
		out := s.Store.Dispatch(store.SetOrderStatus{OrderID: ev.OrderID, Status: ev.Status, At: at})
		if out.Err != nil {
			logger.Debug("Session did not accept status change", "sessionID", ev.SessionID, "orderID", ev.OrderID, "error", out.Err)
		}
		return nil
	}
}
