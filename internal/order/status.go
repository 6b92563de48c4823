package order

import (
	"time"

	"equishare-storefront/internal/domain"
)

// pending -> active -> completed, or pending -> cancelled
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending: {domain.OrderStatusActive, domain.OrderStatusCancelled},
	domain.OrderStatusActive:  {domain.OrderStatusCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of o in status to, or a validation error.
func Transition(o domain.OrderRecord, to domain.OrderStatus, now time.Time) (domain.OrderRecord, error) {
	if !CanTransition(o.Status, to) {
		return o, domain.NewValidationError("status", domain.ErrInvalidTransition)
	}
	o.Lines = append([]domain.OrderLine(nil), o.Lines...)
	o.Status = to
	o.UpdatedAt = now
	return o, nil
}
