// Package order turns a cart snapshot into an immutable order record and
// encodes the order status lifecycle.
package order

import (
	"slices"
	"strings"
	"time"

	"equishare-storefront/internal/cart"
	"equishare-storefront/internal/domain"
)

// DurationOptions are the rental durations, in days, offered at checkout.
var DurationOptions = []int{1, 2, 3, 4, 5, 6, 7, 14, 21, 30}

// MaxDurationDays is the longest rental accepted at checkout.
var MaxDurationDays = slices.Max(DurationOptions)

// Request is everything Build needs besides the cart.
type Request struct {
	ID           int64
	ActorID      int64
	DurationDays int
	Details      domain.CheckoutDetails
	Now          time.Time
}

// Validate checks checkout preconditions. The first failure wins, in the order
// empty cart, duration (1 to MaxDurationDays), address, phone.
func Validate(c cart.Cart, durationDays int, details domain.CheckoutDetails) error {
	if c.IsEmpty() {
		return domain.NewValidationError("cart", domain.ErrEmptyCart)
	}
	if durationDays < 1 || durationDays > MaxDurationDays {
		return domain.NewValidationError("duration_days", domain.ErrInvalidDuration)
	}
	if strings.TrimSpace(details.DeliveryAddress) == "" {
		return domain.NewValidationError("delivery_address", domain.ErrMissingAddress)
	}
	if strings.TrimSpace(details.Phone) == "" {
		return domain.NewValidationError("phone", domain.ErrMissingContact)
	}
	return nil
}

// Build validates the request and produces a pending order whose total is the
// cart's per-day subtotal times the rental duration.
func Build(c cart.Cart, req Request) (domain.OrderRecord, error) {
	if err := Validate(c, req.DurationDays, req.Details); err != nil {
		return domain.OrderRecord{}, err
	}
	total, err := Total(c, req.DurationDays)
	if err != nil {
		return domain.OrderRecord{}, err
	}

	cartLines := c.Lines()
	lines := make([]domain.OrderLine, 0, len(cartLines))
	for _, l := range cartLines {
		lines = append(lines, domain.OrderLine{
			ItemID:           l.ItemID,
			Name:             l.Name,
			Category:         l.Category,
			PricePerDayCents: l.PricePerDayCents,
			Quantity:         l.Quantity,
			Days:             req.DurationDays,
		})
	}

	return domain.OrderRecord{
		ID:              req.ID,
		ActorID:         req.ActorID,
		Lines:           lines,
		TotalCents:      total,
		DurationDays:    req.DurationDays,
		DeliveryAddress: strings.TrimSpace(req.Details.DeliveryAddress),
		Phone:           strings.TrimSpace(req.Details.Phone),
		Notes:           req.Details.Notes,
		Status:          domain.OrderStatusPending,
		CreatedAt:       req.Now,
		UpdatedAt:       req.Now,
	}, nil
}

// Total is the cart's per-day subtotal times days. It fails instead of
// wrapping when the amount does not fit in an int64.
func Total(c cart.Cart, days int) (int64, error) {
	subtotal, ok := c.CheckedSubtotalPerDay()
	if !ok {
		return 0, domain.NewValidationError("total", domain.ErrAmountTooLarge)
	}
	total, ok := cart.MulCents(subtotal, int64(days))
	if !ok {
		return 0, domain.NewValidationError("total", domain.ErrAmountTooLarge)
	}
	return total, nil
}
