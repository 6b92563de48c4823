package order

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equishare-storefront/internal/cart"
	"equishare-storefront/internal/domain"
)

var now = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func filledCart() cart.Cart {
	a := domain.CatalogItem{ID: 1, Name: "A", PricePerDayCents: 150, Category: domain.CategoryPowerTools}
	return cart.Cart{}.Add(a).Add(a)
}

func validDetails() domain.CheckoutDetails {
	return domain.CheckoutDetails{DeliveryAddress: "Addr", Phone: "555-0100"}
}

func TestBuild_Success(t *testing.T) {
	o, err := Build(filledCart(), Request{ID: 7, ActorID: 1, DurationDays: 3, Details: validDetails(), Now: now})
	require.NoError(t, err)

	assert.Equal(t, int64(7), o.ID)
	assert.Equal(t, int64(900), o.TotalCents)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, 3, o.DurationDays)
	assert.Equal(t, now, o.CreatedAt)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, 2, o.Lines[0].Quantity)
	assert.Equal(t, 3, o.Lines[0].Days)
}

func TestBuild_ValidationOrder(t *testing.T) {
	tests := []struct {
		name     string
		cart     cart.Cart
		days     int
		details  domain.CheckoutDetails
		expected error
	}{
		{"Empty cart wins over everything", cart.Cart{}, 0, domain.CheckoutDetails{}, domain.ErrEmptyCart},
		{"Duration before address", filledCart(), 0, domain.CheckoutDetails{}, domain.ErrInvalidDuration},
		{"Negative duration", filledCart(), -2, validDetails(), domain.ErrInvalidDuration},
		{"Duration past the longest option", filledCart(), MaxDurationDays + 1, validDetails(), domain.ErrInvalidDuration},
		{"Duration far out of range", filledCart(), math.MaxInt64 / 200, validDetails(), domain.ErrInvalidDuration},
		{"Address before phone", filledCart(), 1, domain.CheckoutDetails{}, domain.ErrMissingAddress},
		{"Blank address", filledCart(), 1, domain.CheckoutDetails{DeliveryAddress: "   ", Phone: "1"}, domain.ErrMissingAddress},
		{"Missing phone", filledCart(), 1, domain.CheckoutDetails{DeliveryAddress: "Addr"}, domain.ErrMissingContact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.cart, Request{DurationDays: tt.days, Details: tt.details, Now: now})
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)

			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestBuild_DurationOptions(t *testing.T) {
	assert.Equal(t, 30, MaxDurationDays)
	for _, days := range DurationOptions {
		_, err := Build(filledCart(), Request{DurationDays: days, Details: validDetails(), Now: now})
		assert.NoError(t, err, "days=%d", days)
	}
}

func TestBuild_TotalOverflow(t *testing.T) {
	t.Run("Subtotal does not fit", func(t *testing.T) {
		big := domain.CatalogItem{ID: 2, Name: "Big", PricePerDayCents: math.MaxInt64/2 + 1}
		_, err := Build(cart.Cart{}.Add(big).Add(big), Request{DurationDays: 1, Details: validDetails(), Now: now})
		assert.ErrorIs(t, err, domain.ErrAmountTooLarge)
	})

	t.Run("Subtotal times days does not fit", func(t *testing.T) {
		big := domain.CatalogItem{ID: 2, Name: "Big", PricePerDayCents: math.MaxInt64 / 10}
		_, err := Build(cart.Cart{}.Add(big), Request{DurationDays: 30, Details: validDetails(), Now: now})
		assert.ErrorIs(t, err, domain.ErrAmountTooLarge)

		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "total", ve.Field)
	})

	t.Run("Largest representable total", func(t *testing.T) {
		item := domain.CatalogItem{ID: 2, Name: "Big", PricePerDayCents: math.MaxInt64 / 30}
		o, err := Build(cart.Cart{}.Add(item), Request{DurationDays: 30, Details: validDetails(), Now: now})
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64/30)*30, o.TotalCents)
	})
}

func TestTransitions(t *testing.T) {
	assert.True(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusActive))
	assert.True(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusCancelled))
	assert.True(t, CanTransition(domain.OrderStatusActive, domain.OrderStatusCompleted))
	assert.False(t, CanTransition(domain.OrderStatusActive, domain.OrderStatusCancelled))
	assert.False(t, CanTransition(domain.OrderStatusCompleted, domain.OrderStatusActive))
	assert.False(t, CanTransition(domain.OrderStatusCancelled, domain.OrderStatusPending))
	assert.False(t, CanTransition(domain.OrderStatusPending, domain.OrderStatusCompleted))

	o, err := Build(filledCart(), Request{ID: 1, DurationDays: 1, Details: validDetails(), Now: now})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	active, err := Transition(o, domain.OrderStatusActive, later)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusActive, active.Status)
	assert.Equal(t, later, active.UpdatedAt)
	assert.Equal(t, domain.OrderStatusPending, o.Status)

	_, err = Transition(active, domain.OrderStatusCancelled, later)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestNextID(t *testing.T) {
	first := NextID(0, now)
	assert.Equal(t, now.UnixMilli(), first)

	second := NextID(first, now)
	assert.Equal(t, first+1, second)

	back := NextID(second, now.Add(-time.Hour))
	assert.Equal(t, second+1, back)

	ahead := NextID(back, now.Add(time.Second))
	assert.Equal(t, now.Add(time.Second).UnixMilli(), ahead)
}

func TestSequence_UniqueAcrossGoroutines(t *testing.T) {
	var seq Sequence
	const workers, per = 8, 50

	ids := make(chan int64, workers*per)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range per {
				ids <- seq.Next(now)
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*per)
	assert.Equal(t, now.UnixMilli()+workers*per-1, seq.Next(now)-1)
}
