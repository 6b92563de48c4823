package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("days", ErrInvalidDuration)
	assert.True(t, errors.Is(err, ErrInvalidDuration))
	assert.Equal(t, "days: rental duration must be at least one day", err.Error())

	var ve *ValidationError
	wrapped := fmt.Errorf("checkout: %w", err)
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "days", ve.Field)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("item", 42)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "item 42 not found", err.Error())
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryAll.Valid())
	assert.True(t, CategoryGarden.Valid())
	assert.False(t, Category("Kitchen").Valid())
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusActive.Terminal())
}
