package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidDuration   = errors.New("rental duration must be at least one day")
	ErrMissingAddress    = errors.New("delivery address is required")
	ErrMissingContact    = errors.New("contact phone is required")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrNotFound          = errors.New("not found")
	ErrCheckoutForbidden = errors.New("owner accounts cannot place rental orders")
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrQuantityLimit     = errors.New("quantity exceeds the per-item limit")
	ErrAmountTooLarge    = errors.New("amount is too large")
	ErrEmailTaken        = errors.New("user already exists")
)

// ValidationError reports a recoverable precondition failure the caller should
// surface for correction. Err is one of the sentinel errors above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a reference to an unknown item or order.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func NewNotFoundError(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
