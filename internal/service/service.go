package service

import (
	"context"
	"errors"
	"time"

	"equishare-storefront/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials or user type")
	ErrOwnerRequired      = errors.New("owner role required")
	ErrNotItemOwner       = errors.New("item belongs to another owner")
)

// RegisterRequest carries a new account's details and plaintext password.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password"`
	Address  string      `json:"address"`
	Role     domain.Role `json:"role"`
}

type AuthService interface {
	Authenticate(ctx context.Context, email, password string, role domain.Role) (*domain.Actor, string, error)
	Register(ctx context.Context, req RegisterRequest) (*domain.Actor, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, actorID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, actorID int64, name, phone, address string) (*domain.User, error)
}

type CatalogService interface {
	FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error)
	ListMyItems(ctx context.Context, owner *domain.Actor) ([]domain.CatalogItem, error)
	AddItem(ctx context.Context, owner *domain.Actor, item *domain.CatalogItem) error
	UpdateItem(ctx context.Context, owner *domain.Actor, item *domain.CatalogItem) error
	DeleteItem(ctx context.Context, owner *domain.Actor, id int64) error
}

type OrderService interface {
	SubmitOrder(ctx context.Context, sessionID string, order domain.OrderRecord) (domain.OrderRecord, error)
	ListOrders(ctx context.Context, actorID int64) ([]domain.OrderRecord, error)
	GetOrder(ctx context.Context, id int64) (*domain.OrderRecord, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, to, name string, order domain.OrderRecord) error
}

type PushService interface {
	Send(ctx context.Context, n domain.Notification) error
}

// CatalogCache holds the last fetched catalog between reloads.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.CatalogItem, bool, error)
	Set(ctx context.Context, items []domain.CatalogItem) error
	Invalidate(ctx context.Context) error
}

// OrderPublisher announces placed orders to downstream fulfillment.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, sessionID string, order domain.OrderRecord) error
}
