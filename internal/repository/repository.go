package repository

import (
	"context"
	"time"

	"equishare-storefront/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type CatalogRepository interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error)
	Create(ctx context.Context, item *domain.CatalogItem) error
	Update(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository persists orders placed in sessions. Ids are assigned by the
// session that built the order, not by the repository.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.OrderRecord) error
	GetByID(ctx context.Context, id int64) (*domain.OrderRecord, error)
	ListByActor(ctx context.Context, actorID int64) ([]domain.OrderRecord, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error
}
