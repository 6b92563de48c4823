// Package memory is an in-process implementation of the repositories, seeded
// with demo data. It backs the server when no database is configured.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/repository"
)

type Store struct {
	repository.UserRepository
	repository.CatalogRepository
	repository.OrderRepository
}

// NewStore returns empty repositories.
func NewStore() *Store {
	return &Store{
		UserRepository:    &userRepository{users: map[int64]domain.User{}},
		CatalogRepository: &catalogRepository{items: map[int64]domain.CatalogItem{}},
		OrderRepository:   &orderRepository{orders: map[int64]domain.OrderRecord{}},
	}
}

// NewSeededStore returns repositories loaded with the demo equipment and
// accounts. Passwords are stored as bcrypt hashes.
func NewSeededStore() (*Store, error) {
	s := NewStore()

	users := s.UserRepository.(*userRepository)
	for _, su := range SeedUsers() {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}
		u := su.User
		u.PasswordHash = string(hash)
		users.put(u)
	}

	items := s.CatalogRepository.(*catalogRepository)
	for _, it := range SeedItems() {
		items.put(it)
	}
	return s, nil
}

type userRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func (r *userRepository) put(u domain.User) {
	r.users[u.ID] = u
	r.nextID = max(r.nextID, u.ID)
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: %s", domain.ErrEmailTaken, u.Email)
		}
	}
	r.nextID++
	u.ID = r.nextID
	now := time.Now().Format("2006-01-02")
	u.CreatedOn = now
	u.UpdatedOn = now
	r.users[u.ID] = *u
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("user", 0)
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.ID]
	if !ok {
		return domain.NewNotFoundError("user", u.ID)
	}
	existing.Name = u.Name
	existing.PhoneNumber = u.PhoneNumber
	existing.Address = u.Address
	existing.UpdatedOn = time.Now().Format("2006-01-02")
	r.users[u.ID] = existing
	*u = existing
	return nil
}

type catalogRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.CatalogItem
	nextID int64
}

func (r *catalogRepository) put(it domain.CatalogItem) {
	r.items[it.ID] = it
	r.nextID = max(r.nextID, it.ID)
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.filter(func(domain.CatalogItem) bool { return true }), nil
}

func (r *catalogRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.CatalogItem, error) {
	return r.filter(func(it domain.CatalogItem) bool { return it.OwnerID == ownerID }), nil
}

func (r *catalogRepository) filter(keep func(domain.CatalogItem) bool) []domain.CatalogItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.CatalogItem
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b domain.CatalogItem) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id)
	}
	return &it, nil
}

func (r *catalogRepository) Create(ctx context.Context, it *domain.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	it.ID = r.nextID
	it.CreatedOn = time.Now().Format("2006-01-02")
	r.items[it.ID] = *it
	return nil
}

func (r *catalogRepository) Update(ctx context.Context, it *domain.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[it.ID]
	if !ok {
		return domain.NewNotFoundError("item", it.ID)
	}
	existing.Name = it.Name
	existing.Description = it.Description
	existing.Category = it.Category
	existing.PricePerDayCents = it.PricePerDayCents
	existing.Available = it.Available
	existing.Location = it.Location
	r.items[it.ID] = existing
	*it = existing
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("item", id)
	}
	delete(r.items, id)
	return nil
}

type orderRepository struct {
	mu     sync.RWMutex
	orders map[int64]domain.OrderRecord
}

func (r *orderRepository) Create(ctx context.Context, o *domain.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return fmt.Errorf("order %d already exists", o.ID)
	}
	r.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("order", id)
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *orderRepository) ListByActor(ctx context.Context, actorID int64) ([]domain.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.OrderRecord
	for _, o := range r.orders {
		if o.ActorID == actorID {
			out = append(out, cloneOrder(o))
		}
	}
	slices.SortFunc(out, func(a, b domain.OrderRecord) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return domain.NewNotFoundError("order", id)
	}
	o.Status = status
	o.UpdatedAt = at
	r.orders[id] = o
	return nil
}

func cloneOrder(o domain.OrderRecord) domain.OrderRecord {
	o.Lines = slices.Clone(o.Lines)
	return o
}
