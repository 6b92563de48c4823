package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository"
)

type catalogService struct {
	catalogRepo repository.CatalogRepository
	cache       CatalogCache
}

// NewCatalogService returns the catalog data-access service. cache may be nil.
func NewCatalogService(catalogRepo repository.CatalogRepository, cache CatalogCache) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

func (s *catalogService) FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	if s.cache != nil {
		logger.ExternalServiceCall("redis", "catalog.get")
		items, ok, err := s.cache.Get(ctx)
		logger.ExternalServiceResult("redis", "catalog.get", err, "hit", ok)
		if err == nil && ok {
			return items, nil
		}
	}

	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, items); err != nil {
			logger.Warn("Failed to cache catalog", "error", err)
		}
	}
	return items, nil
}

func (s *catalogService) ListMyItems(ctx context.Context, owner *domain.Actor) ([]domain.CatalogItem, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.catalogRepo.ListByOwner(ctx, owner.ID)
}

func (s *catalogService) AddItem(ctx context.Context, owner *domain.Actor, item *domain.CatalogItem) error {
	logger.EnterMethod("catalogService.AddItem", "ownerID", ownerID(owner), "name", item.Name)
	if err := requireOwner(owner); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}

	item.OwnerID = owner.ID
	item.Owner = owner.Name
	if err := s.catalogRepo.Create(ctx, item); err != nil {
		logger.ExitMethodWithError("catalogService.AddItem", err, "ownerID", owner.ID)
		return err
	}
	s.invalidate(ctx)
	logger.ExitMethod("catalogService.AddItem", "itemID", item.ID)
	return nil
}

func (s *catalogService) UpdateItem(ctx context.Context, owner *domain.Actor, item *domain.CatalogItem) error {
	if err := s.checkOwnership(ctx, owner, item.ID); err != nil {
		return err
	}
	if err := validateItem(item); err != nil {
		return err
	}
	item.OwnerID = owner.ID
	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) DeleteItem(ctx context.Context, owner *domain.Actor, id int64) error {
	if err := s.checkOwnership(ctx, owner, id); err != nil {
		return err
	}
	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) checkOwnership(ctx context.Context, owner *domain.Actor, id int64) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	existing, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != owner.ID {
		return ErrNotItemOwner
	}
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate catalog cache", "error", err)
	}
}

func requireOwner(actor *domain.Actor) error {
	if actor == nil || actor.Role != domain.RoleOwner {
		return ErrOwnerRequired
	}
	return nil
}

func ownerID(actor *domain.Actor) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}

func validateItem(item *domain.CatalogItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return domain.NewValidationError("name", errors.New("name is required"))
	case item.PricePerDayCents <= 0:
		return domain.NewValidationError("price_per_day_cents", errors.New("price must be positive"))
	case item.Category == domain.CategoryAll || !item.Category.Valid():
		return domain.NewValidationError("category", fmt.Errorf("unknown category %q", item.Category))
	case !(item.Rating >= 0 && item.Rating <= 5):
		return domain.NewValidationError("rating", fmt.Errorf("rating %v outside 0 to 5", item.Rating))
	}
	return nil
}
