package store

import (
	"context"
	"fmt"

	"equishare-storefront/internal/domain"
)

// CatalogFetcher is the data-access side of a catalog load.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error)
}

// LoadCatalog runs one catalog load against f. If a newer load starts before
// this one finishes, this result is discarded by the reducer.
func (s *Store) LoadCatalog(ctx context.Context, f CatalogFetcher) error {
	gen := s.Dispatch(BeginCatalogLoad{}).Generation

	items, err := f.FetchCatalog(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.Dispatch(CatalogLoadFailed{Generation: gen, Message: err.Error()})
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.Dispatch(LoadCatalog{Items: items, Generation: gen})
	return nil
}

// LoadCatalogAsync starts LoadCatalog in its own goroutine. The returned
// channel yields the load error, or nil, and is then closed.
func (s *Store) LoadCatalogAsync(ctx context.Context, f CatalogFetcher) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.LoadCatalog(ctx, f)
	}()
	return done
}
