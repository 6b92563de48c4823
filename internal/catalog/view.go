// Package catalog derives the browsable view of the catalog from the current
// filter and sort criteria.
package catalog

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"equishare-storefront/internal/domain"
)

// View is the ordered result of DeriveView. It is computed on first use and
// may be ranged any number of times.
type View struct {
	source   []domain.CatalogItem
	criteria domain.Criteria
	once     sync.Once
	items    []domain.CatalogItem
}

// DeriveView applies the category, search and sort stages, in that order, to
// items. The input slice is never modified.
func DeriveView(items []domain.CatalogItem, criteria domain.Criteria) *View {
	return &View{source: items, criteria: criteria}
}

// All yields the view's items in order.
func (v *View) All() iter.Seq[domain.CatalogItem] {
	return func(yield func(domain.CatalogItem) bool) {
		for _, item := range v.materialize() {
			if !yield(item) {
				return
			}
		}
	}
}

// Items returns a copy of the view's items.
func (v *View) Items() []domain.CatalogItem {
	return slices.Clone(v.materialize())
}

func (v *View) Len() int {
	return len(v.materialize())
}

func (v *View) materialize() []domain.CatalogItem {
	v.once.Do(func() {
		v.items = derive(v.source, v.criteria)
	})
	return v.items
}

func derive(items []domain.CatalogItem, c domain.Criteria) []domain.CatalogItem {
	fold := cases.Fold()
	out := make([]domain.CatalogItem, 0, len(items))

	term := fold.String(strings.TrimSpace(c.SearchTerm))
	for _, item := range items {
		if c.Category != "" && c.Category != domain.CategoryAll && item.Category != c.Category {
			continue
		}
		if term != "" && !matches(fold, item, term) {
			continue
		}
		out = append(out, item)
	}

	cmpFn := comparator(fold, c.SortKey)
	if c.Direction == domain.SortDescending {
		asc := cmpFn
		cmpFn = func(a, b domain.CatalogItem) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmpFn)
	return out
}

func matches(fold cases.Caser, item domain.CatalogItem, term string) bool {
	return strings.Contains(fold.String(item.Name), term) ||
		strings.Contains(fold.String(item.Description), term) ||
		strings.Contains(fold.String(string(item.Category)), term)
}

func comparator(fold cases.Caser, key domain.SortKey) func(a, b domain.CatalogItem) int {
	switch key {
	case domain.SortByPrice:
		return func(a, b domain.CatalogItem) int { return cmp.Compare(a.PricePerDayCents, b.PricePerDayCents) }
	case domain.SortByRating:
		return func(a, b domain.CatalogItem) int { return cmp.Compare(a.Rating, b.Rating) }
	case domain.SortByCategory:
		return func(a, b domain.CatalogItem) int {
			return strings.Compare(fold.String(string(a.Category)), fold.String(string(b.Category)))
		}
	default:
		return func(a, b domain.CatalogItem) int {
			return strings.Compare(fold.String(a.Name), fold.String(b.Name))
		}
	}
}

// ParseSortKey validates a sort key from user input. Empty selects name.
func ParseSortKey(s string) (domain.SortKey, error) {
	switch k := domain.SortKey(strings.ToLower(s)); k {
	case "":
		return domain.SortByName, nil
	case domain.SortByName, domain.SortByPrice, domain.SortByRating, domain.SortByCategory:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseDirection validates a sort direction from user input. Empty selects ascending.
func ParseDirection(s string) (domain.SortDirection, error) {
	switch d := domain.SortDirection(strings.ToLower(s)); d {
	case "":
		return domain.SortAscending, nil
	case domain.SortAscending, domain.SortDescending:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Lookup finds an item by id.
func Lookup(items []domain.CatalogItem, id int64) (domain.CatalogItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.CatalogItem{}, false
}
