package domain

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByRating   SortKey = "rating"
	SortByCategory SortKey = "category"
)

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Criteria is the session-scoped filter/sort selection over the catalog.
type Criteria struct {
	Category   Category      `json:"category"`
	SearchTerm string        `json:"search_term"`
	SortKey    SortKey       `json:"sort_key"`
	Direction  SortDirection `json:"direction"`
}

// DefaultCriteria selects every category, no search, sorted by name ascending.
func DefaultCriteria() Criteria {
	return Criteria{
		Category:  CategoryAll,
		SortKey:   SortByName,
		Direction: SortAscending,
	}
}
