package domain

// Category is one of the closed set of equipment categories.
type Category string

const (
	CategoryAll         Category = "All Categories"
	CategoryPowerTools  Category = "Power Tools"
	CategoryCutting     Category = "Cutting Tools"
	CategoryGarden      Category = "Garden Tools"
	CategoryCleaning    Category = "Cleaning Tools"
	CategoryAccessTools Category = "Access Tools"
)

// Categories lists the selectable categories in display order, sentinel first.
var Categories = []Category{
	CategoryAll,
	CategoryPowerTools,
	CategoryCutting,
	CategoryGarden,
	CategoryCleaning,
	CategoryAccessTools,
}

// Valid reports whether c is a known category or the "all" sentinel.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type CatalogItem struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	Category         Category `json:"category"`
	Available        bool     `json:"available"`
	Rating           float64  `json:"rating"`
	Description      string   `json:"description"`
	Owner            string   `json:"owner"`
	Location         string   `json:"location"`
	OwnerID          int64    `json:"owner_id,omitempty"` // set for listings managed by an owner account
	CreatedOn        string   `json:"created_on,omitempty"`
}
