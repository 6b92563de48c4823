package domain

// CartLine is one catalog item's chosen quantity within the active cart.
// Name and price are captured from the item when the line is created; totals
// use the snapshot, not the live catalog.
type CartLine struct {
	ItemID           int64    `json:"item_id"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	Quantity         int      `json:"quantity"`
}

// LineTotalCents is the per-day cost of the line.
func (l CartLine) LineTotalCents() int64 {
	return l.PricePerDayCents * int64(l.Quantity)
}
