// Package cart holds the cart value and its arithmetic. Every operation
// returns a new Cart and leaves the receiver untouched.
package cart

import (
	"math"
	"slices"

	"equishare-storefront/internal/domain"
)

// MaxQuantity is the largest quantity a single line may hold.
const MaxQuantity = 99

// Cart is an ordered list of lines, at most one per item, in insertion order.
type Cart struct {
	lines []domain.CartLine
}

func New(lines ...domain.CartLine) Cart {
	var c Cart
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := c.index(l.ItemID); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Add increments the line for item or appends a new line with quantity 1,
// snapshotting the item's name and price.
func (c Cart) Add(item domain.CatalogItem) Cart {
	lines := slices.Clone(c.lines)
	if i := c.index(item.ID); i >= 0 {
		lines[i].Quantity++
		return Cart{lines: lines}
	}
	return Cart{lines: append(lines, domain.CartLine{
		ItemID:           item.ID,
		Name:             item.Name,
		Category:         item.Category,
		PricePerDayCents: item.PricePerDayCents,
		Quantity:         1,
	})}
}

// Remove deletes the line for itemID regardless of quantity.
func (c Cart) Remove(itemID int64) Cart {
	i := c.index(itemID)
	if i < 0 {
		return c
	}
	return Cart{lines: slices.Delete(slices.Clone(c.lines), i, i+1)}
}

// SetQuantity sets the exact quantity of an existing line. A quantity of zero
// or less removes the line. The boolean is false when no line exists for itemID.
func (c Cart) SetQuantity(itemID int64, quantity int) (Cart, bool) {
	i := c.index(itemID)
	if i < 0 {
		return c, false
	}
	if quantity <= 0 {
		return c.Remove(itemID), true
	}
	lines := slices.Clone(c.lines)
	lines[i].Quantity = quantity
	return Cart{lines: lines}, true
}

func (c Cart) Clear() Cart {
	return Cart{}
}

// Lines returns a copy of the cart lines in display order.
func (c Cart) Lines() []domain.CartLine {
	return slices.Clone(c.lines)
}

func (c Cart) Line(itemID int64) (domain.CartLine, bool) {
	if i := c.index(itemID); i >= 0 {
		return c.lines[i], true
	}
	return domain.CartLine{}, false
}

func (c Cart) Contains(itemID int64) bool {
	return c.index(itemID) >= 0
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len is the number of distinct lines.
func (c Cart) Len() int {
	return len(c.lines)
}

// SubtotalPerDay is Σ quantity × price-per-day over all lines.
func (c Cart) SubtotalPerDay() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.LineTotalCents()
	}
	return total
}

// CheckedSubtotalPerDay is SubtotalPerDay, reporting false instead of wrapping
// when the sum does not fit in an int64.
func (c Cart) CheckedSubtotalPerDay() (int64, bool) {
	var total int64
	for _, l := range c.lines {
		line, ok := MulCents(l.PricePerDayCents, int64(l.Quantity))
		if !ok || total > math.MaxInt64-line {
			return 0, false
		}
		total += line
	}
	return total, true
}

// MulCents multiplies two non-negative amounts, reporting false on overflow.
func MulCents(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

// ItemCount is Σ quantity over all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Quantity returns the quantity held for itemID, or zero.
func (c Cart) Quantity(itemID int64) int {
	if i := c.index(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c Cart) index(itemID int64) int {
	return slices.IndexFunc(c.lines, func(l domain.CartLine) bool { return l.ItemID == itemID })
}
