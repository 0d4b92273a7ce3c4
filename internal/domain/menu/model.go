package menu

import "errors"

// Domain errors
var (
	ErrUnknownItem = errors.New("unknown menu item")
)

// Item is one entry of the food and drink menu. The catalog is static and
// read-only at runtime; Price is informational and Points is the loyalty
// credit awarded per purchase.
type Item struct {
	Code   string
	Name   string
	Price  int
	Points int
}

// Catalog is an ordered, read-only menu. Order is the display order.
type Catalog struct {
	items []Item
	index map[string]int
}

// NewCatalog builds a catalog preserving the given item order.
// PRE: item codes are unique
// POST: Returns a catalog with stable iteration order
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range items {
		c.index[it.Code] = i
	}
	return c
}

// DefaultCatalog returns the cafe's standard menu.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Item{
		{Code: "C1", Name: "Coffee", Price: 50, Points: 1},
		{Code: "S1", Name: "Softdrink", Price: 30, Points: 1},
		{Code: "B1", Name: "Burger", Price: 80, Points: 2},
		{Code: "F1", Name: "Fries", Price: 40, Points: 1},
	})
}

// Get looks up an item by code.
// PRE: code is non-empty
// POST: Returns the item, or ErrUnknownItem
func (c *Catalog) Get(code string) (Item, error) {
	i, ok := c.index[code]
	if !ok {
		return Item{}, ErrUnknownItem
	}
	return c.items[i], nil
}

// Items returns the menu in display order.
// INVARIANT: The catalog is not mutated; callers get a copy
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}
