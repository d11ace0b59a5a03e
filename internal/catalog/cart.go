package catalog

// CartItem is a product snapshot taken when it was added, plus a quantity of at least 1.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart holds at most one item per product id in insertion order. The zero value is an
// empty cart ready to use. Cart is not safe for concurrent use; it lives on the UI loop.
type Cart struct {
	items []CartItem
}

// Add inserts product with quantity 1, or increments the existing entry.
func (c *Cart) Add(product Product) {
	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{Product: product, Quantity: 1})
}

// UpdateQuantity adds delta to an entry's quantity, clamped to a minimum of 1.
// It never removes the entry. Returns false when the id is not in the cart.
func (c *Cart) UpdateQuantity(id string, delta int) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = max(1, c.items[i].Quantity+delta)
			return true
		}
	}
	return false
}

// Remove deletes the entry regardless of quantity.
func (c *Cart) Remove(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the cart entries in insertion order.
func (c *Cart) Items() []CartItem {
	if len(c.items) == 0 {
		return nil
	}
	dup := make([]CartItem, len(c.items))
	copy(dup, c.items)
	return dup
}

// Len returns the number of distinct entries.
func (c *Cart) Len() int { return len(c.items) }

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Total sums price × quantity over all entries.
func (c *Cart) Total() float64 { return Total(c.items) }

// Count sums quantities over all entries.
func (c *Cart) Count() int { return Count(c.items) }

// Total sums price × quantity.
func Total(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// Count sums quantities.
func Count(items []CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
