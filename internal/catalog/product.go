// Package catalog holds the storefront data model: products, the ordered catalog,
// category filtering, the shopping cart, and field-level product edits.
package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Category groups products on the shop shelf.
type Category string

const (
	CategoryFresh  Category = "Fresh Produce"
	CategorySnacks Category = "Healthy Snacks"
	CategoryDry    Category = "Dry Processed"

	// CategoryAll is the wildcard selector; it is never stored on a product.
	CategoryAll Category = "All"
)

var categoryOrder = []Category{CategoryFresh, CategorySnacks, CategoryDry}

// Categories returns the fixed category enumeration in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is one of the stored categories.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a case-insensitive category name. The empty string and
// "all" map to CategoryAll.
func ParseCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, known := range categoryOrder {
		if strings.EqualFold(trimmed, string(known)) {
			return known, true
		}
	}
	return "", false
}

// NextSelector cycles All → Fresh → Snacks → Dry → All.
func NextSelector(current Category) Category {
	selectors := append([]Category{CategoryAll}, categoryOrder...)
	for i, sel := range selectors {
		if sel == current {
			return selectors[(i+1)%len(selectors)]
		}
	}
	return CategoryAll
}

// PrevSelector cycles in the opposite direction of NextSelector.
func PrevSelector(current Category) Category {
	selectors := append([]Category{CategoryAll}, categoryOrder...)
	for i, sel := range selectors {
		if sel == current {
			return selectors[(i+len(selectors)-1)%len(selectors)]
		}
	}
	return CategoryAll
}

// Product is a single sellable item. The JSON layout is the wire format of both the
// remote document and the local snapshot.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Unit        string   `json:"unit"`
	Image       string   `json:"image"`
	IsPopular   bool     `json:"isPopular,omitempty"`
}

// Catalog is the ordered product list. Order is display order.
type Catalog []Product

// Clone returns an independent copy of the catalog.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	dup := make(Catalog, len(c))
	copy(dup, c)
	return dup
}

// Find returns the product with the given id and its position.
func (c Catalog) Find(id string) (Product, int, bool) {
	for i, p := range c {
		if p.ID == id {
			return p, i, true
		}
	}
	return Product{}, -1, false
}

// Filter returns the products matching the selector, preserving order. CategoryAll
// returns every product.
func Filter(c Catalog, selector Category) Catalog {
	if selector == CategoryAll || selector == "" {
		return c.Clone()
	}
	out := make(Catalog, 0, len(c))
	for _, p := range c {
		if p.Category == selector {
			out = append(out, p)
		}
	}
	return out
}

// Encode serializes the catalog. A nil catalog encodes as an empty array.
func Encode(c Catalog) ([]byte, error) {
	if c == nil {
		c = Catalog{}
	}
	return json.Marshal(c)
}

// Decode parses a serialized product array.
func Decode(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

// Equal compares two catalogs by their serialized form. There is no version counter;
// content is the only identity.
func Equal(a, b Catalog) bool {
	ea, errA := Encode(a)
	eb, errB := Encode(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}

// NewID returns a fresh product id. Ids are time-ordered random UUIDs; uniqueness is
// assumed, not checked against the catalog.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "p_" + uuid.NewString()
	}
	return "p_" + id.String()
}
