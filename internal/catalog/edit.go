package catalog

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	// ErrNotFound is returned when an edit targets an id that is not in the catalog.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidPrice rejects negative or non-finite prices.
	ErrInvalidPrice = errors.New("price must be a non-negative number")
	// ErrInvalidCategory rejects categories outside the enumeration.
	ErrInvalidCategory = errors.New("unknown category")
)

// Patch is a partial set of field changes. Nil fields are left untouched. The id is
// not patchable.
type Patch struct {
	Name        *string
	Category    *Category
	Description *string
	Price       *float64
	Unit        *string
	Image       *string
	IsPopular   *bool
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Description == nil &&
		p.Price == nil && p.Unit == nil && p.Image == nil && p.IsPopular == nil
}

// Validate checks the patched values against the product invariants.
func (p Patch) Validate() error {
	if p.Price != nil {
		if *p.Price < 0 || math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidPrice, *p.Price)
		}
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(*p.Category))
	}
	return nil
}

// ApplyTo merges the patch into product.
func (p Patch) ApplyTo(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Unit != nil {
		product.Unit = *p.Unit
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.IsPopular != nil {
		product.IsPopular = *p.IsPopular
	}
	return product
}

// Update returns a new catalog with the patch merged into the product with the given
// id. Other products are untouched and the input is not modified.
func Update(c Catalog, id string, patch Patch) (Catalog, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	_, idx, ok := c.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := c.Clone()
	next[idx] = patch.ApplyTo(next[idx])
	return next, nil
}

// Prepend returns a new catalog with product placed first.
func Prepend(c Catalog, product Product) Catalog {
	next := make(Catalog, 0, len(c)+1)
	next = append(next, product)
	return append(next, c...)
}

// Remove returns a new catalog without the product with the given id.
func Remove(c Catalog, id string) (Catalog, error) {
	if _, _, ok := c.Find(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make(Catalog, 0, len(c)-1)
	for _, p := range c {
		if p.ID != id {
			next = append(next, p)
		}
	}
	return next, nil
}

// Placeholder builds the product a merchant starts from when adding a new item.
func Placeholder(id string) Product {
	return Product{
		ID:          id,
		Name:        "Produk Baru",
		Category:    CategoryFresh,
		Description: "Deskripsi nutrisi baru...",
		Price:       0,
		Unit:        "kg",
		Image:       fmt.Sprintf("https://picsum.photos/seed/%d/400/300", rand.Uint32()),
	}
}

// StringPtr and friends build patch fields inline.
func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func BoolPtr(v bool) *bool { return &v }

func CategoryPtr(v Category) *Category { return &v }
