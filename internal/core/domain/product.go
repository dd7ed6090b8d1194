package domain

import (
	"fmt"
	"time"
)

// Product represents a single catalog entry.
type Product struct {
	// ID is the unique identifier for the product.
	ID string

	// Name is the human-readable product name.
	Name string

	// Price is the unit price in the shop currency.
	Price float64

	// Stock is the number of units available.
	Stock int

	// Category groups related products (e.g. "electronics").
	Category string

	// Description is free-form marketing or detail text.
	Description string

	// CreatedAt is when the product was first added.
	CreatedAt time.Time

	// UpdatedAt is when the product was last modified.
	UpdatedAt time.Time
}

// Validate checks the product for required fields and sane values.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: product ID is required", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	return nil
}

// InStock returns true if at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductMatch pairs a product with its search relevance score.
type ProductMatch struct {
	// Product is the matched catalog entry.
	Product Product

	// Score is the relevance score; higher is better.
	Score float64
}
