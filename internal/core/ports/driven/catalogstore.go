package driven

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// CatalogStore persists the product catalog.
type CatalogStore interface {
	// Save stores or updates a product.
	Save(ctx context.Context, product *domain.Product) error

	// Get retrieves a product by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// Delete removes a product. Deleting a missing product is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all products ordered by name.
	List(ctx context.Context) ([]domain.Product, error)

	// Count returns the number of products in the catalog.
	Count(ctx context.Context) (int, error)
}
