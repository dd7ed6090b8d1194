package driving

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// CatalogService provides product catalog operations to external actors.
type CatalogService interface {
	// Search performs a keyword search over the catalog.
	// limit <= 0 uses the service default.
	Search(ctx context.Context, query string, limit int) ([]domain.ProductMatch, error)

	// Get returns a product by ID.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products ordered by name.
	List(ctx context.Context) ([]domain.Product, error)

	// Add validates and stores a product.
	Add(ctx context.Context, product domain.Product) error

	// Remove deletes a product by ID.
	Remove(ctx context.Context, id string) error

	// Seed loads the built-in example catalog when the store is empty.
	// Returns the number of products added.
	Seed(ctx context.Context) (int, error)
}
