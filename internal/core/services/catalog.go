// Package services contains the core business logic of Shoptalk.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// defaultSearchLimit caps search results when the caller passes no limit.
const defaultSearchLimit = 10

// Field weights for keyword matching. A name hit outranks a category hit,
// which outranks a description hit.
const (
	nameWeight        = 3.0
	categoryWeight    = 2.0
	descriptionWeight = 1.0
)

// CatalogService provides keyword search and lookup over the product catalog.
type CatalogService struct {
	store driven.CatalogStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Search performs a case-insensitive keyword scan over name, category, and
// description. Results are ordered by relevance score, then name.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.ProductMatch, error) {
	logger.Section("Catalog Search")
	logger.Debug("Query: %q", query)

	terms := tokenise(query)
	if len(terms) == 0 {
		return []domain.ProductMatch{}, nil
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	products, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	logger.Debug("Scanning %d products, limit %d", len(products), limit)

	var matches []domain.ProductMatch
	for i := range products {
		score := scoreProduct(&products[i], terms)
		if score > 0 {
			matches = append(matches, domain.ProductMatch{
				Product: products[i],
				Score:   score,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Product.Name < matches[j].Product.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	logger.Info("Search %q matched %d products", query, len(matches))
	return matches, nil
}

// Get returns a product by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product ID is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns all products ordered by name.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx)
}

// Add validates and stores a product.
func (s *CatalogService) Add(ctx context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	return s.store.Save(ctx, &product)
}

// Remove deletes a product by ID.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: product ID is required", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}

// scoreProduct sums field weights for every term that hits a field.
// A term that matches nothing contributes zero; products where no term
// matches at all score zero and are excluded.
func scoreProduct(p *domain.Product, terms []string) float64 {
	name := strings.ToLower(p.Name)
	category := strings.ToLower(p.Category)
	description := strings.ToLower(p.Description)

	var score float64
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += nameWeight
		}
		if strings.Contains(category, term) {
			score += categoryWeight
		}
		if strings.Contains(description, term) {
			score += descriptionWeight
		}
	}
	return score
}

// tokenise lowercases and splits a query into search terms.
func tokenise(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}
