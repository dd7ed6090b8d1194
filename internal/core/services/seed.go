package services

import (
	"context"
	"fmt"
	"time"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

// exampleCatalog is the built-in demo inventory used when no catalog file is
// configured and the store is empty.
func exampleCatalog(now time.Time) []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Laptop",
			Price:       5999,
			Stock:       10,
			Category:    "computers",
			Description: "14-inch ultrabook with 16GB RAM and a 512GB SSD.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Smartphone",
			Price:       3999,
			Stock:       20,
			Category:    "phones",
			Description: "6.5-inch OLED display, dual SIM, 128GB storage.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "Wireless Earbuds",
			Price:       999,
			Stock:       50,
			Category:    "audio",
			Description: "Bluetooth 5.3 earbuds with active noise cancelling.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "4",
			Name:        "Mechanical Keyboard",
			Price:       499,
			Stock:       35,
			Category:    "accessories",
			Description: "Hot-swappable 75% keyboard with tactile switches.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "5",
			Name:        "4K Monitor",
			Price:       1899,
			Stock:       8,
			Category:    "displays",
			Description: "27-inch 4K IPS monitor with USB-C power delivery.",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// Seed loads the built-in example catalog when the store is empty.
// Returns the number of products added; zero when the store already has data.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		logger.Debug("Catalog already has %d products, skipping seed", count)
		return 0, nil
	}

	products := exampleCatalog(time.Now())
	for i := range products {
		if err := s.store.Save(ctx, &products[i]); err != nil {
			return 0, fmt.Errorf("seed product %s: %w", products[i].ID, err)
		}
	}

	logger.Info("Seeded catalog with %d example products", len(products))
	return len(products), nil
}
