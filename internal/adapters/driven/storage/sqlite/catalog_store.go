package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
)

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// Save stores or updates a product.
func (s *catalogStore) Save(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, stock, category, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			stock = excluded.stock,
			category = excluded.category,
			description = excluded.description,
			updated_at = excluded.updated_at
	`, product.ID, product.Name, product.Price, product.Stock,
		product.Category, product.Description, product.CreatedAt, product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// Get retrieves a product by ID.
func (s *catalogStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, price, stock, category, description, created_at, updated_at
		FROM products WHERE id = ?
	`, id)

	return scanProduct(row)
}

// Delete removes a product.
func (s *catalogStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

// List returns all products ordered by name.
func (s *catalogStore) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, price, stock, category, description, created_at, updated_at
		FROM products ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product //nolint:prealloc // size unknown from query
	for rows.Next() {
		product, err := scanProductRows(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of products in the catalog.
func (s *catalogStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

// scanProduct scans a single product row.
func scanProduct(row *sql.Row) (*domain.Product, error) {
	var product domain.Product
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Stock,
		&product.Category, &product.Description, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	if createdAt.Valid {
		product.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		product.UpdatedAt = updatedAt.Time
	}

	return &product, nil
}

// scanProductRows scans a product from *sql.Rows.
func scanProductRows(rows *sql.Rows) (*domain.Product, error) {
	var product domain.Product
	var createdAt, updatedAt sql.NullTime

	if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Stock,
		&product.Category, &product.Description, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	if createdAt.Valid {
		product.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		product.UpdatedAt = updatedAt.Time
	}

	return &product, nil
}
