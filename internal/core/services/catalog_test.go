package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline-labs/shoptalk/internal/adapters/driven/storage/memory"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	store := memory.NewCatalogStore()
	svc := NewCatalogService(store)

	products := []domain.Product{
		{ID: "1", Name: "Laptop", Price: 5999, Stock: 10, Category: "computers", Description: "14-inch ultrabook"},
		{ID: "2", Name: "Smartphone", Price: 3999, Stock: 20, Category: "phones", Description: "OLED display"},
		{ID: "3", Name: "Wireless Earbuds", Price: 999, Stock: 50, Category: "audio", Description: "noise cancelling earbuds"},
		{ID: "4", Name: "Laptop Sleeve", Price: 99, Stock: 100, Category: "accessories", Description: "padded sleeve for a 14-inch laptop"},
	}
	for _, p := range products {
		require.NoError(t, svc.Add(context.Background(), p))
	}
	return svc
}

func TestCatalogService_Search_ByName(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "laptop", 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// The sleeve hits on both name and description, the laptop on name only.
	assert.Equal(t, "Laptop Sleeve", matches[0].Product.Name)
	assert.Equal(t, "Laptop", matches[1].Product.Name)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestCatalogService_Search_CaseInsensitive(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "SMARTPHONE", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "2", matches[0].Product.ID)
}

func TestCatalogService_Search_ByCategory(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "audio", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Wireless Earbuds", matches[0].Product.Name)
}

func TestCatalogService_Search_NoResults(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "spaceship", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCatalogService_Search_EmptyQuery(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCatalogService_Search_RespectsLimit(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "laptop", 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestCatalogService_Search_MultiTermScoresHigher(t *testing.T) {
	svc := newTestCatalog(t)

	matches, err := svc.Search(context.Background(), "wireless earbuds", 10)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "3", matches[0].Product.ID)
	// Two name-term hits plus a description hit beat any single-term match.
	assert.Greater(t, matches[0].Score, nameWeight)
}

func TestCatalogService_Get(t *testing.T) {
	svc := newTestCatalog(t)

	product, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
}

func TestCatalogService_Get_NotFound(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.Get(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_Get_EmptyID(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogService_Add_Invalid(t *testing.T) {
	svc := NewCatalogService(memory.NewCatalogStore())

	err := svc.Add(context.Background(), domain.Product{Name: "no id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogService_Remove(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "1"))
	_, err := svc.Get(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_Seed_EmptyStore(t *testing.T) {
	svc := NewCatalogService(memory.NewCatalogStore())
	ctx := context.Background()

	added, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Positive(t, added)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, added)

	// The original demo inventory is present.
	laptop, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", laptop.Name)
	assert.Equal(t, 5999.0, laptop.Price)
	assert.Equal(t, 10, laptop.Stock)
}

func TestCatalogService_Seed_NonEmptyStore(t *testing.T) {
	svc := newTestCatalog(t)

	added, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
}
