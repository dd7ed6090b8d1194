package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline-labs/shoptalk/internal/adapters/driven/storage/memory"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `
[[products]]
id = "1"
name = "Laptop"
price = 5999.0
stock = 10
category = "Computers"
description = "High performance laptop"

[[products]]
id = "2"
name = "Smartphone"
price = 3999.0
stock = 20
category = "Phones"
description = "Latest flagship phone"
`)

	store := memory.NewCatalogStore()
	loader := NewLoader(path, store)

	count, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	product, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, float64(5999), product.Price)
	assert.Equal(t, 10, product.Stock)
}

func TestLoader_GeneratesMissingIDs(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `
[[products]]
name = "Wireless Earbuds"
price = 999.0
stock = 50
`)

	store := memory.NewCatalogStore()
	loader := NewLoader(path, store)

	count, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	products, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.NotEmpty(t, products[0].ID)
}

func TestLoader_EmptyCatalogFile(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "")

	loader := NewLoader(path, memory.NewCatalogStore())
	count, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
	assert.Zero(t, count)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.toml"), memory.NewCatalogStore())

	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoader_InvalidTOML(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "products = [broken")

	loader := NewLoader(path, memory.NewCatalogStore())
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoader_InvalidEntry(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `
[[products]]
id = "1"
name = ""
price = -5.0
`)

	loader := NewLoader(path, memory.NewCatalogStore())
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoader_WatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, `
[[products]]
id = "1"
name = "Laptop"
price = 5999.0
stock = 10
`)

	store := memory.NewCatalogStore()
	loader := NewLoader(path, store)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- loader.Watch(ctx) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`
[[products]]
id = "1"
name = "Laptop"
price = 4999.0
stock = 8
`), 0600))

	require.Eventually(t, func() bool {
		product, err := store.Get(context.Background(), "1")
		return err == nil && product.Price == 4999
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestLoader_WatchStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "")

	loader := NewLoader(path, memory.NewCatalogStore())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loader.Watch(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
