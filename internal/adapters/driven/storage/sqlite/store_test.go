package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "shoptalk-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testProduct(id, name string) *domain.Product {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Product{
		ID:          id,
		Name:        name,
		Price:       999,
		Stock:       5,
		Category:    "Electronics",
		Description: "Test product " + name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ==================== Store Creation Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "shoptalk-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "shoptalk.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "shoptalk-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

// ==================== Catalog Store Tests ====================

func TestCatalogStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	catalog := store.CatalogStore()
	product := testProduct("p1", "Laptop")
	require.NoError(t, catalog.Save(ctx, product))

	got, err := catalog.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Name)
	assert.Equal(t, float64(999), got.Price)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, "Electronics", got.Category)
}

func TestCatalogStore_SaveUpserts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	catalog := store.CatalogStore()
	product := testProduct("p1", "Laptop")
	require.NoError(t, catalog.Save(ctx, product))

	product.Price = 5999
	product.Stock = 3
	require.NoError(t, catalog.Save(ctx, product))

	got, err := catalog.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, float64(5999), got.Price)
	assert.Equal(t, 3, got.Stock)

	count, err := catalog.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCatalogStore_SaveInvalid(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	catalog := store.CatalogStore()
	err := catalog.Save(context.Background(), &domain.Product{ID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.CatalogStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_ListOrderedByName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	catalog := store.CatalogStore()
	require.NoError(t, catalog.Save(ctx, testProduct("p2", "Smartphone")))
	require.NoError(t, catalog.Save(ctx, testProduct("p1", "Laptop")))
	require.NoError(t, catalog.Save(ctx, testProduct("p3", "Earbuds")))

	products, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Earbuds", products[0].Name)
	assert.Equal(t, "Laptop", products[1].Name)
	assert.Equal(t, "Smartphone", products[2].Name)
}

func TestCatalogStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	catalog := store.CatalogStore()
	require.NoError(t, catalog.Save(ctx, testProduct("p1", "Laptop")))
	require.NoError(t, catalog.Delete(ctx, "p1"))

	_, err := catalog.Get(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing product is not an error.
	assert.NoError(t, catalog.Delete(ctx, "p1"))
}

// ==================== Conversation Store Tests ====================

func TestConversationStore_CreateAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	convs := store.ConversationStore()
	conv := &domain.Conversation{ID: "c1", Title: "Shopping chat"}
	require.NoError(t, convs.CreateConversation(ctx, conv))

	got, err := convs.GetConversation(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Shopping chat", got.Title)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestConversationStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.ConversationStore().GetConversation(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationStore_MessagesInOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	convs := store.ConversationStore()
	require.NoError(t, convs.CreateConversation(ctx, &domain.Conversation{ID: "c1"}))

	require.NoError(t, convs.AppendMessage(ctx, &domain.Message{
		ID: "m1", ConversationID: "c1", Role: domain.RoleUser, Content: "any laptops?",
	}))
	require.NoError(t, convs.AppendMessage(ctx, &domain.Message{
		ID: "m2", ConversationID: "c1", Role: domain.RoleAssistant, Content: "Yes, one model in stock.",
	}))

	messages, err := convs.Messages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, "any laptops?", messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
}

func TestConversationStore_AppendMessage_InvalidRole(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	convs := store.ConversationStore()
	require.NoError(t, convs.CreateConversation(ctx, &domain.Conversation{ID: "c1"}))

	err := convs.AppendMessage(ctx, &domain.Message{
		ID: "m1", ConversationID: "c1", Role: domain.Role("bogus"), Content: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConversationStore_ClearMessages(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	convs := store.ConversationStore()
	require.NoError(t, convs.CreateConversation(ctx, &domain.Conversation{ID: "c1"}))
	require.NoError(t, convs.AppendMessage(ctx, &domain.Message{
		ID: "m1", ConversationID: "c1", Role: domain.RoleUser, Content: "hello",
	}))

	require.NoError(t, convs.ClearMessages(ctx, "c1"))

	messages, err := convs.Messages(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, messages)

	// The conversation itself survives.
	_, err = convs.GetConversation(ctx, "c1")
	assert.NoError(t, err)
}

func TestConversationStore_ListMostRecentFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	convs := store.ConversationStore()
	old := &domain.Conversation{ID: "c1", CreatedAt: time.Now().UTC().Add(-time.Hour)}
	require.NoError(t, convs.CreateConversation(ctx, old))
	require.NoError(t, convs.CreateConversation(ctx, &domain.Conversation{ID: "c2"}))

	// Touch c1 with a new message so it sorts first.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, convs.AppendMessage(ctx, &domain.Message{
		ID: "m1", ConversationID: "c1", Role: domain.RoleUser, Content: "hi",
	}))

	list, err := convs.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
}
