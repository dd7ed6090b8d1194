package cli

import (
	"context"
	"os"
	"testing"

	"github.com/counterline-labs/shoptalk/internal/adapters/driven/storage/memory"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/services"
)

// setupTestServices wires in-memory stores and services so commands run
// without touching the filesystem or an LLM provider. initServices keeps
// preset services, so these take effect for the whole command run.
func setupTestServices(t *testing.T) {
	t.Helper()

	configStore = memory.NewConfigStore()
	catalogStore = memory.NewCatalogStore()
	convStore = memory.NewConversationStore()
	catalogService = services.NewCatalogService(catalogStore)

	// Flag state persists across Execute calls on package-level commands.
	chatOnce = ""
	catalogJSON = false
	catalogWatch = false
	catalogSearchLimit = 10
	addProductID, addProductName = "", ""
	addProductCategory, addProductDescription = "", ""
	addProductPrice = 0
	addProductStock = 0
	if f := catalogAddCmd.Flags().Lookup("name"); f != nil {
		f.Changed = false
	}

	t.Cleanup(func() {
		configStore = nil
		promptStore = nil
		catalogStore = nil
		convStore = nil
		settingsService = nil
		catalogService = nil
		assistantService = nil
	})
}

// writeFile writes a test fixture, failing the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// addTestProduct stores a product directly, failing the test on error.
func addTestProduct(t *testing.T, p domain.Product) {
	t.Helper()
	if err := catalogStore.Save(context.Background(), &p); err != nil {
		t.Fatalf("saving test product: %v", err)
	}
}

// mockAssistant is a stub driving.AssistantService for command tests.
type mockAssistant struct {
	reply   string
	err     error
	asked   []string
	advised []string
	model   string
}

func (m *mockAssistant) Ask(_ context.Context, input string) (string, error) {
	m.asked = append(m.asked, input)
	return m.reply, m.err
}

func (m *mockAssistant) Advise(_ context.Context, productID string) (string, error) {
	m.advised = append(m.advised, productID)
	return m.reply, m.err
}

func (m *mockAssistant) History(_ context.Context) ([]domain.Message, error) {
	return nil, nil
}

func (m *mockAssistant) Reset(_ context.Context) error {
	return nil
}

func (m *mockAssistant) ConversationID() string {
	return "conv-test"
}

func (m *mockAssistant) ModelName() string {
	if m.model == "" {
		return "test-model"
	}
	return m.model
}
