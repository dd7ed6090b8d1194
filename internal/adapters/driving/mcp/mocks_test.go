package mcp

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	matches  []domain.ProductMatch
	product  *domain.Product
	products []domain.Product
	err      error
}

func (m *mockCatalogService) Search(_ context.Context, _ string, _ int) ([]domain.ProductMatch, error) {
	return m.matches, m.err
}

func (m *mockCatalogService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return m.product, m.err
}

func (m *mockCatalogService) List(_ context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *mockCatalogService) Add(_ context.Context, _ domain.Product) error {
	return m.err
}

func (m *mockCatalogService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCatalogService) Seed(_ context.Context) (int, error) {
	return 0, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	reply    string
	messages []domain.Message
	err      error
}

func (m *mockAssistantService) Ask(_ context.Context, _ string) (string, error) {
	return m.reply, m.err
}

func (m *mockAssistantService) Advise(_ context.Context, _ string) (string, error) {
	return m.reply, m.err
}

func (m *mockAssistantService) History(_ context.Context) ([]domain.Message, error) {
	return m.messages, m.err
}

func (m *mockAssistantService) Reset(_ context.Context) error {
	return m.err
}

func (m *mockAssistantService) ConversationID() string {
	return "conv-1"
}

func (m *mockAssistantService) ModelName() string {
	return "mock-model"
}
