package tui

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// MockCatalogService is a mock implementation of driving.CatalogService.
type MockCatalogService struct {
	Matches     []domain.ProductMatch
	Product     *domain.Product
	ProductList []domain.Product
	Err         error
}

func (m *MockCatalogService) Search(_ context.Context, _ string, _ int) ([]domain.ProductMatch, error) {
	return m.Matches, m.Err
}

func (m *MockCatalogService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return m.Product, m.Err
}

func (m *MockCatalogService) List(_ context.Context) ([]domain.Product, error) {
	return m.ProductList, m.Err
}

func (m *MockCatalogService) Add(_ context.Context, _ domain.Product) error {
	return m.Err
}

func (m *MockCatalogService) Remove(_ context.Context, _ string) error {
	return m.Err
}

func (m *MockCatalogService) Seed(_ context.Context) (int, error) {
	return 0, m.Err
}

// MockAssistantService is a mock implementation of driving.AssistantService.
type MockAssistantService struct {
	Reply    string
	Messages []domain.Message
	Err      error
	Asked    []string
}

func (m *MockAssistantService) Ask(_ context.Context, input string) (string, error) {
	m.Asked = append(m.Asked, input)
	return m.Reply, m.Err
}

func (m *MockAssistantService) Advise(_ context.Context, _ string) (string, error) {
	return m.Reply, m.Err
}

func (m *MockAssistantService) History(_ context.Context) ([]domain.Message, error) {
	return m.Messages, m.Err
}

func (m *MockAssistantService) Reset(_ context.Context) error {
	return m.Err
}

func (m *MockAssistantService) ConversationID() string {
	return "conv-1"
}

func (m *MockAssistantService) ModelName() string {
	return "mock-model"
}
