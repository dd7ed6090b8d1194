package catalog

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui/messages"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

type stubCatalog struct {
	products []domain.Product
	err      error
}

func (s *stubCatalog) Search(_ context.Context, _ string, _ int) ([]domain.ProductMatch, error) {
	return nil, s.err
}

func (s *stubCatalog) Get(_ context.Context, _ string) (*domain.Product, error) {
	return nil, s.err
}

func (s *stubCatalog) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubCatalog) Add(_ context.Context, _ domain.Product) error { return s.err }
func (s *stubCatalog) Remove(_ context.Context, _ string) error      { return s.err }
func (s *stubCatalog) Seed(_ context.Context) (int, error)           { return 0, s.err }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Laptop", Price: 4999, Stock: 5},
		{ID: "p2", Name: "Mouse", Price: 99, Stock: 0},
	}
}

func loadedView(t *testing.T, products []domain.Product) *View {
	t.Helper()
	v := NewView(nil, &stubCatalog{products: products})
	v.SetDimensions(80, 24)

	cmd := v.Init()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestView_LoadsProducts(t *testing.T) {
	v := loadedView(t, testProducts())

	require.Len(t, v.Products(), 2)
	out := v.View()
	assert.Contains(t, out, "Laptop")
	assert.Contains(t, out, "Mouse")
	assert.Contains(t, out, "out of stock")
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, &stubCatalog{err: errors.New("db down")})
	v.SetDimensions(80, 24)

	v, _ = v.Update(v.Init()())

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "db down")
}

func TestView_Navigation(t *testing.T) {
	v := loadedView(t, testProducts())

	assert.Equal(t, 0, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.Selected())

	// Cannot move past the last product
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.Selected())
}

func TestView_DetailOverlay(t *testing.T) {
	v := loadedView(t, testProducts())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, v.Detail())
	assert.Contains(t, v.View(), "p1")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, v.Detail())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := loadedView(t, testProducts())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestView_EmptyCatalog(t *testing.T) {
	v := loadedView(t, nil)

	assert.Contains(t, v.View(), "Catalog is empty.")
}
