// Package catalog provides the product browser view for the TUI.
package catalog

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui/messages"
	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui/styles"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
)

// View represents the catalog browser with a selectable product list.
type View struct {
	styles  *styles.Styles
	catalog driving.CatalogService
	ctx     context.Context

	products []domain.Product
	selected int
	detail   *domain.Product
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new catalog view.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		catalog: catalog,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the product list.
func (v *View) Init() tea.Cmd {
	return v.loadProducts()
}

// loadProducts lists the catalog as a command.
func (v *View) loadProducts() tea.Cmd {
	return func() tea.Msg {
		products, err := v.catalog.List(v.ctx)
		return messages.ProductsLoaded{Products: products, Err: err}
	}
}

// Update handles messages for the catalog view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProductsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.products = msg.Products
		if v.selected >= len(v.products) {
			v.selected = 0
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Detail overlay: any of esc/enter/backspace closes it
	if v.detail != nil {
		switch msg.String() {
		case "esc", "enter", "backspace":
			v.detail = nil
		}
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.products)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.products) {
			v.detail = &v.products[v.selected]
		}
	case "r":
		return v, v.loadProducts()
	}

	return v, nil
}

// View renders the catalog view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	if v.detail != nil {
		return v.renderDetail()
	}

	sections := make([]string, 0, 6)
	sections = append(sections, v.styles.Title.Render("Catalog"), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if len(v.products) == 0 {
		sections = append(sections, v.styles.Muted.Render("Catalog is empty."))
	} else {
		lines := make([]string, 0, len(v.products))
		for i := range v.products {
			p := &v.products[i]
			stock := fmt.Sprintf("%d in stock", p.Stock)
			if !p.InStock() {
				stock = "out of stock"
			}
			text := fmt.Sprintf("%-24s %10.2f  %s", p.Name, p.Price, stock)
			if i == v.selected {
				lines = append(lines, v.styles.Selected.Render("> "+text))
			} else {
				lines = append(lines, v.styles.Normal.Render("  "+text))
			}
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	sections = append(sections, "", v.styles.Help.Render("[j/k] Navigate  [Enter] Details  [r] Reload  [Esc] Menu"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail renders the single-product overlay.
func (v *View) renderDetail() string {
	p := v.detail

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(p.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("ID:       %s\n", p.ID))
	b.WriteString(fmt.Sprintf("Price:    %.2f\n", p.Price))
	b.WriteString(fmt.Sprintf("Stock:    %d\n", p.Stock))
	if p.Category != "" {
		b.WriteString(fmt.Sprintf("Category: %s\n", p.Category))
	}
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}

	box := v.styles.Border.Padding(0, 1).Render(b.String())
	help := v.styles.Help.Render("[Esc] Back")
	return lipgloss.JoinVertical(lipgloss.Left, box, "", help)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Products returns the loaded products.
func (v *View) Products() []domain.Product {
	return v.products
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Detail returns the product shown in the detail overlay, if any.
func (v *View) Detail() *domain.Product {
	return v.detail
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
