// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the assistant conversation view.
	ViewChat
	// ViewCatalog is the product browser view.
	ViewCatalog
	// ViewProduct shows details for a single product.
	ViewProduct
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewCatalog:
		return "catalog"
	case ViewProduct:
		return "product"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// AssistantReplied carries the assistant's answer back to the chat view.
type AssistantReplied struct {
	Question string
	Reply    string
	Err      error
}

// ProductsLoaded carries the catalog listing.
type ProductsLoaded struct {
	Products []domain.Product
	Err      error
}

// ProductSelected signals a product was selected for detail view.
type ProductSelected struct {
	Product domain.Product
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
