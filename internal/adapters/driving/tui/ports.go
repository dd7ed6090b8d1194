// Package tui provides an interactive terminal user interface for shoptalk.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog provides product browsing and search.
	Catalog driving.CatalogService

	// Assistant answers shopping questions. Optional; without it the chat
	// view explains that a provider must be configured first.
	Assistant driving.AssistantService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
