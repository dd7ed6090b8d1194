package mcp

import (
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog provides product search and lookup.
	Catalog driving.CatalogService

	// Assistant answers free-form shopping questions. Optional; when nil the
	// ask_assistant tool is not registered.
	Assistant driving.AssistantService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
