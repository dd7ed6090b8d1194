// Package mcp provides an MCP (Model Context Protocol) server adapter for
// shoptalk. It lets MCP-compatible AI assistants search the product catalog,
// look up product details, and ask the shopping assistant directly.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
