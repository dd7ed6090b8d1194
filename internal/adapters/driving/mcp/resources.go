package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for shoptalk resources.
	uriScheme = "shoptalk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the full catalog.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "All products in the catalog",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// Template for a single product.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}",
		Name:        "product",
		Description: "Details of a specific product",
		MIMEType:    "application/json",
	}, s.handleProductResource)
}

// handleCatalogResource returns all products as a JSON list.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	products, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}

	infos := make([]ProductOutput, len(products))
	for i := range products {
		infos[i] = ProductOutput{
			ID:          products[i].ID,
			Name:        products[i].Name,
			Price:       products[i].Price,
			Stock:       products[i].Stock,
			Category:    products[i].Category,
			Description: products[i].Description,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProductResource returns a single product's details.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract productId from URI: shoptalk://products/{productId}
	productID := extractProductID(req.Params.URI)
	if productID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	product, err := s.ports.Catalog.Get(ctx, productID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(ProductOutput{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Description: product.Description,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling product: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProductID extracts the product ID from a URI like shoptalk://products/{productId}.
func extractProductID(uri string) string {
	const prefix = uriScheme + "products/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
