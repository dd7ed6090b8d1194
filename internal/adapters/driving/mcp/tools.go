package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search_products tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"keyword to match against product names, categories, and descriptions"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_products tool.
type SearchOutput struct {
	Results []ProductOutput `json:"results"`
	Count   int             `json:"count"`
}

// ProductOutput represents a single product in tool results.
type ProductOutput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

// DetailsInput is the input schema for the get_product_details tool.
type DetailsInput struct {
	ProductID string `json:"product_id" jsonschema:"the product ID to look up"`
}

// AskInput is the input schema for the ask_assistant tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"a shopping question about the catalog, answered conversationally"`
}

// AskOutput is the output schema for the ask_assistant tool.
type AskOutput struct {
	Reply string `json:"reply"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog by keyword",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_product_details",
		Description: "Get full details for a product by its ID",
	}, s.handleDetails)

	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_assistant",
			Description: "Ask the shopping assistant a question about the catalog",
		}, s.handleAsk)
	}
}

// handleSearch handles the search_products tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	matches, err := s.ports.Catalog.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]ProductOutput, len(matches)),
		Count:   len(matches),
	}

	for i := range matches {
		p := matches[i].Product
		output.Results[i] = ProductOutput{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Stock:       p.Stock,
			Category:    p.Category,
			Description: p.Description,
			Score:       matches[i].Score,
		}
	}

	return nil, output, nil
}

// handleDetails handles the get_product_details tool invocation.
func (s *Server) handleDetails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DetailsInput,
) (*mcp.CallToolResult, ProductOutput, error) {
	product, err := s.ports.Catalog.Get(ctx, input.ProductID)
	if err != nil {
		return nil, ProductOutput{}, fmt.Errorf("getting product %q: %w", input.ProductID, err)
	}

	return nil, ProductOutput{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Description: product.Description,
	}, nil
}

// handleAsk handles the ask_assistant tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Assistant.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Reply: reply}, nil
}
