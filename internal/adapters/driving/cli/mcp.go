package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/counterline-labs/shoptalk/internal/adapters/driving/mcp"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

The server exposes the catalog search and product lookup tools. When an LLM
provider is configured, it also exposes an ask_assistant tool that answers
free-form shopping questions.

Examples:
  # Stdio mode (default, for Claude Desktop)
  shoptalk mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  shoptalk mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "shoptalk": {
        "command": "/path/to/shoptalk",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ports := &mcp.Ports{
		Catalog: catalogService,
	}

	// The assistant tool needs a reachable LLM provider. Serve the catalog
	// tools without it rather than refusing to start.
	assistant, cleanup, err := resolveAssistant(cmd.Context())
	if err != nil {
		logger.Warn("assistant tool disabled: %v", err)
	} else {
		defer cleanup()
		ports.Assistant = assistant
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
