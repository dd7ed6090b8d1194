// Package driving provides interfaces for inbound adapters
// (primary/driving ports). The CLI, TUI, and MCP server depend on these
// interfaces; core services implement them.
package driving
