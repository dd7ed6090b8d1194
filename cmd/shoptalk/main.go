// Command shoptalk is a conversational shopping assistant over a product
// catalog, backed by an LLM provider with catalog tools.
package main

import (
	"github.com/counterline-labs/shoptalk/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
