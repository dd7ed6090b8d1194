package driven

import (
	"context"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
)

// LLMService provides chat-model operations for the assistant.
//
// Implementations may include:
//   - OpenAI and OpenAI-compatible hosts (DeepSeek via SiliconFlow)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Chat conducts one model call over a multi-turn conversation.
	// When opts.Tools is non-empty the model may answer with tool calls
	// instead of text; the reply message carries them.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatMessage, error)

	// Generate produces a plain text completion from a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used at startup to fail fast on bad credentials.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a model conversation.
// It is the wire-level shape; persistent history uses domain.Message.
type ChatMessage struct {
	// Role is one of "system", "user", "assistant", or "tool".
	Role string

	// Content is the message text. May be empty on assistant messages that
	// only carry tool calls.
	Content string

	// ToolCalls are tool invocations requested by an assistant message.
	ToolCalls []domain.ToolCall

	// ToolCallID links a tool-role message to the call it answers.
	ToolCallID string

	// Name is the tool name on tool-role messages.
	Name string
}

// ToolDef describes a tool offered to the model.
type ToolDef struct {
	// Name is the tool identifier the model uses to call it.
	Name string

	// Description tells the model when to use the tool.
	Description string

	// Parameters is a JSON Schema object describing the arguments.
	Parameters map[string]any
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// Tools are offered to the model for function calling.
	Tools []ToolDef
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
