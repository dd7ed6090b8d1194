package domain

const unknownDescription = "Unknown"

// AIProvider identifies a chat-model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderDeepseek is DeepSeek served over an OpenAI-compatible API.
	AIProviderDeepseek AIProvider = "deepseek"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// AllLLMProviders returns the providers that can back the assistant,
// in wizard display order.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderDeepseek,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderDeepseek, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderDeepseek || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderDeepseek:
		return "DeepSeek (cloud, OpenAI-compatible)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible hosts).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AssistantSettings holds conversation behaviour configuration.
type AssistantSettings struct {
	// Temperature controls model randomness (0.0 = deterministic).
	Temperature float64

	// MaxTokens caps the reply length per model call. 0 uses provider default.
	MaxTokens int

	// MaxHistory is the number of past turns included as context, where one
	// turn is a user message and its assistant reply. 0 means the full
	// buffered history.
	MaxHistory int

	// ToolLoopLimit caps tool round-trips within a single turn.
	ToolLoopLimit int

	// MaxSearchResults caps results returned by the search tool.
	MaxSearchResults int
}

// CatalogSettings holds catalog data configuration.
type CatalogSettings struct {
	// Path is an optional TOML catalog file loaded at startup.
	Path string
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	// LLM configures the model provider.
	LLM LLMSettings

	// Assistant configures conversation behaviour.
	Assistant AssistantSettings

	// Catalog configures catalog data loading.
	Catalog CatalogSettings
}

// DefaultAppSettings returns the settings used before any configuration.
// DeepSeek over the SiliconFlow OpenAI-compatible endpoint is the default
// provider; it still needs an API key before the assistant can run.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider: AIProviderDeepseek,
			Model:    "deepseek-ai/DeepSeek-V2.5",
			BaseURL:  "https://api.siliconflow.cn/v1",
		},
		Assistant: AssistantSettings{
			Temperature:      0.7,
			MaxTokens:        1024,
			MaxHistory:       0,
			ToolLoopLimit:    8,
			MaxSearchResults: 10,
		},
	}
}
