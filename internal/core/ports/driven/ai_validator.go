package driven

import "github.com/counterline-labs/shoptalk/internal/core/domain"

// AIConfigValidator validates AI provider configurations by contacting the
// provider. Kept as a port so the settings service stays adapter-free.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the provider.
	ValidateLLM(config *domain.LLMSettings) error
}
