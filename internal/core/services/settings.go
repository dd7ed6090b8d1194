package services

import (
	"fmt"

	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider   = "llm.provider"
	keyLLMModel      = "llm.model"
	keyLLMBaseURL    = "llm.base_url"
	keyLLMAPIKey     = "llm.api_key"
	keyTemperature   = "assistant.temperature"
	keyMaxTokens     = "assistant.max_tokens"
	keyMaxHistory    = "assistant.max_history"
	keyToolLoopLimit = "assistant.tool_loop_limit"
	keyMaxSearchHits = "assistant.max_search_results"
	keyCatalogPath   = "catalog.path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.getString(keyLLMBaseURL, defaults.LLM.BaseURL),
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Assistant: domain.AssistantSettings{
			Temperature:      s.getFloat(keyTemperature, defaults.Assistant.Temperature),
			MaxTokens:        s.getInt(keyMaxTokens, defaults.Assistant.MaxTokens),
			MaxHistory:       s.getInt(keyMaxHistory, defaults.Assistant.MaxHistory),
			ToolLoopLimit:    s.getInt(keyToolLoopLimit, defaults.Assistant.ToolLoopLimit),
			MaxSearchResults: s.getInt(keyMaxSearchHits, defaults.Assistant.MaxSearchResults),
		},
		Catalog: domain.CatalogSettings{
			Path: s.configStore.GetString(keyCatalogPath),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keyTemperature, settings.Assistant.Temperature); err != nil {
		return fmt.Errorf("save temperature: %w", err)
	}
	if err := s.configStore.Set(keyMaxTokens, settings.Assistant.MaxTokens); err != nil {
		return fmt.Errorf("save max_tokens: %w", err)
	}
	if err := s.configStore.Set(keyMaxHistory, settings.Assistant.MaxHistory); err != nil {
		return fmt.Errorf("save max_history: %w", err)
	}
	if err := s.configStore.Set(keyToolLoopLimit, settings.Assistant.ToolLoopLimit); err != nil {
		return fmt.Errorf("save tool_loop_limit: %w", err)
	}
	if err := s.configStore.Set(keyMaxSearchHits, settings.Assistant.MaxSearchResults); err != nil {
		return fmt.Errorf("save max_search_results: %w", err)
	}

	if err := s.configStore.Set(keyCatalogPath, settings.Catalog.Path); err != nil {
		return fmt.Errorf("save catalog path: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
// Empty model and baseURL keep the provider defaults; empty apiKey keeps the
// stored key so re-running the wizard doesn't wipe credentials.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, baseURL, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider %q", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider
	if model != "" {
		settings.LLM.Model = model
	}
	if baseURL != "" {
		settings.LLM.BaseURL = baseURL
	}
	if apiKey != "" {
		settings.LLM.APIKey = apiKey
	}

	return s.Save(settings)
}

// Validate checks if current settings can run the assistant.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, settings.LLM.Provider)
	}
	if settings.LLM.Provider.RequiresAPIKey() && settings.LLM.APIKey == "" {
		return fmt.Errorf("%w for provider %s", domain.ErrAPIKeyMissing, settings.LLM.Provider)
	}
	return nil
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getProvider reads a provider key with fallback to the default.
func (s *SettingsService) getProvider(fallback domain.AIProvider) domain.AIProvider {
	raw := s.configStore.GetString(keyLLMProvider)
	if raw == "" {
		return fallback
	}
	provider := domain.AIProvider(raw)
	if !provider.IsValid() {
		return fallback
	}
	return provider
}

func (s *SettingsService) getString(key, fallback string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return fallback
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return fallback
}
