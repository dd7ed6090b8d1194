// Package cli implements the shoptalk command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/counterline-labs/shoptalk/internal/adapters/driven/ai"
	catalogfile "github.com/counterline-labs/shoptalk/internal/adapters/driven/catalog/file"
	configfile "github.com/counterline-labs/shoptalk/internal/adapters/driven/config/file"
	"github.com/counterline-labs/shoptalk/internal/adapters/driven/storage/memory"
	"github.com/counterline-labs/shoptalk/internal/adapters/driven/storage/sqlite"
	"github.com/counterline-labs/shoptalk/internal/core/domain"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driven"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
	"github.com/counterline-labs/shoptalk/internal/core/services"
	"github.com/counterline-labs/shoptalk/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Root flags.
var (
	verboseFlag  bool
	configDir    string
	dataDir      string
	inMemoryFlag bool
)

// Services wired during PersistentPreRunE. Tests may preset these to inject
// mocks; initServices leaves non-nil values alone.
var (
	configStore     driven.ConfigStore
	promptStore     driven.PromptStore
	catalogStore    driven.CatalogStore
	convStore       driven.ConversationStore
	settingsService driving.SettingsService
	catalogService  driving.CatalogService

	// assistantService is resolved lazily per command because building it
	// requires a reachable LLM provider. Tests may preset it.
	assistantService driving.AssistantService

	sqliteStore *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "shoptalk",
	Short: "Conversational shopping assistant for your product catalog",
	Long: `Shoptalk is an LLM-backed shopping assistant. It answers questions about
your product catalog by letting the model search products and read product
details through tools, so replies always reflect real catalog data.

Configure a provider with 'shoptalk settings wizard', then start chatting
with 'shoptalk chat'.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.shoptalk)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.shoptalk/data)")
	rootCmd.PersistentFlags().BoolVar(&inMemoryFlag, "in-memory", false, "keep all data in memory (nothing persisted)")
}

// Execute runs the root command.
func Execute() {
	defer teardown()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		teardown()
		os.Exit(1)
	}
}

// initServices wires stores and core services. Already-set services are kept,
// which lets tests inject fakes before calling commands.
func initServices(ctx context.Context) error {
	if configStore == nil {
		if inMemoryFlag {
			configStore = memory.NewConfigStore()
		} else {
			store, err := configfile.NewConfigStore(configDir)
			if err != nil {
				return fmt.Errorf("opening config: %w", err)
			}
			configStore = store
		}
	}

	if settingsService == nil {
		settingsService = services.NewSettingsService(configStore, ai.NewConfigValidator())
	}

	if promptStore == nil {
		store, err := configfile.NewPromptStore(promptDirFor(configDir))
		if err != nil {
			return fmt.Errorf("opening prompt store: %w", err)
		}
		promptStore = store
	}

	if catalogStore == nil || convStore == nil {
		if inMemoryFlag {
			catalogStore = memory.NewCatalogStore()
			convStore = memory.NewConversationStore()
		} else {
			store, err := sqlite.NewStore(dataDir)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			sqliteStore = store
			catalogStore = store.CatalogStore()
			convStore = store.ConversationStore()
			logger.Debug("Database: %s", store.Path())
		}
	}

	if catalogService == nil {
		catalogService = services.NewCatalogService(catalogStore)

		// First run starts with the example catalog so the assistant has
		// something to talk about.
		seeded, err := catalogService.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		if seeded > 0 {
			logger.Info("Seeded catalog with %d example products", seeded)
		}

		// An optional catalog file from settings overlays the store.
		if settings, err := settingsService.Get(); err == nil && settings.Catalog.Path != "" {
			loader := catalogfile.NewLoader(settings.Catalog.Path, catalogStore)
			count, err := loader.Load(ctx)
			if err != nil {
				logger.Warn("Catalog file %s: %v", settings.Catalog.Path, err)
			} else {
				logger.Info("Loaded %d products from %s", count, settings.Catalog.Path)
			}
		}
	}

	return nil
}

// teardown releases resources acquired by initServices.
func teardown() {
	if sqliteStore != nil {
		if err := sqliteStore.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
		sqliteStore = nil
	}
}

// promptDirFor derives the prompt directory from a config directory override.
// Empty means the store's own default (~/.shoptalk/prompts).
func promptDirFor(configDir string) string {
	if configDir == "" {
		return ""
	}
	return configDir + string(os.PathSeparator) + "prompts"
}

// resolveAssistant builds the assistant service from current settings,
// creating and validating the LLM provider. The returned cleanup closes the
// provider connection.
func resolveAssistant(ctx context.Context) (driving.AssistantService, func(), error) {
	if assistantService != nil {
		return assistantService, func() {}, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	applyEnvAPIKey(&settings.LLM)

	if !settings.LLM.IsConfigured() {
		return nil, nil, fmt.Errorf(
			"%w: set one via 'shoptalk settings llm' or the %s environment variable",
			domain.ErrAPIKeyMissing, envKeyName(settings.LLM.Provider))
	}

	llm, err := ai.CreateAndValidateLLMService(ctx, &settings.LLM)
	if err != nil {
		return nil, nil, err
	}
	if llm == nil {
		return nil, nil, domain.ErrLLMUnavailable
	}

	assistant := services.NewAssistantService(llm, catalogService, convStore, settings.Assistant)
	assistant.SetPromptStore(promptStore)

	cleanup := func() {
		if err := llm.Close(); err != nil {
			logger.Warn("closing LLM service: %v", err)
		}
	}
	return assistant, cleanup, nil
}

// applyEnvAPIKey fills a missing API key from the environment. SHOPTALK_API_KEY
// wins, then the provider's conventional variable.
func applyEnvAPIKey(settings *domain.LLMSettings) {
	if settings.APIKey != "" {
		return
	}
	if key := os.Getenv("SHOPTALK_API_KEY"); key != "" {
		settings.APIKey = key
		return
	}
	if key := os.Getenv(envKeyName(settings.Provider)); key != "" {
		settings.APIKey = key
	}
}

// envKeyName returns the conventional API key variable for a provider.
func envKeyName(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderDeepseek:
		return "DEEPSEEK_API_KEY"
	case domain.AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case domain.AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "SHOPTALK_API_KEY"
	}
}
