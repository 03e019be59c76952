// Package cli provides the cobra command surface of the folio CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/folio-labs/folio-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/folio-labs/folio-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/folio-labs/folio-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/folio-labs/folio-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/folio-labs/folio-cli/internal/adapters/driven/llm/openai"
	"github.com/folio-labs/folio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/folio-labs/folio-cli/internal/chunker"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/core/services"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Services injected into commands. Wired by initServices; tests swap them
// for mocks.
var (
	cfg              *configfile.Config
	chunkStore       driven.ChunkStore
	gateway          *services.Gateway
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	assistantService driving.AssistantService
)

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Chat with your portfolio",
	Long: `folio indexes your portfolio content (profile fields, documents,
repository and video metadata) into a local vector store and answers
questions about it with retrieval-augmented generation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose pipeline logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.folio)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.folio/data)")
}

// Execute runs the CLI.
func Execute(v string) {
	version = v
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices wires config, store, model adapters and core services.
// Commands that only print local state skip it.
func initServices() error {
	if ingestService != nil {
		return nil
	}

	store, err := configfile.NewStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	cfg, err = store.Load()
	if err != nil {
		return err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	chunkStore, err = sqlite.NewStore(dataDir)
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}
	gateway = services.NewGateway(embedder)

	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, answers degrade to raw context: %v", err)
		llm = nil
	}

	ingestService = services.NewIngestService(chunker.New(), gateway, chunkStore)
	retrieval := services.NewRetrievalService(gateway, chunkStore)
	retrievalService = retrieval
	assistantService = services.NewAssistantService(retrieval, llm, gateway, cfg.TopK)

	return nil
}

// githubToken resolves the GitHub token from config or environment.
func githubToken() string {
	if cfg != nil && cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// youtubeAPIKey resolves the YouTube API key from config or environment.
func youtubeAPIKey() string {
	if cfg != nil && cfg.YouTube.APIKey != "" {
		return cfg.YouTube.APIKey
	}
	return os.Getenv("YOUTUBE_API_KEY")
}

// buildEmbedder constructs the configured embedding adapter.
func buildEmbedder(cfg configfile.EmbeddingConfig) (driven.Embedder, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollamaembed.New(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		embedder, err := openaiembed.New(openaiembed.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		return embedder, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// buildLLM constructs the configured chat adapter. Errors are soft: the
// assistant runs without an LLM in degraded mode.
func buildLLM(cfg configfile.LLMConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollamallm.New(ollamallm.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		llm, err := openaillm.New(openaillm.Config{
			APIKey:  apiKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
