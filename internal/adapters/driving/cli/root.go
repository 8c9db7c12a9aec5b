// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/veridoc-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/veridoc-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/veridoc-cli/internal/adapters/driven/fetch"
	reportpdf "github.com/custodia-labs/veridoc-cli/internal/adapters/driven/report/pdf"
	"github.com/custodia-labs/veridoc-cli/internal/adapters/driven/websearch/serper"
	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veridoc-cli/internal/core/services"
	"github.com/custodia-labs/veridoc-cli/internal/logger"
	"github.com/custodia-labs/veridoc-cli/internal/normalisers"
	"github.com/custodia-labs/veridoc-cli/internal/normalisers/docx"
	htmlnorm "github.com/custodia-labs/veridoc-cli/internal/normalisers/html"
	pdfnorm "github.com/custodia-labs/veridoc-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/veridoc-cli/internal/normalisers/plaintext"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Shared services, wired by ensureServices.
var (
	configStore driven.ConfigStore
	promptStore driven.PromptStore
	registry    *normalisers.Registry

	retriever       *services.Retriever
	analysisService *services.Analysis
	queryService    *services.QueryBuilder

	searchConfigured bool
	embedConfigured  bool
	llmConfigured    bool
)

var rootCmd = &cobra.Command{
	Use:   "veridoc",
	Short: "Check documents for originality and AI-generated content",
	Long: `veridoc analyses a document for overlap with published web content
and estimates the likelihood that it was machine-generated.

The document is segmented into sentence windows, matched against pages
retrieved through web search, and scored in two stages: a lexical
token-set ratio followed by embedding cosine similarity.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ensureStores opens the config and prompt stores. Cheap enough for
// commands that only read or write configuration.
func ensureStores() error {
	if configStore != nil {
		return nil
	}

	// API keys may live in a local .env during development.
	_ = godotenv.Load()

	var err error
	configStore, err = file.NewConfigStore(os.Getenv("VERIDOC_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	promptStore, err = file.NewPromptStore(os.Getenv("VERIDOC_PROMPT_DIR"))
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}
	return nil
}

// ensureServices wires adapters and core services on top of the
// stores. Commands that analyse documents call this; it validates
// connectivity to every configured provider.
func ensureServices() error {
	if analysisService != nil {
		return nil
	}
	if err := ensureStores(); err != nil {
		return err
	}

	registry = normalisers.NewRegistry()
	registry.Register(htmlnorm.New())
	registry.Register(pdfnorm.New())
	registry.Register(docx.New())
	registry.Register(plaintext.New())
	registry.SetFallback(plaintext.New())

	tuning := tuningFromConfig()

	// Optional search provider.
	var search driven.WebSearchProvider
	if settings := searchSettings(); settings.IsConfigured() {
		provider, err := serper.New(serper.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("configure search: %w", err)
		}
		search = provider
		searchConfigured = true
	} else {
		logger.Warn("No search API key set; analyses will run without web retrieval")
	}

	// Optional embedding provider, wrapped in the memoising cache.
	embedder, err := ai.CreateAndValidateEmbeddingService(embeddingSettings())
	if err != nil {
		return err
	}
	embedConfigured = embedder != nil
	if embedder == nil {
		logger.Warn("No embedding provider configured; semantic scoring is unavailable")
	}

	// Optional generative provider.
	llm, err := ai.CreateAndValidateGenerativeService(llmSettings())
	if err != nil {
		return err
	}
	llmConfigured = llm != nil
	if llm == nil {
		logger.Warn("No generative provider configured; using keyword queries and neutral AI estimates")
	}

	builder := services.NewQueryBuilder(llm, promptStore, tuning)
	queryService = builder

	retriever = services.NewRetriever(search, fetch.New(fetch.Config{}), htmlnorm.Cleaner{}, builder, tuning)
	scanner := services.NewScanner(embedder, tuning)
	detector := services.NewDetector(llm, promptStore)

	var report driven.ReportWriter
	if !skipReport {
		dir := reportDir
		if dir == "" {
			dir = configStore.GetString("report.dir")
		}
		report = reportpdf.New(dir)
	}

	analysisService = services.NewAnalysis(retriever, scanner, detector, report)
	return nil
}

// tuningFromConfig reads overlap knobs from the config store; zero
// values fall back to defaults.
func tuningFromConfig() domain.Tuning {
	if configStore == nil {
		return domain.DefaultTuning()
	}
	return domain.Tuning{
		MaxQueries:        configStore.GetInt("tuning.max_queries"),
		MaxPages:          configStore.GetInt("tuning.max_pages"),
		WindowSentences:   configStore.GetInt("tuning.window_sentences"),
		FuzzThreshold:     configStore.GetInt("tuning.fuzz_threshold"),
		CosineThreshold:   configStore.GetFloat("tuning.cosine_threshold"),
		MaxOverlapsPerURL: configStore.GetInt("tuning.max_overlaps_per_url"),
	}.Normalised()
}

// searchSettings resolves the search provider configuration from the
// config store, with environment variables as override.
func searchSettings() *domain.SearchSettings {
	settings := &domain.SearchSettings{
		APIKey:  configStore.GetString("search.api_key"),
		BaseURL: configStore.GetString("search.base_url"),
	}
	if key := os.Getenv("SERPER_API_KEY"); key != "" {
		settings.APIKey = key
	}
	return settings
}

// embeddingSettings resolves the embedding provider configuration.
func embeddingSettings() *domain.EmbeddingSettings {
	settings := &domain.EmbeddingSettings{
		Provider: configStore.GetString("embedding.provider"),
		APIKey:   configStore.GetString("embedding.api_key"),
		BaseURL:  configStore.GetString("embedding.base_url"),
		Model:    configStore.GetString("embedding.model"),
	}
	if settings.Provider == "" {
		settings.Provider = ai.ProviderGemini
	}
	if settings.APIKey == "" {
		settings.APIKey = providerKeyFromEnv(settings.Provider)
	}
	return settings
}

// llmSettings resolves the generative provider configuration.
func llmSettings() *domain.LLMSettings {
	settings := &domain.LLMSettings{
		Provider: configStore.GetString("llm.provider"),
		APIKey:   configStore.GetString("llm.api_key"),
		BaseURL:  configStore.GetString("llm.base_url"),
		Model:    configStore.GetString("llm.model"),
	}
	if settings.Provider == "" {
		settings.Provider = ai.ProviderGemini
	}
	if settings.APIKey == "" {
		settings.APIKey = providerKeyFromEnv(settings.Provider)
	}
	return settings
}

// providerKeyFromEnv maps a provider name to its conventional key
// environment variable.
func providerKeyFromEnv(provider string) string {
	switch provider {
	case ai.ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	case ai.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	default:
		return ""
	}
}
