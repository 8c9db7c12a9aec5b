package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and modify configuration",
	Long: `View and modify veridoc configuration.

Settings are stored in ~/.veridoc/config.toml. API keys may also be
supplied through the SERPER_API_KEY, GEMINI_API_KEY and OPENAI_API_KEY
environment variables, which take precedence over the file.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it to config.toml.

Common keys:
  search.api_key            Serper API key for web retrieval
  embedding.provider        "gemini" or "openai"
  embedding.api_key         embedding provider API key
  embedding.model           embedding model name
  llm.provider              "gemini" or "openai"
  llm.api_key               generative provider API key
  llm.model                 generative model name
  report.dir                directory for PDF reports
  tuning.fuzz_threshold     lexical gate, 0-100
  tuning.cosine_threshold   semantic gate, 0-1`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureStores(); err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	search := searchSettings()
	printKeyStatus(cmd, search.APIKey)
	printStatus(cmd, search.IsConfigured())
	cmd.Println()

	cmd.Println("[Embedding]")
	embedding := embeddingSettings()
	cmd.Printf("  Provider: %s\n", embedding.Provider)
	if embedding.Model != "" {
		cmd.Printf("  Model: %s\n", embedding.Model)
	}
	printKeyStatus(cmd, embedding.APIKey)
	printStatus(cmd, embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	llm := llmSettings()
	cmd.Printf("  Provider: %s\n", llm.Provider)
	if llm.Model != "" {
		cmd.Printf("  Model: %s\n", llm.Model)
	}
	printKeyStatus(cmd, llm.APIKey)
	printStatus(cmd, llm.IsConfigured())
	cmd.Println()

	cmd.Println("[Tuning]")
	tuning := tuningFromConfig()
	cmd.Printf("  Max queries: %d\n", tuning.MaxQueries)
	cmd.Printf("  Max pages: %d\n", tuning.MaxPages)
	cmd.Printf("  Window sentences: %d\n", tuning.WindowSentences)
	cmd.Printf("  Fuzz threshold: %d\n", tuning.FuzzThreshold)
	cmd.Printf("  Cosine threshold: %.2f\n", tuning.CosineThreshold)
	cmd.Printf("  Max overlaps per URL: %d\n", tuning.MaxOverlapsPerURL)
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := ensureStores(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := configStore.Set(key, coerceValue(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func printKeyStatus(cmd *cobra.Command, key string) {
	if key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
}

func printStatus(cmd *cobra.Command, configured bool) {
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

// coerceValue converts a command-line value into the type the config
// store's typed getters expect. Tuning keys are read back via GetInt
// and GetFloat, so storing "60" as a string would make them invisible.
func coerceValue(raw string) any {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
