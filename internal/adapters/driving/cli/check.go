package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/veridoc-cli/internal/core/domain"
	"github.com/custodia-labs/veridoc-cli/internal/normalisers"
)

var (
	jsonOutput bool
	skipReport bool
	reportDir  string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Analyse a document for originality and AI likelihood",
	Long: `Analyse a document for overlap with published web content and
estimate the likelihood that it was machine-generated.

Accepts plain text, Markdown, HTML, PDF and DOCX files. Pass "-" to
read plain text from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "output the full result as JSON")
	checkCmd.Flags().BoolVar(&skipReport, "no-report", false, "skip rendering the PDF report")
	checkCmd.Flags().StringVarP(&reportDir, "output", "o", "", "directory for the PDF report (default: temp dir)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	normalised, err := registry.Normalise(cmd.Context(), raw)
	if err != nil {
		return fmt.Errorf("normalise %s: %w", raw.URI, err)
	}

	var bar *progressbar.ProgressBar
	if !jsonOutput && searchConfigured {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Retrieving pages"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		retriever.OnPage = func(hits int) { _ = bar.Set(hits) }
		defer func() { retriever.OnPage = nil }()
	}

	result, err := analysisService.Analyse(cmd.Context(), normalised.Document)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("analyse %s: %w", raw.URI, err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printResult(cmd, result)
	return nil
}

// readInput loads the document bytes from a path or, for "-", stdin.
func readInput(path string) (*domain.RawDocument, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &domain.RawDocument{
			URI:      "stdin",
			MIMEType: "text/plain",
			Content:  content,
		}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &domain.RawDocument{
		URI:      path,
		MIMEType: normalisers.MIMEForPath(path),
		Content:  content,
	}, nil
}

func printResult(cmd *cobra.Command, result *domain.AnalysisResult) {
	cmd.Printf("Document: %s\n", result.Document.Title)
	cmd.Printf("Words: %d  Sentences: %d  Avg sentence length: %.1f\n",
		result.Stats.Words, result.Stats.Sentences, result.Stats.AvgSentenceLen)
	cmd.Println()

	cmd.Printf("Originality score: %.1f%%\n", result.Originality)
	if !embedConfigured {
		cmd.Println("  (semantic scoring disabled: no embedding provider configured)")
	} else if !searchConfigured {
		cmd.Println("  (web retrieval disabled: no search API key configured)")
	}
	if llmConfigured {
		cmd.Printf("AI likelihood: %.0f%% (%s)\n", result.AIProbability, result.AIReason)
	} else {
		cmd.Println("AI likelihood: not estimated (no generative provider configured)")
	}
	cmd.Println()

	cmd.Printf("Queries issued: %d  Pages retrieved: %d\n", len(result.Queries), len(result.Hits))
	if failures := result.Retrieval.Failures(); failures > 0 {
		cmd.Printf("Retrieval failures: %d (run with --verbose for details)\n", failures)
	}
	cmd.Println()

	cmd.Println("Citations:")
	for _, line := range strings.Split(result.Citations(), "\n") {
		cmd.Printf("  %s\n", line)
	}

	if result.ReportPath != "" {
		cmd.Println()
		cmd.Printf("Report written to %s\n", result.ReportPath)
	}
}
