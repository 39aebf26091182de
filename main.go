package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	csvPath      string
	promptPath   string
	modelName    string
	providerName string
	apiKey       string
	dryRun       bool
	batchSize    int
	batchDelay   time.Duration
	extraPairs   []string
)

var rootCmd = &cobra.Command{
	Use:   "news-summarizer",
	Short: "Batch summarization of news articles using AI",
	Long: `Reads a CSV table with id, article and summary columns, renders a
prompt for every row whose summary is empty, sends it to a text
generation API and writes the result back into the same table.

Rows that already have a summary are never touched. Rows that still
fail after retries are recorded in the error log and the run
continues; the table is always replaced atomically, so an interrupted
run leaves the previous table intact.

Exit codes:
  0  all pending rows were summarized (or previewed in dry-run mode)
  1  fatal error: missing credentials, unreadable template or table,
     or the final table write failed
  2  one or more rows failed after retries`,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runBatch())
	},
}

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Fetch an article from a URL and append it to the table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := addArticle(args[0]); err != nil {
			log.Fatalf("Adding article failed: %v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "data/sample.csv", "Path to the article CSV (headers: id,article,summary)")
	rootCmd.Flags().StringVar(&promptPath, "prompt", defaultPromptPath, "Path to the prompt template")
	rootCmd.Flags().StringVar(&modelName, "model", "", "Model name (default from settings or OPENAI_MODEL)")
	rootCmd.Flags().StringVar(&providerName, "provider", "", "API provider: openai or anthropic")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (default from OPENAI_API_KEY or ANTHROPIC_API_KEY)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview rendered prompts without calling the API or changing summaries")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Rows per batch before pausing (default from settings)")
	rootCmd.Flags().DurationVar(&batchDelay, "batch-delay", 0, "Pause between batches (default from settings)")
	rootCmd.Flags().StringArrayVar(&extraPairs, "extra", nil, "Extra template placeholder as NAME=VALUE (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runBatch() int {
	godotenv.Load()

	if err := ensureConfigExists(); err != nil {
		log.Printf("✗ %v", err)
		return 1
	}

	settings, err := loadSettings(getConfigPath("settings.yaml"))
	if err != nil {
		log.Printf("✗ %v", err)
		return 1
	}
	applyOverrides(settings)

	extras, err := parseExtras(extraPairs)
	if err != nil {
		log.Printf("✗ %v", err)
		return 1
	}

	// Credentials are checked before any row is touched so a bad key
	// cannot burn through the table producing per-row failures.
	var summarizer Summarizer
	if !dryRun {
		key := resolveAPIKey(settings.Provider)
		if key == "" {
			authErr := &AuthError{Err: fmt.Errorf("no API key: set %s, use --api-key, or run with --dry-run", keyEnvVar(settings.Provider))}
			log.Printf("✗ %v", authErr)
			return 1
		}
		summarizer, err = NewSummarizer(settings, key)
		if err != nil {
			log.Printf("✗ %v", err)
			return 1
		}
	}

	errorLog := OpenErrorLog(settings.ErrorLog)
	defer errorLog.Close()

	runner := NewBatchRunner(summarizer, errorLog, settings)
	runner.SetDryRun(dryRun)
	runner.SetExtras(extras)

	summary, err := runner.Run(context.Background(), csvPath, promptPath)
	if err != nil {
		log.Printf("✗ Run failed: %v", err)
		return 1
	}

	log.Printf("Done: %d rows, %d skipped, %d previewed, %d summarized, %d failed",
		summary.Total, summary.Skipped, summary.Previewed, summary.Succeeded, summary.Failed)

	if summary.Failed > 0 {
		log.Printf("✗ %d rows failed, see %s", summary.Failed, settings.ErrorLog)
		return 2
	}
	return 0
}

// applyOverrides layers command-line flags over the settings file
func applyOverrides(settings *Settings) {
	if providerName != "" {
		settings.Provider = providerName
	}
	if modelName != "" {
		settings.Model = modelName
	} else if env := os.Getenv("OPENAI_MODEL"); env != "" && settings.Provider != "anthropic" {
		settings.Model = env
	}
	if batchSize > 0 {
		settings.Batch.Size = batchSize
	}
	if batchDelay > 0 {
		settings.Batch.Delay = Duration(batchDelay)
	}
}

func resolveAPIKey(provider string) string {
	if apiKey != "" {
		return apiKey
	}
	return os.Getenv(keyEnvVar(provider))
}

func keyEnvVar(provider string) string {
	if provider == "anthropic" {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// addArticle fetches a URL and appends it as a pending row
func addArticle(url string) error {
	fetcher := NewContentFetcher()
	text, err := fetcher.FetchArticle(url)
	if err != nil {
		return fmt.Errorf("fetching article: %w", err)
	}

	table, err := LoadTable(csvPath)
	if errors.Is(err, os.ErrNotExist) {
		table = NewTable()
	} else if err != nil {
		return fmt.Errorf("loading table: %w", err)
	}

	if dir := filepath.Dir(csvPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating table directory: %w", err)
		}
	}

	id := table.NextID()
	table.Append(id, text)
	if err := table.Save(csvPath); err != nil {
		return fmt.Errorf("saving table: %w", err)
	}

	log.Printf("✓ Added article id=%s (%d characters) to %s", id, len(text), csvPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
