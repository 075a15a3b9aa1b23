package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/halostatue/prosody/internal/analyze"
	"github.com/halostatue/prosody/internal/app"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	cfg := app.DefaultConfig()

	// prose tokenization options
	algorithmName, _ := cmd.Flags().GetString("algorithm")
	algorithm, err := analyze.ParseAlgorithm(algorithmName)
	if err != nil {
		return app.Config{}, err
	}
	cfg.Text.Algorithm = algorithm
	cfg.Text.Separators, _ = cmd.Flags().GetString("separators")

	// flag overrides only apply when the flag was actually given,
	// so presets keep their own defaults otherwise
	if cmd.Flags().Changed("preserve-urls") {
		value, _ := cmd.Flags().GetBool("preserve-urls")
		cfg.Text.PreserveURLs = analyze.Bool(value)
	}
	if cmd.Flags().Changed("preserve-emails") {
		value, _ := cmd.Flags().GetBool("preserve-emails")
		cfg.Text.PreserveEmails = analyze.Bool(value)
	}
	if cmd.Flags().Changed("preserve-numbers") {
		value, _ := cmd.Flags().GetBool("preserve-numbers")
		cfg.Text.PreserveNumbers = analyze.Bool(value)
	}
	if cmd.Flags().Changed("skip-punctuation") {
		value, _ := cmd.Flags().GetBool("skip-punctuation")
		cfg.Text.SkipPunctuation = analyze.Bool(value)
	}

	if analyzers, _ := cmd.Flags().GetString("analyzers"); analyzers != "" {
		cfg.Analyzers = strings.Split(analyzers, ",")
	}

	cfg.WordsPerMinute, _ = cmd.Flags().GetInt("wpm")
	cfg.MinReadingTime, _ = cmd.Flags().GetInt("min-time")

	keepFrontmatter, _ := cmd.Flags().GetBool("keep-frontmatter")
	cfg.StripFrontmatter = !keepFrontmatter

	// determine source format
	textFlag, _ := cmd.Flags().GetBool("text")
	htmlFlag, _ := cmd.Flags().GetBool("html")
	switch {
	case textFlag:
		cfg.Format = app.Text
	case htmlFlag:
		cfg.Format = app.HTML
	default:
		cfg.Format = app.Auto
	}

	cfg.Selector, _ = cmd.Flags().GetString("selector")
	cfg.IncludeAll, _ = cmd.Flags().GetBool("include-all")

	// determine output format
	jsonFlag, _ := cmd.Flags().GetBool("json")
	yamlFlag, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonFlag:
		cfg.OutputFormat = app.OutputJSON
	case yamlFlag:
		cfg.OutputFormat = app.OutputYAML
	default:
		cfg.OutputFormat = app.OutputText
	}

	cfg.LLMTokens, _ = cmd.Flags().GetBool("llm-tokens")
	cfg.Quiet, _ = cmd.Flags().GetBool("quiet")
	cfg.Debug, _ = cmd.Flags().GetBool("debug")

	// use positional arguments as sources; no arguments means stdin
	if len(args) == 0 {
		cfg.Sources = []string{"-"}
	} else {
		cfg.Sources = args
	}

	return cfg, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "prosody [sources...]",
	Short: "Estimate reading time for prose and code",
	Long: `Prosody estimates reading effort for mixed prose/code documents: it counts
words, weighs code blocks by their cognitive load, and derives an estimated
reading time. Sources may include Markdown or HTML files, URLs, or standard
input.

Examples:
  prosody post.md
  prosody --json https://example.com/article
  cat draft.md | prosody --algorithm minimal`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from flags and arguments
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(cfg.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("prosody failed: %w", err)
		}

		fmt.Print(result)

		return nil
	},
}

func init() {
	// tokenization flags; a named algorithm and custom separators are
	// mutually exclusive, which the core validates and reports
	rootCmd.Flags().StringP("algorithm", "a", "", "Tokenization algorithm: minimal, balanced, or maximal (default: balanced)")
	rootCmd.Flags().String("separators", "", "Custom word separator characters (mutually exclusive with --algorithm)")
	rootCmd.Flags().Bool("preserve-urls", false, "Count each URL as a single word")
	rootCmd.Flags().Bool("preserve-emails", false, "Count each email address as a single word")
	rootCmd.Flags().Bool("preserve-numbers", false, "Count each grouped number or fraction as a single word")
	rootCmd.Flags().Bool("skip-punctuation", false, "Drop punctuation-only tokens")
	rootCmd.Flags().String("analyzers", "", "Comma-separated analyzer chain (code, text, or default placeholder last)")

	// reading speed model
	rootCmd.Flags().Int("wpm", app.DefaultWordsPerMinute, "Reading speed in words per minute")
	rootCmd.Flags().Int("min-time", app.DefaultMinReadingTime, "Minimum reading time in minutes")

	rootCmd.Flags().Bool("keep-frontmatter", false, "Keep a leading YAML front block instead of stripping it")

	// source format flags are mutually exclusive
	rootCmd.Flags().Bool("text", false, "Treat sources as plain text")
	rootCmd.Flags().Bool("html", false, "Treat sources as HTML")
	rootCmd.MarkFlagsMutuallyExclusive("text", "html")

	// HTML extraction flags
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector for HTML content extraction")
	rootCmd.Flags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")

	// output format flags are mutually exclusive
	rootCmd.Flags().Bool("json", false, "Output in JSON format")
	rootCmd.Flags().Bool("yaml", false, "Output in YAML format")
	rootCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	// other flags
	rootCmd.Flags().Bool("llm-tokens", false, "Also report a cl100k_base token count per document")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress warning messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
