// Package app contains the core application logic for the prosody CLI.
// It composes the analysis pipeline (parse, analyze, summarize) behind a
// single pure function and hosts it over files, URLs, and standard input.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/halostatue/prosody/internal/analyze"
	"github.com/halostatue/prosody/internal/block"
	"github.com/halostatue/prosody/internal/counter"
	"github.com/halostatue/prosody/internal/extract"
	"github.com/halostatue/prosody/internal/fetch"
	"github.com/halostatue/prosody/internal/parse"
	"github.com/halostatue/prosody/internal/spinner"
	"github.com/halostatue/prosody/internal/summary"
)

// Format identifies how source content should be interpreted.
type Format int

const (
	// Auto picks a format per source from its extension (default: Markdown).
	Auto Format = iota
	// Markdown parses content as commonmark.
	Markdown
	// Text treats content as a single plain-text block.
	Text
	// HTML extracts readable content and converts it to Markdown first.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Auto:
		return "auto"
	case Markdown:
		return "markdown"
	case Text:
		return "text"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// OutputFormat defines the output format for results.
type OutputFormat int

const (
	// human-readable single line per document (default)
	OutputText OutputFormat = iota
	// JSON output format
	OutputJSON
	// YAML output format
	OutputYAML
)

// Defaults for the reading-speed model.
const (
	DefaultWordsPerMinute = 200
	DefaultMinReadingTime = 1
)

// Config holds all configuration options for the prosody application.
type Config struct {
	Sources    []string // URLs, file paths, or "-" for stdin
	Format     Format   // source content format
	Selector   string   // CSS selector for HTML extraction
	IncludeAll bool     // include all HTML content without readability filtering

	Text             analyze.Options // prose tokenization options
	Analyzers        []string        // analyzer chain names; empty = default chain
	WordsPerMinute   int             // reading speed; must be positive
	MinReadingTime   int             // reading time floor in minutes; must not be negative
	StripFrontmatter bool            // strip a leading YAML front block before parsing

	OutputFormat OutputFormat
	LLMTokens    bool // also report a tiktoken token count per document
	Quiet        bool // suppress info messages
	Debug        bool
}

// DefaultConfig returns a Config with the documented defaults applied:
// balanced tokenization, 200 words per minute, a one-minute floor, and
// frontmatter stripping enabled.
func DefaultConfig() Config {
	return Config{
		WordsPerMinute:   DefaultWordsPerMinute,
		MinReadingTime:   DefaultMinReadingTime,
		StripFrontmatter: true,
	}
}

// Analyze runs the full pipeline over one document's content: optional
// frontmatter strip, parse into blocks, analyze each block through the
// configured chain, and fold the results into a Summary.
//
// This is a pure function of its inputs; identical content and configuration
// always produce an identical Summary. Configuration problems surface as
// wrapped analyze.ErrConfig values, never as silently adjusted behavior.
func Analyze(cfg Config, content string) (summary.Summary, error) {
	body := content
	if cfg.StripFrontmatter {
		body = parse.StripFrontmatter(body)
	}

	var parser parse.Parser
	if cfg.Format == Text {
		parser = parse.NewTextParser()
	} else {
		parser = parse.NewMarkdownParser()
	}

	blocks, err := parser.Parse(body)
	if err != nil {
		return summary.Summary{}, err
	}

	chain, err := analyze.BuildChain(cfg.Analyzers, cfg.Text)
	if err != nil {
		return summary.Summary{}, err
	}

	results, err := analyze.NewDispatcher(chain...).AnalyzeAll(blocks)
	if err != nil {
		return summary.Summary{}, err
	}

	return summary.Summarize(results, cfg.WordsPerMinute, cfg.MinReadingTime)
}

// AnalyzeBlocks runs the analyze and summarize stages over already-parsed
// blocks, for hosts that bring their own parser.
func AnalyzeBlocks(cfg Config, blocks []block.Block) (summary.Summary, error) {
	chain, err := analyze.BuildChain(cfg.Analyzers, cfg.Text)
	if err != nil {
		return summary.Summary{}, err
	}

	results, err := analyze.NewDispatcher(chain...).AnalyzeAll(blocks)
	if err != nil {
		return summary.Summary{}, err
	}

	return summary.Summarize(results, cfg.WordsPerMinute, cfg.MinReadingTime)
}

// Run executes the prosody application over every configured source and
// renders one report per document.
//
// Sources that fail to load produce a warning and are skipped; the run fails
// only when nothing could be processed. Analysis and configuration errors
// fail the run immediately, since retrying other sources cannot fix them.
//
// ctx allows for cancellation of fetch operations.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	var tokenCounter *counter.TokenCounter
	if cfg.LLMTokens {
		tc, err := counter.NewTokenCounter()
		if err != nil {
			return "", fmt.Errorf("failed to initialize token counter: %w", err)
		}
		tokenCounter = tc
	}

	var reports []Report
	for _, source := range cfg.Sources {
		report, err := processSource(ctx, cfg, source, tokenCounter)
		if err != nil {
			if isConfigErr(err) {
				return "", err
			}
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}
		reports = append(reports, report)
	}

	if len(reports) == 0 {
		return "", fmt.Errorf("no sources could be processed")
	}

	return renderReports(reports, cfg.OutputFormat)
}

// processSource loads one source and analyzes it into a Report.
func processSource(ctx context.Context, cfg Config, source string, tokenCounter *counter.TokenCounter) (Report, error) {
	content, err := loadSource(ctx, cfg, source)
	if err != nil {
		return Report{}, err
	}

	// pull the document title out of the frontmatter before it is stripped
	meta, body := parse.Frontmatter(content)

	docCfg := cfg
	docCfg.Format = resolveFormat(cfg.Format, source)

	s, err := Analyze(docCfg, content)
	if err != nil {
		return Report{}, err
	}

	if tokenCounter != nil {
		if s.Meta == nil {
			s.Meta = map[string]any{}
		}
		s.Meta["llm_tokens"] = tokenCounter.Count(body)
	}

	report := Report{Source: source, Summary: s}
	if title, ok := meta["title"].(string); ok {
		report.Title = title
	}
	return report, nil
}

// loadSource fetches raw content, converting HTML sources to Markdown.
func loadSource(ctx context.Context, cfg Config, source string) (string, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	if resolveFormat(cfg.Format, source) != HTML {
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read content: %w", err)
		}
		return string(data), nil
	}

	// display spinner for longer fetch+extract operations
	if !cfg.Quiet && fetch.IsURL(source) {
		sp := spinner.New(ctx, os.Stderr, "Fetching page...")
		sp.Start()
		defer sp.Stop()
	}

	var baseURL *url.URL
	if fetch.IsURL(source) {
		baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
	}

	markdown, err := extract.ToMarkdown(reader, cfg.Selector, cfg.IncludeAll, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	return markdown, nil
}

// resolveFormat maps Auto to a concrete format per source. URLs and .html
// files are HTML; everything else defaults to Markdown, which handles plain
// prose fine.
func resolveFormat(format Format, source string) Format {
	if format != Auto {
		// HTML sources are converted to Markdown before parsing
		if format == HTML {
			return HTML
		}
		return format
	}

	if fetch.IsURL(source) {
		return HTML
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		return HTML
	case ".txt":
		return Text
	default:
		return Markdown
	}
}

// isConfigErr reports whether err is a configuration problem that would
// repeat identically for every remaining source.
func isConfigErr(err error) bool {
	return errors.Is(err, analyze.ErrConfig)
}
