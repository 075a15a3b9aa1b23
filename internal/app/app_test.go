package app

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/halostatue/prosody/internal/analyze"
)

const sampleDoc = "# Example\n\nFive words of plain prose.\n\n```\nx = y + z\n```\n"

func TestAnalyzeMixedDocument(t *testing.T) {
	s, err := Analyze(DefaultConfig(), sampleDoc)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}

	// heading (1) + paragraph (5) prose words; the code line has five tokens
	// and pays the density load of 10
	if s.Words != 16 {
		t.Errorf("Words = %d, want 16", s.Words)
	}
	if s.Text == nil || s.Text.Words != 6 {
		t.Errorf("Text = %+v, want {Words:6}", s.Text)
	}
	if s.Code == nil || s.Code.Words != 10 || s.Code.Lines != 1 {
		t.Errorf("Code = %+v, want {Words:10 Lines:1}", s.Code)
	}
	if s.ReadingTime != 1 {
		t.Errorf("ReadingTime = %d, want 1", s.ReadingTime)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	first, err := Analyze(cfg, sampleDoc)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}
	second, err := Analyze(cfg, sampleDoc)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated analysis diverged:\n first: %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	s, err := Analyze(DefaultConfig(), "")
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}

	if s.Words != 0 {
		t.Errorf("Words = %d, want 0", s.Words)
	}
	if s.ReadingTime != DefaultMinReadingTime {
		t.Errorf("ReadingTime = %d, want the floor %d", s.ReadingTime, DefaultMinReadingTime)
	}
	if s.Code != nil || s.Text != nil {
		t.Errorf("expected nil category stats, got Code=%+v Text=%+v", s.Code, s.Text)
	}
}

func TestAnalyzeFrontmatter(t *testing.T) {
	doc := "---\ntitle: Sample\n---\nthree prose words\n"

	t.Run("stripped by default", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Format = Text

		s, err := Analyze(cfg, doc)
		if err != nil {
			t.Fatalf("Analyze unexpected error: %v", err)
		}
		if s.Words != 3 {
			t.Errorf("Words = %d, want 3 with the front block stripped", s.Words)
		}
	})

	t.Run("kept on request", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Format = Text
		cfg.StripFrontmatter = false

		s, err := Analyze(cfg, doc)
		if err != nil {
			t.Fatalf("Analyze unexpected error: %v", err)
		}
		// delimiters are punctuation-only tokens and drop out; the YAML
		// line itself still counts
		if s.Words != 5 {
			t.Errorf("Words = %d, want 5 with the front block kept", s.Words)
		}
	})
}

func TestAnalyzeTextFormatIsLiteral(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = Text

	s, err := Analyze(cfg, "```\nx = y + z\n```\n")
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}
	if s.Code != nil {
		t.Errorf("Code = %+v, want nil: text format never produces code blocks", s.Code)
	}
}

func TestAnalyzeConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name: "conflicting tokenization options",
			mutate: func(cfg *Config) {
				cfg.Text.Algorithm = analyze.Minimal
				cfg.Text.Separators = " -"
			},
		},
		{
			name: "misplaced chain placeholder",
			mutate: func(cfg *Config) {
				cfg.Analyzers = []string{"default", "code"}
			},
		},
		{
			name: "unknown analyzer name",
			mutate: func(cfg *Config) {
				cfg.Analyzers = []string{"bogus"}
			},
		},
		{
			name: "zero reading speed",
			mutate: func(cfg *Config) {
				cfg.WordsPerMinute = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := Analyze(cfg, sampleDoc)
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			if !errors.Is(err, analyze.ErrConfig) {
				t.Errorf("error %v should wrap analyze.ErrConfig", err)
			}
		})
	}
}

func TestAnalyzeCodeOnlyChainRejectsProse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analyzers = []string{"code"}

	_, err := Analyze(cfg, sampleDoc)
	if err == nil {
		t.Fatal("expected an unhandled-block error")
	}
	if !errors.Is(err, analyze.ErrUnhandledBlock) {
		t.Errorf("error %v should wrap analyze.ErrUnhandledBlock", err)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		source   string
		expected Format
	}{
		{name: "explicit text wins", format: Text, source: "page.html", expected: Text},
		{name: "explicit html wins", format: HTML, source: "notes.txt", expected: HTML},
		{name: "url is html", format: Auto, source: "https://example.com/post", expected: HTML},
		{name: "html extension", format: Auto, source: "page.html", expected: HTML},
		{name: "htm extension", format: Auto, source: "page.HTM", expected: HTML},
		{name: "txt extension", format: Auto, source: "notes.txt", expected: Text},
		{name: "markdown extension", format: Auto, source: "post.md", expected: Markdown},
		{name: "stdin defaults to markdown", format: Auto, source: "-", expected: Markdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFormat(tt.format, tt.source); got != tt.expected {
				t.Errorf("resolveFormat(%v, %q) = %v, want %v", tt.format, tt.source, got, tt.expected)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{Auto, "auto"},
		{Markdown, "markdown"},
		{Text, "text"},
		{HTML, "html"},
		{Format(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("Format(%d).String() = %q, want %q", int(tt.format), got, tt.expected)
		}
	}
}

func TestRenderReportsText(t *testing.T) {
	s, err := Analyze(DefaultConfig(), sampleDoc)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}

	t.Run("single unlabeled report", func(t *testing.T) {
		out, err := renderReports([]Report{{Source: "post.md", Summary: s}}, OutputText)
		if err != nil {
			t.Fatalf("renderReports unexpected error: %v", err)
		}
		want := "1 min read · 16 words · code: 10 words / 1 lines\n"
		if out != want {
			t.Errorf("output = %q, want %q", out, want)
		}
	})

	t.Run("title labels the line", func(t *testing.T) {
		out, err := renderReports([]Report{{Source: "post.md", Title: "Example", Summary: s}}, OutputText)
		if err != nil {
			t.Fatalf("renderReports unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "Example: ") {
			t.Errorf("output %q should be labeled with the title", out)
		}
	})

	t.Run("multiple reports are labeled by source", func(t *testing.T) {
		reports := []Report{
			{Source: "a.md", Summary: s},
			{Source: "b.md", Summary: s},
		}
		out, err := renderReports(reports, OutputText)
		if err != nil {
			t.Fatalf("renderReports unexpected error: %v", err)
		}
		if !strings.Contains(out, "a.md: ") || !strings.Contains(out, "b.md: ") {
			t.Errorf("output %q should label each line with its source", out)
		}
	})
}

func TestRenderReportsJSON(t *testing.T) {
	s, err := Analyze(DefaultConfig(), sampleDoc)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}

	t.Run("single report is an object", func(t *testing.T) {
		out, err := renderReports([]Report{{Source: "post.md", Summary: s}}, OutputJSON)
		if err != nil {
			t.Fatalf("renderReports unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "{") {
			t.Errorf("single-document JSON should be an object, got %q", out)
		}
		if !strings.Contains(out, `"words": 16`) {
			t.Errorf("output %q should carry the word total", out)
		}
	})

	t.Run("multiple reports are a list", func(t *testing.T) {
		reports := []Report{
			{Source: "a.md", Summary: s},
			{Source: "b.md", Summary: s},
		}
		out, err := renderReports(reports, OutputJSON)
		if err != nil {
			t.Fatalf("renderReports unexpected error: %v", err)
		}
		if !strings.HasPrefix(out, "[") {
			t.Errorf("multi-document JSON should be a list, got %q", out)
		}
	})
}

func TestRenderReportsYAML(t *testing.T) {
	s, err := Analyze(DefaultConfig(), sampleDoc)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}

	out, err := renderReports([]Report{{Source: "post.md", Summary: s}}, OutputYAML)
	if err != nil {
		t.Fatalf("renderReports unexpected error: %v", err)
	}
	if !strings.Contains(out, "source: post.md") {
		t.Errorf("output %q should carry the source", out)
	}
	if !strings.Contains(out, "words: 16") {
		t.Errorf("output %q should carry the word total", out)
	}
}
