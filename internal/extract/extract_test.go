package extract_test

import (
	"strings"
	"testing"

	"github.com/halostatue/prosody/internal/extract"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
	<nav><a href="/">Home</a> | <a href="/about">About</a></nav>
	<article>
		<h1>Main Article Title</h1>
		<p>This is the first paragraph of the article with enough substance
		that readability keeps it as part of the main content body.</p>
		<p>A second paragraph continues the article and mentions a
		<a href="https://example.com/ref">reference link</a> inline.</p>
		<pre><code>x = y + z</code></pre>
	</article>
	<footer>Copyright notice and unrelated boilerplate text.</footer>
</body>
</html>`

const fragmentsHTML = `<html>
<body>
	<div class="content"><p>First content div.</p></div>
	<div class="content"><p>Second content div.</p></div>
	<div class="sidebar"><p>Sidebar noise.</p></div>
</body>
</html>`

func TestToMarkdownReadability(t *testing.T) {
	markdown, err := extract.ToMarkdown(strings.NewReader(articleHTML), "", false, nil)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}

	if !strings.Contains(markdown, "first paragraph of the article") {
		t.Errorf("markdown should contain the article body, got:\n%s", markdown)
	}
	if !strings.Contains(markdown, "second paragraph") {
		t.Errorf("markdown should contain the second paragraph, got:\n%s", markdown)
	}
}

func TestToMarkdownIncludeAll(t *testing.T) {
	markdown, err := extract.ToMarkdown(strings.NewReader(articleHTML), "", true, nil)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}

	// with includeAll nothing is filtered, so navigation and footer survive
	if !strings.Contains(markdown, "About") {
		t.Errorf("include-all markdown should keep navigation, got:\n%s", markdown)
	}
	if !strings.Contains(markdown, "Copyright notice") {
		t.Errorf("include-all markdown should keep the footer, got:\n%s", markdown)
	}
	if !strings.Contains(markdown, "first paragraph of the article") {
		t.Errorf("include-all markdown should keep the article body, got:\n%s", markdown)
	}
}

func TestToMarkdownSelector(t *testing.T) {
	markdown, err := extract.ToMarkdown(strings.NewReader(fragmentsHTML), ".content", false, nil)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}

	if !strings.Contains(markdown, "First content div.") {
		t.Errorf("markdown should contain the first matching element, got:\n%s", markdown)
	}
	if !strings.Contains(markdown, "Second content div.") {
		t.Errorf("markdown should contain the second matching element, got:\n%s", markdown)
	}
	if strings.Contains(markdown, "Sidebar noise.") {
		t.Errorf("markdown should not contain unselected content, got:\n%s", markdown)
	}
}

func TestToMarkdownSelectorNoMatch(t *testing.T) {
	_, err := extract.ToMarkdown(strings.NewReader(fragmentsHTML), ".missing", false, nil)
	if err == nil {
		t.Fatal("ToMarkdown() with a non-matching selector should error")
	}
	if !strings.Contains(err.Error(), "no elements found") {
		t.Errorf("error should mention the missing selection, got %v", err)
	}
}

func TestToMarkdownCodeBlockSurvives(t *testing.T) {
	markdown, err := extract.ToMarkdown(strings.NewReader(articleHTML), "article", false, nil)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}

	// pre/code must come through as a markdown code construct so the block
	// extractor can classify it
	if !strings.Contains(markdown, "x = y + z") {
		t.Errorf("markdown should preserve code content, got:\n%s", markdown)
	}
}

func TestToMarkdownMalformedHTML(t *testing.T) {
	malformed := "<html><body><p>Unclosed paragraph<div>Stray div</body>"

	markdown, err := extract.ToMarkdown(strings.NewReader(malformed), "", true, nil)
	if err != nil {
		t.Fatalf("ToMarkdown() should tolerate malformed HTML, error = %v", err)
	}
	if !strings.Contains(markdown, "Unclosed paragraph") {
		t.Errorf("markdown should contain recovered content, got:\n%s", markdown)
	}
}
