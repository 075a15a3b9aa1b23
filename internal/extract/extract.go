// Package extract converts HTML sources to Markdown so their reading time
// can be estimated: readability filtering isolates the main article content,
// an optional CSS selector narrows it further, and the result is rendered as
// Markdown for the block extractor.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ToMarkdown extracts readable content from HTML and converts it to Markdown.
//
// Parameters:
//   - content: io.Reader containing HTML
//   - selector: optional CSS selector to pick content (overrides includeAll)
//   - includeAll: if true, convert the whole document without readability filtering
//   - baseURL: optional URL for context during readability extraction (can be nil)
func ToMarkdown(content io.Reader, selector string, includeAll bool, baseURL *url.URL) (string, error) {
	if selector != "" {
		return selectedMarkdown(content, selector)
	}
	if includeAll {
		html, err := io.ReadAll(content)
		if err != nil {
			return "", fmt.Errorf("failed to read HTML content: %w", err)
		}
		return toMarkdown(string(html))
	}
	return readableMarkdown(content, baseURL)
}

// readableMarkdown runs go-readability over the document and converts the
// main article content.
func readableMarkdown(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	return toMarkdown(article.Content)
}

// selectedMarkdown converts only the elements matching a CSS selector.
func selectedMarkdown(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			// wrap each element to preserve structure
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return toMarkdown(strings.Join(htmlParts, "\n"))
}

// toMarkdown converts an HTML string to tidy Markdown.
func toMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	// collapse excess blank lines left by the conversion
	cleaned := strings.TrimSpace(markdown)
	cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")

	return cleaned, nil
}
