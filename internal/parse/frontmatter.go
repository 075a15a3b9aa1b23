package parse

import (
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter handling is a plain string-prefix scan, applied upstream of the
// parsers: a document starts a YAML front block iff its first line is exactly
// "---", and the block runs to the next "---" line. An unterminated block is
// treated as ordinary content.

// StripFrontmatter removes a leading YAML front block from content.
// Content without a front block is returned unchanged, byte for byte.
func StripFrontmatter(content string) string {
	_, body := splitFrontmatter(content)
	return body
}

// Frontmatter splits a leading YAML front block from content and decodes it.
// The returned map is nil when there is no front block or it fails to decode;
// the returned body is content with the block removed.
func Frontmatter(content string) (map[string]any, string) {
	front, body := splitFrontmatter(content)
	if front == "" {
		return nil, body
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		slog.Debug("Frontmatter is not valid YAML", "error", err)
		return nil, body
	}
	return meta, body
}

// splitFrontmatter separates the raw YAML block from the document body.
// Returns ("", content) when content carries no well-formed front block.
func splitFrontmatter(content string) (front, body string) {
	after, found := strings.CutPrefix(content, "---\n")
	if !found {
		after, found = strings.CutPrefix(content, "---\r\n")
	}
	if !found {
		return "", content
	}

	// scan for the closing delimiter line
	offset := 0
	for offset <= len(after) {
		lineEnd := strings.IndexByte(after[offset:], '\n')
		var line string
		var next int
		if lineEnd < 0 {
			line = after[offset:]
			next = len(after) + 1
		} else {
			line = after[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		}

		if strings.TrimRight(line, "\r") == "---" {
			return after[:offset], after[min(next, len(after)):]
		}
		offset = next
	}

	// unterminated front block; leave content alone
	return "", content
}
