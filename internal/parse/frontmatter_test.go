package parse

import (
	"reflect"
	"testing"
)

func TestStripFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "leading front block is removed",
			content:  "---\ntitle: Post\n---\n# Heading\n",
			expected: "# Heading\n",
		},
		{
			name:     "crlf delimiters",
			content:  "---\r\ntitle: Post\r\n---\r\nbody\r\n",
			expected: "body\r\n",
		},
		{
			name:     "no front block",
			content:  "# Heading\n\nbody\n",
			expected: "# Heading\n\nbody\n",
		},
		{
			name:     "delimiter not on the first line",
			content:  "\n---\ntitle: Post\n---\nbody\n",
			expected: "\n---\ntitle: Post\n---\nbody\n",
		},
		{
			name:     "unterminated block stays intact",
			content:  "---\ntitle: Post\nbody continues\n",
			expected: "---\ntitle: Post\nbody continues\n",
		},
		{
			name:     "thematic break alone is not a front block",
			content:  "---\n",
			expected: "---\n",
		},
		{
			name:     "empty front block",
			content:  "---\n---\nbody\n",
			expected: "body\n",
		},
		{
			name:     "empty content",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFrontmatter(tt.content); got != tt.expected {
				t.Errorf("StripFrontmatter(%q) = %q, want %q", tt.content, got, tt.expected)
			}
		})
	}
}

func TestFrontmatter(t *testing.T) {
	meta, body := Frontmatter("---\ntitle: A Post\ndraft: true\nwords: 120\n---\nbody text\n")

	want := map[string]any{"title": "A Post", "draft": true, "words": 120}
	if !reflect.DeepEqual(meta, want) {
		t.Errorf("meta = %#v, want %#v", meta, want)
	}
	if body != "body text\n" {
		t.Errorf("body = %q, want %q", body, "body text\n")
	}
}

func TestFrontmatterAbsent(t *testing.T) {
	meta, body := Frontmatter("plain document\n")
	if meta != nil {
		t.Errorf("meta = %#v, want nil", meta)
	}
	if body != "plain document\n" {
		t.Errorf("body = %q, want unchanged content", body)
	}
}

func TestFrontmatterInvalidYAML(t *testing.T) {
	meta, body := Frontmatter("---\n\t: not yaml [\n---\nbody\n")
	if meta != nil {
		t.Errorf("meta = %#v, want nil for undecodable front block", meta)
	}
	// the block is still stripped; the body is what the author wrote
	if body != "body\n" {
		t.Errorf("body = %q, want %q", body, "body\n")
	}
}
