package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/halostatue/prosody/internal/summary"

	"gopkg.in/yaml.v3"
)

// Report pairs a document summary with its source identity for output.
type Report struct {
	Source          string `json:"source,omitempty" yaml:"source,omitempty"`
	Title           string `json:"title,omitempty" yaml:"title,omitempty"`
	summary.Summary `yaml:",inline"`
}

// renderReports renders one report per processed document in the selected
// output format. JSON and YAML render a single document as one object and
// multiple documents as a list.
func renderReports(reports []Report, format OutputFormat) (string, error) {
	switch format {
	case OutputJSON:
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON output: %w", err)
		}
		return string(data) + "\n", nil

	case OutputYAML:
		var v any = reports
		if len(reports) == 1 {
			v = reports[0]
		}
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML output: %w", err)
		}
		return string(data), nil

	default:
		var sb strings.Builder
		for _, report := range reports {
			sb.WriteString(report.line(len(reports) > 1))
			sb.WriteByte('\n')
		}
		return sb.String(), nil
	}
}

// line formats the human-readable single-line report.
func (r Report) line(labeled bool) string {
	var sb strings.Builder

	if labeled || r.Title != "" {
		label := r.Title
		if label == "" {
			label = r.Source
		}
		fmt.Fprintf(&sb, "%s: ", label)
	}

	fmt.Fprintf(&sb, "%d min read · %d words", r.ReadingTime, r.Words)

	if r.Code != nil {
		fmt.Fprintf(&sb, " · code: %d words / %d lines", r.Code.Words, r.Code.Lines)
	}
	if tokens, ok := r.Meta["llm_tokens"].(int); ok {
		fmt.Fprintf(&sb, " · %d llm tokens", tokens)
	}

	return sb.String()
}
