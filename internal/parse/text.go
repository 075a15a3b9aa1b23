package parse

import (
	"log/slog"

	"github.com/halostatue/prosody/internal/block"
)

// TextParser wraps raw content in a single text block.
// It never trims or rewrites content; the block carries every input byte.
type TextParser struct{}

// NewTextParser creates a new TextParser instance.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse returns a single text block holding content verbatim.
// Empty input yields an empty block sequence.
func (tp *TextParser) Parse(content string) ([]block.Block, error) {
	if content == "" {
		slog.Debug("Text parse produced no blocks", "reason", "empty input")
		return nil, nil
	}

	slog.Debug("Text parse produced single block", "contentLength", len(content))
	return []block.Block{block.NewText(content)}, nil
}

// Name returns the name of this parser for logging and debugging.
func (tp *TextParser) Name() string {
	return "text"
}
