// Package parse turns raw document content into ordered content blocks.
//
// Two parsers are provided: TextParser wraps raw content in a single text
// block, and MarkdownParser walks a goldmark AST and linearizes it into
// text and code blocks. Any collaborator implementing the Parser interface
// can be substituted at the pipeline boundary.
package parse

import (
	"errors"

	"github.com/halostatue/prosody/internal/block"
)

// ErrParse marks a malformed source document or document tree.
// Parse failures wrap this sentinel so callers can match with errors.Is.
var ErrParse = errors.New("parse error")

// Parser converts raw content into an ordered sequence of content blocks.
type Parser interface {
	// Parse returns the content blocks found in content, in document order.
	// Empty or whitespace-only input yields an empty sequence, not an error.
	Parse(content string) ([]block.Block, error)

	// Name returns a human-readable name for this parser (for logging).
	Name() string
}
