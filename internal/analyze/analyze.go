// Package analyze measures the reading effort of content blocks.
//
// This package implements the per-block analysis stage of the pipeline: a
// prose analyzer with selectable tokenization algorithms, a code analyzer
// with a fixed cognitive-load model, and a dispatcher that tries an ordered
// analyzer chain per block.
//
// Usage Example:
//
//	chain, _ := analyze.DefaultChain(analyze.Options{})
//	results, err := analyze.NewDispatcher(chain...).AnalyzeAll(blocks)
//
// Analyzers signal "not my block" by returning ErrNotApplicable, which the
// dispatcher treats as fall-through rather than failure. Any collaborator
// implementing the Analyzer interface can be inserted into the chain.
package analyze

import (
	"errors"

	"github.com/halostatue/prosody/internal/block"
)

// ErrNotApplicable signals that an analyzer declines a block so the
// dispatcher can fall through to the next analyzer. It is a flow signal,
// not a failure.
var ErrNotApplicable = errors.New("analyzer not applicable to block")

// ErrConfig marks invalid or conflicting configuration values. Configuration
// problems are always surfaced, never silently corrected.
var ErrConfig = errors.New("invalid configuration")

// ErrUnhandledBlock marks a block that no analyzer in the chain accepted.
var ErrUnhandledBlock = errors.New("no analyzer accepted block")

// categoryCode and categoryText tag results for aggregation.
const (
	categoryKey  = "type"
	categoryCode = "code"
	categoryText = "text"
)

// Result is the per-block analysis outcome.
//
// Words is the raw token count; ReadingWords is the load-adjusted count used
// for reading-time estimation (equal to Words for prose, inflated for dense
// code lines). Lines is the non-blank line count for code results and zero
// otherwise.
type Result struct {
	Words        int
	ReadingWords int
	Lines        int
	Meta         map[string]any
}

// IsCode reports whether this result is tagged as code for aggregation.
// Results without a category tag aggregate as prose.
func (r Result) IsCode() bool {
	category, ok := r.Meta[categoryKey].(string)
	return ok && category == categoryCode
}

// Analyzer is a single strategy for measuring one content block.
type Analyzer interface {
	// Analyze measures the block, or returns an error wrapping
	// ErrNotApplicable when the block is not this analyzer's kind.
	Analyze(blk block.Block) (Result, error)

	// Name returns a human-readable name for this analyzer (for logging).
	Name() string
}
