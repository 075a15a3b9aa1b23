package analyze

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/halostatue/prosody/internal/block"
)

// ChainPlaceholder names the default analyzer chain in a configured chain.
// It expands to [code, text] and must be the final element: the text
// analyzer accepts every block kind, so anything after it is unreachable.
const ChainPlaceholder = "default"

// Dispatcher routes each block through an ordered analyzer chain.
// The first analyzer that does not decline the block wins.
type Dispatcher struct {
	chain []Analyzer
}

// NewDispatcher creates a Dispatcher over the given analyzer chain.
func NewDispatcher(chain ...Analyzer) *Dispatcher {
	return &Dispatcher{chain: chain}
}

// DefaultChain returns the standard chain: the code analyzer first, then the
// prose catch-all configured with opts.
func DefaultChain(opts Options) ([]Analyzer, error) {
	ta, err := NewTextAnalyzer(opts)
	if err != nil {
		return nil, err
	}
	return []Analyzer{NewCodeAnalyzer(), ta}, nil
}

// BuildChain resolves a list of analyzer names ("code", "text", or the
// ChainPlaceholder) into an analyzer chain. An empty list means the default
// chain. The placeholder anywhere but last, or an unknown name, is a
// configuration error.
func BuildChain(names []string, opts Options) ([]Analyzer, error) {
	if len(names) == 0 {
		return DefaultChain(opts)
	}

	var chain []Analyzer
	for i, name := range names {
		switch strings.TrimSpace(name) {
		case "code":
			chain = append(chain, NewCodeAnalyzer())
		case "text":
			ta, err := NewTextAnalyzer(opts)
			if err != nil {
				return nil, err
			}
			chain = append(chain, ta)
		case ChainPlaceholder:
			if i != len(names)-1 {
				return nil, fmt.Errorf(
					"%w: %q placeholder must be the last analyzer in the chain", ErrConfig, ChainPlaceholder)
			}
			tail, err := DefaultChain(opts)
			if err != nil {
				return nil, err
			}
			chain = append(chain, tail...)
		default:
			return nil, fmt.Errorf("%w: unknown analyzer %q", ErrConfig, name)
		}
	}

	return chain, nil
}

// Dispatch analyzes one block with the first accepting analyzer in the
// chain. Exhausting the chain is an unhandled-block error, not a skip.
func (d *Dispatcher) Dispatch(blk block.Block) (Result, error) {
	for _, analyzer := range d.chain {
		result, err := analyzer.Analyze(blk)
		if err == nil {
			slog.Debug("Block analyzed", "analyzer", analyzer.Name(), "kind", blk.Kind.String(),
				"words", result.Words, "readingWords", result.ReadingWords)
			return result, nil
		}
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		return Result{}, err
	}

	return Result{}, fmt.Errorf("%w: %s block", ErrUnhandledBlock, blk.Kind)
}

// AnalyzeAll analyzes blocks in order. The whole batch fails on the first
// per-block error; no partial results are returned.
func (d *Dispatcher) AnalyzeAll(blocks []block.Block) ([]Result, error) {
	results := make([]Result, 0, len(blocks))
	for i, blk := range blocks {
		result, err := d.Dispatch(blk)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		results = append(results, result)
	}
	return results, nil
}
