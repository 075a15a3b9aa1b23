package analyze

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/halostatue/prosody/internal/block"
)

// Placeholder tokens are literal strings so golden-output tests can assert
// on the token lists directly.
const (
	urlPlaceholder         = "URL"
	emailPlaceholder       = "EMAIL"
	numberPlaceholder      = "NUMBER"
	contractionPlaceholder = "CONTRACTION"
)

var (
	// a URL is a scheme followed by a run of non-whitespace; bare domains
	// without a scheme are not URLs and split per algorithm
	urlRe = regexp.MustCompile(`https?://\S+`)

	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]+`)

	// grouped numbers (1,234 / 1,234.56), then numeric fractions (50/50),
	// then plain decimals and integers; alternation order matters because
	// the engine takes the first alternative that matches
	numberRe = regexp.MustCompile(
		`\b\d{1,3}(?:,\d{3})+(?:\.\d+)?\b` +
			`|\b\d+(?:\.\d+)?/\d+(?:\.\d+)?\b` +
			`|\b\d+(?:\.\d+)?\b`)

	contractionRe = regexp.MustCompile(`\w+'\w+`)
)

// TextAnalyzer tokenizes prose into words under a resolved algorithm.
// It accepts blocks of any kind and serves as the chain's catch-all.
type TextAnalyzer struct {
	cfg splitConfig
}

// NewTextAnalyzer creates a TextAnalyzer for the given options.
// Conflicting or unrecognized option values are reported here, before any
// block is analyzed.
func NewTextAnalyzer(opts Options) (*TextAnalyzer, error) {
	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return &TextAnalyzer{cfg: cfg}, nil
}

// Analyze tokenizes the block content and counts words. Prose carries no
// extra reading load, so ReadingWords equals Words.
func (ta *TextAnalyzer) Analyze(blk block.Block) (Result, error) {
	tokens := ta.Tokens(blk.Content)
	n := len(tokens)

	slog.Debug("Prose tokens", "count", n, "tokens", tokens)

	return Result{
		Words:        n,
		ReadingWords: n,
		Meta:         map[string]any{categoryKey: categoryText},
	}, nil
}

// Name returns the name of this analyzer for logging and debugging.
func (ta *TextAnalyzer) Name() string {
	return "text"
}

// Tokens returns the exact token list the analyzer counts, in order.
// Substitutions apply before splitting, in a fixed order: URLs, emails,
// numbers (each gated by its preserve flag), then contractions, which are
// never split regardless of algorithm.
func (ta *TextAnalyzer) Tokens(content string) []string {
	s := content
	if ta.cfg.preserveURLs {
		s = urlRe.ReplaceAllString(s, urlPlaceholder)
	}
	if ta.cfg.preserveEmails {
		s = emailRe.ReplaceAllString(s, emailPlaceholder)
	}
	if ta.cfg.preserveNumbers {
		s = numberRe.ReplaceAllString(s, numberPlaceholder)
	}
	s = contractionRe.ReplaceAllString(s, contractionPlaceholder)

	var tokens []string
	if ta.cfg.pattern != nil {
		for _, tok := range ta.cfg.pattern.Split(s, -1) {
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	} else {
		tokens = strings.FieldsFunc(s, func(r rune) bool {
			return strings.ContainsRune(ta.cfg.separators, r)
		})
	}

	if !ta.cfg.skipPunctuation {
		return tokens
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if !punctuationOnly(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}

// punctuationOnly reports whether every rune in tok is punctuation or a
// symbol character.
func punctuationOnly(tok string) bool {
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
