package analyze

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/halostatue/prosody/internal/block"
)

var (
	// a numeric literal is optionally signed with optional fraction and
	// exponent; the leading group keeps a sign from being stolen out of an
	// identifier like i-1
	codeNumberRe = regexp.MustCompile(`(^|[^\w.])([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)`)

	// two word characters joined by a single dot, as in object.method
	dottedPairRe = regexp.MustCompile(`(\w)\.(\w)`)

	// word runs and punctuation/operator runs are both tokens
	codeTokenRe = regexp.MustCompile(`\w+|[^\w\s]+`)
)

// CodeAnalyzer measures code blocks line by line and applies a fixed
// cognitive-load model: short lines cost their token count, dense lines
// (5 tokens or more) cost max(tokens+3, 10). The analyzer takes no
// configuration; its behavior is fixed.
type CodeAnalyzer struct{}

// NewCodeAnalyzer creates a new CodeAnalyzer instance.
func NewCodeAnalyzer() *CodeAnalyzer {
	return &CodeAnalyzer{}
}

// Analyze measures a code block. For any other block kind it returns a
// wrapped ErrNotApplicable so the dispatcher can fall through.
//
// Blank lines (whitespace-only) are excluded from the word, reading-word,
// and line totals.
func (ca *CodeAnalyzer) Analyze(blk block.Block) (Result, error) {
	if blk.Kind != block.Code {
		return Result{}, fmt.Errorf("%w: %s block", ErrNotApplicable, blk.Kind)
	}

	var words, readingWords, lines int
	for _, line := range strings.Split(blk.Content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := codeTokens(line)
		n := len(tokens)
		load := lineLoad(n)

		words += n
		readingWords += load
		lines++

		slog.Debug("Code line tokens", "tokens", tokens, "load", load)
	}

	return Result{
		Words:        words,
		ReadingWords: readingWords,
		Lines:        lines,
		Meta:         map[string]any{categoryKey: categoryCode},
	}, nil
}

// Name returns the name of this analyzer for logging and debugging.
func (ca *CodeAnalyzer) Name() string {
	return "code"
}

// codeTokens tokenizes one line of code: unwrap single-line string literals,
// collapse numeric literals, break single-dot word joins apart, then split
// into word and operator tokens.
func codeTokens(line string) []string {
	s := unwrapLiterals(line)
	s = codeNumberRe.ReplaceAllString(s, "${1}"+numberPlaceholder)

	// repeat until stable: a.b.c needs two passes because each match
	// consumes the shared word character
	for {
		split := dottedPairRe.ReplaceAllString(s, "$1 $2")
		if split == s {
			break
		}
		s = split
	}

	return codeTokenRe.FindAllString(s, -1)
}

// unwrapLiterals replaces single and double quote and backtick delimiters
// with spaces so literal contents tokenize as ordinary words. Runs of three
// or more delimiters are triple-delimited literals and are left untouched.
func unwrapLiterals(line string) string {
	var sb strings.Builder
	sb.Grow(len(line))

	for i := 0; i < len(line); {
		c := line[i]
		if c != '"' && c != '\'' && c != '`' {
			sb.WriteByte(c)
			i++
			continue
		}

		j := i
		for j < len(line) && line[j] == c {
			j++
		}
		if j-i >= 3 {
			sb.WriteString(line[i:j])
		} else {
			sb.WriteString(strings.Repeat(" ", j-i))
		}
		i = j
	}

	return sb.String()
}

// lineLoad models the extra cognitive cost of parsing a dense code line.
func lineLoad(tokens int) int {
	if tokens < 5 {
		return tokens
	}
	return max(tokens+3, 10)
}
