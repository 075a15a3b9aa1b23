package parse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/halostatue/prosody/internal/block"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmtext "github.com/yuin/goldmark/text"
)

// MarkdownParser parses commonmark content with goldmark and linearizes the
// document tree into ordered content blocks. Inline text and inline code
// become text blocks (inline code reads as prose); fenced and indented code
// blocks become code blocks; container nodes (emphasis, links, headings,
// table rows and cells) are traversed depth-first so their text is flattened
// in document order; markup markers and all other node kinds contribute
// nothing.
type MarkdownParser struct {
	md goldmark.Markdown
}

// NewMarkdownParser creates a MarkdownParser with table support enabled.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Parse converts markdown content into content blocks.
func (mp *MarkdownParser) Parse(content string) ([]block.Block, error) {
	source := []byte(content)
	root := mp.md.Parser().Parse(gmtext.NewReader(source))
	return mp.ExtractBlocks(root, source)
}

// Name returns the name of this parser for logging and debugging.
func (mp *MarkdownParser) Name() string {
	return "markdown"
}

// ExtractBlocks walks an already-parsed markdown tree and returns its content
// blocks in document order. This is the entry point for callers that hold a
// goldmark AST and want to bypass re-parsing.
//
// A malformed tree is reported as a wrapped ErrParse rather than crashing the
// calling process; the tree may come from outside this package.
func (mp *MarkdownParser) ExtractBlocks(root ast.Node, source []byte) (blocks []block.Block, err error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil document tree", ErrParse)
	}

	defer func() {
		if r := recover(); r != nil {
			blocks = nil
			err = fmt.Errorf("%w: malformed document tree: %v", ErrParse, r)
		}
	}()

	walkErr := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			// inline text; also covers the text children of code spans,
			// which count as prose rather than code
			if value := node.Segment.Value(source); len(value) > 0 {
				blocks = append(blocks, block.NewText(string(value)))
			}

		case *ast.String:
			if len(node.Value) > 0 {
				blocks = append(blocks, block.NewText(string(node.Value)))
			}

		case *ast.FencedCodeBlock:
			blocks = append(blocks, block.NewCode(nodeLines(node, source), fenceLanguage(node, source)))
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			// indented code block; no info string, so no language
			blocks = append(blocks, block.NewCode(nodeLines(node, source), ""))
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: walking document tree: %v", ErrParse, walkErr)
	}

	slog.Debug("Markdown extraction completed", "blockCount", len(blocks))
	return blocks, nil
}

// nodeLines joins the raw source lines covered by a code block node.
func nodeLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return sb.String()
}

// fenceLanguage derives the language tag from a fence info string: the first
// whitespace-delimited token. Parameter-shaped tokens (key=value pairs or
// brace-wrapped attribute lists) are not languages and yield "".
func fenceLanguage(n *ast.FencedCodeBlock, source []byte) string {
	lang := string(n.Language(source))
	if lang == "" || strings.Contains(lang, "=") || strings.HasPrefix(lang, "{") {
		return ""
	}
	return lang
}
