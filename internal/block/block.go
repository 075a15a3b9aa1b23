// Package block defines the content block model shared by parsers and analyzers.
//
// A Block is a typed, ordered fragment of a document: prose text or code.
// Parsers produce an ordered sequence of blocks, analyzers consume them one
// at a time. Blocks carry no source position; their slice order is the only
// meaningful order.
package block

// Kind identifies the type of content a block holds.
type Kind int

const (
	// Text is prose content (including inline code, which reads as prose).
	Text Kind = iota
	// Code is a fenced or indented code block.
	Code
)

// String returns the string representation of the block kind.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// Block is a single typed fragment of document content.
// Blocks are value types; no pipeline stage mutates a block after creation.
type Block struct {
	Kind     Kind
	Content  string
	Language string         // fence info language for code blocks; "" when absent
	Meta     map[string]any // optional parser-attached metadata
}

// NewText creates a text block for the given content.
func NewText(content string) Block {
	return Block{Kind: Text, Content: content}
}

// NewCode creates a code block with an optional language tag.
func NewCode(content, language string) Block {
	return Block{Kind: Code, Content: content, Language: language}
}
