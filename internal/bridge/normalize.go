package bridge

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Normalizer repairs fragmented list responses. Some provider serializers
// emit one text block per array element when a handler returns a collection;
// the consumer then sees the list scattered across many blocks. Normalize
// merges such responses back into a single JSON-array text block.
//
// The Mergeable predicate decides whether a text block is a candidate for
// merging; the default accepts any valid JSON document. Keeping the predicate
// swappable means a future protocol fix only needs a different predicate, not
// a rewrite of the merge.
type Normalizer struct {
	Mergeable func(text string) bool
}

// NewNormalizer returns a Normalizer with the default JSON predicate.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Mergeable: func(text string) bool {
			return json.Valid([]byte(text))
		},
	}
}

// Normalize returns the input unchanged unless it contains two or more text
// blocks that are all mergeable; in that case it returns a single text block
// whose content is the pretty-printed JSON array of the parsed values, in
// original order. A single unparseable text block among them disables the
// merge entirely: pass-through, never a partial merge.
func (n *Normalizer) Normalize(blocks []mcp.Content) []mcp.Content {
	var texts []string
	for _, block := range blocks {
		if tc, ok := block.(mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}

	// Nothing to merge with fewer than two text blocks, and non-text blocks
	// must never be dropped.
	if len(texts) < 2 {
		return blocks
	}

	elements := make([]json.RawMessage, 0, len(texts))
	for _, text := range texts {
		if n.Mergeable == nil || !n.Mergeable(text) {
			return blocks
		}
		elements = append(elements, json.RawMessage(text))
	}

	merged, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return blocks
	}

	return []mcp.Content{mcp.NewTextContent(string(merged))}
}
