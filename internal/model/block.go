package model

// Paragraph is one ordered unit produced by the segmenter
type Paragraph struct {
	Text  string `json:"text"`  // Trimmed lines joined with single spaces; "" for a preserved blank
	Index int    `json:"index"` // Position in the draft (0-based)
}

// ClassifiedBlock pairs a paragraph with the tag the rule chain assigned
type ClassifiedBlock struct {
	Tag   Tag    `json:"tag"`
	Text  string `json:"text"`
	Index int    `json:"index"`
	Rule  string `json:"rule,omitempty"` // Name of the rule that matched (e.g., "court-header")
}

// ResolvedBlock is one layout instruction: a concrete style name and the
// verbatim text it applies to. This is the contract a renderer consumes.
type ResolvedBlock struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}
