package model

import "time"

// FormatReport is the complete result of formatting one draft
type FormatReport struct {
	Subject     string    `json:"subject"`               // Human-readable document name (e.g., "notice of claim")
	SourcePath  string    `json:"source_path,omitempty"` // File the draft was read from, if any
	FormattedAt time.Time `json:"formatted_at"`          // When formatting occurred
	Source      string    `json:"source"`                // "rules" or the LLM provider name

	Blocks     []ResolvedBlock   `json:"blocks"`               // Ordered layout instructions
	Classified []ClassifiedBlock `json:"classified,omitempty"` // Tag per paragraph, blanks included

	Structure StructureReport `json:"structure"` // Diagnostic signals, never blocking

	LLM *LLMTrace `json:"llm,omitempty"` // Optional generative-path trace
}

// StructureReport summarizes the classified sequence. It is advisory:
// formatting proceeds regardless of what it finds.
type StructureReport struct {
	Paragraphs int         `json:"paragraphs"` // Total units, preserved blanks included
	Counts     map[Tag]int `json:"counts"`     // Occurrences per tag
	Signals    []Signal    `json:"signals,omitempty"`
}

// Signal represents a diagnostic finding with transparent supporting data
type Signal struct {
	Type        SignalType             `json:"type"`           // Signal classification
	Severity    SignalSeverity         `json:"severity"`       // info, warning, critical
	Description string                 `json:"description"`    // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs behind the finding
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalEmptyDraft       SignalType = "empty_draft"            // Nothing classifiable in the input
	SignalMissingCaption   SignalType = "missing_caption"        // No court header or county line
	SignalMissingTitle     SignalType = "missing_title"          // No document title detected
	SignalMissingWherefore SignalType = "missing_wherefore"      // Pleading without a WHEREFORE clause
	SignalMissingSignature SignalType = "missing_signature"      // No signature line or block
	SignalNumberingGap     SignalType = "numbering_gap"          // Numbered paragraphs skip values
	SignalUnnumbered       SignalType = "unnumbered_allegations" // Allegations without numbering
	SignalBlankHeavy       SignalType = "blank_heavy"            // Blanks dominate the draft
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// LLMTrace records what the generative path did
// CRITICAL: rule-based classification never depends on this and the trace is
// clearly separated from the deterministic output
type LLMTrace struct {
	Enabled      bool     `json:"enabled"`
	Provider     string   `json:"provider,omitempty"` // openai, anthropic, ollama
	Model        string   `json:"model,omitempty"`    // Model name
	StrictStyles bool     `json:"strict_styles"`      // Whether style-allowlist enforcement was on
	Used         bool     `json:"used"`               // False when the rules fallback produced the blocks
	Warnings     []string `json:"warnings,omitempty"` // Any issues (e.g., style leaks, empty responses)
}
