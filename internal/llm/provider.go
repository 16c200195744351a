package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/caselith/lexfmt/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// FormatDraft styles a draft into layout blocks with strict style mode
	FormatDraft(ctx context.Context, req FormatRequest) (*FormatResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// FormatRequest contains the input for LLM draft formatting
type FormatRequest struct {
	// Draft is the raw draft text to style
	Draft string

	// Table is the style table whose names are the STRICT allowlist of
	// styles the LLM can emit. This prevents invented style names - the
	// LLM cannot reference any style not derived from this table.
	Table model.StyleTable

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// FormatResponse contains the LLM's styled output
type FormatResponse struct {
	// Blocks are the styled layout blocks in draft order
	Blocks []model.ResolvedBlock

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictStyles enforces the style allowlist (should always be true)
	StrictStyles bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:     "", // Disabled by default
		Model:        "",
		Timeout:      60,
		StrictStyles: true, // CRITICAL: Always enforce
		MaxTokens:    4000,
	}
}

// BuildFormatPrompt constructs the default prompt for draft formatting with
// strict style mode
func BuildFormatPrompt(draft string, table model.StyleTable) string {
	return fmt.Sprintf(`You are styling a legal draft into layout blocks. You assign a paragraph style to each block of existing text - you NEVER rewrite, summarize, or reorder the draft.

CRITICAL RULES:
1. You MUST ONLY use style names from this allowed list:
%s

2. DO NOT invent, rename, or abbreviate style names.
3. Copy each block's text verbatim. Do not fix spelling, punctuation, or capitalization.
4. Keep blocks in draft order. Do not merge, split, or drop paragraphs.
5. Use "line" for free-standing divider rules and "signature_line" for signature rules.

Draft:
%s

Respond with ONLY a JSON array, no prose: [{"style": "...", "text": "..."}, ...]`, joinStyles(AllowedStyles(table)), draft)
}

// AllowedStyles returns the style names the LLM may emit for a table: the
// table's own style names plus the two fixed sentinels
func AllowedStyles(table model.StyleTable) []string {
	seen := make(map[string]bool)
	var styles []string
	for _, key := range model.RequiredKeys() {
		name := table[key]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		styles = append(styles, name)
	}
	for _, name := range []string{model.StyleLine, model.StyleSignatureLine} {
		if !seen[name] {
			seen[name] = true
			styles = append(styles, name)
		}
	}
	return styles
}

// Helper functions

func joinStyles(styles []string) string {
	result := ""
	for _, style := range styles {
		result += fmt.Sprintf("\n- %s", style)
	}
	return result
}

// parseBlocks decodes the LLM's JSON array of styled blocks. Models often
// wrap the array in markdown fences or prose, so it reads from the first
// '[' to the last ']'.
func parseBlocks(raw string) ([]model.ResolvedBlock, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var decoded []struct {
		Style string `json:"style"`
		Text  string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal blocks: %w", err)
	}

	blocks := make([]model.ResolvedBlock, 0, len(decoded))
	for _, d := range decoded {
		blocks = append(blocks, model.ResolvedBlock{Style: d.Style, Text: d.Text})
	}
	return blocks, nil
}

// validateStyles verifies strict style mode: every emitted style must come
// from the table or be a sentinel
func validateStyles(blocks []model.ResolvedBlock, table model.StyleTable) error {
	allowed := make(map[string]bool)
	for _, style := range AllowedStyles(table) {
		allowed[style] = true
	}

	for _, block := range blocks {
		if !allowed[block.Style] {
			return fmt.Errorf("STYLE LEAK: LLM emitted disallowed style: %s", block.Style)
		}
	}
	return nil
}
