package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/caselith/lexfmt/internal/cache"
	"github.com/caselith/lexfmt/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *FormatResponse
	err       error
	calls     int
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) FormatDraft(ctx context.Context, req FormatRequest) (*FormatResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func testTable() model.StyleTable {
	return model.StyleTable{
		model.KeyHeading:       "Heading 1",
		model.KeySectionHeader: "Heading 2",
		model.KeyParagraph:     "Normal",
		model.KeyNumbered:      "List Number",
		model.KeyWherefore:     "Heading 2",
	}
}

func TestNewFormatter_DisabledProvider(t *testing.T) {
	config := Config{
		Provider: "", // Empty = disabled
	}

	formatter, err := NewFormatter(config, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if formatter.provider != nil {
		t.Error("Expected provider to be nil when disabled")
	}

	if formatter.IsEnabled() {
		t.Error("Expected formatter to be disabled")
	}

	if formatter.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}
}

func TestNewFormatter_UnknownProvider(t *testing.T) {
	config := Config{
		Provider: "skynet",
	}

	if _, err := NewFormatter(config, nil, nil); err == nil {
		t.Fatal("Expected error for unknown provider, got nil")
	}
}

func TestFormatter_FormatDraft_Disabled(t *testing.T) {
	// Formatter with nil provider (disabled)
	formatter := &Formatter{
		provider: nil,
		config:   Config{},
	}

	blocks, trace, err := formatter.FormatDraft(context.Background(), "NOTICE OF CLAIM", testTable())

	if err != nil {
		t.Errorf("Expected no error when disabled, got %v", err)
	}
	if blocks != nil {
		t.Error("Expected nil blocks when provider disabled")
	}
	if trace != nil {
		t.Error("Expected nil trace when provider disabled")
	}
}

func TestFormatter_FormatDraft_ProviderUnavailable(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: false, // Provider not available
	}

	formatter := &Formatter{
		provider: mockProvider,
		config:   Config{StrictStyles: true},
	}

	blocks, trace, err := formatter.FormatDraft(context.Background(), "NOTICE OF CLAIM", testTable())

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if blocks != nil {
		t.Error("Expected nil blocks when provider unavailable")
	}
	if trace == nil {
		t.Fatal("Expected trace with warnings")
	}
	if trace.Enabled {
		t.Error("Expected trace to be marked as disabled")
	}
	if len(trace.Warnings) == 0 {
		t.Error("Expected warning about provider unavailability")
	}

	// Check warning message
	found := false
	for _, warning := range trace.Warnings {
		if strings.Contains(warning, "not available") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected warning to mention provider unavailability")
	}
}

func TestFormatter_FormatDraft_Success(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: true,
		response: &FormatResponse{
			Blocks: []model.ResolvedBlock{
				{Style: "Heading 1", Text: "SUPREME COURT OF THE STATE OF NEW YORK"},
				{Style: "Normal", Text: "John Doe,"},
			},
			Model:      "test-model",
			TokensUsed: 150,
		},
	}

	formatter := &Formatter{
		provider: mockProvider,
		config: Config{
			Model:        "test-model",
			StrictStyles: true,
		},
	}

	blocks, trace, err := formatter.FormatDraft(context.Background(), "SUPREME COURT OF THE STATE OF NEW YORK\n\nJohn Doe,", testTable())

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if trace == nil {
		t.Fatal("Expected trace to be recorded")
	}

	if !trace.Enabled {
		t.Error("Expected trace to be enabled")
	}
	if !trace.Used {
		t.Error("Expected trace to be marked as used")
	}
	if trace.Provider != "test-provider" {
		t.Errorf("Expected provider 'test-provider', got '%s'", trace.Provider)
	}
	if trace.Model != "test-model" {
		t.Errorf("Expected model 'test-model', got '%s'", trace.Model)
	}
	if !trace.StrictStyles {
		t.Error("Expected strict style mode to be enabled")
	}

	// Check warnings include token usage and block verification
	foundTokens := false
	foundBlocks := false
	for _, warning := range trace.Warnings {
		if strings.Contains(warning, "Tokens used") {
			foundTokens = true
		}
		if strings.Contains(warning, "Verified") && strings.Contains(warning, "blocks") {
			foundBlocks = true
		}
	}

	if !foundTokens {
		t.Error("Expected warning about tokens used")
	}
	if !foundBlocks {
		t.Error("Expected warning about verified blocks")
	}
}

func TestFormatter_FormatDraft_ProviderError(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: true,
		err:       &mockError{msg: "API rate limit exceeded"},
	}

	formatter := &Formatter{
		provider: mockProvider,
		config: Config{
			Model:        "test-model",
			StrictStyles: true,
		},
	}

	blocks, trace, err := formatter.FormatDraft(context.Background(), "NOTICE OF CLAIM", testTable())

	// Should not fail the run, just return a trace with warnings
	if err != nil {
		t.Errorf("Expected no error (graceful degradation), got %v", err)
	}
	if blocks != nil {
		t.Error("Expected nil blocks so the caller falls back to rules")
	}
	if trace == nil {
		t.Fatal("Expected trace with error warning")
	}
	if !trace.Enabled {
		t.Error("Expected trace to be marked as enabled (but failed)")
	}
	if trace.Used {
		t.Error("Expected trace to not be marked as used")
	}
	if len(trace.Warnings) == 0 {
		t.Fatal("Expected warning about formatting failure")
	}

	// Check warning mentions the error
	found := false
	for _, warning := range trace.Warnings {
		if strings.Contains(warning, "failed") && strings.Contains(warning, "rate limit") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected warning to mention error: %v", trace.Warnings)
	}
}

func TestFormatter_FormatDraft_EmptyBlocks(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: true,
		response:  &FormatResponse{Blocks: nil, Model: "test-model"},
	}

	formatter := &Formatter{
		provider: mockProvider,
		config:   Config{StrictStyles: true},
	}

	blocks, trace, err := formatter.FormatDraft(context.Background(), "NOTICE OF CLAIM", testTable())

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if blocks != nil {
		t.Error("Expected nil blocks so the caller falls back to rules")
	}
	if trace == nil || trace.Used {
		t.Fatal("Expected unused trace")
	}

	found := false
	for _, warning := range trace.Warnings {
		if strings.Contains(warning, "no blocks") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected warning about empty response: %v", trace.Warnings)
	}
}

func TestFormatter_FormatDraft_CacheHit(t *testing.T) {
	mockProvider := &MockProvider{
		name:      "test-provider",
		available: true,
		response: &FormatResponse{
			Blocks: []model.ResolvedBlock{
				{Style: "Heading 2", Text: "NOTICE OF CLAIM"},
			},
			Model:      "test-model",
			TokensUsed: 42,
		},
	}

	blockCache := cache.NewBlockCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	formatter := &Formatter{
		provider: mockProvider,
		config:   Config{Model: "test-model", StrictStyles: true},
		cache:    blockCache,
	}

	draft := "NOTICE OF CLAIM"
	table := testTable()

	first, _, err := formatter.FormatDraft(context.Background(), draft, table)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mockProvider.calls != 1 {
		t.Fatalf("Expected 1 provider call, got %d", mockProvider.calls)
	}

	second, trace, err := formatter.FormatDraft(context.Background(), draft, table)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mockProvider.calls != 1 {
		t.Errorf("Expected cached response, provider was called %d times", mockProvider.calls)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Errorf("Expected cached blocks to match original, got %v", second)
	}
	if trace == nil || !trace.Used {
		t.Error("Expected cache hit to count as LLM output")
	}

	found := false
	for _, warning := range trace.Warnings {
		if strings.Contains(warning, "cache") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected warning to mention cache: %v", trace.Warnings)
	}
}

func TestFormatter_IsEnabled(t *testing.T) {
	disabled := &Formatter{
		provider: nil,
	}
	if disabled.IsEnabled() {
		t.Error("Expected IsEnabled() to return false when provider is nil")
	}

	enabled := &Formatter{
		provider: &MockProvider{name: "test"},
	}
	if !enabled.IsEnabled() {
		t.Error("Expected IsEnabled() to return true when provider exists")
	}
}

func TestFormatter_ProviderName(t *testing.T) {
	disabled := &Formatter{
		provider: nil,
	}
	if disabled.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}

	enabled := &Formatter{
		provider: &MockProvider{name: "test-provider"},
	}
	if enabled.ProviderName() != "test-provider" {
		t.Errorf("Expected provider name 'test-provider', got '%s'", enabled.ProviderName())
	}
}

func TestBuildFormatPrompt_BasicStructure(t *testing.T) {
	draft := "SUPREME COURT OF THE STATE OF NEW YORK\n\nWHEREFORE, claimant demands judgment."

	prompt := BuildFormatPrompt(draft, testTable())

	// Check required elements
	requiredElements := []string{
		"CRITICAL RULES",
		"MUST ONLY use style names from this allowed list",
		"- Heading 1",
		"- Heading 2",
		"- Normal",
		"- List Number",
		"- line",
		"- signature_line",
		"DO NOT invent, rename, or abbreviate",
		"verbatim",
		"SUPREME COURT OF THE STATE OF NEW YORK",
		"WHEREFORE, claimant demands judgment.",
		"JSON array",
	}

	for _, element := range requiredElements {
		if !strings.Contains(prompt, element) {
			t.Errorf("Expected prompt to contain '%s'", element)
		}
	}
}

func TestAllowedStyles_DeduplicatesNames(t *testing.T) {
	// testTable maps section_header and wherefore to the same name
	styles := AllowedStyles(testTable())

	expected := []string{"Heading 1", "Heading 2", "Normal", "List Number", "line", "signature_line"}
	if len(styles) != len(expected) {
		t.Fatalf("Expected %d styles, got %d: %v", len(expected), len(styles), styles)
	}
	for i, style := range styles {
		if style != expected[i] {
			t.Errorf("Expected style %q at index %d, got %q", expected[i], i, style)
		}
	}
}

func TestParseBlocks_PlainArray(t *testing.T) {
	raw := `[{"style": "Heading 1", "text": "COUNTY OF KINGS"}, {"style": "Normal", "text": "John Doe,"}]`

	blocks, err := parseBlocks(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Style != "Heading 1" || blocks[0].Text != "COUNTY OF KINGS" {
		t.Errorf("Unexpected first block: %+v", blocks[0])
	}
}

func TestParseBlocks_FencedArray(t *testing.T) {
	raw := "```json\n[{\"style\": \"Normal\", \"text\": \"-against-\"}]\n```"

	blocks, err := parseBlocks(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(blocks) != 1 || blocks[0].Text != "-against-" {
		t.Errorf("Unexpected blocks: %+v", blocks)
	}
}

func TestParseBlocks_ProseWrapped(t *testing.T) {
	raw := `Here are the styled blocks:

[{"style": "Heading 2", "text": "NOTICE OF CLAIM"}]

Let me know if you need anything else.`

	blocks, err := parseBlocks(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(blocks) != 1 || blocks[0].Style != "Heading 2" {
		t.Errorf("Unexpected blocks: %+v", blocks)
	}
}

func TestParseBlocks_NoArray(t *testing.T) {
	if _, err := parseBlocks("I cannot format this draft."); err == nil {
		t.Error("Expected error for response without array")
	}
}

func TestParseBlocks_MalformedArray(t *testing.T) {
	if _, err := parseBlocks(`[{"style": "Normal", "text": }]`); err == nil {
		t.Error("Expected error for malformed array")
	}
}

func TestValidateStyles_AllAllowed(t *testing.T) {
	blocks := []model.ResolvedBlock{
		{Style: "Heading 1", Text: "COUNTY OF KINGS"},
		{Style: "line", Text: "----------X"},
		{Style: "signature_line", Text: "____________"},
	}

	if err := validateStyles(blocks, testTable()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidateStyles_Leak(t *testing.T) {
	blocks := []model.ResolvedBlock{
		{Style: "Heading 1", Text: "COUNTY OF KINGS"},
		{Style: "Title", Text: "NOTICE OF CLAIM"}, // Not in the table
	}

	err := validateStyles(blocks, testTable())
	if err == nil {
		t.Fatal("Expected style leak error, got nil")
	}
	if !strings.Contains(err.Error(), "STYLE LEAK") {
		t.Errorf("Expected STYLE LEAK error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Title") {
		t.Errorf("Expected error to name the leaked style, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != "" {
		t.Errorf("Expected provider to be empty (disabled), got '%s'", config.Provider)
	}

	if !config.StrictStyles {
		t.Error("Expected strict styles to be enabled by default (CRITICAL)")
	}

	if config.Timeout <= 0 {
		t.Error("Expected positive timeout")
	}

	if config.MaxTokens <= 0 {
		t.Error("Expected positive max tokens")
	}
}

// Mock error type for testing
type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
