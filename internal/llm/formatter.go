package llm

import (
	"context"
	"fmt"

	"github.com/caselith/lexfmt/internal/cache"
	"github.com/caselith/lexfmt/internal/model"
	"github.com/caselith/lexfmt/internal/worker"
)

// Formatter coordinates LLM draft styling: provider dispatch, strict style
// validation, block caching, and per-provider rate limiting
type Formatter struct {
	provider Provider
	config   Config
	cache    *cache.BlockCache
	limiter  *worker.Limiter
}

// NewFormatter creates a formatter from configuration. A nil block cache or
// limiter disables that concern. An empty provider name yields a disabled
// formatter, not an error.
func NewFormatter(config Config, blockCache *cache.BlockCache, limiter *worker.Limiter) (*Formatter, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Formatter{
		provider: provider,
		config:   config,
		cache:    blockCache,
		limiter:  limiter,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (f *Formatter) IsEnabled() bool {
	return f.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled
func (f *Formatter) ProviderName() string {
	if f.provider == nil {
		return ""
	}
	return f.provider.Name()
}

// FormatDraft asks the provider for styled blocks. Failures never abort the
// run: the trace records what went wrong and nil blocks tell the caller to
// fall back to rule-based styling.
func (f *Formatter) FormatDraft(ctx context.Context, draft string, table model.StyleTable) ([]model.ResolvedBlock, *model.LLMTrace, error) {
	if f.provider == nil {
		return nil, nil, nil
	}

	trace := &model.LLMTrace{
		Enabled:      true,
		Provider:     f.provider.Name(),
		Model:        f.config.Model,
		StrictStyles: f.config.StrictStyles,
	}

	var key string
	if f.cache != nil {
		key = cache.Key("llm", f.provider.Name(), f.config.Model, table.Fingerprint(), draft)
		if blocks, ok := f.cache.Get(key); ok {
			trace.Used = true
			trace.Warnings = append(trace.Warnings, "Served from cache")
			return blocks, trace, nil
		}
	}

	if !f.provider.IsAvailable(ctx) {
		trace.Enabled = false
		trace.Warnings = append(trace.Warnings,
			fmt.Sprintf("LLM provider '%s' is not available - using rule-based styling", f.provider.Name()))
		return nil, trace, nil
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, f.provider.Name()); err != nil {
			trace.Warnings = append(trace.Warnings,
				fmt.Sprintf("Rate limit wait failed: %v - using rule-based styling", err))
			return nil, trace, nil
		}
	}

	resp, err := f.provider.FormatDraft(ctx, FormatRequest{
		Draft:     draft,
		Table:     table,
		Model:     f.config.Model,
		MaxTokens: f.config.MaxTokens,
	})
	if err != nil {
		// Style leaks land here too: the provider rejects its own output
		trace.Warnings = append(trace.Warnings,
			fmt.Sprintf("LLM formatting failed: %v - using rule-based styling", err))
		return nil, trace, nil
	}

	if len(resp.Blocks) == 0 {
		trace.Warnings = append(trace.Warnings, "LLM returned no blocks - using rule-based styling")
		return nil, trace, nil
	}

	trace.Used = true
	if resp.Model != "" {
		trace.Model = resp.Model
	}
	trace.Warnings = append(trace.Warnings, fmt.Sprintf("Tokens used: %d", resp.TokensUsed))
	trace.Warnings = append(trace.Warnings, fmt.Sprintf("Verified %d styled blocks", len(resp.Blocks)))

	if f.cache != nil {
		_ = f.cache.Set(key, resp.Blocks)
	}

	return resp.Blocks, trace, nil
}
