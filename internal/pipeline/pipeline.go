// Package pipeline orchestrates the complete formatting flow:
// load, segment, classify, inspect, style and render.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/caselith/lexfmt/internal/cache"
	"github.com/caselith/lexfmt/internal/classify"
	"github.com/caselith/lexfmt/internal/inspect"
	"github.com/caselith/lexfmt/internal/llm"
	"github.com/caselith/lexfmt/internal/model"
	"github.com/caselith/lexfmt/internal/resolve"
	"github.com/caselith/lexfmt/internal/segment"
	"github.com/caselith/lexfmt/internal/styletable"
	"github.com/caselith/lexfmt/internal/worker"
)

// draftFormatter is the seam the generative path plugs into. The rule chain
// never depends on it; a nil formatter means rules only.
type draftFormatter interface {
	IsEnabled() bool
	ProviderName() string
	FormatDraft(ctx context.Context, draft string, table model.StyleTable) ([]model.ResolvedBlock, *model.LLMTrace, error)
}

// Pipeline wires the formatting stages together
type Pipeline struct {
	loader     *Loader
	splitter   *segment.Splitter
	classifier *classify.Classifier
	inspector  *inspect.Inspector
	formatter  draftFormatter
	table      model.StyleTable
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. The style table is
// resolved once here so every draft in a batch styles against the same
// table.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	table, err := resolveStyleTable(cfg)
	if err != nil {
		return nil, err
	}

	var formatter draftFormatter
	if cfg.LLM.Provider != "" {
		f, err := llm.NewFormatter(llm.ConfigFromModel(cfg.LLM), buildBlockCache(cfg), buildLimiter(cfg))
		if err != nil {
			// Non-fatal: the rule chain carries the work alone
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			formatter = f
		}
	}

	return &Pipeline{
		loader:     NewLoader(cfg.Input.MaxBytes),
		splitter:   segment.NewSplitter(),
		classifier: classify.NewClassifier(),
		inspector:  inspect.NewInspector(),
		formatter:  formatter,
		table:      table,
		config:     cfg,
	}, nil
}

func resolveStyleTable(cfg *model.Config) (model.StyleTable, error) {
	switch {
	case cfg.Styles.Path != "":
		return styletable.Load(cfg.Styles.Path)
	case cfg.Styles.Template != "":
		return styletable.ExtractDocx(cfg.Styles.Template)
	default:
		return styletable.Builtin(), nil
	}
}

func buildBlockCache(cfg *model.Config) *cache.BlockCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	memTTL := time.Duration(cfg.Cache.MemoryTTL) * time.Minute
	diskTTL := time.Duration(cfg.Cache.DiskTTL) * time.Hour
	return cache.NewBlockCache(cache.NewLayeredCache(memTTL, cfg.Cache.Dir, diskTTL), diskTTL)
}

func buildLimiter(cfg *model.Config) *worker.Limiter {
	return worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
}

// Table returns a copy of the style table the pipeline resolves against
func (p *Pipeline) Table() model.StyleTable {
	return p.table.Clone()
}

// FormatText runs the complete flow over already-loaded draft text.
//
// When a generative formatter is enabled it goes first; any failure there
// degrades to the deterministic chain, recorded in the report's LLM trace.
// The rule chain itself never degrades: a missing style key fails the whole
// call rather than guessing a style.
func (p *Pipeline) FormatText(ctx context.Context, draft, subject string) (*model.FormatReport, error) {
	// 1. Segment into paragraphs
	paragraphs, err := p.splitter.Split(draft)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	// 2. Classify every paragraph. This runs even when the LLM path wins:
	// the structure report is built from tags, not from styled blocks.
	classified := p.classifier.ClassifyAll(paragraphs)

	// 3. Structure diagnostics, advisory only
	structure := p.inspector.Inspect(classified)

	report := &model.FormatReport{
		Subject:     subject,
		FormattedAt: time.Now().UTC(),
		Source:      "rules",
		Structure:   structure,
	}
	if p.config.Output.IncludeClassified {
		report.Classified = classified
	}

	// 4. Generative path first when enabled
	if p.formatter != nil && p.formatter.IsEnabled() {
		blocks, trace, err := p.formatter.FormatDraft(ctx, draft, p.table)
		if err != nil {
			return nil, fmt.Errorf("llm format: %w", err)
		}
		report.LLM = trace
		if len(blocks) > 0 {
			report.Blocks = blocks
			report.Source = p.formatter.ProviderName()
			return report, nil
		}
		// Empty result means the formatter degraded; the trace says why
	}

	// 5. Deterministic projection
	blocks, err := resolve.Project(classified, p.table)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	report.Blocks = blocks
	return report, nil
}

// FormatFile loads a draft from disk and formats it. This is the unit of
// work batch processing runs per file.
func (p *Pipeline) FormatFile(ctx context.Context, path string) (*model.FormatReport, error) {
	loaded, err := p.loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	report, err := p.FormatText(ctx, loaded.Draft, loaded.Subject)
	if err != nil {
		return nil, err
	}
	report.SourcePath = loaded.Path
	return report, nil
}

// FormatReader formats a draft read from a stream, e.g. stdin
func (p *Pipeline) FormatReader(ctx context.Context, r io.Reader, subject string) (*model.FormatReport, error) {
	loaded, err := p.loader.LoadReader(r, subject, false)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return p.FormatText(ctx, loaded.Draft, loaded.Subject)
}

// ClassifyText runs only the deterministic front half: segment, classify,
// inspect. No style table is consulted, so it works with any draft.
func (p *Pipeline) ClassifyText(draft string) ([]model.ClassifiedBlock, model.StructureReport, error) {
	paragraphs, err := p.splitter.Split(draft)
	if err != nil {
		return nil, model.StructureReport{}, fmt.Errorf("segment: %w", err)
	}
	classified := p.classifier.ClassifyAll(paragraphs)
	return classified, p.inspector.Inspect(classified), nil
}

// ClassifyFile loads a draft and runs the classification stage only
func (p *Pipeline) ClassifyFile(path string) ([]model.ClassifiedBlock, model.StructureReport, error) {
	loaded, err := p.loader.LoadFile(path)
	if err != nil {
		return nil, model.StructureReport{}, fmt.Errorf("load: %w", err)
	}
	return p.ClassifyText(loaded.Draft)
}

// RenderReport writes the requested outputs and prints the summary.
// Empty paths skip that output shape.
func (p *Pipeline) RenderReport(report *model.FormatReport, jsonPath, textPath, htmlPath string) error {
	renderer := NewRenderer()
	verbose := p.config.Output.Verbose

	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON report: %s\n", jsonPath)
		}
	}

	if textPath != "" {
		if err := renderer.RenderText(report, textPath); err != nil {
			return fmt.Errorf("render text: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote text preview: %s\n", textPath)
		}
	}

	if htmlPath != "" {
		if err := renderer.RenderHTML(report, htmlPath); err != nil {
			return fmt.Errorf("render HTML: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote HTML preview: %s\n", htmlPath)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
