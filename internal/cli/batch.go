package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/caselith/lexfmt/internal/pipeline"
	"github.com/caselith/lexfmt/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Format multiple drafts in parallel",
	Long: `Batch formats many drafts concurrently:
- Directories are scanned for draft files (.txt, .md, .html, .htm)
- List files name one draft path per line (# comments allowed)
- All drafts resolve against the same style table
- Each draft produces a JSON report in the output directory

Example:
  lexfmt batch ./drafts
  lexfmt batch drafts.txt --concurrency 8 --output-dir ./reports
  lexfmt batch ./drafts --styles firm.yaml --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lexfmt-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from the format command
	batchCmd.Flags().StringVar(&stylesPath, "styles", "", "style table YAML (builtin table if unset)")
	batchCmd.Flags().StringVar(&templatePath, "template", "", "derive the style table from this .docx template")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 10_000_000, "max draft bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable LLM response cache")
	batchCmd.Flags().BoolVar(&noClassified, "no-classified", false, "omit per-paragraph tags from reports")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM-first styling (rules remain the fallback)")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Lexfmt Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", target)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)

	// Build configuration
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", llmProvider, llmModel)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline; it is the Runner every worker shares
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	processor := worker.NewBatchProcessor(p, concurrency)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	var results []*worker.FormatResult
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "⚙️  Scanning %s for drafts...\n", target)
		results, err = processor.ProcessDir(ctx, target)
	} else {
		fmt.Fprintf(os.Stderr, "⚙️  Reading draft list...\n")
		results, err = processor.ProcessList(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("process drafts: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d drafts with %d workers\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	// Write per-draft reports
	renderer := pipeline.NewRenderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d blocks)\n", result.Report.Subject, len(result.Report.Blocks))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d drafts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename sanitizes a report subject for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "draft"
	}
	return s
}
