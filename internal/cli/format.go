package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/caselith/lexfmt/internal/model"
	"github.com/caselith/lexfmt/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outText      string
	outHTML      string
	stylesPath   string
	templatePath string
	timeout      time.Duration
	maxBytes     int64
	noCache      bool
	noClassified bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Format a draft into typed layout instructions",
	Long: `Format runs the full pipeline over a single draft:
- Segment the raw text into ordered paragraphs
- Tag each paragraph with its ontology class
- Resolve every tag against the style table into a (style, text) block
- Report structure findings (missing caption, numbering gaps, ...)

Use "-" as the file to read the draft from stdin. HTML drafts (editor
exports) are detected and converted automatically.

Example:
  lexfmt format notice_of_claim.txt
  lexfmt format draft.txt --styles firm.yaml --json report.json
  lexfmt format draft.txt --template firm-template.docx --html preview.html
  lexfmt format draft.txt --llm --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	// Output flags
	formatCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	formatCmd.Flags().StringVar(&outText, "text", "", "output plain-text preview path (optional)")
	formatCmd.Flags().StringVar(&outHTML, "html", "", "output HTML preview path (optional)")

	// Style table flags
	formatCmd.Flags().StringVar(&stylesPath, "styles", "", "style table YAML (builtin table if unset)")
	formatCmd.Flags().StringVar(&templatePath, "template", "", "derive the style table from this .docx template")

	// Input flags
	formatCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout (matters only for the LLM path)")
	formatCmd.Flags().Int64Var(&maxBytes, "max-bytes", 10_000_000, "max draft bytes to read")
	formatCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable LLM response cache")
	formatCmd.Flags().BoolVar(&noClassified, "no-classified", false, "omit per-paragraph tags from the JSON report")

	// LLM flags
	formatCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM-first styling (rules remain the fallback)")
	formatCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	formatCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runFormat(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Formatting: %s\n", target)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	// Create pipeline
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Segmenting draft...\n")
	}

	var report *model.FormatReport
	if target == "-" {
		report, err = p.FormatReader(ctx, os.Stdin, "draft")
	} else {
		report, err = p.FormatFile(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("format failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified %d paragraphs\n", report.Structure.Paragraphs)
		fmt.Fprintf(os.Stderr, "✓ Resolved %d layout blocks\n", len(report.Blocks))
		if report.LLM != nil && report.LLM.Used {
			fmt.Fprintf(os.Stderr, "✓ Styled via %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, outText, outHTML); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles configuration from defaults and flags
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Styles.Path = stylesPath
	cfg.Styles.Template = templatePath
	cfg.Input.MaxBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeClassified = !noClassified

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictStyles = true // Always enforce

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
