package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caselith/lexfmt/internal/model"
	"github.com/caselith/lexfmt/internal/pipeline"
	"github.com/spf13/cobra"
)

var classifyJSON string

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Classify a draft's paragraphs without styling them",
	Long: `Classify runs only the deterministic front half of the pipeline:
- Segment the draft into ordered paragraphs
- Tag each paragraph with its ontology class and the rule that matched
- Report structure findings (missing caption, numbering gaps, ...)

No style table is consulted and no LLM is called, so this works on any
draft regardless of template.

Example:
  lexfmt classify draft.txt
  lexfmt classify draft.txt --json tags.json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyJSON, "json", "", "write classification as JSON to this path")
	classifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 10_000_000, "max draft bytes to read")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Input.MaxBytes = maxBytes
	cfg.Cache.Enabled = false
	cfg.Output.Verbose = verbose

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	classified, structure, err := p.ClassifyFile(args[0])
	if err != nil {
		return fmt.Errorf("classify failed: %w", err)
	}

	if classifyJSON != "" {
		out := struct {
			Classified []model.ClassifiedBlock `json:"classified"`
			Structure  model.StructureReport   `json:"structure"`
		}{classified, structure}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal classification: %w", err)
		}
		if err := os.WriteFile(classifyJSON, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write classification: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote classification: %s\n", classifyJSON)
		}
		return nil
	}

	// One row per paragraph: index, tag, trimmed text
	for _, b := range classified {
		text := b.Text
		if text == "" {
			text = "(blank)"
		}
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Printf("%3d  %-24s %s\n", b.Index, b.Tag, text)
	}

	fmt.Println()
	if len(structure.Signals) == 0 {
		fmt.Println("✓ No structure findings")
	} else {
		fmt.Printf("Findings (%d):\n", len(structure.Signals))
		for _, s := range structure.Signals {
			fmt.Printf("  [%s] %s\n", s.Severity, s.Description)
		}
	}

	return nil
}
