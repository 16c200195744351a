package cli

import (
	"fmt"

	"github.com/caselith/lexfmt/internal/model"
	"github.com/caselith/lexfmt/internal/styletable"
	"github.com/spf13/cobra"
)

var stylesOut string

// stylesCmd groups style-table operations
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Inspect and derive style tables",
	Long: `Style tables map the five style keys (heading, section_header,
paragraph, numbered, wherefore) to named paragraph styles in a document
template. Every non-sentinel block resolves through this table; a missing
key is a hard error, never a silent default.`,
}

var stylesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the style table lexfmt would use",
	Long:  `Display the active style table: the --styles file if given, otherwise the builtin Word names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := styletable.Builtin()
		if stylesPath != "" {
			var err error
			table, err = styletable.Load(stylesPath)
			if err != nil {
				return err
			}
		}
		printStyleTable(table)
		return nil
	},
}

var stylesExtractCmd = &cobra.Command{
	Use:   "extract <template.docx>",
	Short: "Derive a style table from a .docx template",
	Long: `Extract reads word/styles.xml from a .docx template and derives the
five-key style table: headings from Heading 1/2 (or outline level), the
body style from the template default, the numbered style from a
numbering-linked or List-named style.

Example:
  lexfmt styles extract firm-template.docx
  lexfmt styles extract firm-template.docx --out firm.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := styletable.ExtractDocx(args[0])
		if err != nil {
			return fmt.Errorf("extract styles: %w", err)
		}

		if stylesOut != "" {
			if err := styletable.Save(stylesOut, table); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote style table: %s\n", stylesOut)
			return nil
		}

		printStyleTable(table)
		return nil
	},
}

func printStyleTable(table model.StyleTable) {
	for _, key := range model.RequiredKeys() {
		name, ok := table[key]
		if !ok {
			name = "(unset)"
		}
		fmt.Printf("%-16s %s\n", string(key)+":", name)
	}
}

func init() {
	rootCmd.AddCommand(stylesCmd)
	stylesCmd.AddCommand(stylesShowCmd)
	stylesCmd.AddCommand(stylesExtractCmd)

	stylesShowCmd.Flags().StringVar(&stylesPath, "styles", "", "style table YAML to show")
	stylesExtractCmd.Flags().StringVar(&stylesOut, "out", "", "write the extracted table to this YAML file")
}
