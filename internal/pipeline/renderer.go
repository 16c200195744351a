package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/caselith/lexfmt/internal/model"
)

// Renderer writes format reports in the supported output shapes. The JSON
// shape is the contract downstream document generators consume; text and
// HTML are previews for operators and the editor flow.
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.FormatReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderText writes the plain-text preview to a file
func (r *Renderer) RenderText(report *model.FormatReport, path string) error {
	if err := os.WriteFile(path, []byte(r.TextPreview(report)), 0644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

// RenderHTML writes the HTML preview to a file
func (r *Renderer) RenderHTML(report *model.FormatReport, path string) error {
	if err := os.WriteFile(path, []byte(r.HTMLPreview(report)), 0644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

// TextPreview renders the layout instructions as a two-column listing:
// style name, then the text it applies to. Sentinels are drawn as the rules
// they stand for rather than whatever glyph run appeared in the draft.
func (r *Renderer) TextPreview(report *model.FormatReport) string {
	var b strings.Builder
	for _, blk := range report.Blocks {
		switch blk.Style {
		case model.StyleLine:
			fmt.Fprintf(&b, "%-15s| %s\n", blk.Style, strings.Repeat("-", 60))
		case model.StyleSignatureLine:
			fmt.Fprintf(&b, "%-15s| %s\n", blk.Style, strings.Repeat("_", 30))
		default:
			fmt.Fprintf(&b, "%-15s| %s\n", blk.Style, blk.Text)
		}
	}
	return b.String()
}

// HTMLPreview renders the layout instructions as a standalone HTML page.
// Each block carries its style name in a data attribute so the editor can
// map blocks back to template styles.
func (r *Renderer) HTMLPreview(report *model.FormatReport) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(report.Subject))
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: \"Times New Roman\", serif; max-width: 48em; margin: 2em auto; line-height: 1.5; }\n")
	b.WriteString(".style-heading-1 { text-align: center; font-weight: bold; }\n")
	b.WriteString(".style-heading-2 { text-align: center; font-weight: bold; text-decoration: underline; }\n")
	b.WriteString(".style-list-number { margin-left: 2em; }\n")
	b.WriteString(".signature { letter-spacing: 1px; }\n")
	b.WriteString("hr.rule { border: none; border-top: 1px solid #000; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")

	for _, blk := range report.Blocks {
		switch blk.Style {
		case model.StyleLine:
			b.WriteString("<hr class=\"rule\">\n")
		case model.StyleSignatureLine:
			b.WriteString("<p class=\"signature\">______________________________</p>\n")
		default:
			fmt.Fprintf(&b, "<p class=\"%s\" data-style=\"%s\">%s</p>\n",
				styleClass(blk.Style), html.EscapeString(blk.Style), html.EscapeString(blk.Text))
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// RenderSummary prints a human-readable summary to stdout
func (r *Renderer) RenderSummary(report *model.FormatReport) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", report.Subject)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Source:      %s\n", report.Source)
	fmt.Printf("  Paragraphs:  %d\n", report.Structure.Paragraphs)
	fmt.Printf("  Blocks:      %d\n", len(report.Blocks))
	if report.LLM != nil && report.LLM.Enabled {
		fmt.Printf("  LLM:         %s/%s\n", report.LLM.Provider, report.LLM.Model)
	}
	fmt.Println()

	if len(report.Structure.Signals) == 0 {
		fmt.Println("  ✓ No structure findings")
	} else {
		fmt.Printf("  Findings (%d):\n", len(report.Structure.Signals))
		for _, s := range report.Structure.Signals {
			fmt.Printf("    %s [%s] %s\n", severityGlyph(s.Severity), s.Severity, s.Description)
		}
	}
	fmt.Println()
}

func severityGlyph(s model.SignalSeverity) string {
	switch s {
	case model.SeverityCritical:
		return "✗"
	case model.SeverityWarning:
		return "⚠"
	default:
		return "•"
	}
}

// styleClass derives a CSS class from a style name: "Heading 1" becomes
// "style-heading-1"
func styleClass(name string) string {
	var b strings.Builder
	b.WriteString("style-")
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	return b.String()
}
