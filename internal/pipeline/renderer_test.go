package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caselith/lexfmt/internal/model"
)

func sampleReport() *model.FormatReport {
	return &model.FormatReport{
		Subject:     "notice of claim",
		FormattedAt: time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC),
		Source:      "rules",
		Blocks: []model.ResolvedBlock{
			{Style: "Heading 1", Text: "SUPREME COURT OF THE STATE OF NEW YORK"},
			{Style: "line", Text: "-----------X"},
			{Style: "Normal", Text: "Smith & Jones <counsel> appeared."},
			{Style: "signature_line", Text: "____________"},
		},
		Structure: model.StructureReport{
			Paragraphs: 4,
			Counts:     map[model.Tag]int{model.TagCourtHeader: 1},
			Signals: []model.Signal{
				{Type: model.SignalMissingTitle, Severity: model.SeverityWarning, Description: "No document title detected"},
			},
		},
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	renderer := NewRenderer()

	if err := renderer.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded model.FormatReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if decoded.Subject != "notice of claim" {
		t.Errorf("Expected subject round-trip, got %q", decoded.Subject)
	}
	if len(decoded.Blocks) != 4 {
		t.Errorf("Expected 4 blocks, got %d", len(decoded.Blocks))
	}
	if decoded.Blocks[1].Style != "line" {
		t.Errorf("Expected sentinel style preserved, got %q", decoded.Blocks[1].Style)
	}
}

func TestRenderer_TextPreview(t *testing.T) {
	renderer := NewRenderer()
	preview := renderer.TextPreview(sampleReport())

	lines := strings.Split(strings.TrimRight(preview, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 preview lines, got %d: %q", len(lines), preview)
	}

	if !strings.HasPrefix(lines[0], "Heading 1      | SUPREME COURT") {
		t.Errorf("Unexpected first line: %q", lines[0])
	}

	// Sentinels are drawn as canonical rules, not the draft's glyph run
	if !strings.Contains(lines[1], strings.Repeat("-", 60)) {
		t.Errorf("Expected dashed rule for line sentinel, got %q", lines[1])
	}
	if strings.Contains(lines[1], "-----------X") {
		t.Errorf("Expected original divider text replaced, got %q", lines[1])
	}
	if !strings.Contains(lines[3], strings.Repeat("_", 30)) {
		t.Errorf("Expected underscore rule for signature sentinel, got %q", lines[3])
	}
}

func TestRenderer_RenderText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.txt")
	renderer := NewRenderer()

	if err := renderer.RenderText(sampleReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read preview: %v", err)
	}
	if string(data) != renderer.TextPreview(sampleReport()) {
		t.Error("Expected file content to match TextPreview")
	}
}

func TestRenderer_HTMLPreview(t *testing.T) {
	renderer := NewRenderer()
	page := renderer.HTMLPreview(sampleReport())

	if !strings.Contains(page, "<title>notice of claim</title>") {
		t.Error("Expected subject in title")
	}
	if !strings.Contains(page, `<p class="style-heading-1" data-style="Heading 1">`) {
		t.Error("Expected heading block with style class and data attribute")
	}
	if !strings.Contains(page, `<hr class="rule">`) {
		t.Error("Expected line sentinel rendered as hr")
	}
	if !strings.Contains(page, `<p class="signature">`) {
		t.Error("Expected signature sentinel rendered as signature paragraph")
	}

	// Draft text must be escaped
	if !strings.Contains(page, "Smith &amp; Jones &lt;counsel&gt; appeared.") {
		t.Error("Expected block text to be HTML-escaped")
	}
	if strings.Contains(page, "<counsel>") {
		t.Error("Unescaped draft text leaked into markup")
	}
}

func TestRenderer_RenderHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.html")
	renderer := NewRenderer()

	if err := renderer.RenderHTML(sampleReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read preview: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Error("Expected a standalone HTML document")
	}
}

func TestStyleClass(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Heading 1", "style-heading-1"},
		{"List Number", "style-list-number"},
		{"Normal", "style-normal"},
		{"Body Text Indent 2", "style-body-text-indent-2"},
	}

	for _, tt := range tests {
		if got := styleClass(tt.name); got != tt.want {
			t.Errorf("styleClass(%q): expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestSeverityGlyph(t *testing.T) {
	if severityGlyph(model.SeverityCritical) != "✗" {
		t.Error("Expected ✗ for critical")
	}
	if severityGlyph(model.SeverityWarning) != "⚠" {
		t.Error("Expected ⚠ for warning")
	}
	if severityGlyph(model.SeverityInfo) != "•" {
		t.Error("Expected • for info")
	}
}
