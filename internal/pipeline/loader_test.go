package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caselith/lexfmt/internal/segment"
)

func writeDraft(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write draft: %v", err)
	}
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeDraft(t, "notice_of_claim.txt", "NOTICE OF CLAIM\n\nPLEASE TAKE NOTICE.")

	loader := NewLoader(0)
	result, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Draft != "NOTICE OF CLAIM\n\nPLEASE TAKE NOTICE." {
		t.Errorf("Unexpected draft text: %q", result.Draft)
	}
	if result.Subject != "notice of claim" {
		t.Errorf("Expected subject 'notice of claim', got %q", result.Subject)
	}
	if result.Path != path {
		t.Errorf("Expected path %q, got %q", path, result.Path)
	}
	if result.IsHTML {
		t.Error("Expected plain text, got IsHTML=true")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	loader := NewLoader(0)
	_, err := loader.LoadFile("/nonexistent/draft.txt")
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoader_LoadFile_HTMLByExtension(t *testing.T) {
	content := "<html><body><p>SUPREME COURT OF THE STATE OF NEW YORK</p><p>NOTICE OF CLAIM</p></body></html>"
	path := writeDraft(t, "draft.html", content)

	loader := NewLoader(0)
	result, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.IsHTML {
		t.Error("Expected IsHTML=true for .html file")
	}
	want := "SUPREME COURT OF THE STATE OF NEW YORK\n\nNOTICE OF CLAIM"
	if result.Draft != want {
		t.Errorf("Expected %q, got %q", want, result.Draft)
	}
}

func TestLoader_LoadFile_SniffsHTMLContent(t *testing.T) {
	// Editor exports sometimes land in .txt files; the markup prefix decides
	content := "<!DOCTYPE html><html><body><p>NOTICE OF CLAIM</p></body></html>"
	path := writeDraft(t, "export.txt", content)

	loader := NewLoader(0)
	result, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.IsHTML {
		t.Error("Expected HTML to be sniffed from content")
	}
	if result.Draft != "NOTICE OF CLAIM" {
		t.Errorf("Expected converted text, got %q", result.Draft)
	}
}

func TestLoader_AngleBracketsStayPlain(t *testing.T) {
	// A draft that merely mentions < is not HTML
	content := "Damages are < $50,000 per claim."
	path := writeDraft(t, "damages.txt", content)

	loader := NewLoader(0)
	result, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.IsHTML {
		t.Error("Expected plain text, got IsHTML=true")
	}
	if result.Draft != content {
		t.Errorf("Expected draft unchanged, got %q", result.Draft)
	}
}

func TestLoader_SizeLimit(t *testing.T) {
	path := writeDraft(t, "big.txt", strings.Repeat("A", 200))

	loader := NewLoader(64)
	_, err := loader.LoadFile(path)
	if err == nil {
		t.Fatal("Expected error for oversized draft")
	}
	if !strings.Contains(err.Error(), "size limit") {
		t.Errorf("Expected size limit error, got %v", err)
	}
}

func TestLoader_RejectsNULBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.txt")
	if err := os.WriteFile(path, []byte("PK\x03\x04\x00\x00"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	loader := NewLoader(0)
	_, err := loader.LoadFile(path)
	if !errors.Is(err, segment.ErrNotText) {
		t.Errorf("Expected ErrNotText, got %v", err)
	}
}

func TestLoader_RejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 'N', 'O'}, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	loader := NewLoader(0)
	_, err := loader.LoadFile(path)
	if !errors.Is(err, segment.ErrNotText) {
		t.Errorf("Expected ErrNotText, got %v", err)
	}
}

func TestLoader_LoadReader(t *testing.T) {
	loader := NewLoader(0)
	result, err := loader.LoadReader(strings.NewReader("NOTICE OF CLAIM"), "upload", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Draft != "NOTICE OF CLAIM" {
		t.Errorf("Unexpected draft: %q", result.Draft)
	}
	if result.Subject != "upload" {
		t.Errorf("Expected subject 'upload', got %q", result.Subject)
	}
	if result.Path != "" {
		t.Errorf("Expected empty path for stream, got %q", result.Path)
	}
}

func TestLoader_LoadReader_DefaultSubject(t *testing.T) {
	loader := NewLoader(0)
	result, err := loader.LoadReader(strings.NewReader("text"), "", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Subject != "draft" {
		t.Errorf("Expected fallback subject 'draft', got %q", result.Subject)
	}
}

func TestSubjectFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notice_of_claim.txt", "notice of claim"},
		{"first-amended-complaint.md", "first amended complaint"},
		{"/srv/drafts/Summons.html", "Summons"},
		{"claim__final--v2.txt", "claim final v2"},
		{".txt", "draft"},
	}

	for _, tt := range tests {
		if got := subjectFromPath(tt.path); got != tt.want {
			t.Errorf("subjectFromPath(%q): expected %q, got %q", tt.path, tt.want, got)
		}
	}
}

func TestIsHTMLPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"draft.html", true},
		{"draft.HTM", true},
		{"draft.txt", false},
		{"draft.md", false},
	}

	for _, tt := range tests {
		if got := isHTMLPath(tt.path); got != tt.want {
			t.Errorf("isHTMLPath(%q): expected %v, got %v", tt.path, tt.want, got)
		}
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"html tag", "  <html lang=\"en\">", true},
		{"paragraph tag", "<p>Hello</p>", true},
		{"plain text", "NOTICE OF CLAIM", false},
		{"inline bracket", "Damages are < $50,000.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		if got := looksLikeHTML(tt.text); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
