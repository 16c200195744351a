package styletable

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/caselith/lexfmt/internal/model"
)

func writeDocx(t *testing.T, stylesXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(stylesXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

const wordStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:name w:val="heading 1"/>
    <w:pPr><w:outlineLvl w:val="0"/></w:pPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading2">
    <w:name w:val="heading 2"/>
    <w:pPr><w:outlineLvl w:val="1"/></w:pPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="ListNumber">
    <w:name w:val="List Number"/>
    <w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>
  </w:style>
  <w:style w:type="character" w:styleId="Emphasis">
    <w:name w:val="Emphasis"/>
  </w:style>
</w:styles>`

func TestExtractDocxWordDefaults(t *testing.T) {
	path := writeDocx(t, wordStylesXML)

	table, err := ExtractDocx(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := map[model.StyleKey]string{
		model.KeyParagraph:     "Normal",
		model.KeyHeading:       "heading 1",
		model.KeySectionHeader: "heading 2",
		model.KeyWherefore:     "heading 2",
		model.KeyNumbered:      "List Number",
	}
	for k, v := range want {
		if table[k] != v {
			t.Errorf("Key %q: expected %q, got %q", k, v, table[k])
		}
	}
	if err := table.Validate(); err != nil {
		t.Errorf("Expected complete table, got %v", err)
	}
}

const firmStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="FirmBody">
    <w:name w:val="Firm Body"/>
  </w:style>
  <w:style w:type="paragraph" w:styleId="FirmTitle">
    <w:name w:val="Firm Title"/>
    <w:pPr><w:outlineLvl w:val="0"/></w:pPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="FirmNum">
    <w:name w:val="Firm Allegations"/>
    <w:pPr><w:numPr><w:numId w:val="3"/></w:numPr></w:pPr>
  </w:style>
</w:styles>`

func TestExtractDocxCustomTemplate(t *testing.T) {
	path := writeDocx(t, firmStylesXML)

	table, err := ExtractDocx(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if table[model.KeyParagraph] != "Firm Body" {
		t.Errorf("Expected default style, got %q", table[model.KeyParagraph])
	}
	if table[model.KeyHeading] != "Firm Title" {
		t.Errorf("Expected outline-0 style, got %q", table[model.KeyHeading])
	}
	// No second heading level: section header falls back to the heading
	if table[model.KeySectionHeader] != "Firm Title" {
		t.Errorf("Expected fallback to heading, got %q", table[model.KeySectionHeader])
	}
	if table[model.KeyNumbered] != "Firm Allegations" {
		t.Errorf("Expected numbering-linked style, got %q", table[model.KeyNumbered])
	}
}

func TestExtractDocxWithoutStylesPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("word/document.xml")
	w.Write([]byte("<w:document/>"))
	zw.Close()
	f.Close()

	if _, err := ExtractDocx(path); err == nil {
		t.Fatal("Expected error for template without styles.xml")
	}
}

func TestExtractDocxRejectsNonZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-template.docx")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractDocx(path); err == nil {
		t.Fatal("Expected error for non-zip input")
	}
}
