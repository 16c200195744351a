package styletable

import (
	"archive/zip"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/caselith/lexfmt/internal/model"
)

// docxStyle is one paragraph style collected from word/styles.xml
type docxStyle struct {
	id       string
	name     string
	def      bool // w:default="1"
	outline  int  // outline level from pPr, -1 when absent
	numbered bool // carries a numPr numbering reference
}

// ExtractDocx derives a style table from a .docx template so documents can be
// formatted with the firm's own styles. Heading and section header come from
// the template's Heading 1/Heading 2 (or outline levels), paragraph from the
// default style, numbered from a numbering-linked or List-named style. The
// wherefore key reuses the section header: templates rarely dedicate a style
// to it. The numbered key falls back to the paragraph style when the
// template defines no list style at all.
func ExtractDocx(path string) (model.StyleTable, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	defer zr.Close()

	var stylesFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/styles.xml" {
			stylesFile = f
			break
		}
	}
	if stylesFile == nil {
		return nil, fmt.Errorf("template %s has no word/styles.xml", path)
	}

	rc, err := stylesFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open styles.xml: %w", err)
	}
	defer rc.Close()

	doc, err := xmlquery.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse styles.xml: %w", err)
	}

	styles, err := collectParagraphStyles(doc)
	if err != nil {
		return nil, err
	}
	if len(styles) == 0 {
		return nil, fmt.Errorf("template %s defines no paragraph styles", path)
	}

	table := model.StyleTable{}

	paragraph := pickDefault(styles)
	if paragraph == "" {
		paragraph = pickByName(styles, "Normal")
	}
	if paragraph == "" {
		return nil, fmt.Errorf("template %s has no default paragraph style", path)
	}
	table[model.KeyParagraph] = paragraph

	heading := pickByName(styles, "Heading 1")
	if heading == "" {
		heading = pickByOutline(styles, 0)
	}
	if heading == "" {
		return nil, fmt.Errorf("template %s has no heading style", path)
	}
	table[model.KeyHeading] = heading

	section := pickByName(styles, "Heading 2")
	if section == "" {
		section = pickByOutline(styles, 1)
	}
	if section == "" {
		section = heading
	}
	table[model.KeySectionHeader] = section
	table[model.KeyWherefore] = section

	numbered := pickByName(styles, "List Number")
	if numbered == "" {
		numbered = pickNumbered(styles)
	}
	if numbered == "" {
		numbered = pickNameContaining(styles, "List")
	}
	if numbered == "" {
		numbered = paragraph
	}
	table[model.KeyNumbered] = numbered

	return table, nil
}

// collectParagraphStyles walks every w:style of type paragraph. Element and
// attribute names are matched by local name so the producer's namespace
// prefix does not matter.
func collectParagraphStyles(doc *xmlquery.Node) ([]docxStyle, error) {
	nodes, err := xmlquery.QueryAll(doc, "//*[local-name()='style']")
	if err != nil {
		return nil, fmt.Errorf("query styles: %w", err)
	}

	var styles []docxStyle
	for _, n := range nodes {
		if attrLocal(n, "type") != "paragraph" {
			continue
		}
		s := docxStyle{
			id:      attrLocal(n, "styleId"),
			def:     attrLocal(n, "default") == "1" || attrLocal(n, "default") == "true",
			outline: -1,
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode {
				continue
			}
			switch c.Data {
			case "name":
				s.name = attrLocal(c, "val")
			case "pPr":
				for p := c.FirstChild; p != nil; p = p.NextSibling {
					if p.Type != xmlquery.ElementNode {
						continue
					}
					switch p.Data {
					case "outlineLvl":
						if lvl, err := strconv.Atoi(attrLocal(p, "val")); err == nil {
							s.outline = lvl
						}
					case "numPr":
						s.numbered = true
					}
				}
			}
		}
		if s.name == "" {
			s.name = s.id
		}
		if s.name != "" {
			styles = append(styles, s)
		}
	}
	return styles, nil
}

// attrLocal returns an attribute value by local name, ignoring any prefix
func attrLocal(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func pickDefault(styles []docxStyle) string {
	for _, s := range styles {
		if s.def {
			return s.name
		}
	}
	return ""
}

// pickByName matches case-insensitively: Word stores built-in heading names
// in lowercase ("heading 1") while templates built by hand often do not
func pickByName(styles []docxStyle, want string) string {
	for _, s := range styles {
		if strings.EqualFold(s.name, want) {
			return s.name
		}
	}
	return ""
}

func pickByOutline(styles []docxStyle, level int) string {
	for _, s := range styles {
		if s.outline == level {
			return s.name
		}
	}
	return ""
}

func pickNumbered(styles []docxStyle) string {
	for _, s := range styles {
		if s.numbered {
			return s.name
		}
	}
	return ""
}

func pickNameContaining(styles []docxStyle, frag string) string {
	for _, s := range styles {
		if strings.Contains(strings.ToLower(s.name), strings.ToLower(frag)) {
			return s.name
		}
	}
	return ""
}
