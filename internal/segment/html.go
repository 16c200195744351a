package segment

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// blockBreak lists elements whose boundaries become paragraph breaks
var blockBreak = map[string]bool{
	"p": true, "div": true, "br": true, "li": true,
	"ul": true, "ol": true, "table": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "section": true, "article": true,
}

// DraftFromHTML converts an HTML draft (as exchanged with the editor front
// end) into plain draft text suitable for Split. Script, style and head
// subtrees are skipped; block-level elements become paragraph breaks.
func DraftFromHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var paras []string
	var cur strings.Builder

	flush := func() {
		// Collapse runs of whitespace the way browsers render them
		if t := strings.Join(strings.Fields(cur.String()), " "); t != "" {
			paras = append(paras, t)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip invisible subtrees entirely
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
			if blockBreak[n.Data] {
				flush()
			}
		}

		if n.Type == html.TextNode {
			cur.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockBreak[n.Data] {
			flush()
		}
	}

	walk(doc)
	flush()

	return strings.Join(paras, "\n\n"), nil
}
