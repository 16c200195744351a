package segment

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/caselith/lexfmt/internal/model"
)

// ErrNotText reports input the splitter refuses to segment
var ErrNotText = errors.New("input is not plain UTF-8 text")

// separatorChars are the glyphs a divider row may contain. Underscores are
// excluded: an underscore run is a signature line, not a divider.
const separatorChars = " \t-.="

// Splitter cuts a raw draft into ordered paragraphs
type Splitter struct{}

// NewSplitter creates a new splitter
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split segments a raw draft into paragraphs.
//
// Boundaries are runs of strictly empty lines. Lines inside a paragraph are
// trimmed and joined with single spaces. Divider rows ("-----", "----X") and
// underscore rules ("________") are atomic: each becomes its own paragraph
// even without surrounding blank lines. A whitespace-only line survives as an
// explicit empty paragraph, so output positions correspond to the draft.
func (s *Splitter) Split(raw string) ([]model.Paragraph, error) {
	if err := checkText(raw); err != nil {
		return nil, err
	}
	raw = normalizeNewlines(raw)

	var paras []model.Paragraph
	var open []string

	flush := func() {
		if len(open) == 0 {
			return
		}
		paras = append(paras, model.Paragraph{Text: strings.Join(open, " "), Index: len(paras)})
		open = nil
	}
	emit := func(text string) {
		flush()
		paras = append(paras, model.Paragraph{Text: text, Index: len(paras)})
	}

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			flush()
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Whitespace-only: an intentional gap, kept as an empty unit
			emit("")
			continue
		}
		if IsSeparatorRule(trimmed) || IsUnderscoreRule(trimmed) {
			emit(trimmed)
			continue
		}
		open = append(open, trimmed)
	}
	flush()

	return paras, nil
}

// IsSeparatorRule reports whether text is a divider row: at least three
// characters drawn from dashes, dots, equals signs and spaces, with an
// optional trailing X as used in caption tables ("-------X").
func IsSeparatorRule(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 3 {
		return false
	}
	if strings.HasSuffix(t, "X") || strings.HasSuffix(t, "x") {
		t = strings.TrimSpace(t[:len(t)-1])
	}
	if t == "" {
		return false
	}
	for _, r := range t {
		if !strings.ContainsRune(separatorChars, r) {
			return false
		}
	}
	return true
}

// IsUnderscoreRule reports whether text is a signature rule: a run of at
// least four underscores, optionally broken by spaces.
func IsUnderscoreRule(text string) bool {
	t := strings.TrimSpace(text)
	if strings.Count(t, "_") < 4 {
		return false
	}
	for _, r := range t {
		if r != '_' && r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}

func checkText(raw string) error {
	if !utf8.ValidString(raw) {
		return fmt.Errorf("%w: invalid UTF-8", ErrNotText)
	}
	if strings.ContainsRune(raw, 0) {
		return fmt.Errorf("%w: NUL byte present", ErrNotText)
	}
	return nil
}

func normalizeNewlines(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.ReplaceAll(raw, "\r", "\n")
}
