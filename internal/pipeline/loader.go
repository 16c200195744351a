package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/caselith/lexfmt/internal/segment"
)

// Loader reads draft text from files or streams and normalizes it for the
// splitter. HTML drafts (the shape the editor front end exchanges) are
// detected and converted to plain text here, so everything downstream sees
// one input format.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a loader with the given size cap. A cap of zero or less
// selects the 10 MB default.
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	return &Loader{maxBytes: maxBytes}
}

// LoadResult contains the loaded draft text and its provenance
type LoadResult struct {
	Draft   string // Plain draft text, HTML already stripped
	Subject string // Human-readable document name derived from the source
	Path    string // Source file, empty for streams
	IsHTML  bool   // Whether the input arrived as HTML
}

// LoadFile reads a draft from disk. The subject is derived from the
// filename and HTML is detected by extension or markup prefix.
func (l *Loader) LoadFile(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open draft: %w", err)
	}
	defer func() { _ = f.Close() }()

	result, err := l.LoadReader(f, subjectFromPath(path), isHTMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.Path = path
	return result, nil
}

// LoadReader reads a draft from a stream (stdin, an upload body). The caller
// supplies the subject; html forces HTML handling, otherwise the content is
// sniffed.
func (l *Loader) LoadReader(r io.Reader, subject string, html bool) (*LoadResult, error) {
	// Read one byte past the cap so an oversized draft is detectable
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("draft exceeds size limit of %d bytes", l.maxBytes)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid UTF-8", segment.ErrNotText)
	}
	if strings.ContainsRune(text, 0) {
		return nil, fmt.Errorf("%w: NUL byte present", segment.ErrNotText)
	}

	if !html {
		html = looksLikeHTML(text)
	}
	if html {
		plain, err := segment.DraftFromHTML(text)
		if err != nil {
			return nil, fmt.Errorf("convert html draft: %w", err)
		}
		text = plain
	}

	if subject == "" {
		subject = "draft"
	}
	return &LoadResult{Draft: text, Subject: subject, IsHTML: html}, nil
}

// subjectFromPath turns a draft filename into a readable subject:
// "notice_of_claim.txt" becomes "notice of claim".
func subjectFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.Join(strings.Fields(base), " ")
	if base == "" || base == "." {
		return "draft"
	}
	return base
}

// isHTMLPath reports whether the filename claims HTML content
func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// looksLikeHTML sniffs markup the way the editor emits it: a document that
// starts with a doctype or a root-level tag. Plain drafts that merely
// mention angle brackets somewhere are left alone.
func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 256 {
		head = head[:256]
	}
	for _, prefix := range []string{"<!doctype html", "<html", "<body", "<div", "<p>", "<p "} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}
