// Package resolve turns tagged blocks into concrete layout instructions.
//
// Resolution is two explicit lookups: tag to style-table key via the
// ontology, then key to style name via the caller's table. A gap in either
// is a typed error, never a silent default, so a bad table fails loudly on
// the first draft instead of producing quietly misformatted documents.
package resolve

import (
	"fmt"

	"github.com/caselith/lexfmt/internal/model"
)

// MissingStyleKeyError reports a style table that cannot satisfy a tag. The
// projection that hit it yields no output at all.
type MissingStyleKeyError struct {
	Tag model.Tag
	Key model.StyleKey
}

func (e *MissingStyleKeyError) Error() string {
	return fmt.Sprintf("style table has no %q entry (needed by tag %q)", e.Key, e.Tag)
}

// UnknownTagError reports a tag outside the ontology
type UnknownTagError struct {
	Tag model.Tag
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag %q", e.Tag)
}

// Resolve maps a tag to the style name a renderer should apply. Sentinel
// tags resolve before the table is consulted, so dividers and signature
// rules work against any table, including an empty one.
func Resolve(tag model.Tag, table model.StyleTable) (string, error) {
	spec, ok := model.LookupTag(tag)
	if !ok {
		return "", &UnknownTagError{Tag: tag}
	}
	if spec.Sentinel != "" {
		return spec.Sentinel, nil
	}
	name, ok := table[spec.Key]
	if !ok || name == "" {
		return "", &MissingStyleKeyError{Tag: tag, Key: spec.Key}
	}
	return name, nil
}

// Project turns a classified sequence into renderer instructions. Order and
// text pass through verbatim. Empty units are dropped: they exist to keep
// classifier output aligned with the draft, and the renderer contract has no
// empty instruction. The first unresolvable block aborts the projection.
func Project(blocks []model.ClassifiedBlock, table model.StyleTable) ([]model.ResolvedBlock, error) {
	out := make([]model.ResolvedBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Tag == model.TagEmpty {
			continue
		}
		style, err := Resolve(b.Tag, table)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", b.Index, err)
		}
		out = append(out, model.ResolvedBlock{Style: style, Text: b.Text})
	}
	return out, nil
}
