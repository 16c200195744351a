package inspect

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/caselith/lexfmt/internal/model"
)

// Inspector derives structure diagnostics from a classified draft
type Inspector struct{}

// NewInspector creates a new inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

var reLeadingNumber = regexp.MustCompile(`^(\d+)[.)]`)

// Inspect summarizes the classified sequence: per-tag counts plus signals
// for structural problems. Findings are advisory - formatting proceeds
// regardless of what they say.
func (i *Inspector) Inspect(blocks []model.ClassifiedBlock) model.StructureReport {
	counts := make(map[model.Tag]int)
	for _, block := range blocks {
		counts[block.Tag]++
	}

	report := model.StructureReport{
		Paragraphs: len(blocks),
		Counts:     counts,
	}

	blanks := counts[model.TagEmpty]
	content := len(blocks) - blanks

	// 1. Empty draft: nothing else is worth reporting
	if content == 0 {
		report.Signals = []model.Signal{{
			Type:        model.SignalEmptyDraft,
			Severity:    model.SeverityCritical,
			Description: "Draft has no classifiable content",
			Data: map[string]interface{}{
				"paragraphs": len(blocks),
				"blanks":     blanks,
			},
		}}
		return report
	}

	var signals []model.Signal

	// 2. Caption: court header or county line
	if counts[model.TagCourtHeader] == 0 && counts[model.TagCountyLine] == 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalMissingCaption,
			Severity:    model.SeverityWarning,
			Description: "No court header or county line found",
			Data: map[string]interface{}{
				"court_headers": 0,
				"county_lines":  0,
			},
		})
	}

	// 3. Document title
	if counts[model.TagDocTitle] == 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalMissingTitle,
			Severity:    model.SeverityWarning,
			Description: "No document title detected",
			Data: map[string]interface{}{
				"section_headings": counts[model.TagSectionHeading],
			},
		})
	}

	// 4. WHEREFORE clause: only expected when the draft pleads allegations
	allegations := counts[model.TagLegalAllegation] + counts[model.TagNumberedPara]
	if allegations > 0 && counts[model.TagWherefore] == 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalMissingWherefore,
			Severity:    model.SeverityWarning,
			Description: "Draft pleads allegations but has no WHEREFORE clause",
			Data: map[string]interface{}{
				"allegations": allegations,
			},
		})
	}

	// 5. Signature
	if counts[model.TagSignatureLine] == 0 && counts[model.TagSignatureBlock] == 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalMissingSignature,
			Severity:    model.SeverityInfo,
			Description: "No signature line or signature block found",
			Data: map[string]interface{}{
				"signature_lines":  0,
				"signature_blocks": 0,
			},
		})
	}

	// 6. Paragraph numbering gaps
	if signal, found := i.detectNumberingGap(blocks); found {
		signals = append(signals, signal)
	}

	// 7. Unnumbered allegations
	if counts[model.TagLegalAllegation] > 0 {
		signals = append(signals, model.Signal{
			Type:        model.SignalUnnumbered,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("%d allegation(s) lack paragraph numbers", counts[model.TagLegalAllegation]),
			Data: map[string]interface{}{
				"unnumbered": counts[model.TagLegalAllegation],
				"numbered":   counts[model.TagNumberedPara],
			},
		})
	}

	// 8. Blank-heavy drafts
	if len(blocks) >= 4 && blanks > content {
		signals = append(signals, model.Signal{
			Type:        model.SignalBlankHeavy,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Preserved blank paragraphs outnumber content (%d blank, %d content)", blanks, content),
			Data: map[string]interface{}{
				"blanks":  blanks,
				"content": content,
			},
		})
	}

	report.Signals = signals
	return report
}

// detectNumberingGap walks numbered paragraphs in draft order and reports the
// first skipped value. A drop back to a lower number is a restart (numbering
// commonly restarts per cause of action), not a gap.
func (i *Inspector) detectNumberingGap(blocks []model.ClassifiedBlock) (model.Signal, bool) {
	prev := 0
	gaps := 0
	firstExpected, firstFound := 0, 0

	for _, block := range blocks {
		if block.Tag != model.TagNumberedPara {
			continue
		}
		n, ok := leadingNumber(block.Text)
		if !ok {
			continue
		}
		if prev > 0 && n > prev+1 {
			gaps++
			if gaps == 1 {
				firstExpected = prev + 1
				firstFound = n
			}
		}
		prev = n
	}

	if gaps == 0 {
		return model.Signal{}, false
	}

	return model.Signal{
		Type:        model.SignalNumberingGap,
		Severity:    model.SeverityWarning,
		Description: fmt.Sprintf("Numbered paragraphs skip from %d to %d", firstExpected-1, firstFound),
		Data: map[string]interface{}{
			"gaps":     gaps,
			"expected": firstExpected,
			"found":    firstFound,
		},
	}, true
}

func leadingNumber(text string) (int, bool) {
	m := reLeadingNumber.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
