// Test program to demonstrate caption and separator detection
// This shows divider rows staying atomic and caption lines classifying correctly
package main

import (
	"fmt"
	"strings"

	"github.com/caselith/lexfmt/internal/classify"
	"github.com/caselith/lexfmt/internal/inspect"
	"github.com/caselith/lexfmt/internal/segment"
)

// samples cover the three caption shapes that show up in practice: a boxed
// summons caption, a caption-less claim body, and a signature trailer.
var samples = []struct {
	name  string
	draft string
}{
	{
		name: "boxed summons caption",
		draft: `SUPREME COURT OF THE STATE OF NEW YORK

COUNTY OF KINGS
------------------------------------------------------------------X
ACME SUPPLY CO., Plaintiff,

-against-

JOHN DOE d/b/a DOE HAULING, Defendant.
------------------------------------------------------------------X

SUMMONS

TO THE ABOVE NAMED DEFENDANT:

You are hereby summoned to answer the complaint in this action.`,
	},
	{
		name: "claim body without caption",
		draft: `PLEASE TAKE NOTICE that claimant demands payment of its claim.

1. That on June 1, 2025, the claim arose out of a delivery contract.

3. That claimant performed all obligations under the contract.

WHEREFORE, claimant demands judgment with interest and costs.`,
	},
	{
		name: "signature trailer",
		draft: `Dated: Brooklyn, New York
November 2, 2025

____________________________
MARY ROE, ESQ.
Attorneys for the claimant`,
	},
}

func main() {
	fmt.Println("=== Caption Detection Test ===")
	fmt.Println()

	splitter := segment.NewSplitter()
	classifier := classify.NewClassifier()
	inspector := inspect.NewInspector()

	for _, sample := range samples {
		fmt.Printf("Testing: %s\n", sample.name)
		fmt.Println(strings.Repeat("-", 60))

		paras, err := splitter.Split(sample.draft)
		if err != nil {
			fmt.Printf("  Split error: %v\n", err)
			continue
		}

		blocks := classifier.ClassifyAll(paras)
		for _, b := range blocks {
			text := b.Text
			if text == "" {
				text = "(blank)"
			}
			if len(text) > 44 {
				text = text[:41] + "..."
			}
			fmt.Printf("  %-24s %s\n", b.Tag, text)
		}

		report := inspector.Inspect(blocks)
		fmt.Println()
		if len(report.Signals) == 0 {
			fmt.Println("  ✓ No structure findings")
		} else {
			for _, s := range report.Signals {
				fmt.Printf("  ⚠️  [%s] %s\n", s.Severity, s.Description)
			}
		}
		fmt.Println()
	}
}
