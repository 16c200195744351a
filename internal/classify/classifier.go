package classify

import (
	"strings"

	"github.com/caselith/lexfmt/internal/model"
)

// Classifier assigns ontology tags to paragraphs. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the default rule chain
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewClassifierWithRules creates a classifier with a custom chain, evaluated
// in the order given. Callers extending the chain are responsible for ending
// it with a total rule.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Rules returns the chain in evaluation order
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify assigns a tag to a single paragraph of text
func (c *Classifier) Classify(text string) model.Tag {
	tag, _ := c.classify(text)
	return tag
}

func (c *Classifier) classify(text string) (model.Tag, string) {
	t := strings.TrimSpace(text)
	for _, r := range c.rules {
		if tag, ok := r.Classify(t); ok {
			return tag, r.Name
		}
	}
	return model.TagBodyParagraph, "body"
}

// ClassifyAll tags every paragraph, preserving count and order. Empty units
// pass through as empty blocks so positions keep corresponding to the draft.
func (c *Classifier) ClassifyAll(paras []model.Paragraph) []model.ClassifiedBlock {
	blocks := make([]model.ClassifiedBlock, len(paras))
	for i, p := range paras {
		tag, rule := c.classify(p.Text)
		blocks[i] = model.ClassifiedBlock{Tag: tag, Text: p.Text, Index: p.Index, Rule: rule}
	}
	return blocks
}
