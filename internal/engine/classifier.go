package engine

import (
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// Classifier evaluates an ordered rule list and stops at the first hit.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over rules; no rules means DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

var defaultClassifier = NewClassifier()

// Classify runs the default cascade over text.
func Classify(text string, a, b *PatternSet) predictions.Verdict {
	return defaultClassifier.Classify(text, a, b)
}

// Classify returns the first rule's verdict, or an ambiguous verdict when none fire.
func (c *Classifier) Classify(text string, a, b *PatternSet) predictions.Verdict {
	for _, rule := range c.rules {
		if v, ok := rule.TryMatch(text, a, b); ok {
			return v
		}
	}
	return predictions.Ambiguous()
}

// ClassifyDocument classifies the space-joined page title, snippet and body,
// and records which of those fields the matched phrase starts in.
func (c *Classifier) ClassifyDocument(doc predictions.Document, a, b *PatternSet) predictions.Verdict {
	text := DocumentText(doc)
	v := c.Classify(text, a, b)
	if v.Phrase != "" {
		v.Field = fieldAt(doc, strings.Index(text, v.Phrase))
	}
	return v
}

// DocumentText joins the fields the classifier reads, in the order it reads them.
func DocumentText(doc predictions.Document) string {
	return strings.Join([]string{doc.PageTitle, doc.Snippet, doc.BodyText}, " ")
}

func fieldAt(doc predictions.Document, offset int) predictions.Field {
	if offset < 0 {
		return ""
	}
	titleEnd := len(doc.PageTitle)
	snippetEnd := titleEnd + 1 + len(doc.Snippet)
	switch {
	case offset < titleEnd:
		return predictions.FieldTitle
	case offset < snippetEnd:
		return predictions.FieldSnippet
	default:
		return predictions.FieldBody
	}
}
