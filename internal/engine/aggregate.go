package engine

import (
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// Aggregate counts verdicts by side. The result does not depend on order.
func Aggregate(verdicts []predictions.Verdict) predictions.Tally {
	var t predictions.Tally
	for _, v := range verdicts {
		t.Add(v)
	}
	return t
}

// MatchupContext holds everything shared read-only across one matchup's documents.
type MatchupContext struct {
	A      *PatternSet
	B      *PatternSet
	Window Window
}

// NewMatchupContext compiles both teams' patterns once and anchors the recency window at now.
func NewMatchupContext(teamA, teamB predictions.TeamDescriptor, days int, now time.Time) *MatchupContext {
	return &MatchupContext{
		A:      BuildPatterns(teamA),
		B:      BuildPatterns(teamB),
		Window: NewWindow(now, days),
	}
}

// Evaluate classifies doc when it falls inside the window. ok is false for rejected documents.
func (m *MatchupContext) Evaluate(c *Classifier, doc predictions.Document) (predictions.Verdict, bool) {
	if !m.Window.Admits(doc.PublishedAt) {
		return predictions.Verdict{}, false
	}
	if c == nil {
		c = defaultClassifier
	}
	return c.ClassifyDocument(doc, m.A, m.B), true
}
