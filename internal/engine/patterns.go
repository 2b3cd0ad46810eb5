package engine

import (
	"regexp"
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

const namePlaceholder = "{NAME}"

// scoreTail matches "<digits> [,–-] <opponent> <digits>". The opponent may
// contain digits ("49ers") but must carry a letter before any whitespace; the
// trailing score must be a standalone token.
const scoreTail = `\s*(\d{1,2})\b\s*[,–-]\s*(\d*[A-Za-z][A-Za-z0-9\s\.']*?)\s*\b(\d{1,2})\b`

// contextTemplates are the keyworded patterns in priority order. Apart from the
// final-score form, each match ends at the team name.
var contextTemplates = []string{
	`final\s*score[:\s]*{NAME}\s*\d{1,2}\b\s*[,–-]\s*\d*[A-Za-z][A-Za-z0-9\s\.']*?\s*\b\d{1,2}\b`,
	`moneyline\s*pick\s*[:\-]?\s*{NAME}`,
	`pick\s*[:\-]?\s*{NAME}`,
	`prediction\s*[:\-]?\s*{NAME}`,
	`who\s*wins[?:]?\s*{NAME}`,
	`to\s*win\s*(?:outright|straight\s*up)?\s*[:\-]?\s*{NAME}`,
	`winner\s*[:\-]?\s*{NAME}`,
	`straight\s*up\s*[:\-]?\s*{NAME}`,
}

// PatternSet is the compiled pattern library for one team. It is immutable and safe for concurrent use.
type PatternSet struct {
	label      string
	synonyms   SynonymSet
	contexts   []*regexp.Regexp
	scoreline  *regexp.Regexp
	finalScore *regexp.Regexp
}

// BuildPatterns compiles the context and scoreline patterns for a team.
// An empty synonym list yields a catch-all name group; check CatchAll before trusting the result.
func BuildPatterns(d predictions.TeamDescriptor) *PatternSet {
	set := NewSynonymSet(d)
	group := set.nameGroup()

	contexts := make([]*regexp.Regexp, 0, len(contextTemplates))
	for _, tmpl := range contextTemplates {
		contexts = append(contexts, compileCI(strings.Replace(tmpl, namePlaceholder, group, 1)))
	}

	ps := &PatternSet{
		label:     d.Label(),
		synonyms:  set,
		contexts:  contexts,
		scoreline: compileCI(group + scoreTail),
	}
	if !set.Empty() {
		ps.finalScore = compileCI(`final\s*score[:\s]*(` + set.alternation() + `)` + scoreTail)
	}
	return ps
}

// Label returns the team's display name.
func (p *PatternSet) Label() string {
	return p.label
}

// Synonyms returns the set the patterns were built from.
func (p *PatternSet) Synonyms() SynonymSet {
	return p.synonyms
}

// CatchAll reports whether the set was built without synonyms and matches any span.
func (p *PatternSet) CatchAll() bool {
	return p.synonyms.Empty()
}

// Contexts returns the compiled context patterns in priority order.
func (p *PatternSet) Contexts() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(p.contexts))
	copy(out, p.contexts)
	return out
}

// Scoreline returns the keyword-free score pattern.
func (p *PatternSet) Scoreline() *regexp.Regexp {
	return p.scoreline
}

// acceptsToken applies the membership guard used by the explicit and scoreline rules.
func (p *PatternSet) acceptsToken(token string, allowEmpty bool) bool {
	if p.synonyms.Empty() {
		return true
	}
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return allowEmpty
	}
	return p.synonyms.Contains(token)
}

func compileCI(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}
