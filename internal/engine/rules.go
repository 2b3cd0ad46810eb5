package engine

import (
	"regexp"
	"strconv"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// Rule is one step of the winner cascade. TryMatch reports false when the rule does not apply.
type Rule interface {
	Name() string
	TryMatch(text string, a, b *PatternSet) (predictions.Verdict, bool)
}

// clauseTail runs a weak field to the end of its clause. A period only ends the
// clause when followed by whitespace or end of text, so "-2.5" is kept whole.
const clauseTail = `((?:[^\r\n;|.!?]|[.!?]\S)+)`

var (
	moneylineField  = regexp.MustCompile(`(?i)\bmoneyline[:\s]+` + clauseTail)
	pickField       = regexp.MustCompile(`(?i)\bpick[:\s]+` + clauseTail)
	predictionField = regexp.MustCompile(`(?i)\bprediction[:\s]+` + clauseTail)
)

// DefaultRules returns the cascade in priority order: final score, explicit
// keywords, scorelines, then the weak field fallbacks.
func DefaultRules() []Rule {
	return []Rule{
		finalScoreRule{anchor: predictions.SideA},
		finalScoreRule{anchor: predictions.SideB},
		explicitRule{anchor: predictions.SideA},
		explicitRule{anchor: predictions.SideB},
		scorelineRule{anchor: predictions.SideA},
		scorelineRule{anchor: predictions.SideB},
		weakFieldRule{pattern: moneylineField, method: predictions.MethodMoneylineField},
		weakFieldRule{pattern: pickField, method: predictions.MethodPickField},
		weakFieldRule{pattern: predictionField, method: predictions.MethodPredictionField},
	}
}

type finalScoreRule struct {
	anchor predictions.Side
}

func (r finalScoreRule) Name() string { return "final_score_" + string(r.anchor) }

func (r finalScoreRule) TryMatch(text string, a, b *PatternSet) (predictions.Verdict, bool) {
	ps := pick(r.anchor, a, b)
	if ps == nil || ps.finalScore == nil {
		return predictions.Verdict{}, false
	}
	m := ps.finalScore.FindStringSubmatch(text)
	if m == nil {
		return predictions.Verdict{}, false
	}
	side, ok := scoreWinner(r.anchor, m[2], m[4])
	if !ok {
		return predictions.Verdict{}, false
	}
	return predictions.Verdict{Side: side, Method: predictions.MethodFinalScore, Phrase: m[0]}, true
}

type explicitRule struct {
	anchor predictions.Side
}

func (r explicitRule) Name() string { return "explicit_" + string(r.anchor) }

func (r explicitRule) TryMatch(text string, a, b *PatternSet) (predictions.Verdict, bool) {
	ps := pick(r.anchor, a, b)
	if ps == nil {
		return predictions.Verdict{}, false
	}
	for _, pattern := range ps.contexts {
		m := pattern.FindStringSubmatch(text)
		if m == nil || LooksLikeSpread(m[0]) {
			continue
		}
		token := ""
		if len(m) > 1 {
			token = m[1]
		}
		if ps.acceptsToken(token, true) {
			return predictions.Verdict{Side: r.anchor, Method: predictions.MethodExplicit, Phrase: m[0]}, true
		}
	}
	return predictions.Verdict{}, false
}

type scorelineRule struct {
	anchor predictions.Side
}

func (r scorelineRule) Name() string { return "scoreline_" + string(r.anchor) }

func (r scorelineRule) TryMatch(text string, a, b *PatternSet) (predictions.Verdict, bool) {
	ps := pick(r.anchor, a, b)
	if ps == nil {
		return predictions.Verdict{}, false
	}
	m := ps.scoreline.FindStringSubmatch(text)
	if m == nil || !ps.acceptsToken(m[1], false) {
		return predictions.Verdict{}, false
	}
	side, ok := scoreWinner(r.anchor, m[2], m[4])
	if !ok {
		return predictions.Verdict{}, false
	}
	return predictions.Verdict{Side: side, Method: predictions.MethodScoreline, Phrase: m[0]}, true
}

type weakFieldRule struct {
	pattern *regexp.Regexp
	method  predictions.Method
}

func (r weakFieldRule) Name() string { return string(r.method) }

func (r weakFieldRule) TryMatch(text string, a, b *PatternSet) (predictions.Verdict, bool) {
	m := r.pattern.FindStringSubmatch(text)
	if m == nil || LooksLikeSpread(m[0]) {
		return predictions.Verdict{}, false
	}
	blob := m[1]
	if a != nil && a.synonyms.AppearsIn(blob) {
		return predictions.Verdict{Side: predictions.SideA, Method: r.method, Phrase: m[0]}, true
	}
	if b != nil && b.synonyms.AppearsIn(blob) {
		return predictions.Verdict{Side: predictions.SideB, Method: r.method, Phrase: m[0]}, true
	}
	return predictions.Verdict{}, false
}

func pick(anchor predictions.Side, a, b *PatternSet) *PatternSet {
	if anchor == predictions.SideA {
		return a
	}
	return b
}

func other(side predictions.Side) predictions.Side {
	if side == predictions.SideA {
		return predictions.SideB
	}
	return predictions.SideA
}

// scoreWinner compares the anchor's score with the opponent's. Equal or unparsable scores do not decide.
func scoreWinner(anchor predictions.Side, anchorRaw, opponentRaw string) (predictions.Side, bool) {
	anchorScore, err := strconv.Atoi(anchorRaw)
	if err != nil {
		return "", false
	}
	opponentScore, err := strconv.Atoi(opponentRaw)
	if err != nil {
		return "", false
	}
	switch {
	case anchorScore > opponentScore:
		return anchor, true
	case opponentScore > anchorScore:
		return other(anchor), true
	default:
		return "", false
	}
}
