package predictions

import (
	"strings"
	"time"
)

// Side identifies which team a verdict favors.
type Side string

const (
	SideA         Side = "A"
	SideB         Side = "B"
	SideAmbiguous Side = "ambiguous"
)

// Method names the rule that produced a verdict.
type Method string

const (
	MethodFinalScore      Method = "final_score"
	MethodExplicit        Method = "explicit"
	MethodScoreline       Method = "scoreline"
	MethodMoneylineField  Method = "moneyline_field"
	MethodPickField       Method = "pick_field"
	MethodPredictionField Method = "prediction_field"
	MethodNone            Method = "none"
)

// Field identifies which part of a document a matched phrase started in.
type Field string

const (
	FieldTitle   Field = "title"
	FieldSnippet Field = "snippet"
	FieldBody    Field = "body"
)

// TeamDescriptor is the ordered list of names a team goes by. The first entry is the display label.
type TeamDescriptor struct {
	Synonyms []string `json:"synonyms"`
}

// NewTeamDescriptor trims the given names and drops empty entries, keeping original case and order.
func NewTeamDescriptor(names ...string) TeamDescriptor {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return TeamDescriptor{Synonyms: out}
}

// ParseTeamDescriptor splits a comma-separated synonym list.
func ParseTeamDescriptor(raw string) TeamDescriptor {
	return NewTeamDescriptor(strings.Split(raw, ",")...)
}

// Label returns the canonical display name, or "" when no synonyms are set.
func (d TeamDescriptor) Label() string {
	if len(d.Synonyms) == 0 {
		return ""
	}
	return d.Synonyms[0]
}

// Document is one fetched search result ready for classification.
type Document struct {
	URL         string     `json:"url"`
	Domain      string     `json:"domain"`
	ResultTitle string     `json:"resultTitle"`
	PageTitle   string     `json:"pageTitle"`
	Snippet     string     `json:"snippet"`
	BodyText    string     `json:"bodyText"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Verdict is the per-document classification result.
type Verdict struct {
	Side   Side   `json:"side"`
	Method Method `json:"method"`
	Phrase string `json:"phrase"`
	Field  Field  `json:"field,omitempty"`
}

// Ambiguous is the verdict returned when no rule fires.
func Ambiguous() Verdict {
	return Verdict{Side: SideAmbiguous, Method: MethodNone}
}

// SearchHit is one organic result returned by a search backend.
type SearchHit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Matchup describes one query to tally.
type Matchup struct {
	ID         string         `json:"id"`
	Query      string         `json:"query"`
	TeamA      TeamDescriptor `json:"teamA"`
	TeamB      TeamDescriptor `json:"teamB"`
	WindowDays int            `json:"windowDays"`
	Results    int            `json:"results"`
	Allow      []string       `json:"allow,omitempty"`
	Deny       []string       `json:"deny,omitempty"`
	Provider   string         `json:"provider,omitempty"`
}

// SourceRow is the audit record for one admitted document.
type SourceRow struct {
	Published   string `json:"published_utc"`
	Domain      string `json:"domain"`
	Site        string `json:"site,omitempty"`
	URL         string `json:"url"`
	ResultTitle string `json:"result_title"`
	PageTitle   string `json:"page_title"`
	Snippet     string `json:"snippet"`
	Winner      Side   `json:"winner"`
	Method      Method `json:"winner_method"`
	Phrase      string `json:"match_phrase"`
	Field       Field  `json:"match_field,omitempty"`
}

// Result is the outcome of tallying one matchup.
type Result struct {
	RunID            string      `json:"runId"`
	MatchupID        string      `json:"matchupId"`
	Query            string      `json:"query"`
	TeamALabel       string      `json:"teamALabel"`
	TeamBLabel       string      `json:"teamBLabel"`
	Days             int         `json:"days"`
	ResultsRequested int         `json:"resultsRequested"`
	Tally            Tally       `json:"tally"`
	Dominant         string      `json:"dominant"`
	Sources          []SourceRow `json:"sources"`
	GeneratedAt      time.Time   `json:"generatedAt"`
}
