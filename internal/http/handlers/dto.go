package handlers

import (
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// TallyRequest is the body of POST /tally and each entry of a batch.
// Omitted allow/deny lists take the server defaults; an explicit empty list disables that filter.
type TallyRequest struct {
	ID       string   `json:"id,omitempty"`
	Query    string   `json:"query"`
	TeamA    []string `json:"team_a"`
	TeamB    []string `json:"team_b"`
	Results  int      `json:"results,omitempty"`
	Days     int      `json:"days,omitempty"`
	Allow    []string `json:"allow,omitempty"`
	Deny     []string `json:"deny,omitempty"`
	Provider string   `json:"provider,omitempty"`
}

// Matchup converts the request into a pipeline matchup.
func (r TallyRequest) Matchup() predictions.Matchup {
	return predictions.Matchup{
		ID:         r.ID,
		Query:      r.Query,
		TeamA:      predictions.NewTeamDescriptor(r.TeamA...),
		TeamB:      predictions.NewTeamDescriptor(r.TeamB...),
		WindowDays: r.Days,
		Results:    r.Results,
		Allow:      r.Allow,
		Deny:       r.Deny,
		Provider:   r.Provider,
	}
}

// TallyResponse is the API shape of a finished tally.
type TallyResponse struct {
	RunID            string                  `json:"run_id"`
	MatchupID        string                  `json:"matchup_id,omitempty"`
	Query            string                  `json:"query"`
	TeamALabel       string                  `json:"team_a_label"`
	TeamBLabel       string                  `json:"team_b_label"`
	Days             int                     `json:"days"`
	ResultsRequested int                     `json:"results_requested"`
	VotesTeamA       int                     `json:"votes_team_a"`
	VotesTeamB       int                     `json:"votes_team_b"`
	Ambiguous        int                     `json:"ambiguous"`
	Dominant         string                  `json:"dominant"`
	GeneratedAt      time.Time               `json:"generated_at"`
	Sources          []predictions.SourceRow `json:"sources"`
}

// NewTallyResponse maps a pipeline result to its API shape.
func NewTallyResponse(res predictions.Result) TallyResponse {
	sources := res.Sources
	if sources == nil {
		sources = []predictions.SourceRow{}
	}
	return TallyResponse{
		RunID:            res.RunID,
		MatchupID:        res.MatchupID,
		Query:            res.Query,
		TeamALabel:       res.TeamALabel,
		TeamBLabel:       res.TeamBLabel,
		Days:             res.Days,
		ResultsRequested: res.ResultsRequested,
		VotesTeamA:       res.Tally.VotesA,
		VotesTeamB:       res.Tally.VotesB,
		Ambiguous:        res.Tally.Ambiguous,
		Dominant:         res.Dominant,
		GeneratedAt:      res.GeneratedAt,
		Sources:          sources,
	}
}

// BatchRequest is the body of POST /tally/batch.
type BatchRequest struct {
	Matchups []TallyRequest `json:"matchups"`
}

// BatchEntry is one matchup's outcome within a batch.
type BatchEntry struct {
	Query    string         `json:"query"`
	Response *TallyResponse `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// BatchResponse lists entries in request order. Dominant holds each entry's
// dominant label, or "" for failed entries.
type BatchResponse struct {
	Results  []BatchEntry `json:"results"`
	Dominant []string     `json:"dominant"`
}

// TallySummary is the list view of a stored result.
type TallySummary struct {
	RunID       string    `json:"run_id"`
	MatchupID   string    `json:"matchup_id,omitempty"`
	Query       string    `json:"query"`
	VotesTeamA  int       `json:"votes_team_a"`
	VotesTeamB  int       `json:"votes_team_b"`
	Ambiguous   int       `json:"ambiguous"`
	Dominant    string    `json:"dominant"`
	Sources     int       `json:"sources"`
	GeneratedAt time.Time `json:"generated_at"`
}

func newTallySummary(res predictions.Result) TallySummary {
	return TallySummary{
		RunID:       res.RunID,
		MatchupID:   res.MatchupID,
		Query:       res.Query,
		VotesTeamA:  res.Tally.VotesA,
		VotesTeamB:  res.Tally.VotesB,
		Ambiguous:   res.Tally.Ambiguous,
		Dominant:    res.Dominant,
		Sources:     len(res.Sources),
		GeneratedAt: res.GeneratedAt,
	}
}
