package testutil

import (
	"time"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// SampleMatchup returns a Texans/49ers matchup with the provided id.
func SampleMatchup(id string) predictions.Matchup {
	return predictions.Matchup{
		ID:    id,
		Query: "Texans vs 49ers prediction",
		TeamA: predictions.NewTeamDescriptor("Houston Texans", "Texans"),
		TeamB: predictions.NewTeamDescriptor("San Francisco 49ers", "49ers"),
	}
}

// SampleResult builds a finished result with one vote per side and one ambiguous row.
func SampleResult(runID, matchupID string) predictions.Result {
	tally := predictions.Tally{VotesA: 1, VotesB: 1, Ambiguous: 1}
	return predictions.Result{
		RunID:            runID,
		MatchupID:        matchupID,
		Query:            "Texans vs 49ers prediction",
		TeamALabel:       "Houston Texans",
		TeamBLabel:       "San Francisco 49ers",
		Days:             5,
		ResultsRequested: 50,
		Tally:            tally,
		Dominant:         tally.Dominant(),
		GeneratedAt:      time.Date(2024, 9, 12, 12, 0, 0, 0, time.UTC),
		Sources: []predictions.SourceRow{
			{Published: "2024-09-12T08:00:00Z", Domain: "www.espn.com", URL: "https://www.espn.com/a", PageTitle: "Picks", Winner: predictions.SideA, Method: predictions.MethodExplicit, Phrase: "Pick: Texans"},
			{Published: "2024-09-11T08:00:00Z", Domain: "www.covers.com", URL: "https://www.covers.com/b", PageTitle: "Preview", Winner: predictions.SideB, Method: predictions.MethodScoreline, Phrase: "Texans 17, 49ers 24"},
			{Published: "2024-09-10T08:00:00Z", Domain: "www.cbssports.com", URL: "https://www.cbssports.com/c", PageTitle: "Odds", Winner: predictions.SideAmbiguous, Method: predictions.MethodNone},
		},
	}
}
