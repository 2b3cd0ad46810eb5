package report

import (
	"fmt"
	"io"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// WriteSummary prints the tally block shown after a run. csvPath is echoed
// as the location the sources were saved to.
func WriteSummary(w io.Writer, res predictions.Result, csvPath string) error {
	if len(res.Sources) == 0 {
		_, err := fmt.Fprintf(w, "No eligible articles found in the last %d days (or filters too strict).\n", res.Days)
		return err
	}
	_, err := fmt.Fprintf(w,
		"\n=== Prediction Tally (last %d days) ===\n%s: %d\n%s: %d\nAmbiguous/Unclear (excluded): %d\nSources saved to: %s\n",
		res.Days,
		labelOr(res.TeamALabel, "Team A"), res.Tally.VotesA,
		labelOr(res.TeamBLabel, "Team B"), res.Tally.VotesB,
		res.Tally.Ambiguous,
		csvPath,
	)
	return err
}

// WriteBatchLine prints a one-line outcome for a batch member.
func WriteBatchLine(w io.Writer, query string, res *predictions.Result, errMsg string) error {
	if res == nil {
		_, err := fmt.Fprintf(w, "%s: error: %s\n", query, errMsg)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s %d, %s %d, ambiguous %d (%s)\n",
		query,
		labelOr(res.TeamALabel, "Team A"), res.Tally.VotesA,
		labelOr(res.TeamBLabel, "Team B"), res.Tally.VotesB,
		res.Tally.Ambiguous, res.Dominant,
	)
	return err
}
