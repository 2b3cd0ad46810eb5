package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// WriteMarkdown renders the human-readable summary of res.
func WriteMarkdown(w io.Writer, res predictions.Result) error {
	var b strings.Builder
	if len(res.Sources) == 0 {
		b.WriteString("# Prediction Tally (No eligible sources)\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "# Prediction Tally – last %d days\n\n", res.Days)
	fmt.Fprintf(&b, "- **%s**: %d\n", labelOr(res.TeamALabel, "Team A"), res.Tally.VotesA)
	fmt.Fprintf(&b, "- **%s**: %d\n", labelOr(res.TeamBLabel, "Team B"), res.Tally.VotesB)
	fmt.Fprintf(&b, "- Ambiguous/Unclear (excluded): %d\n\n", res.Tally.Ambiguous)
	b.WriteString("## Sources\n")
	for _, r := range res.Sources {
		title := r.PageTitle
		if title == "" {
			title = r.ResultTitle
		}
		fmt.Fprintf(&b, "- %s — **%s** (%s) — winner: %s via %s\n  \n  <%s>\n\n",
			r.Published, title, r.Domain, r.Winner, r.Method, r.URL)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func labelOr(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
