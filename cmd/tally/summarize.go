package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/beto15pr/sports-tally-scraper/internal/report"
)

func newSummarizeCmd(stdout io.Writer) *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Re-tally a CSV written by run or batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("opening %s: %w", csvPath, err)
			}
			defer f.Close()

			rows, err := report.ReadCSV(f)
			if err != nil {
				return err
			}
			tally := report.TallyRows(rows)
			_, err = fmt.Fprintf(stdout, "Rows: %d\nTeam A: %d\nTeam B: %d\nAmbiguous/Unclear (excluded): %d\nDominant: %s\n",
				len(rows), tally.VotesA, tally.VotesB, tally.Ambiguous, tally.Dominant())
			return err
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to summarize")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}
