package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/report"
	"github.com/beto15pr/sports-tally-scraper/internal/snapshots"
)

type batchOptions struct {
	file     string
	outDir   string
	provider string
	apiKey   string
}

func newBatchCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Tally every matchup in a YAML file",
		Long: `Tally every matchup listed in a YAML file concurrently. One failing matchup
does not stop the others; the command exits non-zero when any matchup failed.

With --out-dir, each successful tally is written to {out-dir}/{id}.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, opts, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "YAML matchup file")
	f.StringVar(&opts.outDir, "out-dir", "", "Directory for per-matchup CSV files (optional)")
	f.StringVar(&opts.provider, "provider", "serper", "Search provider backend: serper, serpapi or fixture")
	f.StringVar(&opts.apiKey, "api-key", "", "API key (falls back to SERPER_API_KEY or SERPAPI_KEY)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runBatch(cmd *cobra.Command, opts *batchOptions, stdout, stderr io.Writer) error {
	matchups, err := config.LoadMatchups(opts.file)
	if err != nil {
		return err
	}
	runner, _, err := newRunner(loadConfig(), opts.provider, opts.apiKey, newLogger(stderr))
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	failed := 0
	for _, item := range runner.RunBatch(cmd.Context(), matchups) {
		if err := report.WriteBatchLine(stdout, item.Matchup.Query, item.Result, item.Error); err != nil {
			return err
		}
		if item.Result == nil {
			failed++
			continue
		}
		if opts.outDir == "" {
			continue
		}
		name := item.Matchup.ID
		if name == "" {
			name = item.Matchup.Query
		}
		path := filepath.Join(opts.outDir, snapshots.SafeID(name)+".csv")
		sources := item.Result.Sources
		if err := writeFile(path, func(w io.Writer) error { return report.WriteCSV(w, sources) }); err != nil {
			return err
		}
	}
	if failed > 0 {
		return exitError{code: 1, msg: fmt.Sprintf("%d of %d matchups failed", failed, len(matchups))}
	}
	return nil
}
