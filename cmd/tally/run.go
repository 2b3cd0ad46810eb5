package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
	"github.com/beto15pr/sports-tally-scraper/internal/pipeline"
	"github.com/beto15pr/sports-tally-scraper/internal/report"
	"github.com/beto15pr/sports-tally-scraper/internal/server"
)

const (
	missingKeyMessage = "Missing API key. Provide --api-key or set SERPER_API_KEY / SERPAPI_KEY."
	defaultDeny       = "reddit.com,facebook.com,youtube.com,twitter.com,x.com,instagram.com"
)

type runOptions struct {
	provider string
	apiKey   string
	query    string
	teamA    string
	teamB    string
	results  int
	days     int
	allow    string
	deny     string
	rate     float64
	out      string
	md       string
}

func newRunCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tally one matchup and write its sources to CSV",
		Long: `Search for predictions about one matchup, classify every source published
within the last --days days and write the rows to --out.

Team synonyms are comma-separated; the first synonym labels the team in reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTally(cmd, opts, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.provider, "provider", "serper", "Search provider backend: serper, serpapi or fixture")
	f.StringVar(&opts.apiKey, "api-key", "", "API key (falls back to SERPER_API_KEY or SERPAPI_KEY)")
	f.StringVar(&opts.query, "query", "", "Search query, e.g. 'Texans vs 49ers prediction'")
	f.StringVar(&opts.teamA, "team-a", "", "Comma-separated synonyms for Team A")
	f.StringVar(&opts.teamB, "team-b", "", "Comma-separated synonyms for Team B")
	f.IntVar(&opts.results, "results", 50, "How many search results to request")
	f.IntVar(&opts.days, "days", 5, "Only include sources published within the last N days")
	f.StringVar(&opts.allow, "allow", "", "Comma-separated domain allowlist (optional)")
	f.StringVar(&opts.deny, "deny", defaultDeny, "Comma-separated domain denylist")
	f.Float64Var(&opts.rate, "rate", 1.0, "Seconds to wait between page fetches")
	f.StringVar(&opts.out, "out", "", "CSV output path")
	f.StringVar(&opts.md, "md", "", "Optional Markdown output path")
	for _, name := range []string{"query", "team-a", "team-b", "out"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runTally(cmd *cobra.Command, opts *runOptions, stdout, stderr io.Writer) error {
	cfg := loadConfig()
	cfg.Fetch.MinInterval = time.Duration(opts.rate * float64(time.Second))

	logger := newLogger(stderr)
	runner, provider, err := newRunner(cfg, opts.provider, opts.apiKey, logger)
	if err != nil {
		return err
	}

	res, err := runner.Run(cmd.Context(), predictions.Matchup{
		Query:      opts.query,
		TeamA:      predictions.ParseTeamDescriptor(opts.teamA),
		TeamB:      predictions.ParseTeamDescriptor(opts.teamB),
		WindowDays: opts.days,
		Results:    opts.results,
		Allow:      config.SplitList(opts.allow),
		Deny:       config.SplitList(opts.deny),
		Provider:   provider,
	})
	if err != nil {
		return err
	}

	if err := writeFile(opts.out, func(w io.Writer) error { return report.WriteCSV(w, res.Sources) }); err != nil {
		return err
	}
	if opts.md != "" {
		if err := writeFile(opts.md, func(w io.Writer) error { return report.WriteMarkdown(w, res) }); err != nil {
			return err
		}
	}
	if err := report.WriteSummary(stdout, res, opts.out); err != nil {
		return err
	}
	if opts.md != "" && len(res.Sources) > 0 {
		fmt.Fprintf(stdout, "Markdown summary: %s\n", opts.md)
	}
	return nil
}

// newRunner wires a runner for the named provider. A keyed provider without a
// key yields exit code 2.
func newRunner(cfg config.Config, provider, apiKey string, logger *slog.Logger) (*pipeline.Runner, string, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	switch name {
	case "serper":
		if apiKey != "" {
			cfg.Search.SerperAPIKey = apiKey
		}
	case "serpapi":
		if apiKey != "" {
			cfg.Search.SerpAPIKey = apiKey
		}
	case "fixture":
	default:
		return nil, "", fmt.Errorf("unsupported provider %q", provider)
	}
	if name != "fixture" && cfg.Search.APIKey(name) == "" {
		return nil, "", exitError{code: 2, msg: missingKeyMessage}
	}
	cfg.Search.Provider = name

	set := server.BuildProviders(cfg, logger, nil)
	return server.BuildRunner(cfg, set, server.Infra{}, nil, logger, nil), name, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
