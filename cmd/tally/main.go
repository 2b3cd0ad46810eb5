// Package main implements the tally CLI, which runs prediction tallies without the HTTP server.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/beto15pr/sports-tally-scraper/internal/config"
	"github.com/beto15pr/sports-tally-scraper/internal/logging"
)

const appVersion = "dev"

// loadConfig remains a var for tests to override.
var loadConfig = config.Load

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	msg  string
}

func (e exitError) Error() string { return e.msg }

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			if exit.msg != "" {
				fmt.Fprintln(stderr, exit.msg)
			}
			return exit.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Tally predicted winners from recent search results",
		Long: `tally searches the web for predictions about a matchup, classifies which
team each recent source picks, and reports the vote count per team.

Examples:
  # Tally a matchup with Serper
  tally run --query "Texans vs 49ers prediction" \
    --team-a "Houston Texans,Texans,Houston" --team-b "San Francisco 49ers,49ers,SF" \
    --out texans_49ers.csv --md texans_49ers.md

  # Run every matchup in a watchlist file
  tally batch --file matchups.yaml --out-dir out/

  # Re-tally a saved CSV
  tally summarize --csv texans_49ers.csv`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newRunCmd(stdout, stderr))
	root.AddCommand(newBatchCmd(stdout, stderr))
	root.AddCommand(newSummarizeCmd(stdout))
	return root
}

func newLogger(stderr io.Writer) *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	return logging.NewLogger(logging.Config{
		Level:   level,
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "tally-cli",
		Version: appVersion,
		Output:  stderr,
	})
}
