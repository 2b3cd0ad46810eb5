package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// WatchlistConfig controls the background re-tally of configured matchups.
type WatchlistConfig struct {
	File     string
	Interval time.Duration
}

// Enabled reports whether a watchlist file is configured.
func (c WatchlistConfig) Enabled() bool { return c.File != "" }

func loadWatchlist() WatchlistConfig {
	return WatchlistConfig{
		File:     envOrDefault(envWatchlistFile, ""),
		Interval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
	}
}

// matchupFile is the on-disk shape of a matchup list.
type matchupFile struct {
	Matchups []matchupEntry `yaml:"matchups"`
}

type matchupEntry struct {
	ID       string   `yaml:"id"`
	Query    string   `yaml:"query"`
	TeamA    []string `yaml:"team_a"`
	TeamB    []string `yaml:"team_b"`
	Days     int      `yaml:"days"`
	Results  int      `yaml:"results"`
	Allow    []string `yaml:"allow"`
	Deny     []string `yaml:"deny"`
	Provider string   `yaml:"provider"`
}

// LoadMatchups reads a YAML matchup list from path.
func LoadMatchups(path string) ([]predictions.Matchup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matchups file: %w", err)
	}
	return ParseMatchups(data)
}

// ParseMatchups decodes a YAML matchup list. Fields left out are filled in later by request defaults.
func ParseMatchups(data []byte) ([]predictions.Matchup, error) {
	var file matchupFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing matchups file: %w", err)
	}
	out := make([]predictions.Matchup, 0, len(file.Matchups))
	for i, e := range file.Matchups {
		if e.Query == "" {
			return nil, fmt.Errorf("matchup %d: query required", i)
		}
		out = append(out, predictions.Matchup{
			ID:         e.ID,
			Query:      e.Query,
			TeamA:      predictions.NewTeamDescriptor(e.TeamA...),
			TeamB:      predictions.NewTeamDescriptor(e.TeamB...),
			WindowDays: e.Days,
			Results:    e.Results,
			Allow:      normalizeList(e.Allow),
			Deny:       normalizeList(e.Deny),
			Provider:   e.Provider,
		})
	}
	return out, nil
}

func normalizeList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, SplitList(v)...)
	}
	return out
}
