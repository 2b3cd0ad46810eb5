package snapshots

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const talliesDir = "tallies"

var unsafeID = regexp.MustCompile(`[^a-z0-9._-]+`)

// SafeID reduces a matchup ID or query to a single path segment.
func SafeID(raw string) string {
	id := unsafeID.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "-")
	id = strings.Trim(id, "-.")
	if id == "" {
		return "unnamed"
	}
	return id
}

// TallySnapshotPath builds the path to a matchup's snapshot for a given date.
func TallySnapshotPath(basePath, matchupID, date string) string {
	return filepath.Join(basePath, talliesDir, SafeID(matchupID), fmt.Sprintf("%s.json", date))
}

func matchupDir(basePath, matchupID string) string {
	return filepath.Join(basePath, talliesDir, SafeID(matchupID))
}
