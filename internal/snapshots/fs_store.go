package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// ErrNoSnapshot is returned when a matchup has no stored snapshot.
var ErrNoSnapshot = errors.New("snapshot not found")

// Store defines how snapshots are loaded.
type Store interface {
	LoadTally(matchupID, date string) (predictions.Result, error)
	LatestTally(matchupID string) (predictions.Result, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadTally reads the snapshot for matchupID on date (YYYY-MM-DD).
// Files are expected at {basePath}/tallies/{matchupID}/{date}.json.
func (s *FSStore) LoadTally(matchupID, date string) (predictions.Result, error) {
	if s == nil {
		return predictions.Result{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return predictions.Result{}, errors.New("snapshot date required")
	}
	var res predictions.Result
	if err := decodeFile(TallySnapshotPath(s.basePath, matchupID, date), &res); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return predictions.Result{}, ErrNoSnapshot
		}
		return predictions.Result{}, err
	}
	return res, nil
}

// LatestTally reads the newest snapshot on disk for matchupID.
func (s *FSStore) LatestTally(matchupID string) (predictions.Result, error) {
	if s == nil {
		return predictions.Result{}, errors.New("snapshot store not configured")
	}
	dates, err := listDates(matchupDir(s.basePath, matchupID))
	if err != nil {
		return predictions.Result{}, err
	}
	if len(dates) == 0 {
		return predictions.Result{}, ErrNoSnapshot
	}
	return s.LoadTally(matchupID, dates[len(dates)-1])
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
