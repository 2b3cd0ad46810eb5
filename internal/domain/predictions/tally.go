package predictions

const (
	DominantA   = "Team A"
	DominantB   = "Team B"
	DominantTie = "Tie"
)

// Tally counts verdicts for one matchup.
type Tally struct {
	VotesA    int `json:"votesA"`
	VotesB    int `json:"votesB"`
	Ambiguous int `json:"ambiguous"`
}

// Add folds a single verdict into the tally.
func (t *Tally) Add(v Verdict) {
	switch v.Side {
	case SideA:
		t.VotesA++
	case SideB:
		t.VotesB++
	default:
		t.Ambiguous++
	}
}

// Merge combines two partial tallies.
func (t Tally) Merge(other Tally) Tally {
	return Tally{
		VotesA:    t.VotesA + other.VotesA,
		VotesB:    t.VotesB + other.VotesB,
		Ambiguous: t.Ambiguous + other.Ambiguous,
	}
}

// Total returns the number of verdicts counted.
func (t Tally) Total() int {
	return t.VotesA + t.VotesB + t.Ambiguous
}

// Dominant labels the side with more votes; equal counts (including 0-0) are a tie.
func (t Tally) Dominant() string {
	switch {
	case t.VotesA > t.VotesB:
		return DominantA
	case t.VotesB > t.VotesA:
		return DominantB
	default:
		return DominantTie
	}
}
