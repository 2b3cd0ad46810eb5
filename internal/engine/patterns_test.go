package engine

import (
	"reflect"
	"testing"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

func TestSynonymSetOrdersLongestFirstAndDedupes(t *testing.T) {
	set := NewSynonymSet(predictions.NewTeamDescriptor("49ers", "San Francisco 49ers", "SF", "sf", "49ERS"))
	want := []string{"san francisco 49ers", "49ers", "sf"}
	if got := set.Members(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !set.Contains("  San Francisco 49ERS ") {
		t.Fatalf("expected case-insensitive trimmed membership")
	}
	if set.Contains("niners") {
		t.Fatalf("did not expect niners to be a member")
	}
}

func TestSynonymSetAppearsIn(t *testing.T) {
	set := NewSynonymSet(predictions.NewTeamDescriptor("Texans"))
	if !set.AppearsIn("we like the TEXANS here") {
		t.Fatalf("expected substring match")
	}
	if set.AppearsIn("no team named") {
		t.Fatalf("did not expect a match")
	}
}

func TestBuildPatternsEscapesSynonyms(t *testing.T) {
	ps := BuildPatterns(predictions.NewTeamDescriptor("St. Louis (STL)"))
	winner := ps.Contexts()[6]
	if !winner.MatchString("Winner: St. Louis (STL)") {
		t.Fatalf("expected escaped synonym to match literally")
	}
	if winner.MatchString("Winner: StX Louis (STL)") {
		t.Fatalf("expected dot to be escaped")
	}
}

func TestBuildPatternsPrefersLongestSynonym(t *testing.T) {
	ps := BuildPatterns(predictions.NewTeamDescriptor("San Francisco", "San Francisco 49ers"))
	m := ps.Contexts()[6].FindStringSubmatch("winner: San Francisco 49ers")
	if m == nil {
		t.Fatalf("expected winner pattern to match")
	}
	if m[1] != "San Francisco 49ers" {
		t.Fatalf("expected full synonym capture, got %q", m[1])
	}
}

func TestBuildPatternsHasEightContextsAndScoreline(t *testing.T) {
	ps := BuildPatterns(predictions.NewTeamDescriptor("Texans"))
	if got := len(ps.Contexts()); got != 8 {
		t.Fatalf("expected 8 context patterns, got %d", got)
	}
	if ps.Scoreline() == nil {
		t.Fatalf("expected scoreline pattern")
	}
	if ps.Label() != "Texans" {
		t.Fatalf("expected label Texans, got %q", ps.Label())
	}
	if ps.CatchAll() {
		t.Fatalf("did not expect catch-all for non-empty descriptor")
	}
}

func TestBuildPatternsEmptyDescriptorIsCatchAll(t *testing.T) {
	ps := BuildPatterns(predictions.TeamDescriptor{})
	if !ps.CatchAll() {
		t.Fatalf("expected catch-all for empty descriptor")
	}
	if ps.finalScore != nil {
		t.Fatalf("expected no final-score pattern without synonyms")
	}
	if !ps.Contexts()[2].MatchString("pick: anything at all") {
		t.Fatalf("expected catch-all pick pattern to match any name")
	}
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	ps := BuildPatterns(predictions.NewTeamDescriptor("Texans"))
	if !ps.Contexts()[3].MatchString("PREDICTION: TEXANS") {
		t.Fatalf("expected case-insensitive match")
	}
}

func TestLooksLikeSpread(t *testing.T) {
	cases := map[string]bool{
		"Texans -2.5 over 49ers":   true,
		"+3 Texans":                true,
		"Texans (+7)":              true,
		"Texans ATS":               true,
		"take the spread":          true,
		"Texans cover again":       true,
		"Texans 24-17":             false,
		"Texans win outright":      false,
		"read more at covers.com":  false,
		"stats say Texans":         false,
		"Pick: Texans to win big.": false,
	}
	for phrase, want := range cases {
		if got := LooksLikeSpread(phrase); got != want {
			t.Fatalf("%q: expected %v, got %v", phrase, want, got)
		}
	}
}
