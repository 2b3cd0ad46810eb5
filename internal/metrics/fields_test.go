package metrics

import "testing"

func TestOutcomeValuesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range []string{OutcomeOK, OutcomeError, OutcomeFiltered, OutcomeStale} {
		if o == "" || seen[o] {
			t.Fatalf("expected unique non-empty outcome, got %q", o)
		}
		seen[o] = true
	}
	if AttrOutcome == "" || AttrSide == "" || AttrProvider == "" {
		t.Fatalf("expected metric attribute keys to be non-empty")
	}
}
