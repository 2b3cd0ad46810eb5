package logging

import (
	"log/slog"
	"testing"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon([]slog.Attr{slog.String(FieldRunID, "run-1")}, "tally", "v1")
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldRunID {
		t.Fatalf("expected existing attrs first, got %+v", attrs[0])
	}
	if attrs[1].Key != FieldService || attrs[1].Value.String() != "tally" {
		t.Fatalf("expected service attr, got %+v", attrs[1])
	}
	if attrs[2].Key != FieldVersion || attrs[2].Value.String() != "v1" {
		t.Fatalf("expected version attr, got %+v", attrs[2])
	}
	if got := WithCommon(nil, "", ""); len(got) != 0 {
		t.Fatalf("expected empty service and version to be skipped, got %+v", got)
	}
}

func TestTallyFieldKeysAreUnique(t *testing.T) {
	keys := []string{FieldQuery, FieldMatchupID, FieldRunID, FieldURL, FieldDomain, FieldTeam, FieldProvider, FieldCount}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate field key %q", k)
		}
		seen[k] = true
	}
}
