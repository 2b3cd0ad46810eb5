package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" ESPN.com, ,covers.com ,")
	if len(got) != 2 || got[0] != "espn.com" || got[1] != "covers.com" {
		t.Fatalf("unexpected split %v", got)
	}
}

func TestListEnvOrDefaultCopiesDefault(t *testing.T) {
	t.Setenv("LIST_TEST", "")
	def := []string{"a"}
	got := listEnvOrDefault("LIST_TEST", def)
	got[0] = "changed"
	if def[0] != "a" {
		t.Fatalf("expected default slice to be copied")
	}
}
