package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "serper", StatusCode: 502, Body: "bad gateway"}
	if got := err.Error(); got != "serper: unexpected status 502: bad gateway" {
		t.Fatalf("unexpected error string %q", got)
	}
	if got := (&StatusError{Provider: "serper", StatusCode: 400}).Error(); got != "serper: unexpected status 400" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":          {nil, false},
		"generic":      {errors.New("boom"), true},
		"server error": {&StatusError{StatusCode: 503}, true},
		"client error": {&StatusError{StatusCode: 401}, false},
		"missing key":  {fmt.Errorf("serper: %w", ErrMissingAPIKey), false},
		"unavailable":  {ErrProviderUnavailable, false},
		"rate limited": {&RateLimitError{StatusCode: 429}, true},
	}
	for name, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, got)
		}
	}
}
