package providers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func newResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body)), Header: header}
}

func TestCheckResponseOK(t *testing.T) {
	if err := CheckResponse("serper", newResponse(http.StatusOK, "{}", nil), time.Now()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestCheckResponseRateLimited(t *testing.T) {
	header := make(http.Header)
	header.Set("Retry-After", "7")
	header.Set("X-RateLimit-Remaining", "0")
	err := CheckResponse("serper", newResponse(http.StatusTooManyRequests, "slow down", header), time.Now())

	rl, ok := AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second || rl.Remaining != "0" || rl.Provider != "serper" {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestCheckResponseStatusError(t *testing.T) {
	err := CheckResponse("serpapi", newResponse(http.StatusUnauthorized, "  invalid key \n", nil), time.Now())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.Body != "invalid key" || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cases := map[string]time.Duration{
		"":                              0,
		"3":                             3 * time.Second,
		"-1":                            0,
		"soon":                          0,
		"Mon, 01 Jan 2024 12:00:30 GMT": 30 * time.Second,
		"Mon, 01 Jan 2024 11:00:00 GMT": 0,
	}
	for raw, want := range cases {
		if got := ParseRetryAfter(raw, now); got != want {
			t.Fatalf("%q: expected %s, got %s", raw, want, got)
		}
	}
}
