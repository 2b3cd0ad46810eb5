package providers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const errorBodyLimit = 512

// CheckResponse converts a non-200 upstream response into a typed error.
// 429 becomes a RateLimitError carrying Retry-After; everything else becomes a StatusError.
func CheckResponse(provider string, resp *http.Response, now time.Time) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	msg := strings.TrimSpace(string(body))
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			RetryAfter: ParseRetryAfter(resp.Header.Get("Retry-After"), now),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    provider + " rate limited",
		}
	}
	return &StatusError{Provider: provider, StatusCode: resp.StatusCode, Body: msg}
}

// ParseRetryAfter accepts delta-seconds or an HTTP date. Unparseable values yield zero.
func ParseRetryAfter(raw string, now time.Time) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
