package serper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/beto15pr/sports-tally-scraper/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestSearchPostsQueryAndMapsOrganicResults(t *testing.T) {
	var captured searchRequest
	var capturedKey string

	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", req.Method)
		}
		if req.URL.Path != "/search" {
			t.Fatalf("expected /search path, got %s", req.URL.Path)
		}
		capturedKey = req.Header.Get("X-API-KEY")
		if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		return jsonResponse(http.StatusOK, `{
			"organic": [
				{"title": " Texans vs 49ers prediction ", "link": "https://a.example/p", "snippet": "Pick: Texans", "position": 1},
				{"title": "no link", "link": "", "snippet": "dropped"},
				{"title": "Second", "link": "https://b.example/q", "snippet": "Final score: 49ers 24, Texans 17", "position": 2}
			]
		}`), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})

	hits, err := client.Search(context.Background(), providers.SearchRequest{Query: "Texans vs 49ers prediction", Num: 50, TimeRange: "qdr:w"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if capturedKey != "secret" {
		t.Fatalf("expected api key header, got %q", capturedKey)
	}
	if captured.Q != "Texans vs 49ers prediction" || captured.Num != 50 || captured.TBS != "qdr:w" {
		t.Fatalf("unexpected request payload %+v", captured)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits with links, got %d", len(hits))
	}
	if hits[0].Title != "Texans vs 49ers prediction" || hits[0].Link != "https://a.example/p" {
		t.Fatalf("unexpected first hit %+v", hits[0])
	}
	if hits[1].Link != "https://b.example/q" {
		t.Fatalf("expected rank order preserved, got %+v", hits[1])
	}
}

func TestSearchOmitsEmptyTimeRange(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		raw, _ := io.ReadAll(req.Body)
		if strings.Contains(string(raw), "tbs") {
			t.Fatalf("expected tbs to be omitted, got %s", raw)
		}
		return jsonResponse(http.StatusOK, `{"organic": []}`), nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})
	hits, err := client.Search(context.Background(), providers.SearchRequest{Query: "q"})
	if err != nil || len(hits) != 0 {
		t.Fatalf("expected empty hits, got %v %v", hits, err)
	}
}

func TestSearchRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Search(context.Background(), providers.SearchRequest{Query: "q"}); !errors.Is(err, providers.ErrMissingAPIKey) {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestSearchMapsRateLimit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, `{"message":"quota"}`)
		resp.Header.Set("Retry-After", "2")
		return resp, nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})
	_, err := client.Search(context.Background(), providers.SearchRequest{Query: "q"})
	rl, ok := providers.AsRateLimitError(err)
	if !ok || rl.Provider != "serper" {
		t.Fatalf("expected serper rate limit error, got %v", err)
	}
}

func TestSearchReturnsStatusAndDecodeErrors(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "upstream down"), nil
	})
	client := NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})
	_, err := client.Search(context.Background(), providers.SearchRequest{Query: "q"})
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status error, got %v", err)
	}

	rt = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "not-json"), nil
	})
	client = NewClient(Config{APIKey: "k", HTTPClient: &http.Client{Transport: rt}})
	if _, err := client.Search(context.Background(), providers.SearchRequest{Query: "q"}); err == nil {
		t.Fatalf("expected decode error")
	}
}
