// Package fetch downloads result pages and reduces them to the title, readable
// text and publish timestamp the classifier works on.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnsupportedContent is returned for responses that are not HTML.
var ErrUnsupportedContent = errors.New("unsupported content type")

// Page is the extracted view of one fetched document.
type Page struct {
	URL         string
	Title       string
	Text        string
	PublishedAt *time.Time
}

// Fetcher retrieves and extracts a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (Page, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (Page, error) {
	return f(ctx, url)
}

// StatusError reports a non-2xx page response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}
