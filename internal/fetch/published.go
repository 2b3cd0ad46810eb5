package fetch

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var jsonLDDateKeys = []string{"datePublished", "dateModified", "uploadDate"}

var publishedMetaKeys = []string{
	"article:published_time",
	"og:published_time",
	"pubdate",
	"publishdate",
	"parsely-pub-date",
}

// ExtractPublished finds the publish timestamp of a document, trying
// <time datetime>, then JSON-LD, then meta tags. The result is UTC.
func ExtractPublished(doc *html.Node) *time.Time {
	if ts := fromTimeElement(doc); ts != nil {
		return ts
	}
	if ts := fromJSONLD(doc); ts != nil {
		return ts
	}
	return fromMeta(doc)
}

// NormalizeDate parses a loosely formatted date. Values without a zone are taken as UTC.
func NormalizeDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}

func fromTimeElement(doc *html.Node) *time.Time {
	var out *time.Time
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Time {
			return true
		}
		raw := attr(n, "datetime")
		if raw == "" {
			return true
		}
		// Only the first <time datetime> is consulted.
		if ts, ok := NormalizeDate(raw); ok {
			out = &ts
		}
		return false
	})
	return out
}

func fromJSONLD(doc *html.Node) *time.Time {
	var out *time.Time
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Script {
			return true
		}
		if !strings.EqualFold(strings.TrimSpace(attr(n, "type")), "application/ld+json") {
			return true
		}
		var payload any
		if err := json.Unmarshal([]byte(textOf(n)), &payload); err != nil {
			return true
		}
		if ts := dateFromJSONLD(payload); ts != nil {
			out = ts
			return false
		}
		return true
	})
	return out
}

func dateFromJSONLD(payload any) *time.Time {
	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			if ts := dateFromJSONLD(item); ts != nil {
				return ts
			}
		}
	case map[string]any:
		for _, key := range jsonLDDateKeys {
			if raw, ok := v[key].(string); ok {
				if ts, ok := NormalizeDate(raw); ok {
					return &ts
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			return dateFromJSONLD(graph)
		}
	}
	return nil
}

func fromMeta(doc *html.Node) *time.Time {
	metas := make(map[string]string)
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Meta {
			return true
		}
		content := attr(n, "content")
		if content == "" {
			return true
		}
		for _, key := range []string{attr(n, "property"), attr(n, "name")} {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if _, seen := metas[key]; !seen {
				metas[key] = content
			}
		}
		return true
	})
	for _, key := range publishedMetaKeys {
		if raw, ok := metas[key]; ok {
			if ts, ok := NormalizeDate(raw); ok {
				return &ts
			}
		}
	}
	return nil
}
