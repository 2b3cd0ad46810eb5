// Package sources decides which search hits are eligible to be fetched.
package sources

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Filter admits hosts by substring allow/deny lists.
type Filter struct {
	allow []string
	deny  []string
}

// NewFilter lower-cases and trims both lists, dropping blanks.
func NewFilter(allow, deny []string) Filter {
	return Filter{allow: normalize(allow), deny: normalize(deny)}
}

// Allows reports whether host passes the filter. An empty allow list admits every host not denied.
func (f Filter) Allows(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	if len(f.allow) > 0 && !containsAny(host, f.allow) {
		return false
	}
	return !containsAny(host, f.deny)
}

// Host returns the lower-cased host of a link, or "" when it has none.
func Host(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Site returns the registrable domain of host (e.g. "espn.com" for "www.espn.com").
// Hosts the public suffix list cannot reduce are returned unchanged.
func Site(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}

func containsAny(host string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(host, n) {
			return true
		}
	}
	return false
}

func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
