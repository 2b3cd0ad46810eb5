package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/beto15pr/sports-tally-scraper/internal/domain/predictions"
)

// SynonymSet holds the lower-cased names of one team.
type SynonymSet struct {
	members map[string]struct{}
	ordered []string
}

// NewSynonymSet lower-cases and deduplicates the descriptor's synonyms.
// Members are ordered longest-first, ties broken lexically, so alternations prefer the widest name.
func NewSynonymSet(d predictions.TeamDescriptor) SynonymSet {
	members := make(map[string]struct{}, len(d.Synonyms))
	for _, s := range d.Synonyms {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		members[key] = struct{}{}
	}

	ordered := make([]string, 0, len(members))
	for m := range members {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	return SynonymSet{members: members, ordered: ordered}
}

// Contains reports whether token, after trimming and lower-casing, is a member.
func (s SynonymSet) Contains(token string) bool {
	_, ok := s.members[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// Len returns the number of distinct synonyms.
func (s SynonymSet) Len() int {
	return len(s.ordered)
}

// Empty reports whether the set has no members.
func (s SynonymSet) Empty() bool {
	return len(s.ordered) == 0
}

// Members returns the synonyms longest-first.
func (s SynonymSet) Members() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// AppearsIn reports whether any synonym is a substring of the lower-cased text.
func (s SynonymSet) AppearsIn(text string) bool {
	lowered := strings.ToLower(text)
	for _, m := range s.ordered {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// alternation renders the set as an escaped regex alternation without the surrounding group.
func (s SynonymSet) alternation() string {
	quoted := make([]string, len(s.ordered))
	for i, m := range s.ordered {
		quoted[i] = regexp.QuoteMeta(m)
	}
	return strings.Join(quoted, "|")
}

// nameGroup is the capturing group used by the context patterns.
// An empty set degrades to a group that captures the rest of the line.
func (s SynonymSet) nameGroup() string {
	if s.Empty() {
		return "(.*)"
	}
	return "(" + s.alternation() + ")"
}
