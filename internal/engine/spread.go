package engine

import "regexp"

var (
	spreadWords = regexp.MustCompile(`(?i)\b(?:spread|cover|ats)\b`)
	// RE2 has no lookbehind; the sign must not be glued to a preceding word character, so "24-17" is not a line.
	signedNumber = regexp.MustCompile(`(?:^|[^\w])[+-]\d+(?:\.\d+)?\b`)
)

// LooksLikeSpread reports whether a phrase reads as point-spread or ATS commentary
// rather than a straight-up pick.
func LooksLikeSpread(phrase string) bool {
	return spreadWords.MatchString(phrase) || signedNumber.MatchString(phrase)
}
