package providers

// TimeRangeForDays maps a recency window to the coarsest search hint that still covers it.
// Results are filtered by publish date afterwards, so the hint only biases ranking.
func TimeRangeForDays(days int) string {
	switch {
	case days <= 1:
		return "qdr:d"
	case days <= 7:
		return "qdr:w"
	case days <= 31:
		return "qdr:m"
	default:
		return ""
	}
}
