package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrOutcome  = "outcome"
	AttrSide     = "side"
)

// Page fetch and run outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFiltered = "filtered"
	OutcomeStale    = "stale"
)

const defaultServiceName = "sports-tally"
