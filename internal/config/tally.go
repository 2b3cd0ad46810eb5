package config

// TallyDefaults fill in request fields a caller leaves empty.
type TallyDefaults struct {
	Results          int
	Days             int
	Allow            []string
	Deny             []string
	BatchConcurrency int
}

func loadTally() TallyDefaults {
	return TallyDefaults{
		Results:          intEnvOrDefault(envDefaultResults, defaultResults),
		Days:             intEnvOrDefault(envDefaultDays, defaultDays),
		Allow:            listEnvOrDefault(envDefaultAllow, DefaultAllow),
		Deny:             listEnvOrDefault(envDefaultDeny, DefaultDeny),
		BatchConcurrency: intEnvOrDefault(envBatchConc, defaultBatchConc),
	}
}
