package config

// SnapshotConfig controls on-disk tally snapshots.
type SnapshotConfig struct {
	Enabled       bool
	Folder        string
	RetentionDays int
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:       boolEnvOrDefault(envSnapshotEnabled, defaultSnapshotEnabled),
		Folder:        envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
	}
}
