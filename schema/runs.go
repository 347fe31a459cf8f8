package schema

import "time"

// RunRecord represents one recorded report run.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	OrgKey        string     `json:"org_key"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	DurationMs    *int64     `json:"duration_ms"`
	TotalProjects int        `json:"total_projects"`
	ConfigParams  *string    `json:"config_params"`
}

// RunStoreStatus represents the status of the run-history store.
type RunStoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
}
