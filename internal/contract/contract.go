// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/sonarsheet/sonarsheet/schema"
)

// MetricsSource defines the operations the core needs from the remote
// quality-analysis service. This allows the collection logic to be tested
// without a live server.
type MetricsSource interface {
	// ListProjects returns all projects under the given organization key.
	ListProjects(ctx context.Context, orgKey string) ([]schema.Project, error)

	// FetchMetrics returns the raw measures for one project. metricKeys is
	// the comma-joined metric-key list.
	FetchMetrics(ctx context.Context, projectKey string, metricKeys string) ([]schema.RawMetricSample, error)

	// FetchLastAnalysisDate returns the timestamp of the project's most
	// recent analysis, or nil when the project was never analyzed.
	FetchLastAnalysisDate(ctx context.Context, projectKey string) (*string, error)
}

// RunStore defines the interface for tracking report runs.
// This allows the history layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, orgKey string, params map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalProjects int) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStoreStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
