package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"
)

// CollectRecords fetches and normalizes metrics for every project in the
// organization using a worker pool of cfg.Workers goroutines. A project whose
// fetch fails is kept as an all-unavailable record rather than dropped, so
// the report always covers the full project list.
func CollectRecords(ctx context.Context, cfg *contract.Config, source contract.MetricsSource) ([]schema.ProjectRecord, error) {
	projects, err := source.ListProjects(ctx, cfg.OrgKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for organization %s: %w", cfg.OrgKey, err)
	}
	if len(projects) == 0 {
		return nil, errors.New("no projects found")
	}

	// Initialize channels based on the final number of projects to be processed.
	projectCh := make(chan schema.Project, len(projects))
	recordCh := make(chan schema.ProjectRecord, len(projects))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for p := range projectCh {
				recordCh <- collectProject(ctx, cfg, source, p)
			}
		})
	}

	// Send projects to worker channel
	for _, p := range projects {
		projectCh <- p
	}
	close(projectCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(recordCh)

	records := make([]schema.ProjectRecord, 0, len(projects))
	for r := range recordCh {
		records = append(records, r)
	}

	return records, nil
}

// collectProject fetches and normalizes the measures for a single project.
func collectProject(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, p schema.Project) schema.ProjectRecord {
	samples, err := source.FetchMetrics(ctx, p.Key, cfg.MetricKeysJoined())
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Metric fetch failed for %s", p.Key), err)
		return UnavailableRecord(p, cfg.MetricKeys)
	}

	lastAnalysis, err := source.FetchLastAnalysisDate(ctx, p.Key)
	if err != nil {
		// The record is still usable without the analysis date.
		contract.LogWarn(fmt.Sprintf("Last analysis lookup failed for %s", p.Key), err)
		lastAnalysis = nil
	}

	return BuildProjectRecord(p, samples, lastAnalysis, cfg.MetricKeys)
}
