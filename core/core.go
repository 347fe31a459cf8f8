// Package core has core logic for collection, aggregation and assembly.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/internal/outwriter"
	"github.com/sonarsheet/sonarsheet/internal/xlsxbook"
	"github.com/sonarsheet/sonarsheet/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, store contract.RunStore) error

// ExecuteReport collects the organization's metrics and prints the full
// report: the per-project detail table followed by the summary grid.
// It serves as the main entry point for the 'report' mode.
func ExecuteReport(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, store contract.RunStore) error {
	start := time.Now()
	outwriter.LogReportHeader(cfg)

	records, err := collectTracked(ctx, cfg, source, store)
	if err != nil {
		return err
	}

	detail := AssembleDetail(records, cfg.MetricKeys)
	report := Aggregate(cfg.OrgName, records, cfg.MetricKeys)
	duration := time.Since(start)

	if err := outwriter.PrintDetail(detail, records, cfg, duration); err != nil {
		return err
	}
	// Append so the detail table written above survives in the same file.
	return outwriter.PrintSummaryAppend(AssembleSummary(report), report, cfg)
}

// ExecuteProjects lists the organization's projects without fetching metrics.
// It serves as the main entry point for the 'projects' mode.
func ExecuteProjects(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, _ contract.RunStore) error {
	start := time.Now()
	outwriter.LogReportHeader(cfg)

	projects, err := source.ListProjects(ctx, cfg.OrgKey)
	if err != nil {
		return fmt.Errorf("failed to list projects for organization %s: %w", cfg.OrgKey, err)
	}
	duration := time.Since(start)
	return outwriter.PrintProjects(projects, cfg, duration)
}

// ExecuteSummary collects the organization's metrics and prints only the
// summary grid. It serves as the main entry point for the 'summary' mode.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, store contract.RunStore) error {
	outwriter.LogReportHeader(cfg)

	records, err := collectTracked(ctx, cfg, source, store)
	if err != nil {
		return err
	}

	report := Aggregate(cfg.OrgName, records, cfg.MetricKeys)
	return outwriter.PrintSummary(AssembleSummary(report), report, cfg)
}

// ExecuteExport collects the organization's metrics and writes the two-sheet
// workbook to cfg.WorkbookFile. It serves as the main entry point for the
// 'export' mode.
func ExecuteExport(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, store contract.RunStore) error {
	outwriter.LogReportHeader(cfg)

	records, err := collectTracked(ctx, cfg, source, store)
	if err != nil {
		return err
	}

	detail := AssembleDetail(records, cfg.MetricKeys)
	summary := AssembleSummary(Aggregate(cfg.OrgName, records, cfg.MetricKeys))

	blob, err := xlsxbook.Export(detail, summary)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := os.WriteFile(cfg.WorkbookFile, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Printf("Wrote %d projects to %s\n", len(records), cfg.WorkbookFile)
	return nil
}

// collectTracked wraps CollectRecords with run-history tracking. Tracking
// failures are logged, never fatal; a nil store disables tracking.
func collectTracked(ctx context.Context, cfg *contract.Config, source contract.MetricsSource, store contract.RunStore) ([]schema.ProjectRecord, error) {
	var runID int64
	if store != nil {
		configParams := map[string]any{
			"org_key": cfg.OrgKey,
			"workers": cfg.Workers,
			"timeout": cfg.Timeout.String(),
			"output":  string(cfg.Output),
		}
		var err error
		runID, err = store.BeginRun(time.Now(), cfg.OrgKey, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	records, err := CollectRecords(ctx, cfg, source)
	if err != nil {
		return nil, err
	}

	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), len(records)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return records, nil
}
