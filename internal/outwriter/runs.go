package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"

	"github.com/olekukonko/tablewriter"
)

// runTimeFormat is the display format for run timestamps.
const runTimeFormat = "2006-01-02 15:04:05"

// PrintRuns outputs the recorded report runs, newest first.
func PrintRuns(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(runs, w)
		}, "Wrote table")
	}
}

// writeRunsTable renders the run history as a table.
func writeRunsTable(runs []schema.RunRecord, writer io.Writer) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(writer, "No runs recorded")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run ID", "Organization", "Started", "Duration", "Projects"})

	var data [][]string
	for _, r := range runs {
		duration := "-"
		if r.DurationMs != nil {
			duration = (time.Duration(*r.DurationMs) * time.Millisecond).String()
		}
		data = append(data, []string{
			fmt.Sprintf("%d", r.RunID),
			r.OrgKey,
			r.StartTime.Format(runTimeFormat),
			duration,
			fmt.Sprintf("%d", r.TotalProjects),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// PrintRunStatus outputs the run-history store status.
func PrintRunStatus(status schema.RunStoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		fmt.Fprintf(w, "Backend:    %s\n", status.Backend)
		fmt.Fprintf(w, "Connected:  %t\n", status.Connected)
		fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
		if status.TotalRuns > 0 {
			fmt.Fprintf(w, "Last run:   #%d at %s\n", status.LastRunID, status.LastRunTime.Format(runTimeFormat))
			fmt.Fprintf(w, "Oldest run: %s\n", status.OldestRunTime.Format(runTimeFormat))
		}
		return nil
	}, "Wrote status")
}
