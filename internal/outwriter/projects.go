package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"

	"github.com/olekukonko/tablewriter"
)

// PrintProjects outputs the organization's project listing, dispatching based
// on the output format configured.
func PrintProjects(projects []schema.Project, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, projects)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"project_key", "project_name"}, func(cw *csv.Writer) error {
				for _, p := range projects {
					if err := cw.Write([]string{p.Key, p.Name}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := writeProjectsParquet(projects, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectsTable(projects, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeProjectsTable renders the project listing as a two-column table.
func writeProjectsTable(projects []schema.Project, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Project Key", "Project Name"})

	var data [][]string
	for _, p := range projects {
		data = append(data, []string{p.Key, p.Name})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(writer, "Found %d projects in %v\n", len(projects), duration)
	return err
}
