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
	"github.com/olekukonko/tablewriter/tw"
)

// PrintDetail outputs the per-project detail table, dispatching based on the
// output format configured. records carries the unsorted source records for
// the typed parquet export; detail carries the assembled, sorted table.
func PrintDetail(detail schema.DetailTable, records []schema.ProjectRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDetailJSON(detail, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDetailCSV(detail, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeDetailParquet(records, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDetailTable(detail, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeDetailTable generates and writes the human-readable table.
func writeDetailTable(detail schema.DetailTable, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header(detail.Header)

	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	attention := 0

	var data [][]string
	for _, r := range detail.Rows {
		row := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cell := c.String()
			if i == 0 {
				cell = contract.TruncateName(cell, nameWidth)
			}
			row[i] = cell
		}
		if r.NeedsAttention {
			attention++
			if cfg.UseColors {
				for i := range row {
					row[i] = contract.AttentionColor.Sprint(row[i])
				}
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d projects (%d with no usable metrics)\n", len(detail.Rows), attention); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Collection completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeDetailCSV handles opening the file and writing the CSV rows.
func writeDetailCSV(detail schema.DetailTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, detail.Header, func(cw *csv.Writer) error {
			for _, r := range detail.Rows {
				rec := make([]string, len(r.Cells))
				for i, c := range r.Cells {
					rec[i] = c.String()
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// jsonDetailRow is the JSON shape of one detail row.
type jsonDetailRow struct {
	ProjectName      string            `json:"project_name"`
	ProjectKey       string            `json:"project_key"`
	Metrics          map[string]any    `json:"metrics"`
	Ratings          map[string]string `json:"ratings"`
	LastAnalysisDate string            `json:"last_analysis_date"`
	NeedsAttention   bool              `json:"needs_attention"`
}

// writeDetailJSON handles opening the file and writing the JSON rows.
// Cells map onto the fixed header layout: identity columns, metric keys,
// rating columns, analysis date.
func writeDetailJSON(detail schema.DetailTable, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		n := len(detail.Header)
		output := make([]jsonDetailRow, 0, len(detail.Rows))
		for _, r := range detail.Rows {
			row := jsonDetailRow{
				ProjectName:      r.Cells[0].String(),
				ProjectKey:       r.Cells[1].String(),
				Metrics:          make(map[string]any, n-7),
				Ratings:          make(map[string]string, 4),
				LastAnalysisDate: r.Cells[n-1].String(),
				NeedsAttention:   r.NeedsAttention,
			}
			for i := 2; i < n-5; i++ {
				row.Metrics[detail.Header[i]] = r.Cells[i].Cell()
			}
			for i := n - 5; i < n-1; i++ {
				row.Ratings[detail.Header[i]] = r.Cells[i].String()
			}
			output = append(output, row)
		}
		return writeJSON(w, output)
	}, "Wrote JSON")
}
