package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"
)

// PrintSummary outputs the organization summary, dispatching based on the
// output format configured. The text and CSV forms render the fixed grid;
// JSON emits the structured report instead.
func PrintSummary(table schema.SummaryTable, report schema.SummaryReport, cfg *contract.Config) error {
	return printSummary(table, report, cfg, writeWithFile)
}

// PrintSummaryAppend writes the summary after another section already emitted
// to cfg.OutputFile, appending so the earlier section survives.
func PrintSummaryAppend(table schema.SummaryTable, report schema.SummaryReport, cfg *contract.Config) error {
	return printSummary(table, report, cfg, appendWithFile)
}

func printSummary(table schema.SummaryTable, report schema.SummaryReport, cfg *contract.Config, write writeFunc) error {
	switch cfg.Output {
	case schema.JSONOut:
		return write(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return write(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, table)
		}, "Wrote CSV")
	case schema.ParquetOut:
		// The parquet export covers the detail table only.
		contract.LogWarn("Summary output skipped", errors.New("parquet supports the detail table only"))
		return nil
	default:
		return write(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryGrid(w, table, cfg)
		}, "Wrote summary")
	}
}

// writeSummaryGrid renders the ragged 13-row grid with fixed column widths.
// Bucket label rows and problem counts are colored when enabled.
func writeSummaryGrid(w io.Writer, table schema.SummaryTable, cfg *contract.Config) error {
	for _, row := range table.Rows {
		for i, cell := range row {
			text := pad(cell.Value.String(), table.ColWidths[i])
			if cfg.UseColors {
				switch {
				case cell.HeaderRow:
					text = contract.HeadingColor.Sprint(text)
				case cell.Problem:
					text = contract.ProblemColor.Sprint(text)
				}
			}
			if _, err := fmt.Fprint(w, text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// writeSummaryCSV emits the grid rows verbatim, one CSV record per row.
func writeSummaryCSV(w io.Writer, table schema.SummaryTable) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	for _, row := range table.Rows {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = cell.Value.String()
		}
		if err := csvWriter.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// pad left-aligns s in a field of the given width.
func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
