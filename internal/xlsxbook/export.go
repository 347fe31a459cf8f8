// Package xlsxbook renders the two-sheet metrics workbook.
package xlsxbook

import (
	"fmt"

	"github.com/sonarsheet/sonarsheet/schema"

	"github.com/xuri/excelize/v2"
)

// Sheet and table names.
const (
	MetricsSheet = "Sonar Metrics"
	SummarySheet = "Summary"
	metricsTable = "SonarMetricsTable"
)

// Workbook colors.
const (
	lightRedFill  = "FFC7CE"
	darkRedFont   = "9C0006"
	lightBlueFill = "ADD8E6"
	navyBlueFill  = "000080"
	whiteFont     = "FFFFFF"
)

// Export renders the detail table and summary grid into a workbook and
// returns the serialized bytes.
func Export(detail schema.DetailTable, summary schema.SummaryTable) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", MetricsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}

	if err := writeMetricsSheet(f, detail); err != nil {
		return nil, fmt.Errorf("failed to write %s sheet: %w", MetricsSheet, err)
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return nil, fmt.Errorf("failed to write %s sheet: %w", SummarySheet, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeMetricsSheet lays out the per-project detail sheet: header, typed
// cells, striped table, frozen panes and attention highlighting.
func writeMetricsSheet(f *excelize.File, detail schema.DetailTable) error {
	for col, h := range detail.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(MetricsSheet, cell, h); err != nil {
			return err
		}
	}

	for i, row := range detail.Rows {
		for col, c := range row.Cells {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(MetricsSheet, cell, c.Cell()); err != nil {
				return err
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(detail.Header))
	if err != nil {
		return err
	}
	lastRow := len(detail.Rows) + 1

	// Striped table over the full data range.
	if len(detail.Rows) > 0 {
		showStripes := true
		if err := f.AddTable(MetricsSheet, &excelize.Table{
			Range:          fmt.Sprintf("A1:%s%d", lastCol, lastRow),
			Name:           metricsTable,
			StyleName:      "TableStyleMedium9",
			ShowRowStripes: &showStripes,
		}); err != nil {
			return err
		}
	}

	if err := applyMetricsStyles(f, detail, lastCol, lastRow); err != nil {
		return err
	}

	showGridLines := false
	if err := f.SetSheetView(MetricsSheet, 0, &excelize.ViewOptions{ShowGridLines: &showGridLines}); err != nil {
		return err
	}

	// Freeze the header row and the name column.
	if err := f.SetPanes(MetricsSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return err
	}

	return setColumnWidths(f, MetricsSheet, detail.ColWidths)
}

// applyMetricsStyles applies the header, border and attention-row styling.
func applyMetricsStyles(f *excelize.File, detail schema.DetailTable, lastCol string, lastRow int) error {
	borders := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    borders,
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(MetricsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	if len(detail.Rows) == 0 {
		return nil
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{Border: borders})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(MetricsSheet, "A2", fmt.Sprintf("%s%d", lastCol, lastRow), bodyStyle); err != nil {
		return err
	}

	// Rows with no usable metrics get a light red fill across all columns.
	attentionStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{lightRedFill}, Pattern: 1},
		Border: borders,
	})
	if err != nil {
		return err
	}
	for i, row := range detail.Rows {
		if !row.NeedsAttention {
			continue
		}
		rowIdx := i + 2
		start := fmt.Sprintf("A%d", rowIdx)
		end := fmt.Sprintf("%s%d", lastCol, rowIdx)
		if err := f.SetCellStyle(MetricsSheet, start, end, attentionStyle); err != nil {
			return err
		}
	}

	return nil
}

// writeSummarySheet lays out the fixed summary grid with its label-column,
// header-row and conditional-format styling.
func writeSummarySheet(f *excelize.File, summary schema.SummaryTable) error {
	for i, row := range summary.Rows {
		for col, cell := range row {
			name, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SummarySheet, name, cell.Value.Cell()); err != nil {
				return err
			}
		}
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{lightBlueFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: whiteFont},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{navyBlueFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	for i, row := range summary.Rows {
		for col, cell := range row {
			var styleID int
			switch {
			case cell.HeaderRow:
				styleID = headerStyle
			case cell.LabelCol:
				styleID = labelStyle
			default:
				continue
			}
			name, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(SummarySheet, name, name, styleID); err != nil {
				return err
			}
		}
	}

	if err := applySummaryConditionalFormat(f); err != nil {
		return err
	}

	return setColumnWidths(f, SummarySheet, summary.ColWidths)
}

// applySummaryConditionalFormat highlights non-zero counts in the danger
// buckets: failed gates, low coverage, B-E ratings and heavy duplication.
func applySummaryConditionalFormat(f *excelize.File) error {
	format, err := f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: darkRedFont},
		Fill: excelize.Fill{Type: "pattern", Color: []string{lightRedFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	rule := []excelize.ConditionalFormatOptions{{
		Type:     "cell",
		Criteria: ">",
		Value:    "0",
		Format:   &format,
	}}

	for _, ref := range []string{"C4", "B6:E6", "C8:F11", "C13:F13"} {
		if err := f.SetConditionalFormat(SummarySheet, ref, rule); err != nil {
			return err
		}
	}
	return nil
}

// setColumnWidths applies the precomputed per-column widths.
func setColumnWidths(f *excelize.File, sheet string, widths []int) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w)); err != nil {
			return err
		}
	}
	return nil
}
