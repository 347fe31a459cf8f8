package core

import (
	"sort"
	"strings"

	"github.com/sonarsheet/sonarsheet/schema"
)

// Summary grid row labels, matching the workbook layout.
const (
	orgNameLabel     = "Application Name:"
	totalReposLabel  = "Total Repos:"
	qualityGateLabel = "Quality Gate"
	coverageLabel    = "Test Coverage"
	duplicationLabel = "Code Duplication"
)

// DetailHeaders returns the detail-table header: identity columns, the metric
// keys in request order, the derived rating columns, and the analysis date.
func DetailHeaders(metricKeys []string) []string {
	headers := make([]string, 0, len(metricKeys)+len(schema.RatingHeaders)+3)
	headers = append(headers, "Project Name", "Project Key")
	headers = append(headers, metricKeys...)
	headers = append(headers, schema.RatingHeaders...)
	headers = append(headers, schema.LastAnalysisHeader)
	return headers
}

// AssembleDetail builds the per-project table from normalized records. Rows
// are sorted by project name, case-insensitive on the trimmed name; the sort
// is stable so equal names keep their input order.
func AssembleDetail(records []schema.ProjectRecord, metricKeys []string) schema.DetailTable {
	sorted := make([]schema.ProjectRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i].Name) < sortKey(sorted[j].Name)
	})

	header := DetailHeaders(metricKeys)
	rows := make([]schema.DetailRow, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, schema.DetailRow{
			Cells:          detailCells(r),
			NeedsAttention: r.NeedsAttention(),
		})
	}

	return schema.DetailTable{
		Header:    header,
		Rows:      rows,
		ColWidths: detailColWidths(header, rows),
	}
}

// detailCells flattens one record into detail-row cells in header order.
func detailCells(r schema.ProjectRecord) []schema.FieldValue {
	cells := make([]schema.FieldValue, 0, len(r.Fields)+7)
	cells = append(cells, schema.TextValue(r.Name), schema.TextValue(r.Key))
	cells = append(cells, r.Fields...)
	cells = append(cells,
		schema.TextValue(r.Ratings.Reliability),
		schema.TextValue(r.Ratings.Security),
		schema.TextValue(r.Ratings.Maintainability),
		schema.TextValue(r.Ratings.SecurityHotspot),
	)
	cells = append(cells, schema.TextValue(r.LastAnalysis))
	return cells
}

// sortKey builds the case-insensitive comparison key for project names.
func sortKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// detailColWidths sizes each column to its widest rendered value plus padding.
func detailColWidths(header []string, rows []schema.DetailRow) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, c := range row.Cells {
			if i < len(widths) && len(c.String()) > widths[i] {
				widths[i] = len(c.String())
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

// AssembleSummary lays the summary report out as the fixed 13-row grid:
// identity rows, then a label row and count row per dimension. Rating
// dimensions share one label row. Problem flags mark non-zero counts in the
// danger buckets of each dimension.
func AssembleSummary(report schema.SummaryReport) schema.SummaryTable {
	rows := [][]schema.SummaryCell{
		{labelCell(orgNameLabel), plainCell(schema.TextValue(report.OrgName))},
		{labelCell(totalReposLabel), plainCell(schema.IntValue(int64(report.TotalProjects)))},

		headerRow("", schema.GateLabels...),
		countRow(qualityGateLabel, report.QualityGate, schema.GateLabels, map[int]bool{1: true}),

		headerRow("", schema.BucketLabels(schema.CoverageBuckets)...),
		countRow(coverageLabel, report.Coverage, schema.BucketLabels(schema.CoverageBuckets),
			map[int]bool{0: true, 1: true, 2: true, 3: true}),

		headerRow("", schema.RatingLetters...),
	}

	// Danger buckets for letter ratings: B through E.
	ratingProblems := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, nd := range report.RatingDistributions() {
		rows = append(rows, countRow(nd.Name, nd.Distribution, schema.RatingLetters, ratingProblems))
	}

	rows = append(rows,
		headerRow("", schema.BucketLabels(schema.DuplicationBuckets)...),
		countRow(duplicationLabel, report.Duplication, schema.BucketLabels(schema.DuplicationBuckets),
			map[int]bool{1: true, 2: true, 3: true, 4: true}),
	)

	return schema.SummaryTable{
		Rows:      rows,
		ColWidths: summaryColWidths(rows),
	}
}

// labelCell builds a leading dimension-name cell.
func labelCell(s string) schema.SummaryCell {
	return schema.SummaryCell{Value: schema.TextValue(s), LabelCol: true}
}

// plainCell builds an unstyled value cell.
func plainCell(v schema.FieldValue) schema.SummaryCell {
	return schema.SummaryCell{Value: v}
}

// headerRow builds one bucket-label row. All of its cells carry the
// header-row flag, the leading cell the label-column flag as well.
func headerRow(label string, buckets ...string) []schema.SummaryCell {
	row := make([]schema.SummaryCell, 0, len(buckets)+1)
	row = append(row, schema.SummaryCell{Value: schema.TextValue(label), HeaderRow: true, LabelCol: true})
	for _, b := range buckets {
		row = append(row, schema.SummaryCell{Value: schema.TextValue(b), HeaderRow: true})
	}
	return row
}

// countRow builds one dimension's count row. problems maps bucket indexes to
// whether a non-zero count there should flag.
func countRow(label string, d schema.Distribution, buckets []string, problems map[int]bool) []schema.SummaryCell {
	row := make([]schema.SummaryCell, 0, len(buckets)+1)
	row = append(row, labelCell(label))
	for i, b := range buckets {
		n := d.Count(b)
		row = append(row, schema.SummaryCell{
			Value:   schema.IntValue(int64(n)),
			Problem: problems[i] && n > 0,
		})
	}
	return row
}

// summaryColWidths sizes each column across the ragged rows.
func summaryColWidths(rows [][]schema.SummaryCell) []int {
	var widths []int
	for _, row := range rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := len(c.Value.String()); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}
	return widths
}
