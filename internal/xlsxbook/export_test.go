package xlsxbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sonarsheet/sonarsheet/schema"
)

func fixtureDetail() schema.DetailTable {
	header := []string{"Project Name", "Project Key", "bugs", "coverage", "Reliability Rating (A-E)", "last_analysis_date"}
	row := func(name, key string, bugs, coverage schema.FieldValue, letter, last string) schema.DetailRow {
		cells := []schema.FieldValue{
			schema.TextValue(name), schema.TextValue(key),
			bugs, coverage,
			schema.TextValue(letter), schema.TextValue(last),
		}
		attention := true
		for _, c := range cells[2 : len(cells)-1] {
			if c.String() != schema.NotAvailable {
				attention = false
			}
		}
		return schema.DetailRow{Cells: cells, NeedsAttention: attention}
	}

	return schema.DetailTable{
		Header: header,
		Rows: []schema.DetailRow{
			row("Widget", "org_widget", schema.IntValue(3), schema.FloatValue(81.3, 1), "A", "2026-08-01"),
			row("Zombie", "org_zombie", schema.Unavailable(), schema.Unavailable(), schema.NotAvailable, schema.NotAvailable),
		},
		ColWidths: []int{14, 14, 8, 10, 12, 20},
	}
}

func fixtureSummary() schema.SummaryTable {
	rows := [][]schema.SummaryCell{
		{{Value: schema.TextValue("Application Name:"), LabelCol: true}, {Value: schema.TextValue("Acme")}},
		{{Value: schema.TextValue("Total Repos:"), LabelCol: true}, {Value: schema.IntValue(2)}},
		{
			{Value: schema.TextValue(""), HeaderRow: true, LabelCol: true},
			{Value: schema.TextValue("Passed"), HeaderRow: true},
			{Value: schema.TextValue("Failed"), HeaderRow: true},
			{Value: schema.TextValue("Not computed"), HeaderRow: true},
		},
		{
			{Value: schema.TextValue("Quality Gate"), LabelCol: true},
			{Value: schema.IntValue(1)},
			{Value: schema.IntValue(1), Problem: true},
			{Value: schema.IntValue(0)},
		},
	}
	return schema.SummaryTable{Rows: rows, ColWidths: []int{19, 8, 8, 14}}
}

func TestExportRoundTrip(t *testing.T) {
	blob, err := Export(fixtureDetail(), fixtureSummary())
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, []string{MetricsSheet, SummarySheet}, f.GetSheetList())

	// Detail sheet: header and typed cells.
	got, err := f.GetCellValue(MetricsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Project Name", got)

	got, err = f.GetCellValue(MetricsSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	got, err = f.GetCellValue(MetricsSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "81.3", got)

	// Unavailable values stay visible as the sentinel.
	got, err = f.GetCellValue(MetricsSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, schema.NotAvailable, got)

	// Summary sheet: identity rows and counts.
	got, err = f.GetCellValue(SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Application Name:", got)

	got, err = f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	got, err = f.GetCellValue(SummarySheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestExportEmptyDetail(t *testing.T) {
	detail := schema.DetailTable{
		Header:    []string{"Project Name", "Project Key"},
		ColWidths: []int{14, 14},
	}
	summary := fixtureSummary()

	// No data rows means no table range, but the export still succeeds.
	blob, err := Export(detail, summary)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)
}
