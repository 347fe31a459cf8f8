package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarsheet/sonarsheet/schema"
)

// fixtureSummary builds a cut-down grid: identity rows plus one gate block.
func fixtureSummary() (schema.SummaryTable, schema.SummaryReport) {
	report := schema.SummaryReport{
		OrgName:       "Acme",
		TotalProjects: 3,
		QualityGate:   schema.NewDistribution(schema.GateLabels...),
	}
	report.QualityGate.Add(schema.GatePassedLabel)
	report.QualityGate.Add(schema.GatePassedLabel)
	report.QualityGate.Add(schema.GateFailedLabel)

	table := schema.SummaryTable{
		Rows: [][]schema.SummaryCell{
			{
				{Value: schema.TextValue("Application Name:"), LabelCol: true},
				{Value: schema.TextValue("Acme")},
			},
			{
				{Value: schema.TextValue(""), HeaderRow: true, LabelCol: true},
				{Value: schema.TextValue("Passed"), HeaderRow: true},
				{Value: schema.TextValue("Failed"), HeaderRow: true},
			},
			{
				{Value: schema.TextValue("Quality Gate"), LabelCol: true},
				{Value: schema.IntValue(2)},
				{Value: schema.IntValue(1), Problem: true},
			},
		},
		ColWidths: []int{19, 8, 8},
	}
	return table, report
}

func TestWriteSummaryGrid(t *testing.T) {
	table, _ := fixtureSummary()
	var buf bytes.Buffer

	err := writeSummaryGrid(&buf, table, outputConfig(schema.TextOut, ""))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "Application Name:")
	assert.Contains(t, string(lines[1]), "Passed")
	assert.Contains(t, string(lines[2]), "Quality Gate")

	// Columns align on the configured widths.
	assert.Equal(t, byte('P'), lines[1][19])
}

func TestPrintSummaryCSV(t *testing.T) {
	table, report := fixtureSummary()
	path := filepath.Join(t.TempDir(), "summary.csv")

	err := PrintSummary(table, report, outputConfig(schema.CSVOut, path))
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Quality Gate", "2", "1"}, rows[2])
}

func TestPrintSummaryJSON(t *testing.T) {
	table, report := fixtureSummary()
	path := filepath.Join(t.TempDir(), "summary.json")

	err := PrintSummary(table, report, outputConfig(schema.JSONOut, path))
	require.NoError(t, err)

	blob, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded schema.SummaryReport
	require.NoError(t, json.Unmarshal(blob, &decoded))
	assert.Equal(t, "Acme", decoded.OrgName)
	assert.Equal(t, 3, decoded.TotalProjects)
	assert.Equal(t, 2, decoded.QualityGate.Count(schema.GatePassedLabel))
}

func TestPrintSummaryAppendKeepsDetailSection(t *testing.T) {
	detail, records := fixtureDetail()
	table, report := fixtureSummary()
	path := filepath.Join(t.TempDir(), "report.txt")
	cfg := outputConfig(schema.TextOut, path)

	// The report command writes the detail table and the summary grid into the
	// same file; the second write must not truncate the first.
	require.NoError(t, PrintDetail(detail, records, cfg, time.Second))
	require.NoError(t, PrintSummaryAppend(table, report, cfg))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(blob)

	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "Quality Gate")
	assert.Less(t, strings.Index(out, "Widget"), strings.Index(out, "Quality Gate"))
}

func TestPrintSummaryAppendCSV(t *testing.T) {
	detail, records := fixtureDetail()
	table, report := fixtureSummary()
	path := filepath.Join(t.TempDir(), "report.csv")
	cfg := outputConfig(schema.CSVOut, path)

	require.NoError(t, PrintDetail(detail, records, cfg, time.Second))
	require.NoError(t, PrintSummaryAppend(table, report, cfg))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // detail and summary rows differ in width
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	// Header + two detail rows + three summary rows.
	require.Len(t, rows, 6)
	assert.Equal(t, "Widget", rows[1][0])
	assert.Equal(t, []string{"Quality Gate", "2", "1"}, rows[5])
}

func TestPrintSummaryParquetSkips(t *testing.T) {
	table, report := fixtureSummary()

	// Parquet covers the detail table only; the summary is skipped, not fatal.
	err := PrintSummary(table, report, outputConfig(schema.ParquetOut, ""))
	assert.NoError(t, err)
}
