package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"
)

// fixtureDetail builds a two-row detail table with the canonical header.
func fixtureDetail() (schema.DetailTable, []schema.ProjectRecord) {
	header := []string{"Project Name", "Project Key"}
	header = append(header, schema.MetricKeys...)
	header = append(header, schema.RatingHeaders...)
	header = append(header, schema.LastAnalysisHeader)

	healthy := schema.ProjectRecord{
		Name: "Widget",
		Key:  "org_widget",
		Fields: []schema.FieldValue{
			schema.TextValue("OK"),
			schema.IntValue(1000),
			schema.IntValue(2),
			schema.IntValue(1),
			schema.IntValue(0),
			schema.IntValue(1),
			schema.IntValue(1),
			schema.IntValue(5),
			schema.IntValue(1),
			schema.FloatValue(2.5, 1),
			schema.FloatValue(81.3, 1),
		},
		Ratings:      schema.RatingSet{Reliability: "A", Security: "A", Maintainability: "A", SecurityHotspot: "A"},
		LastAnalysis: "2026-08-01",
	}

	dead := schema.ProjectRecord{
		Name:         "Zombie",
		Key:          "org_zombie",
		Fields:       make([]schema.FieldValue, len(schema.MetricKeys)),
		Ratings:      schema.RatingSet{Reliability: schema.NotAvailable, Security: schema.NotAvailable, Maintainability: schema.NotAvailable, SecurityHotspot: schema.NotAvailable},
		LastAnalysis: schema.NotAvailable,
	}
	for i := range dead.Fields {
		dead.Fields[i] = schema.Unavailable()
	}

	rowFor := func(r schema.ProjectRecord) schema.DetailRow {
		cells := []schema.FieldValue{schema.TextValue(r.Name), schema.TextValue(r.Key)}
		cells = append(cells, r.Fields...)
		cells = append(cells,
			schema.TextValue(r.Ratings.Reliability),
			schema.TextValue(r.Ratings.Security),
			schema.TextValue(r.Ratings.Maintainability),
			schema.TextValue(r.Ratings.SecurityHotspot),
			schema.TextValue(r.LastAnalysis),
		)
		return schema.DetailRow{Cells: cells, NeedsAttention: r.NeedsAttention()}
	}

	table := schema.DetailTable{
		Header:    header,
		Rows:      []schema.DetailRow{rowFor(healthy), rowFor(dead)},
		ColWidths: make([]int, len(header)),
	}
	return table, []schema.ProjectRecord{healthy, dead}
}

func outputConfig(mode schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Output:     mode,
		OutputFile: outputFile,
		Workers:    2,
		Width:      120,
		MetricKeys: schema.MetricKeys,
	}
}

func TestPrintDetailCSV(t *testing.T) {
	table, records := fixtureDetail()
	path := filepath.Join(t.TempDir(), "out.csv")

	err := PrintDetail(table, records, outputConfig(schema.CSVOut, path), time.Second)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, table.Header, rows[0])
	assert.Equal(t, "Widget", rows[1][0])
	assert.Equal(t, "1000", rows[1][3])
	assert.Equal(t, "81.3", rows[1][12])
	assert.Equal(t, "N/A", rows[2][3])
}

func TestPrintDetailJSON(t *testing.T) {
	table, records := fixtureDetail()
	path := filepath.Join(t.TempDir(), "out.json")

	err := PrintDetail(table, records, outputConfig(schema.JSONOut, path), time.Second)
	require.NoError(t, err)

	blob, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []jsonDetailRow
	require.NoError(t, json.Unmarshal(blob, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "Widget", rows[0].ProjectName)
	assert.Equal(t, "org_widget", rows[0].ProjectKey)
	assert.Equal(t, float64(1000), rows[0].Metrics["ncloc"]) // JSON numbers decode as float64
	assert.Equal(t, "A", rows[0].Ratings["Reliability Rating (A-E)"])
	assert.False(t, rows[0].NeedsAttention)

	assert.True(t, rows[1].NeedsAttention)
	assert.Equal(t, "N/A", rows[1].LastAnalysisDate)
}

func TestPrintDetailTable(t *testing.T) {
	table, records := fixtureDetail()
	path := filepath.Join(t.TempDir(), "out.txt")

	err := PrintDetail(table, records, outputConfig(schema.TextOut, path), time.Second)
	require.NoError(t, err)

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(blob)

	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "org_zombie")
	assert.Contains(t, out, "Showing 2 projects (1 with no usable metrics)")
}

func TestPrintDetailParquetRoundTrip(t *testing.T) {
	table, records := fixtureDetail()
	path := filepath.Join(t.TempDir(), "out.parquet")

	err := PrintDetail(table, records, outputConfig(schema.ParquetOut, path), time.Second)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestConvertRecord(t *testing.T) {
	_, records := fixtureDetail()

	healthy := convertRecord(records[0])
	require.NotNil(t, healthy.Ncloc)
	assert.Equal(t, int64(1000), *healthy.Ncloc)
	require.NotNil(t, healthy.Coverage)
	assert.Equal(t, 81.3, *healthy.Coverage)
	require.NotNil(t, healthy.ReliabilityLetter)
	assert.Equal(t, "A", *healthy.ReliabilityLetter)
	require.NotNil(t, healthy.LastAnalysisDate)
	assert.False(t, healthy.NeedsAttention)

	dead := convertRecord(records[1])
	assert.Nil(t, dead.AlertStatus)
	assert.Nil(t, dead.Ncloc)
	assert.Nil(t, dead.Coverage)
	assert.Nil(t, dead.ReliabilityLetter)
	assert.Nil(t, dead.LastAnalysisDate)
	assert.True(t, dead.NeedsAttention)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", contract.TruncateName("short", 20))
	got := contract.TruncateName(strings.Repeat("x", 30), 10)
	assert.Equal(t, "xxxxxxx...", got)
	assert.Len(t, got, 10)
}
