package outwriter

import (
	"fmt"
	"os"

	"github.com/sonarsheet/sonarsheet/schema"

	"github.com/parquet-go/parquet-go"
)

// ProjectMetricsRow is the typed parquet shape of one project record. All
// metric columns are nullable; a missing measure writes as null rather than
// a sentinel string.
type ProjectMetricsRow struct {
	ProjectName string `parquet:"project_name,snappy"`
	ProjectKey  string `parquet:"project_key,snappy"`

	AlertStatus            *string  `parquet:"alert_status,optional,snappy"`
	Ncloc                  *int64   `parquet:"ncloc,optional,snappy"`
	Bugs                   *int64   `parquet:"bugs,optional,snappy"`
	ReliabilityRating      *int64   `parquet:"reliability_rating,optional,snappy"`
	Vulnerabilities        *int64   `parquet:"vulnerabilities,optional,snappy"`
	SecurityRating         *int64   `parquet:"security_rating,optional,snappy"`
	SecurityReviewRating   *int64   `parquet:"security_review_rating,optional,snappy"`
	CodeSmells             *int64   `parquet:"code_smells,optional,snappy"`
	SqaleRating            *int64   `parquet:"sqale_rating,optional,snappy"`
	DuplicatedLinesDensity *float64 `parquet:"duplicated_lines_density,optional,snappy"`
	Coverage               *float64 `parquet:"coverage,optional,snappy"`

	ReliabilityLetter     *string `parquet:"reliability_rating_letter,optional,snappy"`
	SecurityLetter        *string `parquet:"security_rating_letter,optional,snappy"`
	MaintainabilityLetter *string `parquet:"maintainability_rating_letter,optional,snappy"`
	SecurityHotspotLetter *string `parquet:"security_hotspot_rating_letter,optional,snappy"`

	LastAnalysisDate *string `parquet:"last_analysis_date,optional,snappy"`
	NeedsAttention   bool    `parquet:"needs_attention,snappy"`
}

// ProjectListingRow is the typed parquet shape of one project listing entry.
type ProjectListingRow struct {
	ProjectKey  string `parquet:"project_key,snappy"`
	ProjectName string `parquet:"project_name,snappy"`
}

// writeDetailParquet converts project records to typed rows and writes them.
func writeDetailParquet(records []schema.ProjectRecord, outputPath string) error {
	rows := make([]ProjectMetricsRow, len(records))
	for i, r := range records {
		rows[i] = convertRecord(r)
	}
	return writeParquetFile(rows, outputPath)
}

// writeProjectsParquet writes the project listing as typed rows.
func writeProjectsParquet(projects []schema.Project, outputPath string) error {
	rows := make([]ProjectListingRow, len(projects))
	for i, p := range projects {
		rows[i] = ProjectListingRow{ProjectKey: p.Key, ProjectName: p.Name}
	}
	return writeParquetFile(rows, outputPath)
}

// convertRecord maps one project record onto the typed parquet row.
func convertRecord(r schema.ProjectRecord) ProjectMetricsRow {
	row := ProjectMetricsRow{
		ProjectName: r.Name,
		ProjectKey:  r.Key,

		AlertStatus:            textColumn(r.Field(schema.MetricKeys, "alert_status")),
		Ncloc:                  intColumn(r.Field(schema.MetricKeys, "ncloc")),
		Bugs:                   intColumn(r.Field(schema.MetricKeys, "bugs")),
		ReliabilityRating:      intColumn(r.Field(schema.MetricKeys, "reliability_rating")),
		Vulnerabilities:        intColumn(r.Field(schema.MetricKeys, "vulnerabilities")),
		SecurityRating:         intColumn(r.Field(schema.MetricKeys, "security_rating")),
		SecurityReviewRating:   intColumn(r.Field(schema.MetricKeys, "security_review_rating")),
		CodeSmells:             intColumn(r.Field(schema.MetricKeys, "code_smells")),
		SqaleRating:            intColumn(r.Field(schema.MetricKeys, "sqale_rating")),
		DuplicatedLinesDensity: floatColumn(r.Field(schema.MetricKeys, "duplicated_lines_density")),
		Coverage:               floatColumn(r.Field(schema.MetricKeys, "coverage")),

		ReliabilityLetter:     letterColumn(r.Ratings.Reliability),
		SecurityLetter:        letterColumn(r.Ratings.Security),
		MaintainabilityLetter: letterColumn(r.Ratings.Maintainability),
		SecurityHotspotLetter: letterColumn(r.Ratings.SecurityHotspot),

		NeedsAttention: r.NeedsAttention(),
	}
	if r.LastAnalysis != schema.NotAvailable {
		last := r.LastAnalysis
		row.LastAnalysisDate = &last
	}
	return row
}

// textColumn returns the text value, or nil when unavailable.
func textColumn(v schema.FieldValue) *string {
	if v.IsUnavailable() {
		return nil
	}
	s := v.String()
	return &s
}

// intColumn returns the integer value, or nil when unavailable.
func intColumn(v schema.FieldValue) *int64 {
	if v.Kind != schema.IntKind {
		return nil
	}
	n := v.Int
	return &n
}

// floatColumn returns the float value, or nil when unavailable.
func floatColumn(v schema.FieldValue) *float64 {
	if v.Kind != schema.FloatKind {
		return nil
	}
	f := v.Float
	return &f
}

// letterColumn returns the letter grade, or nil for the N/A bucket.
func letterColumn(letter string) *string {
	if letter == schema.NotAvailable {
		return nil
	}
	return &letter
}

// writeParquetFile writes typed rows to a Parquet file. The schema is
// inferred from the row struct tags.
func writeParquetFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
