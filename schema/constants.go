package schema

// Custom string types for type safety.
type (
	// FieldType declares how a raw metric value is normalized.
	FieldType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All field types supported.
const (
	IntField   FieldType = "int"
	FloatField FieldType = "float"
	TextField  FieldType = "text" // default: raw passthrough
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// NotAvailable is the sentinel rendered for missing or uncoercible values.
const NotAvailable = "N/A"

// FloatPrecision is the decimal precision applied to float metrics.
const FloatPrecision = 1

// Quality gate statuses emitted by the metrics source. Anything else counts
// as not computed.
const (
	GatePassed = "OK"
	GateFailed = "ERROR"
)

// MetricKeys is the canonical ordered metric-key schema requested from the
// metrics source. Detail columns and record fields follow this order.
var MetricKeys = []string{
	"alert_status",
	"ncloc",
	"bugs",
	"reliability_rating",
	"vulnerabilities",
	"security_rating",
	"security_review_rating",
	"code_smells",
	"sqale_rating",
	"duplicated_lines_density",
	"coverage",
}

// fieldTypes maps metric keys to their normalization type. Keys not listed
// are passed through as text.
var fieldTypes = map[string]FieldType{
	"ncloc":                    IntField,
	"bugs":                     IntField,
	"reliability_rating":       IntField,
	"vulnerabilities":          IntField,
	"security_rating":          IntField,
	"security_review_rating":   IntField,
	"code_smells":              IntField,
	"sqale_rating":             IntField,
	"duplicated_lines_density": FloatField,
	"coverage":                 FloatField,
}

// FieldTypeFor returns the declared normalization type for a metric key.
func FieldTypeFor(metricKey string) FieldType {
	if ft, ok := fieldTypes[metricKey]; ok {
		return ft
	}
	return TextField
}

// Rating column headers appended after the raw metric columns.
var RatingHeaders = []string{
	"Reliability Rating (A-E)",
	"Security Rating (A-E)",
	"Maintainability Rating (A-E)",
	"Security Hotspot Rating (A-E)",
}

// LastAnalysisHeader is the trailing detail column.
const LastAnalysisHeader = "last_analysis_date"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
