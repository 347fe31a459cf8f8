package contract

import (
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/sonarsheet/sonarsheet/schema"
)

// Default values for configuration.
const (
	DefaultServerURL   = "https://sonarcloud.io"
	DefaultTimeoutSecs = 30
	MaxWorkers         = 64
	DefaultHistoryRows = 10
	MaxHistoryRows     = 1000
)

// DefaultWorkers is the default number of concurrent fetch workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DefaultWorkbookFile is the workbook path used by the export command when
// none is given.
const DefaultWorkbookFile = "SonarMetrics.xlsx"

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	ServerURL string
	Token     string
	OrgKey    string
	OrgName   string

	MetricKeys []string

	Workers int
	Timeout time.Duration

	Output       schema.OutputMode
	OutputFile   string
	WorkbookFile string
	Width        int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	HistoryRows      int

	UseColors bool // Enable colored highlights in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	ServerURL string `mapstructure:"server-url"`
	Token     string `mapstructure:"token"`
	OrgKey    string `mapstructure:"org-key"`
	OrgName   string `mapstructure:"org-name"`

	Workers int `mapstructure:"workers"`
	Timeout int `mapstructure:"timeout"`

	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	WorkbookFile string `mapstructure:"workbook-file"`
	Width        int    `mapstructure:"width"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	HistoryRows      int    `mapstructure:"history-rows"`

	Color string `mapstructure:"color"`
}

// MetricKeysJoined returns the metric keys comma-joined, the form the
// metrics source API expects.
func (c *Config) MetricKeysJoined() string {
	return strings.Join(c.MetricKeys, ",")
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateConnectionInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateHistoryInputs(cfg, input); err != nil {
		return err
	}

	// The metric-key schema is fixed; the record builder, aggregation and
	// workbook layout all key off this order.
	cfg.MetricKeys = schema.MetricKeys

	return nil
}

// validateConnectionInputs validates server, organization and credential fields.
func validateConnectionInputs(cfg *Config, input *ConfigRawInput) error {
	serverURL := strings.TrimRight(strings.TrimSpace(input.ServerURL), "/")
	if serverURL == "" {
		return fmt.Errorf("server URL is required (set --server-url or SONARSHEET_SERVER_URL)")
	}
	parsed, err := url.Parse(serverURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected an absolute http(s) URL", input.ServerURL)
	}
	cfg.ServerURL = serverURL

	cfg.OrgKey = strings.TrimSpace(input.OrgKey)
	if cfg.OrgKey == "" {
		return fmt.Errorf("organization key is required (set --org-key or SONARSHEET_ORG_KEY)")
	}

	// Display name defaults to the key when not given.
	cfg.OrgName = strings.TrimSpace(input.OrgName)
	if cfg.OrgName == "" {
		cfg.OrgName = cfg.OrgKey
	}

	cfg.Token = strings.TrimSpace(input.Token)

	return nil
}

// validateSimpleInputs processes and validates all output-related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.WorkbookFile = input.WorkbookFile
	cfg.Width = input.Width

	// --- 1. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Timeout Validation ---
	if input.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0 seconds (received %d)", input.Timeout)
	}
	cfg.Timeout = time.Duration(input.Timeout) * time.Second

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	// --- 4. Color Flag ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// validateHistoryInputs validates the run-history backend configuration.
func validateHistoryInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	if input.HistoryRows <= 0 || input.HistoryRows > MaxHistoryRows {
		return fmt.Errorf("history-rows must be between 1 and %d (received %d)", MaxHistoryRows, input.HistoryRows)
	}
	cfg.HistoryRows = input.HistoryRows

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
