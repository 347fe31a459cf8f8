package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarsheet/sonarsheet/schema"
)

// validInput returns a raw input that passes validation, for tests to mutate.
func validInput() ConfigRawInput {
	return ConfigRawInput{
		ServerURL:      "https://sonarcloud.io",
		Token:          "squ_abc123",
		OrgKey:         "my-org",
		OrgName:        "My Organization",
		Workers:        4,
		Timeout:        30,
		Output:         "text",
		Width:          0,
		HistoryBackend: "none",
		HistoryRows:    10,
		Color:          "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("valid input populates config", func(t *testing.T) {
		var cfg Config
		input := validInput()

		err := ProcessAndValidate(&cfg, &input)
		require.NoError(t, err)

		assert.Equal(t, "https://sonarcloud.io", cfg.ServerURL)
		assert.Equal(t, "my-org", cfg.OrgKey)
		assert.Equal(t, "My Organization", cfg.OrgName)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
		assert.True(t, cfg.UseColors)
		assert.Equal(t, schema.MetricKeys, cfg.MetricKeys)
	})

	t.Run("trailing slash is trimmed from server URL", func(t *testing.T) {
		var cfg Config
		input := validInput()
		input.ServerURL = "https://sonarcloud.io/"

		require.NoError(t, ProcessAndValidate(&cfg, &input))
		assert.Equal(t, "https://sonarcloud.io", cfg.ServerURL)
	})

	t.Run("org name defaults to org key", func(t *testing.T) {
		var cfg Config
		input := validInput()
		input.OrgName = ""

		require.NoError(t, ProcessAndValidate(&cfg, &input))
		assert.Equal(t, "my-org", cfg.OrgName)
	})

	t.Run("output mode is case-insensitive", func(t *testing.T) {
		var cfg Config
		input := validInput()
		input.Output = "JSON"

		require.NoError(t, ProcessAndValidate(&cfg, &input))
		assert.Equal(t, schema.JSONOut, cfg.Output)
	})

	tests := []struct {
		name    string
		mutate  func(*ConfigRawInput)
		wantErr string
	}{
		{
			name:    "missing server URL",
			mutate:  func(in *ConfigRawInput) { in.ServerURL = "" },
			wantErr: "server URL is required",
		},
		{
			name:    "relative server URL",
			mutate:  func(in *ConfigRawInput) { in.ServerURL = "sonarcloud.io" },
			wantErr: "invalid server URL",
		},
		{
			name:    "missing org key",
			mutate:  func(in *ConfigRawInput) { in.OrgKey = "  " },
			wantErr: "organization key is required",
		},
		{
			name:    "zero workers",
			mutate:  func(in *ConfigRawInput) { in.Workers = 0 },
			wantErr: "workers must be between",
		},
		{
			name:    "too many workers",
			mutate:  func(in *ConfigRawInput) { in.Workers = MaxWorkers + 1 },
			wantErr: "workers must be between",
		},
		{
			name:    "zero timeout",
			mutate:  func(in *ConfigRawInput) { in.Timeout = 0 },
			wantErr: "timeout must be greater than 0",
		},
		{
			name:    "bogus output mode",
			mutate:  func(in *ConfigRawInput) { in.Output = "yaml" },
			wantErr: "invalid output format",
		},
		{
			name: "parquet requires output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = ""
			},
			wantErr: "--output-file is required for parquet",
		},
		{
			name:    "bogus color flag",
			mutate:  func(in *ConfigRawInput) { in.Color = "maybe" },
			wantErr: "invalid --color value",
		},
		{
			name:    "bogus history backend",
			mutate:  func(in *ConfigRawInput) { in.HistoryBackend = "oracle" },
			wantErr: "invalid history backend",
		},
		{
			name:    "zero history rows",
			mutate:  func(in *ConfigRawInput) { in.HistoryRows = 0 },
			wantErr: "history-rows must be between",
		},
		{
			name: "mysql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "mysql"
				in.HistoryDBConnect = ""
			},
			wantErr: "history-db-connect is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			input := validInput()
			tt.mutate(&input)

			err := ProcessAndValidate(&cfg, &input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite needs no string", schema.SQLiteBackend, "", false},
		{"none needs no string", schema.NoneBackend, "", false},
		{"valid mysql", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/sonarsheet", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/sonarsheet", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"valid postgresql", schema.PostgreSQLBackend, "host=localhost user=me dbname=sonarsheet", false},
		{"postgresql missing host", schema.PostgreSQLBackend, "user=me dbname=sonarsheet", true},
		{"postgresql missing dbname", schema.PostgreSQLBackend, "host=localhost user=me", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMetricKeysJoined(t *testing.T) {
	cfg := Config{MetricKeys: []string{"bugs", "coverage"}}
	assert.Equal(t, "bugs,coverage", cfg.MetricKeysJoined())
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
