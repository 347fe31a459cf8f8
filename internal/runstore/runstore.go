// Package runstore persists report-run history in SQLite, MySQL or PostgreSQL.
package runstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sonarsheet/sonarsheet/internal/contract"
	"github.com/sonarsheet/sonarsheet/schema"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// runsTable is the table holding one row per report run.
const runsTable = "sonarsheet_runs"

// Store implements the RunStore interface over database/sql.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &Store{} // Compile-time check

// NewStore creates a run store for the specified backend. NoneBackend yields
// a connected-but-inert store so callers need no special casing.
func NewStore(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	if backend == schema.NoneBackend {
		return &Store{db: nil, backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if _, err := db.Exec(createRunsTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &Store{db: db, backend: backend}, nil
}

// openDatabase opens the database/sql handle for a backend. SQLite falls back
// to the default history path for an empty connection string. The handle is
// opened, not pinged; callers decide when to verify connectivity.
func openDatabase(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... user=... dbname=...", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// createRunsTableQuery returns the backend-specific CREATE TABLE query.
func createRunsTableQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				org_key VARCHAR(255) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				total_projects INT,
				config_params TEXT
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				org_key TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				total_projects INT,
				config_params TEXT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				org_key TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_projects INTEGER,
				config_params TEXT
			);
		`, quoted)
	}
}

// BeginRun creates a new run and returns its unique ID.
func (s *Store) BeginRun(startTime time.Time, orgKey string, params map[string]any) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quoted := quoteTableName(runsTable, s.backend)

	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (org_key, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quoted)
		err = s.db.QueryRow(query, orgKey, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (org_key, start_time, config_params) VALUES (?, ?, ?)`, quoted)
		var result sql.Result
		result, err = s.db.Exec(query, orgKey, formatTime(startTime, s.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (s *Store) EndRun(runID int64, endTime time.Time, totalProjects int) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	quoted := quoteTableName(runsTable, s.backend)

	startTime, err := s.runStartTime(runID)
	if err != nil {
		return err
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var query string
	var args []any
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_projects = $3 WHERE run_id = $4`, quoted)
		args = []any{endTime, durationMs, totalProjects, runID}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_projects = ? WHERE run_id = ?`, quoted)
		args = []any{formatTime(endTime, s.backend), durationMs, totalProjects, runID}
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// runStartTime loads the stored start time for a run.
func (s *Store) runStartTime(runID int64) (time.Time, error) {
	quoted := quoteTableName(runsTable, s.backend)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quoted)
	default:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quoted)
	}

	row := s.db.QueryRow(query, runID)

	// SQLite stores timestamps as RFC3339 text.
	if s.backend == schema.SQLiteBackend {
		var str string
		if err := row.Scan(&str); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return t, nil
	}

	var t time.Time
	if err := row.Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	return t, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]schema.RunRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quoted := quoteTableName(runsTable, s.backend)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT run_id, org_key, start_time, end_time, run_duration_ms, total_projects, config_params
			FROM %s ORDER BY run_id DESC LIMIT $1`, quoted)
	default:
		query = fmt.Sprintf(`SELECT run_id, org_key, start_time, end_time, run_duration_ms, total_projects, config_params
			FROM %s ORDER BY run_id DESC LIMIT ?`, quoted)
	}

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var totalProjects sql.NullInt64

		if s.backend == schema.SQLiteBackend {
			var startStr string
			var endStr *string
			if err := rows.Scan(&record.RunID, &record.OrgKey, &startStr, &endStr, &record.DurationMs, &totalProjects, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			record.StartTime, err = time.Parse(time.RFC3339Nano, startStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		} else {
			if err := rows.Scan(&record.RunID, &record.OrgKey, &record.StartTime, &record.EndTime, &record.DurationMs, &totalProjects, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		if totalProjects.Valid {
			record.TotalProjects = int(totalProjects.Int64)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the run store.
func (s *Store) GetStatus() (schema.RunStoreStatus, error) {
	status := schema.RunStoreStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	quoted := quoteTableName(runsTable, s.backend)

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	last, err := s.scanRunTime(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoted), &status.LastRunID)
	if err != nil {
		return status, fmt.Errorf("failed to get last run info: %w", err)
	}
	status.LastRunTime = last

	var oldestID int64
	oldest, err := s.scanRunTime(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoted), &oldestID)
	if err != nil {
		return status, fmt.Errorf("failed to get oldest run info: %w", err)
	}
	status.OldestRunTime = oldest

	return status, nil
}

// scanRunTime reads a (run_id, start_time) pair, handling the SQLite text format.
func (s *Store) scanRunTime(query string, runID *int64) (time.Time, error) {
	row := s.db.QueryRow(query)

	if s.backend == schema.SQLiteBackend {
		var str string
		if err := row.Scan(runID, &str); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, str)
	}

	var t time.Time
	if err := row.Scan(runID, &t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Clear removes all recorded runs.
func (s *Store) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	quoted := quoteTableName(runsTable, s.backend)
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", quoted)); err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// quoteTableName quotes a table identifier for the backend's dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
