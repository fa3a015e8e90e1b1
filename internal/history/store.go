package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/pamout/devlog/internal/contract"
	"github.com/pamout/devlog/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names for run history.
const (
	runsTable       = "devlog_runs"
	runRecordsTable = "devlog_run_records"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file location is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables creates the run history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{runRecordsTable, getCreateRunRecordsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for devlog_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_uuid CHAR(36) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_logs INT NOT NULL DEFAULT 0,
				skipped_files INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_uuid TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_logs INT NOT NULL DEFAULT 0,
				skipped_files INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_uuid TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_logs INTEGER NOT NULL DEFAULT 0,
				skipped_files INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRunRecordsQuery returns the CREATE TABLE query for devlog_run_records.
func getCreateRunRecordsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runRecordsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				log_number VARCHAR(32) NOT NULL,
				title VARCHAR(512) NOT NULL,
				log_type VARCHAR(32) NOT NULL,
				log_date VARCHAR(32) NOT NULL,
				author VARCHAR(255) NOT NULL,
				commit_hash VARCHAR(64) NOT NULL,
				files_changed INT NOT NULL,
				lines_added INT NOT NULL,
				lines_deleted INT NOT NULL,
				category VARCHAR(32) NOT NULL,
				size_bucket VARCHAR(16) NOT NULL,
				PRIMARY KEY (run_id, log_number)
			);
		`, quotedTableName)

	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				log_number TEXT NOT NULL,
				title TEXT NOT NULL,
				log_type TEXT NOT NULL,
				log_date TEXT NOT NULL,
				author TEXT NOT NULL,
				commit_hash TEXT NOT NULL,
				files_changed INTEGER NOT NULL,
				lines_added INTEGER NOT NULL,
				lines_deleted INTEGER NOT NULL,
				category TEXT NOT NULL,
				size_bucket TEXT NOT NULL,
				PRIMARY KEY (run_id, log_number)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new build run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	runUUID := uuid.NewString()

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, runUUID, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, runUUID, formatTime(startTime, hs.backend), string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = result.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the build run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalLogs, skippedFiles int) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	startTime, err := hs.getStartTime(runID)
	if err != nil {
		return err
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	var args []any
	switch hs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_logs = $3, skipped_files = $4 WHERE run_id = $5`, quotedTableName)
		args = []any{endTime, durationMs, totalLogs, skippedFiles, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_logs = ?, skipped_files = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, hs.backend), durationMs, totalLogs, skippedFiles, runID}
	}

	if _, err := hs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// getStartTime reads the start time of a run, parsing SQLite text timestamps.
func (hs *HistoryStoreImpl) getStartTime(runID int64) (time.Time, error) {
	quotedTableName := quoteTableName(runsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholder(hs.backend, 1))
	row := hs.db.QueryRow(query, runID)

	if hs.backend == schema.SQLiteBackend {
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return startTime, nil
	}

	var startTime time.Time
	if err := row.Scan(&startTime); err != nil {
		return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	return startTime, nil
}

// RecordSnapshots stores one row per record for the run inside a single transaction.
func (hs *HistoryStoreImpl) RecordSnapshots(runID int64, snapshots []schema.RecordSnapshot) error {
	if hs.backend == schema.NoneBackend || hs.db == nil || len(snapshots) == 0 {
		return nil
	}

	quotedTableName := quoteTableName(runRecordsTable, hs.backend)
	var values string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		values = "($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)"
	default: // SQLite and MySQL
		values = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, log_number, title, log_type, log_date, author, commit_hash,
		                files_changed, lines_added, lines_deleted, category, size_bucket)
		VALUES %s
	`, quotedTableName, values)

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, s := range snapshots {
		if _, err := stmt.Exec(
			runID, s.LogNumber, s.Title, s.Type, s.Date, s.Author, s.Commit,
			s.FilesChanged, s.LinesAdded, s.LinesDeleted, s.Category, s.SizeBucket,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert snapshot for log %s: %w", s.LogNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, hs.backend))
	if err := hs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, hs.backend))
		lastID, lastTime, err := hs.scanIDAndTime(hs.db.QueryRow(lastRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunID = lastID
		status.LastRunTime = lastTime

		oldestRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, hs.backend))
		_, oldestTime, err := hs.scanIDAndTime(hs.db.QueryRow(oldestRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestTime
	}

	for _, table := range []string{runsTable, runRecordsTable} {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		var count int64
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRecordRows = int(status.TableSizes[runRecordsTable])

	return status, nil
}

// scanIDAndTime scans a (run_id, start_time) row for any backend.
func (hs *HistoryStoreImpl) scanIDAndTime(row *sql.Row) (int64, time.Time, error) {
	var id int64
	if hs.backend == schema.SQLiteBackend {
		var ts string
		if err := row.Scan(&id, &ts); err != nil {
			return 0, time.Time{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to parse run time: %w", err)
		}
		return id, t, nil
	}
	var t time.Time
	if err := row.Scan(&id, &t); err != nil {
		return 0, time.Time{}, err
	}
	return id, t, nil
}

// GetAllRuns retrieves all runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, total_logs, skipped_files, config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.RunUUID, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&record.TotalLogs, &record.SkippedFiles, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.RunUUID, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&record.TotalLogs, &record.SkippedFiles, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllSnapshots retrieves all record snapshots from the store.
func (hs *HistoryStoreImpl) GetAllSnapshots() ([]schema.RecordSnapshot, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, log_number, title, log_type, log_date, author, commit_hash,
		files_changed, lines_added, lines_deleted, category, size_bucket
		FROM %s ORDER BY run_id, log_number`, quoteTableName(runRecordsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query record snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RecordSnapshot
	for rows.Next() {
		var s schema.RecordSnapshot
		if err := rows.Scan(&s.RunID, &s.LogNumber, &s.Title, &s.Type, &s.Date, &s.Author, &s.Commit,
			&s.FilesChanged, &s.LinesAdded, &s.LinesDeleted, &s.Category, &s.SizeBucket); err != nil {
			return nil, fmt.Errorf("failed to scan record snapshot: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record snapshots: %w", err)
	}
	return results, nil
}

// quoteTableName quotes a table name for the backend's SQL dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholder returns the n-th bind parameter for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
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
