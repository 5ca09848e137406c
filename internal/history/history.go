// Package history persists a session's calculator transcript (expression,
// result, timestamp) so cmd/arbcalc can recall and replay past entries.
// This is new relative to the core arithmetic packages — they are
// documented as purely in-memory — but grounded directly on the teacher's
// internal/database.DBManager (internal/database/db_manager.go): a thin
// wrapper over database/sql that picks a driver by DSN scheme and exposes a
// handful of typed operations instead of the manager's general
// connection-by-ID registry, since arbCalc only ever needs one open store
// at a time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Entry is one recorded calculator transcript line.
type Entry struct {
	ID         string
	Expression string
	Result     string
	When       civil.DateTime
}

// Store is an open history database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open parses dsn's scheme to pick a driver the way the teacher's
// DBManager.Connect maps its dbType string to a driver name, then opens and
// migrates the store:
//
//	sqlite:PATH        -> modernc.org/sqlite  (pure Go, default)
//	postgres://...     -> github.com/lib/pq
//	mysql://...        -> github.com/go-sql-driver/mysql
//	sqlserver://...    -> github.com/denisenkom/go-mssqldb
func Open(dsn string) (*Store, error) {
	driver, connStr, err := resolveDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func resolveDSN(dsn string) (driver, connStr string, err error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite:"), nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	case strings.HasPrefix(dsn, "mysql://"):
		return "mysql", strings.TrimPrefix(dsn, "mysql://"), nil
	case strings.HasPrefix(dsn, "sqlserver://"):
		return "sqlserver", dsn, nil
	default:
		// No recognized scheme: treat the whole string as a sqlite file path,
		// matching a bare filename being the common case for a desktop
		// calculator's history file.
		return "sqlite", dsn, nil
	}
}

func (s *Store) migrate() error {
	var ddl string
	switch s.driver {
	case "sqlite":
		ddl = `CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			expression TEXT NOT NULL,
			result TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		)`
	default:
		ddl = `CREATE TABLE IF NOT EXISTS history (
			id VARCHAR(36) PRIMARY KEY,
			expression TEXT NOT NULL,
			result TEXT NOT NULL,
			recorded_at VARCHAR(32) NOT NULL
		)`
	}
	_, err := s.db.Exec(ddl)
	return err
}

// Record appends a new entry and returns its generated ID.
func (s *Store) Record(ctx context.Context, expression, result string) (string, error) {
	id := uuid.NewString()
	when := civil.DateTimeOf(time.Now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (id, expression, result, recorded_at) VALUES (?, ?, ?, ?)`,
		id, expression, result, when.String())
	if err != nil {
		return "", fmt.Errorf("recording history entry: %w", err)
	}
	return id, nil
}

// Recent returns the most recent limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expression, result, recorded_at FROM history ORDER BY recorded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var when string
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &when); err != nil {
			return nil, err
		}
		parsed, err := civil.ParseDateTime(when)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded timestamp: %w", err)
		}
		e.When = parsed
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stat reports the number of recorded entries.
func (s *Store) Stat(ctx context.Context) (count int64, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }
