package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type DB struct {
	conn   *sql.DB
	dbType string // "postgres" or "sqlite3"
}

// Connect opens the store named by dbURL. postgres:// and postgresql:// URLs
// use lib/pq; sqlite3://path, sqlite://path and :memory: use go-sqlite3.
func Connect(dbURL string) (*DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	var driverName, dsn string
	switch {
	case strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://"):
		driverName, dsn = "postgres", dbURL
	case strings.HasPrefix(dbURL, "sqlite3://"):
		driverName, dsn = "sqlite3", strings.TrimPrefix(dbURL, "sqlite3://")
	case strings.HasPrefix(dbURL, "sqlite://"):
		driverName, dsn = "sqlite3", strings.TrimPrefix(dbURL, "sqlite://")
	case dbURL == ":memory:":
		driverName, dsn = "sqlite3", dbURL
	default:
		return nil, fmt.Errorf("unsupported database type for URL")
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if driverName == "sqlite3" {
		conn.SetMaxOpenConns(1)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[INFO] Successfully connected to %s database.", driverName)
	return &DB{conn: conn, dbType: driverName}, nil
}

// CreateTables creates the runs, daily_results and achievements tables.
func (db *DB) CreateTables() error {
	var queries []string

	if db.dbType == "postgres" {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS runs (
				id VARCHAR(36) PRIMARY KEY,
				player VARCHAR(50) NOT NULL,
				mode VARCHAR(16) NOT NULL,
				seed BIGINT NOT NULL DEFAULT 0,
				date VARCHAR(10) NOT NULL DEFAULT '',
				score INTEGER NOT NULL,
				lines INTEGER NOT NULL DEFAULT 0,
				pieces INTEGER NOT NULL DEFAULT 0,
				best_streak INTEGER NOT NULL DEFAULT 0,
				revives INTEGER NOT NULL DEFAULT 0,
				all_clears INTEGER NOT NULL DEFAULT 0,
				undos INTEGER NOT NULL DEFAULT 0,
				last_clear_count INTEGER NOT NULL DEFAULT 0,
				duration DOUBLE PRECISION NOT NULL DEFAULT 0,
				completed BOOLEAN NOT NULL DEFAULT FALSE,
				played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS daily_results (
				player VARCHAR(50) NOT NULL,
				date VARCHAR(10) NOT NULL,
				seed BIGINT NOT NULL,
				score INTEGER NOT NULL,
				PRIMARY KEY (player, date)
			)`,
			`CREATE TABLE IF NOT EXISTS achievements (
				player VARCHAR(50) NOT NULL,
				achievement_id VARCHAR(64) NOT NULL,
				unlocked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (player, achievement_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_runs_mode_score ON runs(mode, score DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS runs (
				id TEXT PRIMARY KEY,
				player TEXT NOT NULL,
				mode TEXT NOT NULL,
				seed INTEGER NOT NULL DEFAULT 0,
				date TEXT NOT NULL DEFAULT '',
				score INTEGER NOT NULL,
				lines INTEGER NOT NULL DEFAULT 0,
				pieces INTEGER NOT NULL DEFAULT 0,
				best_streak INTEGER NOT NULL DEFAULT 0,
				revives INTEGER NOT NULL DEFAULT 0,
				all_clears INTEGER NOT NULL DEFAULT 0,
				undos INTEGER NOT NULL DEFAULT 0,
				last_clear_count INTEGER NOT NULL DEFAULT 0,
				duration REAL NOT NULL DEFAULT 0,
				completed BOOLEAN NOT NULL DEFAULT 0,
				played_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS daily_results (
				player TEXT NOT NULL,
				date TEXT NOT NULL,
				seed INTEGER NOT NULL,
				score INTEGER NOT NULL,
				PRIMARY KEY (player, date)
			)`,
			`CREATE TABLE IF NOT EXISTS achievements (
				player TEXT NOT NULL,
				achievement_id TEXT NOT NULL,
				unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (player, achievement_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_runs_mode_score ON runs(mode, score DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player)`,
		}
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (db *DB) rebind(query string) string {
	if db.dbType != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Exec wrapper for convenience
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(db.rebind(query), args...)
}

// Query wrapper for convenience
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(db.rebind(query), args...)
}

// QueryRow wrapper for convenience
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(db.rebind(query), args...)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// parseTime accepts what either driver hands back for a timestamp column,
// including aggregate results that sqlite returns as text.
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case []byte:
		return parseTime(string(t))
	case string:
		for _, format := range sqlite3.SQLiteTimestampFormats {
			if parsed, err := time.Parse(format, t); err == nil {
				return parsed
			}
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func newRunID() string {
	return uuid.NewString()
}
