package store

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			task TEXT NOT NULL,
			kind TEXT NOT NULL,
			formula TEXT NOT NULL,
			re REAL,
			im REAL,
			err TEXT NOT NULL,
			created TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS results_run ON results (run_id);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	s := &SQLite{db: db}

	version, err := s.metadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Put appends a result. NaN parts are stored as NULL.
func (s *SQLite) Put(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO results (run_id, task, kind, formula, re, im, err, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.Task, r.Kind, r.Formula, nullable(r.Re), nullable(r.Im), r.Err,
		r.Created.UTC().Format(time.RFC3339Nano))
	return err
}

// Results returns the results of a run in insertion order.
func (s *SQLite) Results(runID string) ([]Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT run_id, task, kind, formula, re, im, err, created
		FROM results WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var re, im sql.NullFloat64
		var created string
		if err := rows.Scan(&r.RunID, &r.Task, &r.Kind, &r.Formula, &re, &im, &r.Err, &created); err != nil {
			return nil, err
		}
		r.Re, r.Im = fromNullable(re), fromNullable(im)
		if r.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created time of %s/%s: %w", r.RunID, r.Task, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// metadata retrieves a metadata value by key. Caller must hold the lock or
// be the constructor.
func (s *SQLite) metadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func nullable(x float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: x, Valid: !math.IsNaN(x)}
}

func fromNullable(x sql.NullFloat64) float64 {
	if !x.Valid {
		return math.NaN()
	}
	return x.Float64
}
