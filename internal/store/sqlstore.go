package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// nowUTC returns the current UTC time as an RFC 3339 string.
func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and applies the schema.
// Creates the parent directory if it does not exist.
func Open(path string) (*SqlStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableCount == 0 {
		return s.freshInstall()
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return s.freshInstall()
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch v {
	case schemaVersion:
		return nil
	case 1:
		return s.dropV1()
	default:
		return fmt.Errorf("unknown schema version %d", v)
	}
}

func (s *SqlStore) dropV1() error {
	if _, err := s.db.Exec("DROP TABLE IF EXISTS resolutions; DROP TABLE IF EXISTS schema_version"); err != nil {
		return fmt.Errorf("drop v1 schema: %w", err)
	}
	return s.freshInstall()
}

func (s *SqlStore) freshInstall() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(schemaV2); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version(version) VALUES(?)", schemaVersion); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

func (s *SqlStore) GetResolution(statsPath, scheme string, run int) (*Resolution, error) {
	r := Resolution{StatsPath: statsPath, Scheme: scheme, Run: run}
	err := s.db.QueryRow(
		"SELECT filename, path, created_at FROM resolutions WHERE stats_path = ? AND scheme = ? AND run = ?",
		statsPath, scheme, run,
	).Scan(&r.Filename, &r.Path, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get resolution: %w", err)
	}
	return &r, nil
}

func (s *SqlStore) SaveResolution(r *Resolution) error {
	if r == nil {
		return errors.New("resolution is nil")
	}
	created := r.CreatedAt
	if created == "" {
		created = nowUTC()
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO resolutions(stats_path, scheme, run, filename, path, created_at)
		 VALUES(?, ?, ?, ?, ?, ?)`,
		r.StatsPath, r.Scheme, r.Run, r.Filename, r.Path, created,
	)
	if err != nil {
		return fmt.Errorf("save resolution: %w", err)
	}
	return nil
}

func (s *SqlStore) ListResolutions(statsPath, scheme string) ([]*Resolution, error) {
	rows, err := s.db.Query(
		"SELECT run, filename, path, created_at FROM resolutions WHERE stats_path = ? AND scheme = ? ORDER BY run",
		statsPath, scheme,
	)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var out []*Resolution
	for rows.Next() {
		r := &Resolution{StatsPath: statsPath, Scheme: scheme}
		if err := rows.Scan(&r.Run, &r.Filename, &r.Path, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
