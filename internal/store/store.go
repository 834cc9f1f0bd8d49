// Package store records analysis runs in a local SQLite database so bundle
// sizes can be compared across builds.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

// Open creates or opens the run-history database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		command TEXT NOT NULL,
		entrypoint TEXT NOT NULL,
		stats_file TEXT,
		node_count INTEGER,
		edge_count INTEGER,
		output_path TEXT
	);`)
	return err
}

// Run is one recorded analysis.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Command    string
	Entrypoint string
	StatsFile  string
	NodeCount  int
	EdgeCount  int
	OutputPath string
}

// RecordRun inserts the run, assigning its id and timestamp, and returns
// the stored value.
func (s *Store) RecordRun(r Run) (Run, error) {
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO runs (id, created_at, command, entrypoint, stats_file, node_count, edge_count, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt, r.Command, r.Entrypoint, r.StatsFile, r.NodeCount, r.EdgeCount, r.OutputPath,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return r, nil
}

// Runs lists recorded runs, newest first. An empty entrypoint matches all.
func (s *Store) Runs(entrypoint string) ([]Run, error) {
	query := `SELECT id, created_at, command, entrypoint, stats_file, node_count, edge_count, output_path
	          FROM runs`
	args := []any{}
	if entrypoint != "" {
		query += ` WHERE entrypoint = ?`
		args = append(args, entrypoint)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Command, &r.Entrypoint, &r.StatsFile,
			&r.NodeCount, &r.EdgeCount, &r.OutputPath); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
