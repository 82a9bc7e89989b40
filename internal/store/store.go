// Package store persists project snapshots in a local sqlite database.
// It backs autosave: the whole project serializes to one JSON blob per row,
// so a snapshot survives exactly as the editor saw it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ivlev/clipforge/internal/timeline"
)

// ErrProjectNotFound reports a load or delete of an unknown project id.
var ErrProjectNotFound = errors.New("project not found")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	data        BLOB NOT NULL,
	modified_at TEXT NOT NULL
);
`

type Store struct {
	conn *sql.DB
}

// ProjectInfo is a listing row, returned without deserializing the snapshot.
type ProjectInfo struct {
	ID         string
	Name       string
	ModifiedAt time.Time
}

func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Save upserts a snapshot of the project keyed by its id.
func (s *Store) Save(ctx context.Context, p *timeline.Project) error {
	data, err := timeline.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize project %s: %w", p.ID, err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO projects (id, name, data, modified_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			modified_at = excluded.modified_at`,
		p.ID, p.Name, data, p.ModifiedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// Load restores a project snapshot. The snapshot is validated on the way out
// so a corrupted row surfaces here, not deep inside an edit.
func (s *Store) Load(ctx context.Context, id string) (*timeline.Project, error) {
	var data []byte
	err := s.conn.QueryRowContext(ctx,
		`SELECT data FROM projects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	p, err := timeline.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return p, nil
}

// List returns saved projects ordered by most recently modified.
func (s *Store) List(ctx context.Context) ([]ProjectInfo, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, modified_at FROM projects ORDER BY modified_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var infos []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		var modified string
		if err := rows.Scan(&info.ID, &info.Name, &modified); err != nil {
			return nil, err
		}
		info.ModifiedAt, _ = time.Parse(time.RFC3339Nano, modified)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectNotFound
	}
	return nil
}
