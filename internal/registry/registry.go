// ABOUTME: SQLite-backed registry of running server instances
// ABOUTME: Lets later invocations reuse an instance without re-parsing its banner

package registry

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned by Get when no instance is registered under a name.
var ErrNotFound = errors.New("server not registered")

// Record is one registered server instance.
type Record struct {
	Name      string
	Address   string
	Port      int
	Password  string
	StartedAt time.Time
}

// Registry stores connection details of running server instances.
type Registry struct {
	conn *sql.DB
}

// Open opens or creates the registry database at path, creating parent
// directories as needed.
func Open(path string) (*Registry, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create registry directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	// WAL mode, so a client reading the registry does not block a launcher
	// writing to it.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Registry{conn: conn}, nil
}

// Close closes the registry database.
func (r *Registry) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// Put registers an instance, replacing any previous row with the same name.
func (r *Registry) Put(rec Record) error {
	_, err := r.conn.Exec(
		"INSERT OR REPLACE INTO servers (name, address, port, password, started_at) VALUES (?, ?, ?, ?, ?)",
		rec.Name, rec.Address, rec.Port, rec.Password, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to register server %q: %w", rec.Name, err)
	}
	return nil
}

// Get looks up an instance by name.
func (r *Registry) Get(name string) (*Record, error) {
	row := r.conn.QueryRow(
		"SELECT name, address, port, password, started_at FROM servers WHERE name = ?",
		name,
	)
	var rec Record
	err := row.Scan(&rec.Name, &rec.Address, &rec.Port, &rec.Password, &rec.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up server %q: %w", name, err)
	}
	return &rec, nil
}

// Delete removes an instance by name. Deleting an absent name is not an error.
func (r *Registry) Delete(name string) error {
	if _, err := r.conn.Exec("DELETE FROM servers WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to deregister server %q: %w", name, err)
	}
	return nil
}

// List returns all registered instances, newest first.
func (r *Registry) List() ([]Record, error) {
	rows, err := r.conn.Query(
		"SELECT name, address, port, password, started_at FROM servers ORDER BY started_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Name, &rec.Address, &rec.Port, &rec.Password, &rec.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan server row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
