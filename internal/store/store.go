package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store owns the database connection for memory records.
//
// The connection is opened lazily on first use and re-opened transparently
// after Close, so a store handle stays usable across shutdown/reuse cycles.
// All operations are serialized on an internal mutex; SQLite is used with a
// single connection, so multi-statement operations stay atomic per call.
type Store struct {
	path string

	mu sync.Mutex
	db *sql.DB // nil when closed
}

// New creates a Store for the database file at path. The file is not touched
// until the first operation or an explicit Open.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates a Store and eagerly establishes the connection, so callers
// that need a working database at startup can fail fast.
func Open(path string) (*Store, error) {
	s := New(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.conn(); err != nil {
		return nil, err
	}
	return s, nil
}

// conn returns the live connection, opening and migrating the database if
// needed. Callers must hold s.mu.
func (s *Store) conn() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wrapErr("open database", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, wrapErr("open database", err)
	}
	// One shared connection avoids writer lock contention under SQLite.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, wrapErr("init database", err)
		}
	}

	s.db = db
	return s.db, nil
}

// Close releases the connection. The next operation re-opens it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return wrapErr("close database", err)
	}
	return nil
}

// Add persists a new memory and returns its assigned id. Both timestamps are
// set to the same instant.
func (s *Store) Add(title, content string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := db.Exec(
		`INSERT INTO memories (title, content, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		title, content, now, now,
	)
	if err != nil {
		return 0, wrapErr("insert memory", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapErr("insert memory", err)
	}
	return id, nil
}

// GetByID returns the memory with the given id, or nil if none exists.
func (s *Store) GetByID(id int64) (*Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	return s.getByID(db, id)
}

// GetByTitle returns the memory with the given title, or nil if none exists.
// When several memories share a title, the one with the lowest id wins.
func (s *Store) GetByTitle(title string) (*Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		`SELECT id, title, content, created_at, updated_at FROM memories WHERE title = ? ORDER BY id LIMIT 1`,
		title,
	)
	return scanMemory(row)
}

// List returns {id, title} projections for all memories in insertion order.
func (s *Store) List() ([]MemoryRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT id, title FROM memories ORDER BY id`)
	if err != nil {
		return nil, wrapErr("list memories", err)
	}
	defer rows.Close()

	refs := []MemoryRef{}
	for rows.Next() {
		var ref MemoryRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, wrapErr("list memories", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list memories", err)
	}
	return refs, nil
}

// Update applies a partial update to the memory with the given id. It returns
// false when no such memory exists. An empty patch on an existing memory is a
// no-op that returns true without bumping updated_at; otherwise updated_at is
// always bumped, even when the new values equal the old.
func (s *Store) Update(id int64, patch Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return false, err
	}

	existing, err := s.getByID(db, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}
	if patch.Empty() {
		return true, nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	switch {
	case patch.Title != nil && patch.Content != nil:
		_, err = db.Exec(
			`UPDATE memories SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
			*patch.Title, *patch.Content, now, id,
		)
	case patch.Title != nil:
		_, err = db.Exec(
			`UPDATE memories SET title = ?, updated_at = ? WHERE id = ?`,
			*patch.Title, now, id,
		)
	default:
		_, err = db.Exec(
			`UPDATE memories SET content = ?, updated_at = ? WHERE id = ?`,
			*patch.Content, now, id,
		)
	}
	if err != nil {
		return false, wrapErr("update memory", err)
	}
	return true, nil
}

// Delete removes the memory with the given id. It returns false when no such
// memory exists; deleting the same id again keeps returning false.
func (s *Store) Delete(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return false, err
	}

	res, err := db.Exec(`DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return false, wrapErr("delete memory", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr("delete memory", err)
	}
	return n > 0, nil
}

// Count returns the number of stored memories.
func (s *Store) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.QueryRow(`SELECT COUNT(*) FROM memories`).Scan(&n); err != nil {
		return 0, wrapErr("count memories", err)
	}
	return n, nil
}

func (s *Store) getByID(db *sql.DB, id int64) (*Memory, error) {
	row := db.QueryRow(
		`SELECT id, title, content, created_at, updated_at FROM memories WHERE id = ?`,
		id,
	)
	return scanMemory(row)
}

func scanMemory(row *sql.Row) (*Memory, error) {
	var (
		m                  Memory
		createdAt, updated string
	)
	err := row.Scan(&m.ID, &m.Title, &m.Content, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("read memory", err)
	}

	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, wrapErr("read memory", fmt.Errorf("parse created_at: %w", err))
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, wrapErr("read memory", fmt.Errorf("parse updated_at: %w", err))
	}
	return &m, nil
}
