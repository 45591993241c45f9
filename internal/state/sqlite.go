package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database, creating the parent
// directory if needed. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// SaveSelection inserts or updates a named selection.
func (s *SQLiteStore) SaveSelection(name, expression string, atomCount int) (*NamedSelection, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	sel := &NamedSelection{
		ID:         generateID(),
		Name:       name,
		Expression: expression,
		AtomCount:  atomCount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.db.Exec(
		`INSERT INTO selections (id, name, expression, atom_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   expression = excluded.expression,
		   atom_count = excluded.atom_count,
		   updated_at = excluded.updated_at`,
		sel.ID, sel.Name, sel.Expression, sel.AtomCount, sel.CreatedAt, sel.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}

	return s.GetSelection(name)
}

// GetSelection retrieves a named selection.
func (s *SQLiteStore) GetSelection(name string) (*NamedSelection, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	sel := &NamedSelection{}
	err := s.db.QueryRow(
		`SELECT id, name, expression, atom_count, created_at, updated_at
		 FROM selections WHERE name = ?`,
		name,
	).Scan(&sel.ID, &sel.Name, &sel.Expression, &sel.AtomCount, &sel.CreatedAt, &sel.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get selection: %w", err)
	}
	return sel, nil
}

// ListSelections returns all named selections ordered by name.
func (s *SQLiteStore) ListSelections() ([]*NamedSelection, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, name, expression, atom_count, created_at, updated_at
		 FROM selections ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var selections []*NamedSelection
	for rows.Next() {
		sel := &NamedSelection{}
		if err := rows.Scan(&sel.ID, &sel.Name, &sel.Expression, &sel.AtomCount, &sel.CreatedAt, &sel.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		selections = append(selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate selections: %w", err)
	}
	return selections, nil
}

// DeleteSelection removes a named selection.
func (s *SQLiteStore) DeleteSelection(name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.Exec(`DELETE FROM selections WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
