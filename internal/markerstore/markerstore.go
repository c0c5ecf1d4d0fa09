// Package markerstore saves named sets of markers in a SQLite database.
package markerstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/gutview/internal/config"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/migrations"
)

// ErrSetNotFound is returned when no set has the requested name.
var ErrSetNotFound = errors.New("marker set not found")

const timestampFormat = "2006-01-02 15:04:05"

// Set is a saved group of markers. Positions are full-model coordinates.
type Set struct {
	Name      string
	ModelID   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Markers   []gut.Marker
}

// Summary describes a set without its markers.
type Summary struct {
	Name      string
	ModelID   string
	Count     int
	UpdatedAt time.Time
}

type Manager struct {
	db  *sql.DB
	now func() time.Time
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create marker database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open marker database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to marker database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

// Close releases the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("marker set name is empty")
	}
	return name, nil
}

// Save stores markers under name, replacing any set with that name.
func (m *Manager) Save(name, modelID string, markers []gut.Marker) error {
	name, err := validName(name)
	if err != nil {
		return err
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stamp := m.now().UTC().Format(timestampFormat)

	var setID int64
	err = tx.QueryRow("SELECT id FROM marker_sets WHERE name = ?", name).Scan(&setID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(
			"INSERT INTO marker_sets (name, model_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
			name, modelID, stamp, stamp,
		)
		if err != nil {
			return fmt.Errorf("failed to create marker set: %w", err)
		}
		if setID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read marker set id: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up marker set: %w", err)
	default:
		if _, err := tx.Exec("UPDATE marker_sets SET model_id = ?, updated_at = ? WHERE id = ?", modelID, stamp, setID); err != nil {
			return fmt.Errorf("failed to update marker set: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM markers WHERE set_id = ?", setID); err != nil {
			return fmt.Errorf("failed to replace markers: %w", err)
		}
	}

	stmt, err := tx.Prepare("INSERT INTO markers (set_id, position, description, branch) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare marker insert: %w", err)
	}
	defer stmt.Close()

	for _, mk := range markers {
		if _, err := stmt.Exec(setID, mk.Position, mk.Description, int(mk.Branch)); err != nil {
			return fmt.Errorf("failed to save marker: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit marker set: %w", err)
	}
	return nil
}

// Load returns the set called name with its markers in position order.
// Marker ids are their rank in the set, starting at 1.
func (m *Manager) Load(name string) (Set, error) {
	name, err := validName(name)
	if err != nil {
		return Set{}, err
	}

	var (
		set              Set
		setID            int64
		created, updated string
	)
	err = m.db.QueryRow(
		"SELECT id, name, model_id, created_at, updated_at FROM marker_sets WHERE name = ?", name,
	).Scan(&setID, &set.Name, &set.ModelID, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Set{}, fmt.Errorf("%w: %s", ErrSetNotFound, name)
	}
	if err != nil {
		return Set{}, fmt.Errorf("failed to load marker set: %w", err)
	}
	set.CreatedAt = parseTimestamp(created)
	set.UpdatedAt = parseTimestamp(updated)

	rows, err := m.db.Query(
		"SELECT position, description, branch FROM markers WHERE set_id = ? ORDER BY position, id", setID,
	)
	if err != nil {
		return Set{}, fmt.Errorf("failed to load markers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			mk     gut.Marker
			branch int
		)
		if err := rows.Scan(&mk.Position, &mk.Description, &branch); err != nil {
			return Set{}, fmt.Errorf("failed to scan marker: %w", err)
		}
		mk.Branch = gut.Branch(branch)
		mk.ID = len(set.Markers) + 1
		set.Markers = append(set.Markers, mk)
	}
	if err := rows.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read markers: %w", err)
	}
	return set, nil
}

// List returns the saved sets, most recently updated first. A non-empty
// modelID restricts the list to that model.
func (m *Manager) List(modelID string) ([]Summary, error) {
	rows, err := m.db.Query(`
		SELECT s.name, s.model_id, s.updated_at, COUNT(k.id)
		FROM marker_sets s
		LEFT JOIN markers k ON k.set_id = s.id
		WHERE ? = '' OR s.model_id = ?
		GROUP BY s.id
		ORDER BY s.updated_at DESC, s.name
	`, modelID, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list marker sets: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			s       Summary
			updated string
		)
		if err := rows.Scan(&s.Name, &s.ModelID, &updated, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan marker set: %w", err)
		}
		s.UpdatedAt = parseTimestamp(updated)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes the set called name and its markers.
func (m *Manager) Delete(name string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var setID int64
	err = tx.QueryRow("SELECT id FROM marker_sets WHERE name = ?", name).Scan(&setID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrSetNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to look up marker set: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM markers WHERE set_id = ?", setID); err != nil {
		return fmt.Errorf("failed to delete markers: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM marker_sets WHERE id = ?", setID); err != nil {
		return fmt.Errorf("failed to delete marker set: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}
	return nil
}

// parseTimestamp reads a stored UTC time. The driver may hand back either the
// stored text or an RFC 3339 rendering of it.
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampFormat, s, time.UTC); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
