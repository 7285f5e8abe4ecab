package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a draft or evaluation id does not exist.
var ErrNotFound = errors.New("not found")

// Draft is a stored organization config, keyed by id. ConfigYAML holds the
// full config document as written by the wizard or CLI.
type Draft struct {
	ID         string
	Name       string
	Template   string
	ConfigYAML string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaveDraft inserts a new draft and returns its generated id.
func (db *DB) SaveDraft(name, template, configYAML string) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := uuid.New().String()
	now := formatTime(time.Now())
	_, err := db.conn.Exec(`
		INSERT INTO drafts (id, name, template, config_yaml, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, template, configYAML, now, now)
	if err != nil {
		return "", fmt.Errorf("save draft: %w", err)
	}
	return id, nil
}

// UpdateDraft replaces a draft's config and bumps its updated_at.
func (db *DB) UpdateDraft(id, configYAML string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.Exec(`
		UPDATE drafts SET config_yaml = ?, updated_at = ? WHERE id = ?
	`, configYAML, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update draft %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetDraft loads a draft by id.
func (db *DB) GetDraft(id string) (*Draft, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRow(`
		SELECT id, name, template, config_yaml, created_at, updated_at
		FROM drafts WHERE id = ?
	`, id)

	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return d, err
}

// ListDrafts returns all drafts, most recently updated first.
func (db *DB) ListDrafts() ([]*Draft, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, name, template, config_yaml, created_at, updated_at
		FROM drafts ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// DeleteDraft removes a draft by id.
func (db *DB) DeleteDraft(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.Exec("DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete draft %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (*Draft, error) {
	var d Draft
	var template sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&d.ID, &d.Name, &template, &d.ConfigYAML, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan draft: %w", err)
	}

	d.Template = template.String
	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse draft created_at: %w", err)
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse draft updated_at: %w", err)
	}
	return &d, nil
}
