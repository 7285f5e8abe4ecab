package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/viableos/viableos/pkg/models"
)

// Evaluation is one stored viability check result.
type Evaluation struct {
	ID            string
	DraftID       string
	OrgName       string
	Score         int
	Total         int
	CriticalCount int
	MonthlyUSD    float64
	CreatedAt     time.Time
}

// RecordEvaluation stores a report snapshot. draftID may be empty for
// evaluations of file-based configs.
func (db *DB) RecordEvaluation(draftID, orgName string, monthlyUSD float64, report *models.ViabilityReport) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	critical := 0
	for _, w := range report.Warnings {
		if w.Severity == models.SeverityCritical {
			critical++
		}
	}

	id := uuid.New().String()
	_, err = db.conn.Exec(`
		INSERT INTO evaluations (id, draft_id, org_name, score, total, critical_count, monthly_usd, report_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, nullable(draftID), orgName, report.Score, report.Total, critical, monthlyUSD, string(reportJSON), formatTime(time.Now()))
	if err != nil {
		return "", fmt.Errorf("record evaluation: %w", err)
	}
	return id, nil
}

// ListEvaluations returns up to limit evaluations, newest first. A limit of
// zero or less means no limit.
func (db *DB) ListEvaluations(limit int) ([]*Evaluation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	query := `
		SELECT id, draft_id, org_name, score, total, critical_count, monthly_usd, created_at
		FROM evaluations ORDER BY created_at DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.conn.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.conn.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []*Evaluation
	for rows.Next() {
		var e Evaluation
		var draftID sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &draftID, &e.OrgName, &e.Score, &e.Total, &e.CriticalCount, &e.MonthlyUSD, &createdAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		e.DraftID = draftID.String
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse evaluation created_at: %w", err)
		}
		evals = append(evals, &e)
	}
	return evals, rows.Err()
}

// GetEvaluationReport loads the stored report for an evaluation id.
func (db *DB) GetEvaluationReport(id string) (*models.ViabilityReport, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var reportJSON string
	row := db.conn.QueryRow("SELECT report_json FROM evaluations WHERE id = ?", id)
	if err := row.Scan(&reportJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get evaluation: %w", err)
	}

	var report models.ViabilityReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// PurgeOldEvaluations deletes evaluations older than the given duration and
// returns the number deleted.
func (db *DB) PurgeOldEvaluations(olderThan time.Duration) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cutoff := formatTime(time.Now().Add(-olderThan))
	result, err := db.conn.Exec("DELETE FROM evaluations WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge old evaluations: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return count, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
