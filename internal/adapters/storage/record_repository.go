package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/dvidx/focusdial/internal/domain"
	"github.com/dvidx/focusdial/internal/ports"
)

// sessionRepository implements ports.SessionRepository using SQLite.
type sessionRepository struct {
	db *sql.DB
}

// newSessionRepository creates a new session record repository.
func newSessionRepository(db *sql.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

const recordColumns = `id, type, duration_ms, started_at, completed_at,
		git_branch, git_commit, git_repository, note`

// Save persists a completed interval record.
func (r *sessionRepository) Save(ctx context.Context, record *domain.SessionRecord) error {
	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		string(record.Type),
		record.Duration.Milliseconds(),
		record.StartedAt,
		record.CompletedAt,
		record.GitBranch,
		record.GitCommit,
		record.GitRepository,
		record.Note,
	)

	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// FindRecent retrieves records completed at or after the given time,
// newest first.
func (r *sessionRepository) FindRecent(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE completed_at >= ?
		ORDER BY completed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanRecords(rows)
}

// SearchNotes does a fuzzy search for records by note text.
func (r *sessionRepository) SearchNotes(ctx context.Context, query string) ([]*domain.SessionRecord, error) {
	records, err := r.findAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get records for fuzzy search: %w", err)
	}

	notes := make([]string, len(records))
	for i, record := range records {
		notes[i] = record.Note
	}

	matches := fuzzy.Find(query, notes)

	var result []*domain.SessionRecord
	for _, match := range matches {
		if match.Score > 0 {
			result = append(result, records[match.Index])
		}
	}

	return result, nil
}

// SetNote attaches a note to an existing record.
func (r *sessionRepository) SetNote(ctx context.Context, id, note string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE records SET note = ? WHERE id = ?`, note, id)
	if err != nil {
		return fmt.Errorf("failed to set note: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("record %s not found", id)
	}

	return nil
}

// GetDailyStats returns aggregated statistics for a specific date.
func (r *sessionRepository) GetDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := `
		SELECT
			COUNT(CASE WHEN type = 'focus' THEN 1 END) as focus_sessions,
			COUNT(CASE WHEN type IN ('short_break', 'long_break') THEN 1 END) as breaks,
			COALESCE(SUM(CASE WHEN type = 'focus' THEN duration_ms END), 0) as total_focus_ms
		FROM records
		WHERE completed_at >= ? AND completed_at < ?
	`

	stats := &domain.DailyStats{
		Date: startOfDay,
	}

	var totalFocusMs int64
	err := r.db.QueryRowContext(ctx, query, startOfDay, endOfDay).Scan(
		&stats.FocusSessions,
		&stats.BreaksTaken,
		&totalFocusMs,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats.TotalFocusTime = time.Duration(totalFocusMs) * time.Millisecond

	return stats, nil
}

// ClearAll removes every record.
func (r *sessionRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

// findAll retrieves all records, newest first.
func (r *sessionRepository) findAll(ctx context.Context) ([]*domain.SessionRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		ORDER BY completed_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanRecords(rows)
}

// scanRecords converts rows into session records.
func (r *sessionRepository) scanRecords(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	var records []*domain.SessionRecord

	for rows.Next() {
		var record domain.SessionRecord
		var recordType string
		var durationMs int64

		err := rows.Scan(
			&record.ID,
			&recordType,
			&durationMs,
			&record.StartedAt,
			&record.CompletedAt,
			&record.GitBranch,
			&record.GitCommit,
			&record.GitRepository,
			&record.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		record.Type = domain.SessionType(recordType)
		record.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}
