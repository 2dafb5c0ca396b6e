// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/staletick/internal/models"
)

// RunRepository implements secondary.RunRepository with SQLite.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new SQLite run repository.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create persists a new run record.
func (r *RunRepository) Create(ctx context.Context, run *models.RunRecord) error {
	sentIDs, err := json.Marshal(run.SentIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal sent ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, considered, sent_count, sent_ids) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
		run.Considered,
		run.SentCount,
		string(sentIDs),
	)
	if err != nil {
		return fmt.Errorf("failed to create run record: %w", err)
	}
	return nil
}

// List retrieves all run records, most recent first.
func (r *RunRepository) List(ctx context.Context) ([]*models.RunRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, considered, sent_count, sent_ids FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*models.RunRecord
	for rows.Next() {
		record, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return records, nil
}

// GetByID retrieves a run record by its ID.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*models.RunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, considered, sent_count, sent_ids FROM runs WHERE id = ?`, id)

	record, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// scanRun decodes one runs row via the given Scan function.
func scanRun(scan func(...any) error) (*models.RunRecord, error) {
	var (
		record     models.RunRecord
		startedAt  time.Time
		finishedAt time.Time
		sentIDs    string
	)
	if err := scan(&record.ID, &startedAt, &finishedAt, &record.Considered, &record.SentCount, &sentIDs); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	record.StartedAt = startedAt
	record.FinishedAt = finishedAt
	if err := json.Unmarshal([]byte(sentIDs), &record.SentIDs); err != nil {
		return nil, fmt.Errorf("failed to parse sent ids: %w", err)
	}
	return &record, nil
}
