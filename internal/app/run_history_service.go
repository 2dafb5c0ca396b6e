package app

import (
	"context"
	"fmt"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/primary"
	"github.com/example/staletick/internal/ports/secondary"
)

// RunHistoryServiceImpl implements the RunHistoryService interface.
type RunHistoryServiceImpl struct {
	runs secondary.RunRepository
}

// NewRunHistoryService creates a new RunHistoryService.
func NewRunHistoryService(runs secondary.RunRepository) *RunHistoryServiceImpl {
	return &RunHistoryServiceImpl{runs: runs}
}

// ListRuns returns past escalation runs, most recent first.
func (s *RunHistoryServiceImpl) ListRuns(ctx context.Context) ([]*models.RunRecord, error) {
	records, err := s.runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return records, nil
}

// GetRun retrieves one run record by ID.
func (s *RunHistoryServiceImpl) GetRun(ctx context.Context, id string) (*models.RunRecord, error) {
	record, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}
	return record, nil
}

// Ensure RunHistoryServiceImpl implements the interface
var _ primary.RunHistoryService = (*RunHistoryServiceImpl)(nil)
