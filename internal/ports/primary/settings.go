package primary

import (
	"context"

	"github.com/example/staletick/internal/models"
)

// SettingsService owns the process-wide settings ledger: loaded once at
// startup, mutated through these methods, saved synchronously after each
// mutation.
type SettingsService interface {
	// Current returns a snapshot of the live settings.
	Current() *models.Settings

	// SetOrderAgeHours updates the cutoff age. Values outside
	// [models.MinOrderAgeHours, models.MaxOrderAgeHours] are rejected and
	// leave the settings unchanged.
	SetOrderAgeHours(hours int) error

	// SetMaxOrdersInTicket updates the batch cap. Values outside
	// [models.MinOrdersInTicket, models.MaxOrdersInTicket] are rejected
	// and leave the settings unchanged.
	SetMaxOrdersInTicket(count int) error

	// MarkSent appends the given order IDs to the sent ledger, skipping
	// any already present, and persists the result.
	MarkSent(orderIDs []string) error
}

// RunHistoryService exposes past escalation runs to the control surface.
type RunHistoryService interface {
	ListRuns(ctx context.Context) ([]*models.RunRecord, error)
	GetRun(ctx context.Context, id string) (*models.RunRecord, error)
}
