package secondary

import (
	"context"

	"github.com/example/staletick/internal/models"
)

// SettingsStore loads and saves the durable settings ledger. Save rewrites
// the document in full; it is called synchronously after every mutation.
type SettingsStore interface {
	// Load reads the persisted settings. A missing file is not an error:
	// implementations return defaults.
	Load() (*models.Settings, error)

	Save(settings *models.Settings) error
}

// RunRepository persists the audit record of each escalation run.
type RunRepository interface {
	Create(ctx context.Context, run *models.RunRecord) error

	// List returns runs most recent first.
	List(ctx context.Context) ([]*models.RunRecord, error)

	GetByID(ctx context.Context, id string) (*models.RunRecord, error)
}
