// Package primary defines the service interfaces the CLI drives.
package primary

import (
	"context"

	"github.com/example/staletick/internal/models"
)

// EscalationService is the pipeline entry point the control surface calls.
type EscalationService interface {
	// Scan discovers paid orders older than maxAgeHours that are not yet
	// in the sent ledger, returning at most maxBatch IDs in discovery
	// order. Read-only: nothing is submitted or persisted.
	Scan(ctx context.Context, maxAgeHours, maxBatch int) ([]string, error)

	// Run executes a full escalation run: scan, then file one support
	// ticket per candidate, then merge the successfully escalated IDs
	// into the sent ledger (once, at the end) and append a run record.
	Run(ctx context.Context, maxAgeHours, maxBatch int) (*models.EscalationResult, error)
}
