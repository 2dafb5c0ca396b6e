package models

import "time"

// EscalationResult summarizes one escalation run. Skipped count is implied:
// Considered - len(SentOrderIDs).
type EscalationResult struct {
	Considered   int
	SentOrderIDs []string
}

// Skipped returns the number of considered orders that were not escalated.
func (r EscalationResult) Skipped() int {
	return r.Considered - len(r.SentOrderIDs)
}

// RunRecord is the persisted audit record of one escalation run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Considered int
	SentCount  int
	SentIDs    []string
}
