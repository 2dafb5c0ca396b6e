// Package app contains the application services behind the primary ports.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/ports/primary"
	"github.com/example/staletick/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface. It owns the
// in-memory settings for the process lifetime and writes through to the
// store on every mutation.
type SettingsServiceImpl struct {
	mu      sync.Mutex
	store   secondary.SettingsStore
	current *models.Settings
}

// NewSettingsService loads the persisted settings (or defaults when the
// store has nothing usable) and returns the service owning them.
func NewSettingsService(store secondary.SettingsStore) *SettingsServiceImpl {
	settings, err := store.Load()
	if err != nil {
		slog.Error("failed to load settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}
	return &SettingsServiceImpl{store: store, current: settings}
}

// Current returns a snapshot of the live settings.
func (s *SettingsServiceImpl) Current() *models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// SetOrderAgeHours updates the cutoff age, rejecting out-of-range values.
func (s *SettingsServiceImpl) SetOrderAgeHours(hours int) error {
	if hours < models.MinOrderAgeHours || hours > models.MaxOrderAgeHours {
		return fmt.Errorf("order age must be between %d and %d hours, got %d",
			models.MinOrderAgeHours, models.MaxOrderAgeHours, hours)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.current.OrderAgeHours
	s.current.OrderAgeHours = hours
	if err := s.store.Save(s.current); err != nil {
		s.current.OrderAgeHours = previous
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// SetMaxOrdersInTicket updates the batch cap, rejecting out-of-range values.
func (s *SettingsServiceImpl) SetMaxOrdersInTicket(count int) error {
	if count < models.MinOrdersInTicket || count > models.MaxOrdersInTicket {
		return fmt.Errorf("max orders per ticket must be between %d and %d, got %d",
			models.MinOrdersInTicket, models.MaxOrdersInTicket, count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.current.MaxOrdersInTicket
	s.current.MaxOrdersInTicket = count
	if err := s.store.Save(s.current); err != nil {
		s.current.MaxOrdersInTicket = previous
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// MarkSent appends order IDs to the sent ledger, skipping duplicates, and
// persists the result. A no-op when every ID is already present.
func (s *SettingsServiceImpl) MarkSent(orderIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, id := range orderIDs {
		if s.current.HasSent(id) {
			continue
		}
		s.current.SentOrderIDs = append(s.current.SentOrderIDs, id)
		added++
	}
	if added == 0 {
		return nil
	}

	if err := s.store.Save(s.current); err != nil {
		return fmt.Errorf("failed to save sent ledger: %w", err)
	}
	return nil
}

// Ensure SettingsServiceImpl implements the interface
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
