// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/staletick/internal/models"
)

// SettingsStore implements secondary.SettingsStore as a JSON document on
// disk. The document is rewritten in full on every save.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a settings store at the given path. An empty
// path defaults to ~/.staletick/settings.json.
func NewSettingsStore(path string) (*SettingsStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".staletick", "settings.json")
	}
	return &SettingsStore{path: path}, nil
}

// Load reads the persisted settings. A missing file yields defaults; an
// unreadable or malformed file is an error the caller handles.
func (s *SettingsStore) Load() (*models.Settings, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if settings.OrderAgeHours == 0 {
		settings.OrderAgeHours = models.DefaultOrderAgeHours
	}
	if settings.MaxOrdersInTicket == 0 {
		settings.MaxOrdersInTicket = models.DefaultMaxOrdersInTicket
	}
	if settings.SentOrderIDs == nil {
		settings.SentOrderIDs = []string{}
	}
	return &settings, nil
}

// Save writes the settings document, creating the parent directory if
// needed.
func (s *SettingsStore) Save(settings *models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
