// Package wire provides dependency injection for the staletick application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/staletick/internal/adapters/filesystem"
	"github.com/example/staletick/internal/adapters/marketplace"
	"github.com/example/staletick/internal/adapters/sqlite"
	"github.com/example/staletick/internal/adapters/support"
	"github.com/example/staletick/internal/app"
	"github.com/example/staletick/internal/config"
	"github.com/example/staletick/internal/db"
	"github.com/example/staletick/internal/ports/primary"
)

var (
	settingsService primary.SettingsService
	settingsOnce    sync.Once

	escalationService primary.EscalationService
	runHistoryService primary.RunHistoryService
	pipelineOnce      sync.Once
)

// SettingsService returns the singleton SettingsService instance. It needs
// no account configuration, so settings commands work before the account
// is set up.
func SettingsService() primary.SettingsService {
	settingsOnce.Do(initSettings)
	return settingsService
}

// EscalationService returns the singleton EscalationService instance.
func EscalationService() primary.EscalationService {
	pipelineOnce.Do(initPipeline)
	return escalationService
}

// RunHistoryService returns the singleton RunHistoryService instance.
func RunHistoryService() primary.RunHistoryService {
	pipelineOnce.Do(initPipeline)
	return runHistoryService
}

func initSettings() {
	store, err := filesystem.NewSettingsStore("")
	if err != nil {
		log.Fatalf("failed to initialize settings store: %v", err)
	}
	settingsService = app.NewSettingsService(store)
}

// initPipeline initializes the escalation services and their dependencies.
// This is called once via sync.Once.
func initPipeline() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load account config (create ~/.staletick/config.json with golden_key and username): %v", err)
	}
	account := cfg.Account()

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	orders, err := marketplace.NewClient(cfg.Marketplace(), account)
	if err != nil {
		log.Fatalf("failed to initialize marketplace client: %v", err)
	}
	portal := support.NewClient(cfg.Support(), account)
	runRepo := sqlite.NewRunRepository(database)

	settings := SettingsService()
	scanner := app.NewScanService(orders, settings, account)
	escalationService = app.NewEscalationService(scanner, orders, portal, settings, runRepo)
	runHistoryService = app.NewRunHistoryService(runRepo)
}
