package main

import (
	"fmt"

	"github.com/custodia-labs/seekr/internal/adapters/driven/backend/httpapi"
	"github.com/custodia-labs/seekr/internal/adapters/driven/config/file"
	"github.com/custodia-labs/seekr/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/seekr/internal/adapters/driving/cli"
	"github.com/custodia-labs/seekr/internal/core/ports/driven"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/core/services"
	"github.com/custodia-labs/seekr/internal/logger"
	"github.com/custodia-labs/seekr/internal/metrics"
)

// envFile is read from the working directory when present.
const envFile = ".env"

// wire is the composition root. It runs once per command, after flags are
// parsed.
func wire(opts cli.Options) (*cli.Services, error) {
	var store driven.ConfigStore
	if opts.Ephemeral {
		store = memory.NewConfigStore()
	} else {
		fs, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		store = fs
	}
	logger.Debug("Config: %s", store.Path())

	settingsService, err := services.NewSettingsService(store, envFile)
	if err != nil {
		return nil, err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.Backend != "" {
		settings.Backend.URL = opts.Backend
	}

	m, _, err := metrics.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	backend, err := httpapi.NewFromSettings(settings.Backend, m)
	if err != nil {
		return nil, err
	}
	logger.Debug("Backend: %s", backend.BaseURL())

	return &cli.Services{
		Settings: settingsService,
		Health:   services.NewHealthMonitor(backend),
		NewController: func(r driving.ResultRenderer) driving.SearchController {
			return services.NewSearchController(backend, r)
		},
		Metrics:     m,
		ConfigStore: store,
		BackendURL:  backend.BaseURL(),
	}, nil
}
