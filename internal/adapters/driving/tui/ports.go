// Package tui provides an interactive terminal user interface for seekr.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search owns the request/response cycle and view state.
	Search driving.SearchController

	// Health probes the backend once at startup.
	Health driving.HealthMonitor

	// Settings supplies the default limit and sample queries. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchController,
	health driving.HealthMonitor,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Search:   search,
		Health:   health,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchController
	}
	if p.Health == nil {
		return ErrMissingHealthMonitor
	}
	return nil
}
