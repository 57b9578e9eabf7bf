package web

import (
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/metrics"
)

// Ports aggregates the services the web adapter uses.
type Ports struct {
	// NewController returns a fresh controller for one page submission.
	NewController func(r driving.ResultRenderer) driving.SearchController

	// Health fills the status badge once at startup.
	Health driving.HealthMonitor

	// Settings supplies the default limit and sample queries. Optional.
	Settings driving.SettingsService

	// Metrics records requests and serves /metrics. Optional.
	Metrics *metrics.Metrics
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.NewController == nil {
		return ErrMissingControllerFactory
	}
	if p.Health == nil {
		return ErrMissingHealthMonitor
	}
	return nil
}
