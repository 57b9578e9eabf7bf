package mcp

import (
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// NewController returns a fresh controller for one tool call.
	NewController func(r driving.ResultRenderer) driving.SearchController

	// Health answers the status tool.
	Health driving.HealthMonitor

	// Settings supplies the default limit and sample queries. Optional.
	Settings driving.SettingsService

	// Version is announced to clients. Empty means "dev".
	Version string
}

func (p *Ports) version() string {
	if p.Version == "" {
		return "dev"
	}
	return p.Version
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.NewController == nil {
		return ErrMissingSearchController
	}
	if p.Health == nil {
		return ErrMissingHealthMonitor
	}
	return nil
}
