package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driven"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/logger"
)

// Ensure HealthMonitor implements the interface.
var _ driving.HealthMonitor = (*HealthMonitor)(nil)

// HealthMonitor probes the backend status endpoint and keeps the
// resulting indicator. It never retries and never re-polls on its own.
type HealthMonitor struct {
	backend driven.SearchBackend

	mu        sync.RWMutex
	indicator domain.HealthIndicator
}

// NewHealthMonitor creates a health monitor for the given backend.
func NewHealthMonitor(backend driven.SearchBackend) *HealthMonitor {
	return &HealthMonitor{
		backend:   backend,
		indicator: domain.UnknownIndicator(),
	}
}

// CheckStatus issues one status probe and records the indicator.
func (h *HealthMonitor) CheckStatus(ctx context.Context) domain.HealthIndicator {
	logger.Section("Status Probe")

	ind := h.probe(ctx)
	logger.Debug("Indicator: %s (%s)", ind.Level, ind.Label)

	h.mu.Lock()
	h.indicator = ind
	h.mu.Unlock()
	return ind
}

// Indicator returns the last computed indicator.
func (h *HealthMonitor) Indicator() domain.HealthIndicator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.indicator
}

func (h *HealthMonitor) probe(ctx context.Context) domain.HealthIndicator {
	if h.backend == nil {
		logger.Warn("Status probe skipped: %v", domain.ErrBackendUnavailable)
		return domain.OfflineIndicator()
	}

	resp, err := h.backend.Status(ctx)
	if err != nil {
		var ae *domain.ApplicationError
		if errors.As(err, &ae) {
			logger.Warn("Status probe rejected: %v", err)
			return domain.ConnectionErrorIndicator()
		}
		logger.Warn("Status probe failed: %v", err)
		return domain.OfflineIndicator()
	}

	if !resp.IsHealthy() {
		logger.Debug("Status %q with HTTP %d", resp.Status, resp.HTTPStatus)
		return domain.ConnectionErrorIndicator()
	}
	return domain.ConnectedIndicator(resp)
}
