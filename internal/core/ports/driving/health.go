package driving

import (
	"context"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

// HealthMonitor reflects backend reachability into a passive indicator.
type HealthMonitor interface {
	// CheckStatus probes the backend once and returns the new indicator.
	CheckStatus(ctx context.Context) domain.HealthIndicator

	// Indicator returns the last computed indicator.
	Indicator() domain.HealthIndicator
}
