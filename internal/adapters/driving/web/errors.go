package web

import "errors"

var (
	// ErrMissingControllerFactory is returned when no controller factory is provided.
	ErrMissingControllerFactory = errors.New("web: controller factory is required")

	// ErrMissingHealthMonitor is returned when the health monitor is not provided.
	ErrMissingHealthMonitor = errors.New("web: health monitor is required")
)
