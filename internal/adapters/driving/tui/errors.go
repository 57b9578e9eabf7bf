package tui

import "errors"

// ErrMissingSearchController is returned when the search controller is not provided.
var ErrMissingSearchController = errors.New("tui: search controller is required")

// ErrMissingHealthMonitor is returned when the health monitor is not provided.
var ErrMissingHealthMonitor = errors.New("tui: health monitor is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
