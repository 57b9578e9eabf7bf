// Package mcp provides an MCP (Model Context Protocol) server adapter for seekr.
// It lets AI assistants run semantic searches against the configured backend.
package mcp

import "errors"

// ErrMissingSearchController is returned when no controller factory is provided.
var ErrMissingSearchController = errors.New("mcp: search controller is required")

// ErrMissingHealthMonitor is returned when the health monitor is not provided.
var ErrMissingHealthMonitor = errors.New("mcp: health monitor is required")
