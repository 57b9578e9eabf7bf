package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchController indicates that no search controller was provided.
	ErrNoSearchController = errors.New("search controller is required")
)
