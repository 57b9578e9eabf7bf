// Package domain defines the core entities for seekr.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchRequest / SearchResponse / ResultItem: the query-and-rank contract
//   - StatusResponse / HealthIndicator: the status probe and its display form
//   - ViewState / UIState: the visible state of a search surface
//   - Rendering: ranked, highlighted results ready for presentation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
