package driving

import (
	"context"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

// Ticket identifies one accepted submission.
type Ticket struct {
	Seq     uint64
	Request domain.SearchRequest
}

// Outcome is the result of executing a Ticket against the backend.
type Outcome struct {
	Seq      uint64
	Response *domain.SearchResponse
	Err      error
}

// SearchController owns the request/response cycle and the ViewState.
type SearchController interface {
	// HandleSearch validates, issues and applies one search synchronously.
	// The returned state is the controller's state after this submission.
	HandleSearch(ctx context.Context, submitted string, limit int) (domain.ViewState, error)

	// Begin validates the query and enters Loading.
	// A validation failure enters Error and returns *domain.ValidationError.
	Begin(submitted string, limit int) (Ticket, error)

	// Execute performs the backend request for a ticket without touching state.
	Execute(ctx context.Context, t Ticket) Outcome

	// Complete applies an outcome. It returns false and leaves state
	// unchanged when a newer submission has been issued.
	Complete(o Outcome) bool

	// RunSample populates the query from a sample label and searches.
	RunSample(ctx context.Context, label string, limit int) (domain.ViewState, error)

	// State returns a snapshot of the current ViewState.
	State() domain.ViewState

	// Reset returns to Idle and discards any outstanding submission.
	Reset()
}

// ResultRenderer turns a successful response into a Rendering.
type ResultRenderer interface {
	// Render returns nil when the response has no results.
	Render(resp *domain.SearchResponse) *domain.Rendering
}
