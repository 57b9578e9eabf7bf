package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driven"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/logger"
)

// Ensure SearchController implements the interface.
var _ driving.SearchController = (*SearchController)(nil)

// errNoResponse is returned when a backend reports success without a body.
var errNoResponse = errors.New("empty search response")

// SearchController owns the request/response cycle and the ViewState.
//
// Every accepted or rejected submission takes the next sequence number.
// An outcome is applied only if it carries the latest number, so a slow
// response never overwrites the state produced by a newer submission.
type SearchController struct {
	backend  driven.SearchBackend
	renderer driving.ResultRenderer

	mu    sync.Mutex
	seq   uint64
	state domain.ViewState
}

// NewSearchController creates a controller.
// A nil renderer falls back to an unmarked ResultRenderer.
func NewSearchController(backend driven.SearchBackend, renderer driving.ResultRenderer) *SearchController {
	if renderer == nil {
		renderer = NewResultRenderer(nil)
	}
	return &SearchController{
		backend:  backend,
		renderer: renderer,
		state:    domain.IdleViewState(),
	}
}

// HandleSearch validates, issues and applies one search.
func (c *SearchController) HandleSearch(
	ctx context.Context, submitted string, limit int,
) (domain.ViewState, error) {
	t, err := c.Begin(submitted, limit)
	if err != nil {
		return c.State(), err
	}

	o := c.Execute(ctx, t)
	if !c.Complete(o) {
		return c.State(), fmt.Errorf("search #%d: %w", o.Seq, domain.ErrStaleOutcome)
	}
	return c.State(), o.Err
}

// RunSample searches for a sample query label through the same path.
func (c *SearchController) RunSample(ctx context.Context, label string, limit int) (domain.ViewState, error) {
	logger.Debug("Sample query: %q", label)
	return c.HandleSearch(ctx, label, limit)
}

// Begin validates the query, clears prior regions and enters Loading.
func (c *SearchController) Begin(submitted string, limit int) (driving.Ticket, error) {
	logger.Section("Search Submission")

	query, err := domain.NormaliseQuery(submitted)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++

	if err != nil {
		logger.Debug("Rejected submission #%d: %v", c.seq, err)
		c.state = domain.ViewState{
			State:         domain.StateError,
			SubmitEnabled: true,
			SubmitLabel:   domain.SubmitLabelIdle,
			ErrorMessage:  err.Error(),
			Seq:           c.seq,
		}
		return driving.Ticket{}, err
	}

	logger.Debug("Submission #%d: query=%q limit=%d", c.seq, query, limit)
	c.state = domain.ViewState{
		State:         domain.StateLoading,
		SubmitEnabled: false,
		SubmitLabel:   domain.SubmitLabelBusy,
		Seq:           c.seq,
	}
	return driving.Ticket{
		Seq:     c.seq,
		Request: domain.SearchRequest{Query: query, Limit: limit},
	}, nil
}

// Execute performs the backend request for t. It does not touch state.
func (c *SearchController) Execute(ctx context.Context, t driving.Ticket) driving.Outcome {
	if c.backend == nil {
		return driving.Outcome{Seq: t.Seq, Err: domain.ErrBackendUnavailable}
	}

	resp, err := c.backend.Search(ctx, t.Request)
	if err == nil && resp == nil {
		err = &domain.TransportError{Op: "search", Err: errNoResponse}
	}
	return driving.Outcome{Seq: t.Seq, Response: resp, Err: err}
}

// Complete applies o if it belongs to the latest submission.
func (c *SearchController) Complete(o driving.Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Seq != c.seq {
		logger.Debug("Discarding outcome #%d, latest is #%d", o.Seq, c.seq)
		return false
	}

	next := domain.ViewState{
		SubmitEnabled: true,
		SubmitLabel:   domain.SubmitLabelIdle,
		Seq:           o.Seq,
	}

	switch {
	case o.Err != nil:
		logger.Warn("Search #%d failed: %v", o.Seq, o.Err)
		next.State = domain.StateError
		next.ErrorMessage = domain.FailureMessage(o.Err)
	default:
		rendering := c.renderer.Render(o.Response)
		if rendering == nil {
			logger.Debug("Search #%d returned no results", o.Seq)
			next.State = domain.StateEmpty
		} else {
			logger.Info("Search #%d: %s", o.Seq, rendering.Summary)
			next.State = domain.StateResults
			next.Rendering = rendering
		}
	}

	c.state = next
	return true
}

// State returns a snapshot of the current ViewState.
func (c *SearchController) State() domain.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns to Idle and supersedes any outstanding request.
func (c *SearchController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = domain.IdleViewState()
	c.state.Seq = c.seq
}
