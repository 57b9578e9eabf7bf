package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

func TestNewSearchController_StartsIdle(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)

	state := c.State()

	assert.Equal(t, domain.StateIdle, state.State)
	assert.True(t, state.SubmitEnabled)
	assert.Equal(t, "Search", state.SubmitLabel)
}

func TestSearchController_BlankQueryMakesNoCall(t *testing.T) {
	for _, q := range []string{"", " ", "\t\n", "   "} {
		backend := &mockBackend{}
		c := NewSearchController(backend, NewHTMLRenderer())

		state, err := c.HandleSearch(context.Background(), q, 5)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, int32(0), backend.searchCalls.Load())
		assert.Equal(t, domain.StateError, state.State)
		assert.Equal(t, "Please enter a search query", state.ErrorMessage)
		assert.True(t, state.SubmitEnabled)
	}
}

func TestSearchController_TrimsQuery(t *testing.T) {
	backend := &mockBackend{}
	c := NewSearchController(backend, nil)

	_, err := c.HandleSearch(context.Background(), "  lake house \n", 7)

	require.NoError(t, err)
	assert.Equal(t, domain.SearchRequest{Query: "lake house", Limit: 7}, backend.request())
}

func TestSearchController_LakeHouseScenario(t *testing.T) {
	backend := &mockBackend{
		searchFn: func(context.Context, domain.SearchRequest) (*domain.SearchResponse, error) {
			return lakeHouseResponse(), nil
		},
	}
	c := NewSearchController(backend, NewHTMLRenderer())

	state, err := c.HandleSearch(context.Background(), "lake house", 5)

	require.NoError(t, err)
	assert.Equal(t, domain.StateResults, state.State)
	assert.True(t, state.ResultsVisible())
	assert.False(t, state.EmptyVisible())
	assert.False(t, state.ErrorVisible())
	assert.False(t, state.LoadingVisible())
	assert.True(t, state.SubmitEnabled)
	assert.Equal(t, "Search", state.SubmitLabel)

	require.NotNil(t, state.Rendering)
	require.Len(t, state.Rendering.Items, 2)
	assert.Equal(t, "87.3%", state.Rendering.Items[0].Percentage)
	assert.Equal(t, "50.0%", state.Rendering.Items[1].Percentage)
	assert.Equal(t, "p1", state.Rendering.Items[0].ID)
	assert.False(t, state.Rendering.Items[1].HasID)
}

func TestSearchController_EmptyResults(t *testing.T) {
	backend := &mockBackend{
		searchFn: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
			return &domain.SearchResponse{Query: req.Query, Total: 0, Results: []domain.ResultItem{}}, nil
		},
	}
	c := NewSearchController(backend, NewHTMLRenderer())

	state, err := c.HandleSearch(context.Background(), "castle", 5)

	require.NoError(t, err)
	assert.Equal(t, domain.StateEmpty, state.State)
	assert.True(t, state.EmptyVisible())
	assert.False(t, state.ResultsVisible())
	assert.False(t, state.ErrorVisible())
	assert.Nil(t, state.Rendering)
}

func TestSearchController_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"application message", &domain.ApplicationError{StatusCode: 500, Message: "index unavailable"}, "index unavailable"},
		{"application without message", &domain.ApplicationError{StatusCode: 500}, "Search failed"},
		{"transport", &domain.TransportError{Op: "search", Err: errors.New("dial tcp: refused")}, "dial tcp: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{
				searchFn: func(context.Context, domain.SearchRequest) (*domain.SearchResponse, error) {
					return nil, tt.err
				},
			}
			c := NewSearchController(backend, NewHTMLRenderer())

			state, err := c.HandleSearch(context.Background(), "lake", 5)

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, domain.StateError, state.State)
			assert.Equal(t, tt.want, state.ErrorMessage)
			assert.Nil(t, state.Rendering)
			assert.True(t, state.SubmitEnabled)
		})
	}
}

func TestSearchController_NilResponseIsTransportError(t *testing.T) {
	backend := &mockBackend{
		searchFn: func(context.Context, domain.SearchRequest) (*domain.SearchResponse, error) {
			return nil, nil
		},
	}
	c := NewSearchController(backend, nil)

	state, err := c.HandleSearch(context.Background(), "lake", 5)

	var te *domain.TransportError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, domain.StateError, state.State)
}

func TestSearchController_NilBackend(t *testing.T) {
	c := NewSearchController(nil, nil)

	state, err := c.HandleSearch(context.Background(), "lake", 5)

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Equal(t, domain.StateError, state.State)
}

func TestSearchController_BeginEntersLoading(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)

	ticket, err := c.Begin("lake", 5)

	require.NoError(t, err)
	state := c.State()
	assert.Equal(t, domain.StateLoading, state.State)
	assert.True(t, state.LoadingVisible())
	assert.False(t, state.SubmitEnabled)
	assert.Equal(t, "Searching...", state.SubmitLabel)
	assert.Equal(t, ticket.Seq, state.Seq)
}

func TestSearchController_BeginClearsPriorResults(t *testing.T) {
	backend := &mockBackend{
		searchFn: func(context.Context, domain.SearchRequest) (*domain.SearchResponse, error) {
			return lakeHouseResponse(), nil
		},
	}
	c := NewSearchController(backend, NewHTMLRenderer())
	_, err := c.HandleSearch(context.Background(), "lake house", 5)
	require.NoError(t, err)

	_, err = c.Begin("   ", 5)

	require.Error(t, err)
	state := c.State()
	assert.Equal(t, domain.StateError, state.State)
	assert.Nil(t, state.Rendering)
}

func TestSearchController_ExecuteDoesNotTouchState(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)
	ticket, err := c.Begin("lake", 5)
	require.NoError(t, err)

	outcome := c.Execute(context.Background(), ticket)

	assert.Equal(t, ticket.Seq, outcome.Seq)
	assert.Equal(t, domain.StateLoading, c.State().State)
}

func TestSearchController_StaleOutcomeDiscarded(t *testing.T) {
	backend := &mockBackend{
		searchFn: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
			return &domain.SearchResponse{
				Query:   req.Query,
				Total:   1,
				Results: []domain.ResultItem{{Score: 0.9, Data: map[string]any{"text": req.Query}}},
			}, nil
		},
	}
	c := NewSearchController(backend, nil)
	ctx := context.Background()

	slow, err := c.Begin("first", 5)
	require.NoError(t, err)
	fast, err := c.Begin("second", 5)
	require.NoError(t, err)

	fastOutcome := c.Execute(ctx, fast)
	slowOutcome := c.Execute(ctx, slow)

	assert.True(t, c.Complete(fastOutcome))
	assert.False(t, c.Complete(slowOutcome))

	state := c.State()
	require.NotNil(t, state.Rendering)
	assert.Equal(t, `1 results for "second"`, state.Rendering.Summary)
	assert.Equal(t, fast.Seq, state.Seq)
}

func TestSearchController_StaleErrorDiscarded(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)

	old, err := c.Begin("first", 5)
	require.NoError(t, err)
	_, err = c.Begin("second", 5)
	require.NoError(t, err)

	applied := c.Complete(driving.Outcome{Seq: old.Seq, Err: errors.New("late failure")})

	assert.False(t, applied)
	assert.Equal(t, domain.StateLoading, c.State().State)
}

func TestSearchController_ValidationSupersedesInFlight(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)
	ticket, err := c.Begin("lake", 5)
	require.NoError(t, err)

	_, err = c.Begin("", 5)
	require.Error(t, err)

	assert.False(t, c.Complete(c.Execute(context.Background(), ticket)))
	assert.Equal(t, domain.StateError, c.State().State)
}

func TestSearchController_SequenceIsMonotonic(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)

	a, _ := c.Begin("one", 5)
	b, _ := c.Begin("two", 5)
	c.Reset()
	d, _ := c.Begin("three", 5)

	assert.Less(t, a.Seq, b.Seq)
	assert.Less(t, b.Seq, d.Seq)
	assert.Equal(t, domain.StateLoading, c.State().State)
}

func TestSearchController_ResetDiscardsOutstanding(t *testing.T) {
	c := NewSearchController(&mockBackend{}, nil)
	ticket, err := c.Begin("lake", 5)
	require.NoError(t, err)

	c.Reset()

	assert.False(t, c.Complete(c.Execute(context.Background(), ticket)))
	assert.Equal(t, domain.StateIdle, c.State().State)
}

func TestSearchController_RunSample(t *testing.T) {
	backend := &mockBackend{}
	c := NewSearchController(backend, nil)

	state, err := c.RunSample(context.Background(), "modern apartment with balcony", 3)

	require.NoError(t, err)
	assert.Equal(t, domain.StateEmpty, state.State)
	assert.Equal(t, domain.SearchRequest{Query: "modern apartment with balcony", Limit: 3}, backend.request())
}

func TestSearchController_HandleSearchReportsSuperseded(t *testing.T) {
	var c *SearchController
	backend := &mockBackend{
		searchFn: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
			if req.Query == "first" {
				_, _ = c.Begin("second", 5)
			}
			return &domain.SearchResponse{Query: req.Query}, nil
		},
	}
	c = NewSearchController(backend, nil)

	state, err := c.HandleSearch(context.Background(), "first", 5)

	assert.ErrorIs(t, err, domain.ErrStaleOutcome)
	assert.Equal(t, domain.StateLoading, state.State)
}
