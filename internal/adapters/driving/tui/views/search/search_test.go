package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/services"
)

// MockBackend implements driven.SearchBackend for testing.
type MockBackend struct {
	SearchFunc func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	calls      int
	last       domain.SearchRequest
}

func (m *MockBackend) Status(_ context.Context) (domain.StatusResponse, error) {
	return domain.StatusResponse{Status: domain.StatusHealthy, HTTPStatus: 200}, nil
}

func (m *MockBackend) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls++
	m.last = req
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, req)
	}
	return &domain.SearchResponse{Query: req.Query}, nil
}

func lakeHouse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Query: "lake house",
		Total: 2,
		Results: []domain.ResultItem{
			{Score: 0.873, Data: map[string]any{"text": "Lake House retreat", "id": "p1"}},
			{Score: 0.5, Data: map[string]any{"text_content": "House by the lake"}},
		},
	}
}

func newTestView(backend *MockBackend, opts Options) *View {
	ctrl := services.NewSearchController(backend, services.NewResultRenderer(nil))
	view := NewView(nil, nil, ctrl, opts)
	view.SetDimensions(100, 30)
	return view
}

// run executes the batched command returned by a submission and feeds
// the completed search back into the view.
func run(t *testing.T, view *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(messages.SearchCompleted); ok {
			view.Update(done)
			return
		}
	}
	t.Fatal("no SearchCompleted in batch")
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), keymap.DefaultKeyMap(), nil, Options{Limit: 10})

	require.NotNil(t, view)
	assert.False(t, view.Ready())
	assert.Equal(t, "", view.Query())
	assert.Equal(t, 10, view.Limit())
	assert.True(t, view.InputFocused())
	assert.Equal(t, domain.StateIdle, view.State().State)
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(nil, nil, nil, Options{})

	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.Equal(t, 5, view.Limit())
	assert.Equal(t, "Checking...", view.Health().Label)
}

func TestNewView_TruncatesSamples(t *testing.T) {
	samples := make([]string, keymap.MaxSamples+3)
	for i := range samples {
		samples[i] = "q"
	}
	view := NewView(nil, nil, nil, Options{Samples: samples})

	assert.Len(t, view.samples, keymap.MaxSamples)
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, nil, Options{})
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := view.WithContext(ctx)

	assert.Equal(t, view, result)
	assert.Equal(t, ctx, view.ctx)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil, Options{})

	assert.NotNil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil, Options{})

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
	assert.Equal(t, 80, view.Width())
	assert.Equal(t, 24, view.Height())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil, Options{})

	assert.Equal(t, "Initialising...", view.View())
}

func TestView_Submit_LakeHouse(t *testing.T) {
	backend := &MockBackend{SearchFunc: func(_ context.Context, _ domain.SearchRequest) (*domain.SearchResponse, error) {
		return lakeHouse(), nil
	}}
	view := newTestView(backend, Options{Limit: 5})
	view.SetQuery("  lake house ")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, domain.StateLoading, view.State().State)
	assert.False(t, view.input.SubmitEnabled())
	assert.Equal(t, domain.SubmitLabelBusy, view.input.SubmitLabel())
	assert.Contains(t, view.View(), domain.SubmitLabelBusy)

	run(t, view, cmd)

	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, domain.SearchRequest{Query: "lake house", Limit: 5}, backend.last)
	assert.Equal(t, domain.StateResults, view.State().State)
	assert.True(t, view.input.SubmitEnabled())
	assert.False(t, view.InputFocused())

	rendering := view.Rendering()
	require.NotNil(t, rendering)
	assert.Equal(t, `2 results for "lake house"`, rendering.Summary)
	assert.Equal(t, "87.3%", rendering.Items[0].Percentage)

	out := view.View()
	assert.Contains(t, out, `2 results for "lake house"`)
	assert.Contains(t, out, "ID: p1")
	assert.NotContains(t, out, EmptyNotice)
}

func TestView_Submit_EmptyQuery(t *testing.T) {
	backend := &MockBackend{}
	view := newTestView(backend, Options{})
	view.SetQuery("   ")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, backend.calls)
	assert.Equal(t, domain.StateError, view.State().State)
	assert.Contains(t, view.View(), "Please enter a search query")
	assert.True(t, view.InputFocused())
}

func TestView_Submit_NoResults(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{})
	view.SetQuery("castle")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, view, cmd)

	assert.Equal(t, domain.StateEmpty, view.State().State)
	assert.Contains(t, view.View(), EmptyNotice)
	assert.True(t, view.InputFocused())
}

func TestView_Submit_BackendError(t *testing.T) {
	backend := &MockBackend{SearchFunc: func(_ context.Context, _ domain.SearchRequest) (*domain.SearchResponse, error) {
		return nil, &domain.ApplicationError{StatusCode: 503, Message: "index unavailable"}
	}}
	view := newTestView(backend, Options{})
	view.SetQuery("villa")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, view, cmd)

	assert.Equal(t, domain.StateError, view.State().State)
	out := view.View()
	assert.Contains(t, out, "Error: index unavailable")
	assert.NotContains(t, out, EmptyNotice)
	assert.True(t, view.input.SubmitEnabled())
}

func TestView_Submit_NoController(t *testing.T) {
	view := NewView(nil, nil, nil, Options{})
	view.SetDimensions(80, 24)
	view.SetQuery("villa")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, errors.Is(view.Err(), ErrNoSearchController))
	assert.Contains(t, view.View(), "search controller is required")
}

func TestView_Submit_IgnoredWhileLoading(t *testing.T) {
	backend := &MockBackend{}
	view := newTestView(backend, Options{})
	view.SetQuery("first")

	_, first := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	_, second := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, second)
	assert.Equal(t, uint64(1), view.State().Seq)
}

func TestView_StaleCompletionIgnored(t *testing.T) {
	backend := &MockBackend{SearchFunc: func(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
		if req.Query == "lake house" {
			return lakeHouse(), nil
		}
		return &domain.SearchResponse{Query: req.Query}, nil
	}}
	view := newTestView(backend, Options{Samples: []string{"lake house", "castle"}})

	_, slow := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	_, fast := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true})

	run(t, view, fast)
	assert.Equal(t, domain.StateEmpty, view.State().State)

	run(t, view, slow)
	assert.Equal(t, domain.StateEmpty, view.State().State)
	assert.Nil(t, view.Rendering())
}

func TestView_Sample(t *testing.T) {
	backend := &MockBackend{}
	view := newTestView(backend, Options{Limit: 3, Samples: []string{"modern apartment with balcony"}})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	run(t, view, cmd)

	assert.Equal(t, "modern apartment with balcony", view.Query())
	assert.Equal(t, domain.SearchRequest{Query: "modern apartment with balcony", Limit: 3}, backend.last)
}

func TestView_Sample_Unbound(t *testing.T) {
	backend := &MockBackend{}
	view := newTestView(backend, Options{Samples: []string{"only one"}})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}, Alt: true})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, backend.calls)
}

func TestView_View_ShowsSamples(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{Samples: []string{"lake house"}})

	out := view.View()

	assert.Contains(t, out, "[alt+1]")
	assert.Contains(t, out, "lake house")
}

func TestView_CycleLimit(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{Limit: 5})

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 10, view.Limit())

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 20, view.Limit())

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 3, view.Limit())
}

func TestView_ResultsNavigation(t *testing.T) {
	backend := &MockBackend{SearchFunc: func(_ context.Context, _ domain.SearchRequest) (*domain.SearchResponse, error) {
		return lakeHouse(), nil
	}}
	view := newTestView(backend, Options{})
	view.SetQuery("lake house")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, view, cmd)
	require.False(t, view.InputFocused())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_EscReturnsToInput(t *testing.T) {
	backend := &MockBackend{SearchFunc: func(_ context.Context, _ domain.SearchRequest) (*domain.SearchResponse, error) {
		return lakeHouse(), nil
	}}
	view := newTestView(backend, Options{})
	view.SetQuery("lake house")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, view, cmd)

	view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, view.InputFocused())
	assert.Equal(t, "lake house", view.Query())
	assert.Equal(t, domain.StateResults, view.State().State)
}

func TestView_NewSearch(t *testing.T) {
	backend := &MockBackend{SearchFunc: func(_ context.Context, _ domain.SearchRequest) (*domain.SearchResponse, error) {
		return lakeHouse(), nil
	}}
	view := newTestView(backend, Options{})
	view.SetQuery("lake house")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, view, cmd)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())
	assert.Equal(t, domain.StateIdle, view.State().State)
	assert.Nil(t, view.Rendering())
}

func TestView_HealthChecked(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{})
	count := 42

	view.Update(messages.HealthChecked{Indicator: domain.ConnectedIndicator(domain.StatusResponse{
		Status: domain.StatusHealthy, DocumentCount: &count, HTTPStatus: 200,
	})})

	assert.Equal(t, domain.HealthConnected, view.Health().Level)
	assert.Contains(t, view.View(), "Connected (42 documents)")
}

func TestView_HealthDoesNotBlockSearch(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{})
	view.Update(messages.HealthChecked{Indicator: domain.OfflineIndicator()})
	view.SetQuery("castle")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotNil(t, cmd)
	assert.Equal(t, domain.StateLoading, view.State().State)
}

func TestView_SpinnerTickIgnoredWhenIdle(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{})

	_, cmd := view.Update(view.spinner.Tick())

	assert.Nil(t, cmd)
}

func TestView_TypingGoesToInput(t *testing.T) {
	view := newTestView(&MockBackend{}, Options{})

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})

	assert.Equal(t, "hi", view.Query())
}

func TestView_ApplySettings(t *testing.T) {
	v := NewView(nil, nil, nil, Options{Limit: 5, Samples: []string{"loft"}})

	v.ApplySettings(Options{Limit: 10, Samples: []string{"villa", "cabin"}})

	assert.Equal(t, 10, v.Limit())
	assert.Contains(t, v.View(), "villa")
	assert.NotContains(t, v.View(), "loft")
}
