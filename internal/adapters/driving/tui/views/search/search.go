// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

// EmptyNotice is shown when a search succeeds with no results.
const EmptyNotice = "No results found. Try a different query."

// Options configures the form.
type Options struct {
	// Limit is the initial result limit.
	Limit int

	// Samples are the one-key sample queries, at most keymap.MaxSamples.
	Samples []string
}

// View is the search form, the single visible outcome region and the status bar.
// All visibility decisions come from the controller's ViewState.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar
	spinner   spinner.Model

	controller driving.SearchController
	samples    []string
	ctx        context.Context

	state      domain.ViewState
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	controller driving.SearchController,
	opts Options,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultAppSettings().Search.DefaultLimit
	}
	samples := opts.Samples
	if len(samples) > keymap.MaxSamples {
		samples = samples[:keymap.MaxSamples]
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Subtitle

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s, limit),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		spinner:    sp,
		controller: controller,
		samples:    samples,
		ctx:        context.Background(),
		state:      domain.IdleViewState(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context used for backend requests.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.HealthChecked:
		v.statusbar.SetHealth(msg.Indicator)
		return v, nil

	case spinner.TickMsg:
		if !v.state.LoadingVisible() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if idx := v.keymap.SampleIndex(keyStr); idx >= 0 {
		if idx >= len(v.samples) {
			return v, nil
		}
		v.input.SetValue(v.samples[idx])
		return v, v.submit(v.samples[idx])
	}

	if msg.Type == tea.KeyEsc {
		if !v.focusInput {
			return v, v.focusQuery()
		}
		return v, nil
	}

	if v.focusInput {
		switch {
		case msg.Type == tea.KeyEnter:
			if !v.input.SubmitEnabled() {
				return v, nil
			}
			return v, v.submit(v.input.Value())
		case keymap.Matches(keyStr, v.keymap.Limit):
			v.input.CycleLimit()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch keyStr {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "n":
		v.Reset()
		return v, v.input.Focus()
	}

	return v, nil
}

// submit begins a search and schedules its execution off the update loop.
func (v *View) submit(query string) tea.Cmd {
	if v.controller == nil {
		v.err = ErrNoSearchController
		return nil
	}
	v.err = nil

	ticket, err := v.controller.Begin(query, v.input.Limit())
	v.sync()
	if err != nil {
		return nil
	}

	ctrl, ctx := v.controller, v.ctx
	execute := func() tea.Msg {
		return messages.SearchCompleted{Outcome: ctrl.Execute(ctx, ticket)}
	}
	return tea.Batch(execute, v.spinner.Tick)
}

// handleSearchCompleted applies an outcome; stale outcomes change nothing.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if v.controller == nil || !v.controller.Complete(msg.Outcome) {
		return
	}
	v.sync()
}

// sync copies the controller's state into every component.
func (v *View) sync() {
	v.state = v.controller.State()

	v.input.SetSubmit(v.state.SubmitLabel, v.state.SubmitEnabled)
	v.list.SetRendering(v.state.Rendering)
	v.statusbar.SetViewState(v.state)

	if v.state.ResultsVisible() {
		v.focusInput = false
		v.input.Blur()
	}
	v.statusbar.SetFocusList(!v.focusInput)
}

func (v *View) focusQuery() tea.Cmd {
	v.focusInput = true
	v.statusbar.SetFocusList(false)
	return v.input.Focus()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Seekr") + "  " + v.styles.Muted.Render("semantic property search")
	sections = append(sections, header, "", v.input.View())

	if samples := v.renderSamples(); samples != "" {
		sections = append(sections, samples)
	}
	sections = append(sections, "")

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.state.LoadingVisible():
		sections = append(sections, v.spinner.View()+" "+v.styles.Subtitle.Render(domain.SubmitLabelBusy))
	case v.state.ResultsVisible():
		sections = append(sections, v.list.View())
	case v.state.EmptyVisible():
		sections = append(sections, v.styles.Muted.Render(EmptyNotice))
	case v.state.ErrorVisible():
		sections = append(sections, v.styles.Error.Render("Error: "+v.state.ErrorMessage))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderSamples() string {
	if len(v.samples) == 0 {
		return ""
	}
	parts := make([]string, 0, len(v.samples))
	for i, label := range v.samples {
		parts = append(parts, fmt.Sprintf("%s %s",
			v.styles.Subtitle.Render(fmt.Sprintf("[alt+%d]", i+1)),
			v.styles.Normal.Render(label)))
	}
	return v.styles.Muted.Render("Try: ") + strings.Join(parts, "  ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, form, samples and status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// ApplySettings replaces the sample queries and the selected limit.
func (v *View) ApplySettings(opts Options) {
	if opts.Limit > 0 {
		v.input.SetLimit(opts.Limit)
	}
	v.samples = opts.Samples
	if len(v.samples) > keymap.MaxSamples {
		v.samples = v.samples[:keymap.MaxSamples]
	}
}

// Limit returns the selected result limit.
func (v *View) Limit() int {
	return v.input.Limit()
}

// State returns the last ViewState applied to the view.
func (v *View) State() domain.ViewState {
	return v.state
}

// Rendering returns the results currently shown, if any.
func (v *View) Rendering() *domain.Rendering {
	return v.list.Rendering()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Health returns the indicator shown in the status bar.
func (v *View) Health() domain.HealthIndicator {
	return v.statusbar.Health()
}

// Err returns the view's own error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused reports whether keys go to the query field.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset clears the form and discards any outstanding search.
func (v *View) Reset() {
	v.err = nil
	if v.controller != nil {
		v.controller.Reset()
		v.sync()
	}
	v.input.Reset()
	v.focusInput = true
	v.statusbar.SetFocusList(false)
	v.input.Focus()
}
