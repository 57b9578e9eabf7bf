package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// searchView is the form and results view.
	searchView *search.View

	// settingsView edits the stored settings.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	opts, err := searchOptions(ports)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		searchView:   search.NewView(s, km, ports.Search, opts),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewSearch,
	}, nil
}

// searchOptions reads the default limit and sample queries.
func searchOptions(ports *Ports) (search.Options, error) {
	if ports.Settings == nil {
		return search.Options{}, nil
	}
	s, err := ports.Settings.Get()
	if err != nil {
		return search.Options{}, err
	}
	return search.Options{
		Limit:   s.Search.DefaultLimit,
		Samples: s.Search.SampleQueries,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It sets the title, starts the cursor and fires the one-off status probe.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("seekr - Semantic Search"),
		a.searchView.Init(),
		a.checkStatus(),
	)
}

// checkStatus probes the backend once. The indicator is passive and is
// never re-polled during the session.
func (a *App) checkStatus() tea.Cmd {
	monitor, ctx := a.ports.Health, a.ctx
	return func() tea.Msg {
		return messages.HealthChecked{Indicator: monitor.CheckStatus(ctx)}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		if msg.Err == nil {
			a.applySettings()
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Search results, health and spinner ticks always go to the search
	// view so state stays current while help is shown.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewSettings {
		var cmd tea.Cmd
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	if a.currentView == messages.ViewHelp {
		switch {
		case msg.Type == tea.KeyEsc, keymap.Matches(msg.String(), a.keymap.Help):
			a.currentView = messages.ViewSearch
		case msg.String() == "q":
			return a, tea.Quit
		}
		return a, nil
	}

	// q and ? are ordinary characters while typing a query.
	if !a.searchView.InputFocused() {
		switch {
		case msg.String() == "q":
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			a.currentView = messages.ViewHelp
			return a, nil
		case keymap.Matches(msg.String(), a.keymap.Settings):
			a.currentView = messages.ViewSettings
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		}
	}

	var cmd tea.Cmd
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the key bindings.
func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Help"),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.styles.Muted.Render("[esc] back to search"),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	logger.Debug("Starting TUI")
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// State returns the search view's current state.
func (a *App) State() domain.ViewState {
	return a.searchView.State()
}

// Health returns the status indicator.
func (a *App) Health() domain.HealthIndicator {
	return a.searchView.Health()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}

// applySettings pushes saved search settings into the search view.
func (a *App) applySettings() {
	opts, err := searchOptions(a.ports)
	if err != nil {
		logger.Warn("Reload settings: %v", err)
		return
	}
	a.searchView.ApplySettings(opts)
}
