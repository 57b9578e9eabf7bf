// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
)

// Bar shows the search state, the backend health badge and key hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     domain.UIState
	count     int
	health    domain.HealthIndicator
	width     int
	focusList bool
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  domain.StateIdle,
		health: domain.UnknownIndicator(),
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the health badge and search state.
func (s *Bar) renderLeft() string {
	badge := s.styles.Health(s.health.Level).Render("● " + s.health.Label)

	var state string
	switch s.state {
	case domain.StateLoading:
		state = s.styles.Muted.Render("Searching...")
	case domain.StateResults:
		state = s.styles.Normal.Render(fmt.Sprintf("%d shown", s.count))
	case domain.StateEmpty:
		state = s.styles.Muted.Render("No results")
	case domain.StateError:
		state = s.styles.Error.Render("Error")
	default:
		state = s.styles.Muted.Render("Ready")
	}

	return badge + "  " + state
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.focusList {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetViewState mirrors the search state.
func (s *Bar) SetViewState(vs domain.ViewState) {
	s.state = vs.State
	s.count = 0
	if vs.Rendering != nil {
		s.count = len(vs.Rendering.Items)
	}
}

// State returns the mirrored search state.
func (s *Bar) State() domain.UIState {
	return s.state
}

// SetHealth sets the backend health badge.
func (s *Bar) SetHealth(ind domain.HealthIndicator) {
	s.health = ind
}

// Health returns the current health badge.
func (s *Bar) Health() domain.HealthIndicator {
	return s.health
}

// SetFocusList switches hints between form and results.
func (s *Bar) SetFocusList(focus bool) {
	s.focusList = focus
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
