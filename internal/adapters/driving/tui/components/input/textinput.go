// Package input provides the query form for the TUI.
package input

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
)

// SearchInput is the query field, limit selector and submit control.
type SearchInput struct {
	textinput     textinput.Model
	styles        *styles.Styles
	width         int
	limit         int
	submitLabel   string
	submitEnabled bool
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles, limit int) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "e.g. modern apartment with balcony"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return &SearchInput{
		textinput:     ti,
		styles:        s,
		width:         50,
		limit:         limit,
		submitLabel:   domain.SubmitLabelIdle,
		submitEnabled: true,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the form on one line.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search: ")
	field := s.styles.InputField.Render(s.textinput.View())
	limit := s.styles.Muted.Render(fmt.Sprintf("  Limit: %d  ", s.limit))

	button := s.styles.Selected.Render("[ " + s.submitLabel + " ]")
	if !s.submitEnabled {
		button = s.styles.Muted.Render("[ " + s.submitLabel + " ]")
	}

	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field, limit, button)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Limit returns the selected result limit.
func (s *SearchInput) Limit() int {
	return s.limit
}

// SetLimit sets the result limit.
func (s *SearchInput) SetLimit(limit int) {
	s.limit = limit
}

// CycleLimit moves to the next limit option.
func (s *SearchInput) CycleLimit() {
	s.limit = domain.NextLimit(s.limit)
}

// SetSubmit mirrors the submit control from a ViewState.
func (s *SearchInput) SetSubmit(label string, enabled bool) {
	s.submitLabel = label
	s.submitEnabled = enabled
}

// SubmitEnabled reports whether the submit control accepts input.
func (s *SearchInput) SubmitEnabled() bool {
	return s.submitEnabled
}

// SubmitLabel returns the submit control caption.
func (s *SearchInput) SubmitLabel() string {
	return s.submitLabel
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for label, limit and submit control
	inputWidth := width - 44
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
