// Package settings provides the settings editor view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/core/services"
)

// ErrNoSettingsService is shown when the view has nothing to edit.
var ErrNoSettingsService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// field is one editable row.
type field struct {
	key   string
	label string
}

// fields are listed in display order.
var fields = []field{
	{key: services.KeyBackendURL, label: "Backend URL"},
	{key: services.KeyBackendTimeout, label: "Timeout (s)"},
	{key: services.KeyBackendAPIKey, label: "API Key"},
	{key: services.KeyBackendRate, label: "Rate Limit (req/s)"},
	{key: services.KeySearchLimit, label: "Default Limit"},
	{key: services.KeySearchSamples, label: "Sample Queries"},
	{key: services.KeyWebAddr, label: "Web Address"},
}

// View is the settings editor view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	notice   string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	input := textinput.New()
	input.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           input,
	}
}

// Init loads the effective settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) save(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		v.notice = "Saved " + msg.Key
		v.stopEditing()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		switch msg.String() {
		case keyEsc:
			v.err = nil
			v.stopEditing()
			return v, nil
		case keyEnter:
			return v, v.save(fields[v.selected].key, v.input.Value())
		default:
			var cmd tea.Cmd
			v.input, cmd = v.input.Update(msg)
			return v, cmd
		}
	}

	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		return v, v.startEditing()
	}
	return v, nil
}

func (v *View) startEditing() tea.Cmd {
	f := fields[v.selected]
	v.editing = true
	v.notice = ""
	v.input.EchoMode = textinput.EchoNormal
	if f.key == services.KeyBackendAPIKey {
		v.input.EchoMode = textinput.EchoPassword
	}
	v.input.SetValue(editValue(v.settings, f.key))
	v.input.CursorEnd()
	return v.input.Focus()
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.SetValue("")
	v.input.Blur()
}

// displayValue is the value shown in the list; the API key is masked.
func displayValue(s *domain.AppSettings, key string) string {
	switch key {
	case services.KeyBackendAPIKey:
		if s.Backend.APIKey == "" {
			return "(not set)"
		}
		return maskAPIKey(s.Backend.APIKey)
	case services.KeyBackendRate:
		if s.Backend.RateLimit <= 0 {
			return "unlimited"
		}
	case services.KeySearchSamples:
		if len(s.Search.SampleQueries) == 0 {
			return "(none)"
		}
	}
	return editValue(s, key)
}

// editValue is the text the editor starts from.
func editValue(s *domain.AppSettings, key string) string {
	switch key {
	case services.KeyBackendURL:
		return s.Backend.URL
	case services.KeyBackendTimeout:
		return strconv.Itoa(s.Backend.TimeoutSec)
	case services.KeyBackendRate:
		return strconv.FormatFloat(s.Backend.RateLimit, 'g', -1, 64)
	case services.KeySearchLimit:
		return strconv.Itoa(s.Search.DefaultLimit)
	case services.KeySearchSamples:
		return strings.Join(s.Search.SampleQueries, ", ")
	case services.KeyWebAddr:
		return s.Web.Addr
	default:
		return ""
	}
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	for i, f := range fields {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s", indicator, f.label, displayValue(v.settings, f.key))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("New value for " + fields[v.selected].key))
		b.WriteString("\n")
		b.WriteString(v.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Backend changes apply on the next start."))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Muted.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Muted.Render("[j/k] navigate  [enter] edit  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	if width > 4 {
		v.input.Width = width - 4
	}
}

// Editing reports whether keys go to the value editor.
func (v *View) Editing() bool {
	return v.editing
}

// Selected returns the key of the highlighted row.
func (v *View) Selected() string {
	return fields[v.selected].key
}

// Settings returns the last settings loaded.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}

// Reset returns to the top of the list and discards any edit.
func (v *View) Reset() {
	v.selected = 0
	v.err = nil
	v.notice = ""
	v.stopEditing()
}
