// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

// SearchCompleted carries an executed ticket back to Update.
type SearchCompleted struct {
	Outcome driving.Outcome
}

// HealthChecked carries the result of the one-off status probe.
type HealthChecked struct {
	Indicator domain.HealthIndicator
}

// SettingsLoaded carries the effective settings read for the settings view.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved reports the result of storing one key.
type SettingsSaved struct {
	Key string
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search form and results view.
	ViewSearch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings editor.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Quit signals the application should exit.
type Quit struct{}
