package driving

import "github.com/custodia-labs/seekr/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings: defaults, then file, then environment.
	Get() (*domain.AppSettings, error)

	// Save persists settings to the config store.
	Save(settings *domain.AppSettings) error

	// Set stores a single dot-notation key after validating the result.
	Set(key, value string) error

	// Validate checks the effective settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the recognised configuration keys.
	Keys() []string
}
