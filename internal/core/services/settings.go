package services

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driven"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBackendURL     = "backend.url"
	KeyBackendTimeout = "backend.timeout_sec"
	KeyBackendAPIKey  = "backend.api_key"
	KeyBackendRate    = "backend.rate_limit"
	KeySearchLimit    = "search.default_limit"
	KeySearchSamples  = "search.sample_queries"
	KeyWebAddr        = "web.addr"
)

const (
	envPrefix       = "SEEKR_"
	sampleSeparator = ","
)

// EnvName returns the environment variable that overrides key.
// backend.timeout_sec becomes SEEKR_BACKEND_TIMEOUT_SEC.
func EnvName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// SettingsService manages application settings.
//
// Precedence, lowest first: defaults, config file, .env file, process
// environment.
type SettingsService struct {
	configStore driven.ConfigStore
	dotenv      map[string]string
	lookupEnv   func(string) (string, bool)
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
// envFile names an optional dotenv file; a missing file is ignored.
func NewSettingsService(configStore driven.ConfigStore, envFile string) (*SettingsService, error) {
	s := &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
		validate:    validator.New(),
	}

	if envFile != "" {
		values, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		s.dotenv = values
	}

	return s, nil
}

// WithLookupEnv replaces the process environment lookup.
func (s *SettingsService) WithLookupEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			URL:        s.getString(KeyBackendURL, defaults.Backend.URL),
			TimeoutSec: s.getInt(KeyBackendTimeout, defaults.Backend.TimeoutSec),
			APIKey:     s.configStore.GetString(KeyBackendAPIKey),
			RateLimit:  s.configStore.GetFloat(KeyBackendRate),
		},
		Search: domain.SearchSettings{
			DefaultLimit:  s.getInt(KeySearchLimit, defaults.Search.DefaultLimit),
			SampleQueries: s.getStringSlice(KeySearchSamples, defaults.Search.SampleQueries),
		},
		Web: domain.WebSettings{
			Addr: s.getString(KeyWebAddr, defaults.Web.Addr),
		},
	}

	for _, key := range s.Keys() {
		value, ok := s.override(key)
		if !ok {
			continue
		}
		if err := apply(settings, key, value); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvName(key), err)
		}
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.check(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyBackendURL, settings.Backend.URL); err != nil {
		return fmt.Errorf("save backend url: %w", err)
	}
	if err := s.configStore.Set(KeyBackendTimeout, settings.Backend.TimeoutSec); err != nil {
		return fmt.Errorf("save backend timeout: %w", err)
	}
	if settings.Backend.APIKey != "" {
		if err := s.configStore.Set(KeyBackendAPIKey, settings.Backend.APIKey); err != nil {
			return fmt.Errorf("save backend api_key: %w", err)
		}
	}
	if err := s.configStore.Set(KeyBackendRate, settings.Backend.RateLimit); err != nil {
		return fmt.Errorf("save backend rate_limit: %w", err)
	}
	if err := s.configStore.Set(KeySearchLimit, settings.Search.DefaultLimit); err != nil {
		return fmt.Errorf("save default limit: %w", err)
	}
	if err := s.configStore.Set(KeySearchSamples, settings.Search.SampleQueries); err != nil {
		return fmt.Errorf("save sample queries: %w", err)
	}
	if err := s.configStore.Set(KeyWebAddr, settings.Web.Addr); err != nil {
		return fmt.Errorf("save web addr: %w", err)
	}

	return nil
}

// Set parses value for key, validates the resulting settings and stores it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := apply(settings, key, value); err != nil {
		return err
	}
	if err := s.check(settings); err != nil {
		return err
	}

	var stored any
	switch key {
	case KeyBackendTimeout:
		stored = settings.Backend.TimeoutSec
	case KeySearchLimit:
		stored = settings.Search.DefaultLimit
	case KeyBackendRate:
		stored = settings.Backend.RateLimit
	case KeySearchSamples:
		stored = settings.Search.SampleQueries
	default:
		stored = strings.TrimSpace(value)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks the effective settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.check(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the recognised configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyBackendURL, KeyBackendTimeout, KeyBackendAPIKey, KeyBackendRate,
		KeySearchLimit, KeySearchSamples, KeyWebAddr,
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) check(settings *domain.AppSettings) error {
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// override returns the environment value for key, process environment first.
func (s *SettingsService) override(key string) (string, bool) {
	name := EnvName(key)
	if s.lookupEnv != nil {
		if v, ok := s.lookupEnv(name); ok {
			return v, true
		}
	}
	v, ok := s.dotenv[name]
	return v, ok
}

// apply parses value into the field addressed by key.
func apply(settings *domain.AppSettings, key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyBackendURL:
		settings.Backend.URL = value
	case KeyBackendAPIKey:
		settings.Backend.APIKey = value
	case KeyWebAddr:
		settings.Web.Addr = value
	case KeyBackendTimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Backend.TimeoutSec = n
	case KeySearchLimit:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Search.DefaultLimit = n
	case KeyBackendRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Backend.RateLimit = f
	case KeySearchSamples:
		settings.Search.SampleQueries = splitSamples(value)
	default:
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func splitSamples(value string) []string {
	var out []string
	for _, part := range strings.Split(value, sampleSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}
