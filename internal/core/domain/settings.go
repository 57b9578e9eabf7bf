package domain

import "time"

// BackendSettings configures access to the remote vector-search backend.
type BackendSettings struct {
	// URL is the backend base URL; /status and /search are resolved against it.
	URL string `validate:"required,url"`

	// TimeoutSec bounds each request.
	TimeoutSec int `validate:"min=0"`

	// APIKey is sent as a bearer token when set.
	APIKey string

	// RateLimit caps outgoing requests per second. Zero disables throttling.
	RateLimit float64 `validate:"min=0"`
}

// Timeout returns TimeoutSec as a duration.
func (b BackendSettings) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// SearchSettings configures the search form.
type SearchSettings struct {
	// DefaultLimit pre-fills the limit selector.
	DefaultLimit int `validate:"min=1"`

	// SampleQueries are the shortcut labels offered next to the form.
	SampleQueries []string
}

// WebSettings configures the web front end.
type WebSettings struct {
	Addr string `validate:"required"`
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Backend BackendSettings
	Search  SearchSettings
	Web     WebSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			URL:        "http://localhost:5000",
			TimeoutSec: 30,
		},
		Search: SearchSettings{
			DefaultLimit: 5,
			SampleQueries: []string{
				"modern apartment with balcony",
				"lake house",
				"family home near schools",
				"studio in city centre",
			},
		},
		Web: WebSettings{
			Addr: "127.0.0.1:8080",
		},
	}
}

// LimitOptions are the result limits offered by the search forms.
var LimitOptions = []int{3, 5, 10, 20}

// NextLimit returns the smallest option above current, wrapping to the first.
func NextLimit(current int) int {
	for _, o := range LimitOptions {
		if o > current {
			return o
		}
	}
	return LimitOptions[0]
}
