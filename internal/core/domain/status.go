package domain

import "fmt"

// StatusHealthy is the only status value treated as connected.
const StatusHealthy = "healthy"

// StatusResponse is the reply from the status probe.
type StatusResponse struct {
	// Status is "healthy" or anything else.
	Status string `json:"status"`

	// DocumentCount is the number of indexed documents, when reported.
	DocumentCount *int `json:"document_count,omitempty"`

	// Collection names the backing collection, when reported.
	Collection string `json:"collection,omitempty"`

	// HTTPStatus is the response code the body arrived with.
	HTTPStatus int `json:"-"`
}

// IsHealthy reports a 2xx reply whose status is "healthy".
func (s StatusResponse) IsHealthy() bool {
	return s.HTTPStatus >= 200 && s.HTTPStatus < 300 && s.Status == StatusHealthy
}

// HealthLevel classifies the status indicator.
type HealthLevel int

const (
	// HealthUnknown means no probe has completed yet.
	HealthUnknown HealthLevel = iota
	// HealthConnected means the backend answered healthy.
	HealthConnected
	// HealthConnectionError means the backend answered but not healthy.
	HealthConnectionError
	// HealthOffline means the probe failed at the transport level.
	HealthOffline
)

// String returns the string representation of the level.
func (l HealthLevel) String() string {
	switch l {
	case HealthUnknown:
		return "unknown"
	case HealthConnected:
		return "connected"
	case HealthConnectionError:
		return "connection_error"
	case HealthOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Positive reports whether the indicator should use the success style.
func (l HealthLevel) Positive() bool {
	return l == HealthConnected
}

// HealthIndicator is the passive status display.
type HealthIndicator struct {
	Level         HealthLevel
	Label         string
	DocumentCount *int
	Collection    string
}

// UnknownIndicator is shown before the startup probe resolves.
func UnknownIndicator() HealthIndicator {
	return HealthIndicator{Level: HealthUnknown, Label: "Checking..."}
}

// ConnectedIndicator builds the positive indicator for a healthy reply.
func ConnectedIndicator(resp StatusResponse) HealthIndicator {
	label := "Connected"
	if resp.DocumentCount != nil {
		label = fmt.Sprintf("Connected (%d documents)", *resp.DocumentCount)
	}
	return HealthIndicator{
		Level:         HealthConnected,
		Label:         label,
		DocumentCount: resp.DocumentCount,
		Collection:    resp.Collection,
	}
}

// ConnectionErrorIndicator is shown for an unhealthy or malformed reply.
func ConnectionErrorIndicator() HealthIndicator {
	return HealthIndicator{Level: HealthConnectionError, Label: "Connection Error"}
}

// OfflineIndicator is shown when the probe could not complete.
func OfflineIndicator() HealthIndicator {
	return HealthIndicator{Level: HealthOffline, Label: "Offline"}
}
