// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. They never touch presentation
// directly: adapters render the ViewState and HealthIndicator values
// these services produce.
package services
