// Package component defines the lifecycle contract of the service's
// infrastructure pieces (database, HTTP server) and a registry that starts
// them in order and stops them in reverse.
package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDisabled  HealthStatus = "disabled"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed infrastructure component.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description is a one-line summary for the startup log.
type Description struct {
	Name    string
	Type    string
	Details string
}

// Describable is optionally implemented by components to self-report how
// they are configured.
type Describable interface {
	Describe() Description
}

// Healthy reports whether every result is healthy or disabled.
func Healthy(results []Health) bool {
	for _, h := range results {
		if h.Status == StatusUnhealthy {
			return false
		}
	}
	return true
}
