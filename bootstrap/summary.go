package bootstrap

import (
	"context"
	"sort"
	"time"

	"github.com/kbukum/loginauth/component"
	"github.com/kbukum/loginauth/logger"
)

// RouteInfo is a registered HTTP route.
type RouteInfo struct {
	Method string
	Path   string
}

// Summary collects what the application started with and logs it once
// startup completes.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	routes          []RouteInfo
}

// NewSummary creates a Summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackRoute records a registered route.
func (s *Summary) TrackRoute(method, path string) {
	s.routes = append(s.routes, RouteInfo{Method: method, Path: path})
}

// Routes returns the tracked routes sorted by path, then method.
func (s *Summary) Routes() []RouteInfo {
	out := make([]RouteInfo, len(s.routes))
	copy(out, s.routes)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// Log writes the summary: one line for the service, one per component
// and one per route.
func (s *Summary) Log(ctx context.Context, registry *component.Registry, log *logger.Logger) {
	log.Info("Service started", map[string]interface{}{
		"service": s.serviceName,
		"version": s.version,
		"startup": s.startupDuration.String(),
		"routes":  len(s.routes),
	})
	if registry != nil {
		for _, h := range registry.HealthAll(ctx) {
			fields := map[string]interface{}{
				"component": h.Name,
				"status":    string(h.Status),
			}
			if h.Message != "" {
				fields["message"] = h.Message
			}
			log.Info("Component status", fields)
		}
	}
	for _, r := range s.Routes() {
		log.Debug("Route", map[string]interface{}{"method": r.Method, "path": r.Path})
	}
}
