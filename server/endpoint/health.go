// Package endpoint holds the operational HTTP endpoints.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/loginauth/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string             `json:"status"`
	Service    string             `json:"service"`
	Timestamp  time.Time          `json:"timestamp"`
	Components []component.Health `json:"components"`
}

// Health reports component statuses. Any unhealthy component turns the
// response into 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:     "healthy",
			Service:    serviceName,
			Timestamp:  time.Now().UTC().Truncate(time.Second),
			Components: []component.Health{},
		}
		if checker != nil {
			resp.Components = append(resp.Components, checker(c.Request.Context())...)
		}

		code := http.StatusOK
		if !component.Healthy(resp.Components) {
			resp.Status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}
