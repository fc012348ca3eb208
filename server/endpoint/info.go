package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/loginauth/version"
)

var startTime = time.Now()

// InfoResponse is the body of GET /info.
type InfoResponse struct {
	Service string `json:"service"`
	version.Info
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

// Info reports the build and process information. Build information is
// resolved once.
func Info(serviceName string) gin.HandlerFunc {
	build := version.GetVersionInfo()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoResponse{
			Service:   serviceName,
			Info:      build,
			StartedAt: startTime.UTC().Truncate(time.Second),
			Uptime:    time.Since(startTime).Round(time.Second).String(),
		})
	}
}
