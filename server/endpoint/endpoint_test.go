package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/loginauth/component"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func serve(t *testing.T, path string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET(path, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rr
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantCode   int
		wantStatus string
		wantCount  int
	}{
		{"no checker", nil, http.StatusOK, "healthy", 0},
		{"healthy", func(context.Context) []component.Health {
			return []component.Health{{Name: "database", Status: component.StatusHealthy}}
		}, http.StatusOK, "healthy", 1},
		{"unhealthy", func(context.Context) []component.Health {
			return []component.Health{
				{Name: "database", Status: component.StatusUnhealthy, Message: "ping failed"},
				{Name: "http-server", Status: component.StatusHealthy},
			}
		}, http.StatusServiceUnavailable, "unhealthy", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, "/health", Health("loginauth", tt.checker))
			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantStatus || resp.Service != "loginauth" {
				t.Errorf("unexpected response: %+v", resp)
			}
			if len(resp.Components) != tt.wantCount {
				t.Errorf("expected %d components, got %d", tt.wantCount, len(resp.Components))
			}
		})
	}
}

func TestInfo(t *testing.T) {
	rr := serve(t, "/info", Info("loginauth"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"service", "version", "go_version", "started_at", "uptime"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing %q in %v", key, body)
		}
	}
	if body["service"] != "loginauth" {
		t.Errorf("unexpected service %v", body["service"])
	}
}
