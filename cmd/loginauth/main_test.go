package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/loginauth/component"
	"github.com/kbukum/loginauth/logger"
	"github.com/kbukum/loginauth/user"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *AppConfig {
	t.Helper()
	cfg := &AppConfig{}
	cfg.Name = serviceName
	cfg.Auth.Token.Secret = "main-test-secret"
	cfg.Auth.Password.BcryptCost = 4
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func TestNewServer_Routes(t *testing.T) {
	cfg := testConfig(t)
	srv, err := newServer(cfg, deps{
		users:  user.NewMemoryRepository(),
		health: func(context.Context) []component.Health { return nil },
		log:    logger.NewNop(),
	})
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	h := srv.Handler()

	call := func(method, path, bearer, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for _, path := range []string{"/health", "/info"} {
		if rr := call(http.MethodGet, path, "", ""); rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rr.Code)
		}
	}

	rr := call(http.MethodPost, "/auth/register", "", `{"email":"a@x.com","password":"secret","name":"A","role":"user"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var reg struct{ Token string }
	if err := json.Unmarshal(rr.Body.Bytes(), &reg); err != nil || reg.Token == "" {
		t.Fatalf("register response %q: %v", rr.Body.String(), err)
	}

	if rr := call(http.MethodGet, "/auth/me", reg.Token, ""); rr.Code != http.StatusOK {
		t.Errorf("me: expected 200, got %d", rr.Code)
	}
	if rr := call(http.MethodGet, "/unknown", reg.Token, ""); rr.Code != http.StatusNotFound {
		t.Errorf("unknown route: expected 404, got %d", rr.Code)
	}
	if rr := call(http.MethodGet, "/unknown", "", ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous unknown route: expected 401, got %d", rr.Code)
	}
}

func TestNewServer_MissingSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Token.Secret = ""
	if _, err := newServer(cfg, deps{users: user.NewMemoryRepository(), log: logger.NewNop()}); err == nil {
		t.Fatal("expected an error without a signing key")
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_SecretFromEnv(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "environment: staging\nauth:\n  token:\n    ttl: 1h\n")
	t.Setenv("AUTH_TOKEN_SECRET", "env-secret")

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Name != serviceName || cfg.Environment != "staging" {
		t.Errorf("unexpected service config: %+v", cfg.ServiceConfig)
	}
	if cfg.Auth.Token.Secret != "env-secret" || cfg.Auth.Token.TTL.String() != "1h0m0s" {
		t.Errorf("unexpected token config: ttl=%s secret set=%v", cfg.Auth.Token.TTL, cfg.Auth.Token.Secret != "")
	}
}

func TestRun_Migrate(t *testing.T) {
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "users.db")
	path := writeConfig(t, dir, "logging:\n  level: error\n  format: json\ndatabase:\n  enabled: true\n  driver: sqlite\n  dsn: \""+dsn+"\"\n")
	t.Setenv("AUTH_TOKEN_SECRET", "migrate-secret")

	for _, direction := range []string{"up", "up", "down"} {
		if err := run(context.Background(), []string{"--config", path, "migrate", direction}); err != nil {
			t.Fatalf("migrate %s: %v", direction, err)
		}
	}
}

func TestRun_Usage(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "logging:\n  level: error\n")
	t.Setenv("AUTH_TOKEN_SECRET", "usage-secret")

	tests := [][]string{
		{"--config", path, "bogus"},
		{"--config", path, "migrate"},
		{"--config", path, "migrate", "sideways"},
		{"--no-such-flag"},
	}
	for _, args := range tests {
		if err := run(context.Background(), args); err == nil {
			t.Errorf("run(%v): expected error", args)
		}
	}
}

func TestRun_Version(t *testing.T) {
	if err := run(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("run --version: %v", err)
	}
}
