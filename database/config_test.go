package database

import (
	"strings"
	"testing"
)

func TestConfig_ApplyDefaults_SQLite(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want %q", cfg.Driver, DriverSQLite)
	}
	if cfg.MaxOpenConns != 1 || cfg.MaxIdleConns != 1 {
		t.Errorf("pool = %d/%d, want 1/1", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "0" || cfg.ConnMaxIdleTime != "0" {
		t.Errorf("sqlite connections must not expire, got %q/%q", cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)
	}
	if cfg.DSN == "" {
		t.Error("expected default DSN")
	}
}

func TestConfig_ApplyDefaults_Postgres(t *testing.T) {
	cfg := Config{Driver: DriverPostgres}
	cfg.ApplyDefaults()

	if cfg.MaxOpenConns != 25 || cfg.MaxIdleConns != 5 {
		t.Errorf("pool = %d/%d, want 25/5", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "1h" {
		t.Errorf("ConnMaxLifetime = %q, want 1h", cfg.ConnMaxLifetime)
	}
	if cfg.DSN != "" {
		t.Errorf("postgres DSN must not be defaulted, got %q", cfg.DSN)
	}
	if cfg.MaxRetries != 5 || cfg.SlowQueryThreshold != "200ms" || cfg.LogLevel != "warn" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid sqlite"},
		{name: "disabled skips checks", mutate: func(c *Config) { c.Enabled = false; c.Driver = "oracle" }},
		{name: "unknown driver", mutate: func(c *Config) { c.Driver = "oracle" }, wantErr: "unsupported"},
		{name: "missing dsn", mutate: func(c *Config) { c.DSN = "" }, wantErr: "DSN"},
		{name: "idle above open", mutate: func(c *Config) { c.MaxIdleConns = 5 }, wantErr: "max_idle_conns"},
		{name: "bad lifetime", mutate: func(c *Config) { c.ConnMaxLifetime = "soon" }, wantErr: "conn_max_lifetime"},
		{name: "bad threshold", mutate: func(c *Config) { c.SlowQueryThreshold = "x" }, wantErr: "slow_query_threshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Enabled: true}
			cfg.ApplyDefaults()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
