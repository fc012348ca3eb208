package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/kbukum/loginauth/component"
	"github.com/kbukum/loginauth/logger"
)

var testMigrations = fstest.MapFS{
	"sql/000001_create_notes.up.sql":   {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);")},
	"sql/000001_create_notes.down.sql": {Data: []byte("DROP TABLE notes;")},
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Enabled:     true,
		Driver:      DriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "test.db"),
		AutoMigrate: true,
		MaxRetries:  1,
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	comp := NewComponent(testConfig(t), logger.NewNop()).WithMigrations(testMigrations, "sql")
	ctx := context.Background()

	if comp.DB() != nil {
		t.Error("DB() should be nil before Start")
	}
	if h := comp.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("Health before Start = %q, want unhealthy", h.Status)
	}

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("Health after Start = %q (%s), want healthy", h.Status, h.Message)
	}

	if err := comp.DB().WithContext(ctx).Exec("INSERT INTO notes (body) VALUES (?)", "hi").Error; err != nil {
		t.Fatalf("migrated table not usable: %v", err)
	}

	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := comp.DB().Close(); err != nil {
		t.Errorf("second Close must be a no-op, got %v", err)
	}
}

func TestComponent_Disabled(t *testing.T) {
	comp := NewComponent(Config{Enabled: false}, nil)
	ctx := context.Background()

	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if comp.DB() != nil {
		t.Error("disabled component must not open a connection")
	}
	if h := comp.Health(ctx); h.Status != component.StatusDisabled {
		t.Errorf("Health = %q, want disabled", h.Status)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, testConfig(t), logger.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(testMigrations, "sql"); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := db.Migrate(testMigrations, "sql"); err != nil {
		t.Fatalf("second Migrate must be a no-op, got %v", err)
	}
	if err := db.MigrateDown(testMigrations, "sql"); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}
	if err := db.WithContext(ctx).Exec("SELECT 1 FROM notes").Error; err == nil {
		t.Error("expected notes table to be dropped")
	}
}

func TestOpen_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Open(ctx, testConfig(t), nil); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestComponent_Describe(t *testing.T) {
	d := NewComponent(testConfig(t), nil).Describe()
	if d.Type != "database" || d.Details == "" {
		t.Errorf("unexpected description: %+v", d)
	}
}
