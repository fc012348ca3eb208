package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/kbukum/loginauth/component"
	"github.com/kbukum/loginauth/logger"
)

// Component wraps DB and implements component.Component for lifecycle management.
type Component struct {
	db        *DB
	cfg       Config
	log       *logger.Logger
	migration fs.FS
	dir       string
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a database component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Component{
		cfg: cfg,
		log: log.WithComponent("database"),
	}
}

// WithMigrations registers the migrations applied on Start when
// auto_migrate is enabled.
func (c *Component) WithMigrations(fsys fs.FS, dir string) *Component {
	c.migration = fsys
	c.dir = dir
	return c
}

// DB returns the underlying *DB, or nil if not started.
func (c *Component) DB() *DB { return c.db }

// Name returns the component name.
func (c *Component) Name() string { return "database" }

// Start connects to the database and optionally runs migrations.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info("Database disabled")
		return nil
	}
	db, err := Open(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}
	c.db = db

	if c.cfg.AutoMigrate && c.migration != nil {
		if err := c.db.Migrate(c.migration, c.dir); err != nil {
			_ = c.db.Close()
			c.db = nil
			return fmt.Errorf("database migrate: %w", err)
		}
	}
	return nil
}

// Stop closes the database connection.
func (c *Component) Stop(_ context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Health pings the database.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case !c.cfg.Enabled:
		h.Status = component.StatusDisabled
	case c.db == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "database not initialized"
	default:
		if err := c.db.PingContext(ctx); err != nil {
			h.Status = component.StatusUnhealthy
			h.Message = fmt.Sprintf("ping failed: %v", err)
		}
	}
	return h
}

// Describe returns the startup summary line.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("driver=%s pool=%d/%d", c.cfg.Driver, c.cfg.MaxOpenConns, c.cfg.MaxIdleConns)
	if c.cfg.AutoMigrate {
		details += " auto-migrate=on"
	}
	return component.Description{Name: "Database", Type: "database", Details: details}
}
