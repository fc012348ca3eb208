// Package database provides the GORM-backed persistence plumbing: connection
// with retry, a logger adapter, versioned migrations through golang-migrate,
// and a lifecycle component.
//
//	comp := database.NewComponent(cfg.Database, log).
//	    WithMigrations(user.Migrations, user.MigrationsDir)
//	registry.Register(comp)
//
// SQLite (mattn/go-sqlite3 through gorm.io/driver/sqlite) and PostgreSQL are
// supported. When the component is disabled, Start is a no-op and Health
// reports "disabled".
package database
