// Command loginauth serves the login and registration API.
//
//	loginauth [--config path] [--env-file path] [serve]
//	loginauth [--config path] migrate up|down
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/loginauth/bootstrap"
	"github.com/kbukum/loginauth/config"
	"github.com/kbukum/loginauth/database"
	"github.com/kbukum/loginauth/user"
	"github.com/kbukum/loginauth/version"
)

const serviceName = "loginauth"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "loginauth:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to config.yml")
	envFile := flags.String("env-file", "", "path to a .env file")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Println(version.GetVersionInfo().String())
		return nil
	}

	cfg, err := loadConfig(*configFile, *envFile)
	if err != nil {
		return err
	}

	rest := flags.Args()
	command := "serve"
	if len(rest) > 0 {
		command = rest[0]
	}
	switch command {
	case "serve":
		return serve(ctx, cfg)
	case "migrate":
		if len(rest) != 2 || (rest[1] != "up" && rest[1] != "down") {
			return fmt.Errorf("usage: %s migrate up|down", serviceName)
		}
		return migrate(ctx, cfg, rest[1])
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func loadConfig(configFile, envFile string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	if cfg.Version == "" {
		cfg.Version = version.Version
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *AppConfig) error {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	app.Logger.Info("Auth configured", app.Cfg.Auth.Describe())

	db := database.NewComponent(cfg.Database, app.Logger).WithMigrations(user.Migrations, user.MigrationsDir)
	if err := app.RegisterComponent(db); err != nil {
		return err
	}
	app.OnStart(func(ctx context.Context) error { return initTelemetry(ctx, app) })
	app.OnConfigure(configure(db))
	return app.Run(ctx)
}

func migrate(ctx context.Context, cfg *AppConfig, direction string) error {
	cfg.Database.AutoMigrate = false
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	if !cfg.Database.Enabled {
		return fmt.Errorf("migrate: database is disabled")
	}

	db := database.NewComponent(cfg.Database, app.Logger)
	if err := app.RegisterComponent(db); err != nil {
		return err
	}
	return app.RunTask(ctx, func(context.Context) error {
		if direction == "down" {
			return db.DB().MigrateDown(user.Migrations, user.MigrationsDir)
		}
		return db.DB().Migrate(user.Migrations, user.MigrationsDir)
	})
}
