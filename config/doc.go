// Package config loads service configuration with Viper.
//
// Sources are merged in order of increasing precedence: config.yml, a .env
// file (loaded into the process environment with godotenv) and environment
// variables. Variables map onto nested keys by splitting on underscores, so
// AUTH_TOKEN_SECRET sets auth.token.secret and SERVER_MAX_BODY_SIZE sets
// server.max_body_size.
//
//	cfg, err := config.Load[AppConfig]("loginauth")
package config
