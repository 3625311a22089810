// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for .env files:
//
//   - Load parses the environment into any struct and caches the result per
//     type, so later calls are plain copies.
//   - LoadEnv applies one or more .env files; later files win.
//   - MustLoad and MustLoadEnv panic instead of returning an error, for
//     settings a binary cannot start without.
//   - ResetCache and ForceReload discard cached values, mostly for tests.
//
// # Usage
//
//	type CLIConfig struct {
//	    Definition string     `env:"FSMCTL_DEFINITION,required"`
//	    Strict     bool       `env:"FSMCTL_STRICT" envDefault:"false"`
//	    LogLevel   slog.Level `env:"FSMCTL_LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg CLIConfig
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Failures wrap the sentinels ErrParsingConfig, ErrLoadingEnvFile and
// ErrNilPointer, which can be matched with errors.Is.
package config
