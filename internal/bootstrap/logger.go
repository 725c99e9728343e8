package bootstrap

import (
	"log/slog"

	"github.com/osse101/FishBot_Go/internal/config"
	"github.com/osse101/FishBot_Go/internal/logger"
)

// SetupLogger installs the process-wide slog logger from config and logs
// the startup banner. Source locations are only attached in dev.
func SetupLogger(cfg *config.Config) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	))

	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"storage", cfg.Storage,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port)
}
