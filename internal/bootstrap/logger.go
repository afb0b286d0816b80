package bootstrap

import (
	"log/slog"

	"github.com/osse101/pisle-planner/internal/config"
	"github.com/osse101/pisle-planner/internal/logger"
)

// SetupLogger initializes the default slog logger from the app configuration
// and logs the startup banner along with any configuration warnings.
// Source locations are only added in development.
func SetupLogger(cfg *config.Config) {
	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.IsDevelopment(),
	)
	logger.InitLogger(loggerConfig)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel())
	slog.Info(LogMsgStartingPlanner,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"storage", cfg.StorageBackend,
		"data_dir", cfg.DataDir,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"cache_size", cfg.CacheSize,
		"cache_ttl", cfg.CacheTTL,
		"port", cfg.Port)

	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}
}
