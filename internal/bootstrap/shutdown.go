package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/pisle-planner/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Storage *Storage
}

// GracefulShutdown stops the HTTP server first so no new transitions start,
// then releases the database pool. Errors are logged and do not stop the
// sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Storage != nil && components.Storage.Pool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.Storage.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
