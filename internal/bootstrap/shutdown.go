package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/NiltersBot_Go/internal/repository"
	"github.com/osse101/NiltersBot_Go/internal/server"
)

// ShutdownComponents holds everything that needs an orderly stop
type ShutdownComponents struct {
	Server *server.Server
	Store  repository.Player
}

// GracefulShutdown stops accepting requests, lets in-flight units of work
// finish, then closes the store. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
