package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/NiltersBot_Go/internal/bootstrap"
	"github.com/osse101/NiltersBot_Go/internal/game"
	"github.com/osse101/NiltersBot_Go/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var trustedProxies []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			logFile, err := bootstrap.SetupLogger(cfg)
			if err != nil {
				return err
			}
			defer logFile.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := bootstrap.OpenStore(ctx, cfg)
			if err != nil {
				slog.Error("Failed to open store", "error", err)
				return err
			}

			cat, err := bootstrap.LoadCatalog(cfg)
			if err != nil {
				_ = store.Close()
				return err
			}

			eng := game.New(store, cat)
			srv := server.NewServer(server.Options{
				Port:            cfg.Port,
				APIKey:          cfg.APIKey,
				TrustedProxies:  trustedProxies,
				LeaderboardSize: cfg.LeaderboardSize,
			}, eng)

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			var serveErr error
			select {
			case <-ctx.Done():
			case serveErr = <-errCh:
				slog.Error("Server failed", "error", serveErr)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
			defer cancel()
			bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: srv, Store: store})
			return serveErr
		},
	}

	cmd.Flags().StringSliceVar(&trustedProxies, "trusted-proxy", nil, "Proxy IP whose X-Forwarded-For is trusted (repeatable)")
	return cmd
}
