package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mergington/activity-board/internal/adapters/devapi"
	"github.com/mergington/activity-board/internal/adapters/httpapi"
	memactivityapi "github.com/mergington/activity-board/internal/adapters/memory/activityapi"
	"github.com/mergington/activity-board/internal/platform/metrics"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board web page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}

			m := metrics.NewBoard()
			rt, err := newRuntime(cfg, logger, httpapi.RequestConfirmer{}, m)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// A failed first load is shown on the page; the server still starts.
			_ = rt.Init(ctx)

			handler := httpapi.NewRouterWithOptions(httpapi.NewServer(rt), httpapi.RouterOptions{
				Metrics: m.Handler(),
				Logger:  logger,
			})
			logger.Info("board listening", "addr", cfg.ListenAddr, "api_url", cfg.APIBaseURL)
			return serveHTTP(ctx, cfg.ListenAddr, handler, logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides listen_addr)")
	return cmd
}

func newDevBackendCmd(g *globalFlags) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "dev-backend",
		Short: "Serve an in-memory activities API seeded with sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, err := g.load(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			backend := memactivityapi.NewBackend(memactivityapi.SampleCatalog())
			logger.Info("dev backend listening", "addr", listen)
			return serveHTTP(ctx, listen, devapi.NewRouter(backend, logger), logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8000", "Listen address")
	return cmd
}

// serveHTTP runs srv until ctx is done, then shuts it down gracefully.
func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
