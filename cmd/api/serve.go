package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/infra/http/handlers"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
)

const limiterCleanupInterval = 5 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer a.close()

	a.startWorker(ctx)

	// A nil *amqp.Connection inside the interface would not compare to nil.
	var broker handlers.BrokerConn
	if a.rabbitMQ != nil {
		broker = a.rabbitMQ.Conn
	}
	health := handlers.NewHealthHandler(broker, a.gateway, cfg.Mail.Enabled(), a.hub.Clients)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	go func() {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	}()

	srv := handlers.NewServer(cfg.Server.Addr, handlers.RouterConfig{
		Dashboard:   a.dashboard,
		Hub:         a.hub,
		Health:      health,
		RateLimiter: limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		TrustProxy:  cfg.Server.TrustProxy,
		Logger:      log.Named("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", describeStartup(cfg)...)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
