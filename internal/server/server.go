// Package server owns the process lifecycle: boot infrastructure, bind the
// port, and shut down cleanly on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/ecobazaar/config"
	"github.com/shashiranjanraj/ecobazaar/pkg/cache"
	"github.com/shashiranjanraj/ecobazaar/pkg/database"
	"github.com/shashiranjanraj/ecobazaar/pkg/logger"
	"github.com/shashiranjanraj/ecobazaar/pkg/queue"
	"github.com/shashiranjanraj/ecobazaar/pkg/storage"
)

// Start boots the backing services, builds the handler, and serves until
// the process receives SIGINT or SIGTERM. The handler is built by callback
// so that auto-migration runs against a connected database.
func Start(build func() http.Handler) error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is optional: the cache degrades to no-ops and the queue falls
	// back to the in-memory driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
	}

	storage.Connect()

	queue.UseDB(database.DB)
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, config.QueueWorkers())

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           build(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ecobazaar listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
