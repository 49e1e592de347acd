package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/bracketworks/bracketboard/internal/app"
	"github.com/bracketworks/bracketboard/internal/config"
	"github.com/bracketworks/bracketboard/internal/observability"
	"github.com/bracketworks/bracketboard/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("load config failed", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("api exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("uptrace shutdown failed", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Error("pyroscope shutdown failed", "error", err)
		}
	}()

	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := observability.StopPprofServer(pprofServer, logger, shutdownTimeout); err != nil {
			logger.Error("pprof shutdown failed", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("app close failed", "error", err)
		}
	}()

	var wg conc.WaitGroup
	defer wg.Wait()

	if cfg.RebuildOnStart {
		wg.Go(func() {
			// Warm the results cache so the first leaderboard request
			// does not fall back to the durable store.
			status, started := application.Rebuilder.Rebuild(ctx)
			if !started {
				return
			}
			if status.LastError != "" {
				logger.Error("startup results cache rebuild failed", "error", status.LastError)
				return
			}
			logger.Info("startup results cache rebuild done",
				"events", status.EventsTotal,
				"results", status.ResultsCount,
			)
		})
	}

	serverErr := make(chan error, 1)
	wg.Go(func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	})

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-serverErr:
		if ok && err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("http server stopped")

	return nil
}
