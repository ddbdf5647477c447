package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/zhouzirui/f1-api/backend/internal/config"
	"github.com/zhouzirui/f1-api/backend/internal/handler"
	"github.com/zhouzirui/f1-api/backend/internal/service/dataset"
	"github.com/zhouzirui/f1-api/backend/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	logger := telemetry.SetupLogger()
	instanceID := uuid.NewString()
	logger = logger.With("instance", instanceID)

	if envErr != nil {
		logger.Debug("no .env file loaded, using system environment only", "error", envErr)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The dataset is read once; a missing or broken file only shrinks it.
	store, report := dataset.Load(cfg.Data.Dataset(), logger)
	telemetry.ObserveDataset(report.Counts)
	if report.Counts.Drivers == 0 {
		logger.Warn("no drivers loaded, root endpoint will report ok=false")
	}

	router := handler.NewRouter(store, handler.Options{
		CacheMaxAge:       cfg.Cache.MaxAge,
		ETagEnabled:       cfg.Cache.ETagEnabled,
		MetricsEnabled:    cfg.Server.MetricsEnabled,
		HeartbeatInterval: cfg.Live.HeartbeatInterval,
		InstanceID:        instanceID,
		Logger:            logger,
	})

	startServer(ctx, logger, cfg.Server, router)
}

func startServer(ctx context.Context, logger *slog.Logger, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		// Live feed connections end with the process context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	logger.Info("F1 API listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
