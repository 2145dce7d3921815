package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"scanpass/internal/app/server/api"
	"scanpass/internal/app/server/config"
	"scanpass/internal/domain/scan"
	"scanpass/internal/infrastructure/storage/postgres"
	"scanpass/internal/utils/logger"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewWithLevel(conf.Env, conf.Logger.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, log *slog.Logger) error {
	deps := api.Deps{
		Decoder: scan.NewSimulatedDecoder(conf.Scan.Latency, conf.Scan.FailureRate),
		Log:     log,
	}

	if conf.HasDatabase() {
		storage, err := postgres.New(ctx, conf.DB.DatabaseURI)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		defer storage.Close()

		deps.Accounts = postgres.NewAccountRepository(storage.Pool(), log)
		deps.DB = storage
		log.Info("account registry enabled")
	}

	srv := &http.Server{
		Addr:              conf.Server.RunAddress,
		Handler:           api.New(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", "address", conf.Server.RunAddress, "env", conf.Env)
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
