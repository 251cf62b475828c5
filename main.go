package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"Conduit/internal/config"
	"Conduit/internal/logger"
	"Conduit/internal/repo"
	"Conduit/internal/server"
)

var wg sync.WaitGroup

func openRepository(ctx context.Context, cfg *config.Config) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, history is kept in memory and lost on restart")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewPostgresUserDB(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Info("Connected to database")
	return store, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := openRepository(ctx, cfg)
	if err != nil {
		slog.Error("Database unavailable", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(cfg, store),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("Starting server", "addr", cfg.Addr, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	wg.Wait()
	slog.Info("Server stopped")
}
