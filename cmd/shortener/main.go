package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/repriest/bitly-widget/internal/bitly"
	"github.com/repriest/bitly-widget/internal/config"
	"github.com/repriest/bitly-widget/internal/handlers"
	"github.com/repriest/bitly-widget/internal/history"
	"github.com/repriest/bitly-widget/internal/logger"
	"github.com/repriest/bitly-widget/internal/storage/file"
	"github.com/repriest/bitly-widget/internal/storage/postgres"
	"github.com/repriest/bitly-widget/internal/storage/sqlite"
	t "github.com/repriest/bitly-widget/internal/storage/types"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	defer logger.Log.Sync()

	st, err := newStorage(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	hist, err := history.New(st)
	if err != nil {
		return err
	}

	client := bitly.NewClient(cfg.APIBaseURL, cfg.Token, cfg.APITimeout)
	h := handlers.NewHandler(client, hist, st)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: newRouter(h),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("starting server", zap.String("addr", cfg.ServerAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newStorage picks the history backend: postgres when a DSN is set, sqlite
// when a database file is set, the JSON file otherwise.
func newStorage(cfg *config.Config) (t.Storage, error) {
	if cfg.DatabaseDSN != "" {
		return postgres.NewPgStorage(cfg.DatabaseDSN)
	}
	if cfg.SQLitePath != "" {
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	}
	return file.NewFileStorage(cfg.FileStoragePath)
}

func newRouter(h *handlers.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger)
	r.Get("/", h.IndexHandler)
	r.Post("/api/shorten", h.ShortenHandler)
	r.Get("/api/history", h.HistoryHandler)
	r.Get("/ping", h.PingHandler)
	return r
}
