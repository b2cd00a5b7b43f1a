// Package main is the entry point for the shuttle board API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/dokim/shuttleboard/internal/config"
	"github.com/dokim/shuttleboard/internal/docstore"
	"github.com/dokim/shuttleboard/internal/donecache"
	"github.com/dokim/shuttleboard/internal/handler"
	"github.com/dokim/shuttleboard/internal/middleware"
	"github.com/dokim/shuttleboard/internal/service"
	"github.com/dokim/shuttleboard/migrations"
	"github.com/dokim/shuttleboard/pkg/logging"
)

// maxRequestBody caps incoming request bodies. The largest legitimate
// payload is an admin ui blob; 1 MiB is generous.
const maxRequestBody = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(cfg.LogFormat, cfg.LogLevel)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Board ------------------------------------------------------------
	var cache service.DoneCache
	if cfg.DoneCachePath != "" {
		c, err := donecache.Open(cfg.DoneCachePath)
		if err != nil {
			slog.Error("failed to open done cache", "path", cfg.DoneCachePath, "error", err)
			os.Exit(1)
		}
		defer c.Close()
		cache = c
	}

	store := docstore.NewPostgres(pool, logger)
	board := service.NewBoard(store, cache, service.Options{
		AppRef:        docstore.Ref{Collection: "shuttle_app", Doc: "default"},
		DoneRef:       docstore.Ref{Collection: "shuttle_app", Doc: "done"},
		AdminRef:      docstore.Ref{Collection: "shuttle_app", Doc: "admin"},
		FlushInterval: time.Duration(cfg.FlushIntervalMS) * time.Millisecond,
		DayOffset:     cfg.DayOffset,
		Logger:        logger,
	})
	if err := board.Start(context.Background()); err != nil {
		slog.Error("failed to start board", "error", err)
		os.Exit(1)
	}
	defer board.Stop()

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBody))

	r.Mount("/", handler.NewServer(board).Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies the embedded migrations through goose. Runs on every
// start; applied versions are a no-op.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
