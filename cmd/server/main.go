package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exam-sensei/mentor/internal/catalog"
	"github.com/exam-sensei/mentor/internal/httpapi"
	"github.com/exam-sensei/mentor/internal/mentor"
	"github.com/exam-sensei/mentor/internal/plancache"
	"github.com/exam-sensei/mentor/internal/platform/cache"
	"github.com/exam-sensei/mentor/internal/platform/config"
	"github.com/exam-sensei/mentor/internal/platform/database"
	"github.com/exam-sensei/mentor/internal/student"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	cat, err := catalog.NewLoader(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	// Store selection: postgres when configured, in-memory otherwise.
	var (
		profiles student.Store              = student.NewMemoryStore()
		recs     mentor.RecommendationStore = mentor.NewMemoryStore()
		activity student.ActivityLog        = student.NopActivityLog{}
		dbPing   httpapi.Pinger
	)
	if cfg.HasDatabase() {
		db, err := database.New(ctx, database.Config{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("connecting database: %w", err)
		}
		defer db.Close()

		if profiles, err = student.NewPostgresStore(db.Pool); err != nil {
			return fmt.Errorf("profile store: %w", err)
		}
		if recs, err = mentor.NewPostgresStore(db.Pool); err != nil {
			return fmt.Errorf("recommendation store: %w", err)
		}
		activity = student.NewPostgresActivityLog(db.Pool)
		dbPing = db
		slog.Info("using postgres stores")
	} else {
		slog.Info("using in-memory stores")
	}

	var (
		plans     *plancache.Cache
		cachePing httpapi.Pinger
	)
	if cfg.HasCache() {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return fmt.Errorf("connecting cache: %w", err)
		}
		defer c.Close()

		plans = plancache.New(c.Client, time.Duration(cfg.Cache.PlanTTLMins)*time.Minute)
		cachePing = c
		slog.Info("study-plan cache enabled", "ttl_mins", cfg.Cache.PlanTTLMins)
	}

	m, err := mentor.New(mentor.Config{
		Catalog:         cat,
		Profiles:        profiles,
		Recommendations: recs,
		Activity:        activity,
	})
	if err != nil {
		return fmt.Errorf("creating mentor: %w", err)
	}

	api, err := httpapi.New(httpapi.Config{
		Mentor:   m,
		Catalog:  cat,
		Profiles: profiles,
		Activity: activity,
		Plans:    plans,
		DB:       dbPing,
		Cache:    cachePing,
	})
	if err != nil {
		return fmt.Errorf("creating api: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func setupLogger(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
