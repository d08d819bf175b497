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

	"go.uber.org/zap"

	"github.com/Z4rru/hangulmastery/internal/api/middleware"
	"github.com/Z4rru/hangulmastery/internal/api/rest"
	"github.com/Z4rru/hangulmastery/internal/config"
	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/loader"
	"github.com/Z4rru/hangulmastery/internal/logger"
	"github.com/Z4rru/hangulmastery/internal/progress"
	"github.com/Z4rru/hangulmastery/internal/quiz"
	"github.com/Z4rru/hangulmastery/internal/sampling"
	"github.com/Z4rru/hangulmastery/internal/search"
)

func main() {
	debug := os.Getenv("GIN_MODE") != "release"
	logger.Init(debug)
	defer logger.Sync()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Warn("Failed to load config file, using defaults", zap.Error(err))
		if cfg, err = config.Load(""); err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	cat, err := loader.Load(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("Failed to load content", zap.Error(err))
	}

	logger.Info("Starting Hangul Mastery API server",
		zap.String("database", cfg.Database.Path),
		zap.Int("port", cfg.Server.Port),
		zap.Int("vocabulary", len(cat.Vocabulary())),
		zap.Duration("session_ttl", cfg.Quiz.SessionTTL),
	)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	repo := database.NewRepository(db)
	if cfg.Database.AutoSeed {
		seeded, err := repo.SeedCatalog(cat, false, nil)
		if err != nil {
			logger.Fatal("Failed to seed content", zap.Error(err))
		}
		if seeded {
			logger.Info("Content seeded")
		}
	}

	store := progress.NewStore(
		database.NewCachedKVStore(database.NewKVStore(db)),
		cat.SectionKeys(),
		progress.WithLogger(logger.Named("progress")),
	)

	rnd := sampling.NewTimeRand()
	if cfg.Quiz.Seed != 0 {
		rnd = sampling.NewRand(cfg.Quiz.Seed)
	}
	registry := quiz.NewRegistry(
		quiz.NewGenerator(cat, rnd),
		store.Recorder,
		quiz.WithIdleTTL(cfg.Quiz.SessionTTL),
	)

	router, limiter := rest.SetupRouter(cfg, rest.Services{
		DB:       db,
		Repo:     repo,
		Search:   search.NewEngine(db),
		Catalog:  cat,
		Store:    store,
		Registry: registry,
		Rand:     rnd,
		Log:      logger.Named("http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go registry.Run(ctx, cfg.Quiz.SweepInterval)
	if limiter != nil {
		go sweepLimiter(ctx, limiter, cfg.Quiz.SweepInterval)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("rest_api", fmt.Sprintf("http://localhost:%d/api/v1", cfg.Server.Port)),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited", zap.Int("open_sessions", registry.Len()))
}

// sweepLimiter drops rate limiter state for clients gone quiet.
func sweepLimiter(ctx context.Context, rl *middleware.RateLimiter, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := rl.Cleanup(10 * every); n > 0 {
				logger.Debug("Dropped idle rate limiters", zap.Int("count", n))
			}
		}
	}
}
