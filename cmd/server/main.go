package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kurobon/gitbttf/internal/achievement"
	"github.com/kurobon/gitbttf/internal/config"
	"github.com/kurobon/gitbttf/internal/console"
	"github.com/kurobon/gitbttf/internal/exercise"
	"github.com/kurobon/gitbttf/internal/logging"
	"github.com/kurobon/gitbttf/internal/progress"
	"github.com/kurobon/gitbttf/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(config.DefaultConfig(), "gitbttf").Fatal("invalid configuration", "err", err)
	}
	config.Global = cfg
	logger := logging.New(cfg, "gitbttf")

	// Progress and achievements outlive restarts
	store := progress.NewFileStore(cfg.ProgressFile())
	levels, err := progress.NewTracker(store)
	if err != nil {
		logger.Fatal("load progress", "path", store.Path(), "err", err)
	}
	achievements, err := achievement.NewTracker(store)
	if err != nil {
		logger.Fatal("load achievements", "path", store.Path(), "err", err)
	}
	achievements.OnUnlock(func(a achievement.Achievement) {
		logger.Info("achievement unlocked", "id", a.ID, "name", a.Name)
	})

	catalog, err := exercise.LoadCatalog(cfg.ExercisesDir)
	if err != nil {
		logger.Fatal("load exercises", "dir", cfg.ExercisesDir, "err", err)
	}
	if cfg.ExercisesDir != "" {
		watcher, err := exercise.NewWatcher(cfg.ExercisesDir, catalog, logger,
			exercise.OnReload(func(n int) { logger.Info("exercises reloaded", "screens", n) }))
		if err != nil {
			logger.Warn("exercise hot reload disabled", "err", err)
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	sessions := console.NewManager(console.Deps{
		Config:       cfg,
		Catalog:      catalog,
		Levels:       levels,
		Achievements: achievements,
		Logger:       logger,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewServer(sessions),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "screens", len(catalog.Screens()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
