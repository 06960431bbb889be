package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kurobon/gitbttf/internal/achievement"
	"github.com/kurobon/gitbttf/internal/config"
	"github.com/kurobon/gitbttf/internal/console"
	"github.com/kurobon/gitbttf/internal/exercise"
	"github.com/kurobon/gitbttf/internal/logging"
	"github.com/kurobon/gitbttf/internal/progress"
	"github.com/kurobon/gitbttf/internal/tui"
)

func main() {
	screen := flag.Int("screen", 0, "start the guided exercises of this screen (1-4)")
	demo := flag.Bool("demo", false, "start with the demo timelines loaded")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file.
	if err := os.MkdirAll(cfg.DataRoot, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating data dir: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataRoot, "console.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := logging.NewWithWriter(logFile, cfg, "console")

	store := progress.NewFileStore(cfg.ProgressFile())
	levels, err := progress.NewTracker(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading progress: %v\n", err)
		os.Exit(1)
	}
	achievements, err := achievement.NewTracker(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading achievements: %v\n", err)
		os.Exit(1)
	}
	catalog, err := exercise.LoadCatalog(cfg.ExercisesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading exercises: %v\n", err)
		os.Exit(1)
	}

	manager := console.NewManager(console.Deps{
		Config:       cfg,
		Catalog:      catalog,
		Levels:       levels,
		Achievements: achievements,
		Logger:       logger,
	})
	sess, err := manager.CreateSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *demo {
		sess.LoadDemo(context.Background())
	}
	if *screen > 0 {
		if _, err := sess.StartScreen(*screen); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(tui.NewModel(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
