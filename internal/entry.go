// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/marloe/standup/internal/config"
	"github.com/marloe/standup/internal/journal"
	"github.com/marloe/standup/internal/project"
	"github.com/marloe/standup/internal/storage"
	"github.com/marloe/standup/internal/ui"
)

// Run starts the application with the given options and blocks until the UI
// exits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	cfg := app.config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if err := os.MkdirAll(config.Home(), 0o755); err != nil {
		return fmt.Errorf("create home dir: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file in the home dir.
	logFile, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, nil))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("starting",
		slog.String("projects_path", cfg.ProjectsPath()),
		slog.String("theme", cfg.Theme),
		slog.String("target", app.target))

	// The guide works without a projects tree; everything else needs one.
	var store storage.Provider
	fsStore, storeErr := storage.NewFS(cfg.ProjectsPath())
	if storeErr != nil {
		if app.target != "guide" {
			return fmt.Errorf("projects path %s: %w", cfg.ProjectsPath(), storeErr)
		}
		logger.Warn("projects path unavailable", slog.String("error", storeErr.Error()))
	} else {
		store = fsStore
	}

	// Journal index failures degrade to unindexed search, never block startup.
	if err := os.MkdirAll(config.JournalDir(), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	db, err := journal.OpenDB(config.JournalDBPath())
	if err != nil {
		logger.Warn("journal index unavailable", slog.String("error", err.Error()))
		db = nil
	} else {
		defer db.Close()
	}
	journalSvc := journal.NewService(config.JournalDir(), db, logger)
	if err := journalSvc.Sync(); err != nil {
		logger.Warn("journal sync failed", slog.String("error", err.Error()))
	}

	model := ui.NewApp(ui.Deps{
		Config:  cfg,
		Store:   store,
		Journal: journalSvc,
		Logger:  logger,
	}, app.target)

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gCtx := errgroup.WithContext(ctx)
	watchCtx, cancelWatch := context.WithCancel(gCtx)
	defer cancelWatch()

	g.Go(func() error {
		defer cancelWatch()
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	})

	if store != nil {
		g.Go(func() error {
			if err := project.Watch(watchCtx, store.Root(), logger, func() {
				prog.Send(ui.ProjectsChangedMsg{})
			}); err != nil {
				// The UI works without live refresh, so this only logs.
				logger.Warn("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("stopped")
	return nil
}
