package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/depotnotes/internal/cli"
	"github.com/alexanderramin/depotnotes/internal/config"
	"github.com/alexanderramin/depotnotes/internal/dataset"
	"github.com/alexanderramin/depotnotes/internal/db"
	"github.com/alexanderramin/depotnotes/internal/repository"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/alexanderramin/depotnotes/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	// Rule data: a data dir when configured, the embedded defaults otherwise.
	bundle, source, err := loadBundle(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	for _, problem := range bundle.Problems {
		logger.Warn("skipping malformed rule data", "source", source, "error", problem)
	}
	datasets := service.NewDatasetService(bundle, source)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	jobRepo := repository.NewSQLiteJobRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Notes:         service.NewNoteService(datasets, uow, observers...),
		History:       service.NewHistoryService(jobRepo, cfg.HistoryLimit, observers...),
		Dataset:       datasets,
		DataDir:       cfg.DataDir,
		WatchDebounce: cfg.WatchDebounce,
		Logger:        logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func loadBundle(ctx context.Context, dir string) (*rules.Bundle, string, error) {
	if dir == "" {
		b, err := dataset.Default()
		if err != nil {
			return nil, "", fmt.Errorf("loading built-in rule data: %w", err)
		}
		return b, "built-in data", nil
	}
	b, err := dataset.Load(ctx, dir)
	if err != nil {
		return nil, "", fmt.Errorf("loading rule data from %s: %w", dir, err)
	}
	return b, dir, nil
}
