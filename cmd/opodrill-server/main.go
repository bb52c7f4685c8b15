package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/config"
	"github.com/opodrill/opodrill/internal/database"
	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/selection"
	"github.com/opodrill/opodrill/internal/server"
	"github.com/opodrill/opodrill/internal/streak"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("OPODRILL_CONFIG"))
	if err != nil {
		return fmt.Errorf("config.Load() > %w", err)
	}
	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("OPODRILL_JWT_SECRET environment variable is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	questions := question.NewDBRepository(db)
	attempts := attempt.NewDBRepository(db)
	selector := selection.NewSelector(questions, attempts)

	var policy streak.NextPolicy = streak.StrictPriorityPolicy{}
	if cfg.Streak.ReplayPolicy == "replay" {
		policy = streak.SpacedReplayPolicy{}
	}

	eng := engine.NewService(questions, attempts, selector, policy, cfg.Streak.DefaultTarget, logger)
	srv := server.New(eng, cfg.Server, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	logger.Info("server started", slog.Int("port", cfg.Server.Port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown() > %w", err)
	}
	return <-errCh
}
