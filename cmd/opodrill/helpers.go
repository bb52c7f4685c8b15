package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/opodrill/opodrill/internal/attempt"
	"github.com/opodrill/opodrill/internal/config"
	"github.com/opodrill/opodrill/internal/database"
	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/selection"
	"github.com/opodrill/opodrill/internal/streak"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newEngine opens the database and wires the engine. The caller owns the
// returned connection and must close it.
func newEngine(cfg *config.Config) (*engine.Service, *sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}

	questions := question.NewDBRepository(db)
	attempts := attempt.NewDBRepository(db)
	selector := selection.NewSelector(questions, attempts)

	var policy streak.NextPolicy = streak.StrictPriorityPolicy{}
	if cfg.Streak.ReplayPolicy == "replay" {
		policy = streak.SpacedReplayPolicy{}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	eng := engine.NewService(questions, attempts, selector, policy, cfg.Streak.DefaultTarget, logger)
	return eng, db, nil
}
