package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opodrill/opodrill/internal/cli"
	"github.com/opodrill/opodrill/internal/engine"
	"github.com/opodrill/opodrill/internal/selection"
)

type modeValue string

var _ pflag.Value = (*modeValue)(nil)

func (m *modeValue) Set(val string) error {
	if _, err := selection.ParseMode(val); err != nil {
		return err
	}
	*m = modeValue(val)
	return nil
}

func (m modeValue) String() string {
	return string(m)
}

func (m *modeValue) Type() string {
	return "mode"
}

func newPracticeCommand() *cobra.Command {
	var req engine.CreateAttemptRequest
	mode := modeValue("random")

	command := &cobra.Command{
		Use:   "practice",
		Short: "Interactive drill over a freshly selected question pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, db, err := newEngine(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			req.Mode = string(mode)
			practiceCLI, err := cli.NewPracticeCLI(cmd.Context(), eng, req)
			if err != nil {
				return fmt.Errorf("cli.NewPracticeCLI() > %w", err)
			}
			return cli.Run(cmd.Context(), practiceCLI)
		},
	}

	flags := command.Flags()
	flags.Int64Var(&req.UserID, "user", 0, "learner id")
	flags.Var(&mode, "mode", "selection mode: random, filtered, due, exam, favorites, streak")
	flags.Int64Var(&req.OppositionID, "opposition", 0, "restrict to one opposition")
	flags.Int64SliceVar(&req.TopicIDs, "topic", nil, "restrict to a topic, repeatable")
	flags.IntVar(&req.Difficulty, "difficulty", 0, "restrict to one difficulty level")
	flags.IntVar(&req.Count, "count", 0, "number of questions to select")
	flags.StringVar(&req.Criterion, "criterion", "", "filtered mode criterion, e.g. most_missed or never_answered")
	flags.StringVar(&req.Order, "order", "", "filtered mode order: random, difficulty_asc, difficulty_desc, error_count")
	flags.IntVar(&req.StreakTarget, "streak-target", 0, "consecutive correct answers that finish a streak attempt")
	_ = command.MarkFlagRequired("user")

	return command
}
