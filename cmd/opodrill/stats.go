package main

import (
	"github.com/spf13/cobra"

	"github.com/opodrill/opodrill/internal/cli"
	"github.com/opodrill/opodrill/internal/question"
)

func newStatsCommand() *cobra.Command {
	var userID int64
	var filter question.Filter

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show due-review counts and per-question accuracy",
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

			return cli.PrintStatistics(cmd.Context(), eng, cmd.OutOrStdout(), userID, filter)
		},
	}

	flags := command.Flags()
	flags.Int64Var(&userID, "user", 0, "learner id")
	flags.Int64Var(&filter.OppositionID, "opposition", 0, "restrict to one opposition")
	flags.Int64SliceVar(&filter.TopicIDs, "topic", nil, "restrict to a topic, repeatable")
	flags.IntVar(&filter.Difficulty, "difficulty", 0, "restrict to one difficulty level")
	_ = command.MarkFlagRequired("user")

	return command
}
