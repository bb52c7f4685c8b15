package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opodrill/opodrill/internal/cli"
	"github.com/opodrill/opodrill/internal/engine"
)

func newReviewCommand() *cobra.Command {
	var req engine.CreateAttemptRequest

	command := &cobra.Command{
		Use:   "review",
		Short: "Drill the questions whose spaced-repetition review is due",
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

			reviewCLI, err := cli.NewReviewCLI(cmd.Context(), eng, req)
			if err != nil {
				return fmt.Errorf("cli.NewReviewCLI() > %w", err)
			}
			return cli.Run(cmd.Context(), reviewCLI)
		},
	}

	flags := command.Flags()
	flags.Int64Var(&req.UserID, "user", 0, "learner id")
	flags.Int64Var(&req.OppositionID, "opposition", 0, "restrict to one opposition")
	flags.Int64SliceVar(&req.TopicIDs, "topic", nil, "restrict to a topic, repeatable")
	flags.IntVar(&req.Difficulty, "difficulty", 0, "restrict to one difficulty level")
	flags.IntVar(&req.Count, "count", 0, "number of questions to review")
	_ = command.MarkFlagRequired("user")

	return command
}
