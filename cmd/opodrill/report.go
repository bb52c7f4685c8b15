package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opodrill/opodrill/internal/question"
	"github.com/opodrill/opodrill/internal/report"
)

func newReportCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "report",
		Short: "Render practice reports as markdown and PDF",
	}

	rootCommand.AddCommand(&cobra.Command{
		Use:   "attempt <attempt-id>",
		Short: "Summarize one attempt and its answers",
		Args:  cobra.ExactArgs(1),
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

			att, answers, err := eng.GetAttempt(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("engine.GetAttempt() > %w", err)
			}

			path, err := report.NewWriter(cfg.Reports.OutputDirectory).
				Write("attempt-"+att.ID, report.AttemptMarkdown(att, answers))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	})

	var filter question.Filter
	dueCommand := &cobra.Command{
		Use:   "due",
		Short: "Summarize the due-review buckets",
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

			buckets, err := eng.GetDueStatistics(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("engine.GetDueStatistics() > %w", err)
			}

			path, err := report.NewWriter(cfg.Reports.OutputDirectory).
				Write("due", report.DueMarkdown(buckets, time.Now()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	}
	dueFlags := dueCommand.Flags()
	dueFlags.Int64Var(&filter.OppositionID, "opposition", 0, "restrict to one opposition")
	dueFlags.Int64SliceVar(&filter.TopicIDs, "topic", nil, "restrict to a topic, repeatable")
	dueFlags.IntVar(&filter.Difficulty, "difficulty", 0, "restrict to one difficulty level")
	rootCommand.AddCommand(dueCommand)

	var userID int64
	accuracyCommand := &cobra.Command{
		Use:   "accuracy",
		Short: "Summarize a learner's per-question accuracy",
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

			rows, err := eng.GetUserAccuracy(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("engine.GetUserAccuracy() > %w", err)
			}

			path, err := report.NewWriter(cfg.Reports.OutputDirectory).
				Write(fmt.Sprintf("accuracy-%d", userID), report.AccuracyMarkdown(rows))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	}
	accuracyCommand.Flags().Int64Var(&userID, "user", 0, "learner id")
	_ = accuracyCommand.MarkFlagRequired("user")
	rootCommand.AddCommand(accuracyCommand)

	return &rootCommand
}
