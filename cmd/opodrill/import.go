package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opodrill/opodrill/internal/database"
	"github.com/opodrill/opodrill/internal/question"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <bank.yaml>",
		Short: "Import a YAML question bank into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			importer := question.NewImporter(question.NewDBRepository(db))
			count, err := importer.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("importer.ImportFile() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions from %s\n", count, args[0])
			return nil
		},
	}
}
