package main

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/spf13/cobra"

	"github.com/opodrill/opodrill/internal/database"
	"github.com/opodrill/opodrill/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations in order",
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

			files, err := fs.Glob(schemas.Migrations, "migrations/*.sql")
			if err != nil {
				return fmt.Errorf("fs.Glob(migrations) > %w", err)
			}
			sort.Strings(files)

			for _, file := range files {
				content, err := schemas.Migrations.ReadFile(file)
				if err != nil {
					return fmt.Errorf("schemas.Migrations.ReadFile(%s) > %w", file, err)
				}
				// The connection is opened with multi-statement support, so
				// each migration file runs as a whole.
				if _, err := db.ExecContext(cmd.Context(), string(content)); err != nil {
					return fmt.Errorf("db.ExecContext(%s) > %w", file, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", file)
			}
			return nil
		},
	}
}
