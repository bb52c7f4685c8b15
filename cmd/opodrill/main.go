package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCommand := &cobra.Command{
		Use:   "opodrill",
		Short: "Exam practice drills with adaptive selection and spaced repetition",
	}
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the configuration file")

	rootCommand.AddCommand(newPracticeCommand())
	rootCommand.AddCommand(newReviewCommand())
	rootCommand.AddCommand(newStatsCommand())
	rootCommand.AddCommand(newImportCommand())
	rootCommand.AddCommand(newMigrateCommand())
	rootCommand.AddCommand(newReportCommand())

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
