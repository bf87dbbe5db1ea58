// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-streak-stats",
	Short: "A CLI tool to compute GitHub contribution streaks.",
	Long: `github-streak-stats fetches a user's daily GitHub contribution history
and derives streak statistics: the current streak (still alive if the user
contributed today or yesterday), the longest streak ever recorded, and a
summary of contribution activity.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: ./.github-streak-stats.yaml or ~/.github-streak-stats.yaml)")
}
