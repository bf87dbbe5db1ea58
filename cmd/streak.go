// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-streak-stats/internal/config"
	"github.com/naka-gawa/github-streak-stats/internal/gateway"
	"github.com/naka-gawa/github-streak-stats/internal/output"
	"github.com/naka-gawa/github-streak-stats/internal/usecase"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Computes the contribution streaks of a GitHub user",
	Long: `Fetches the daily contribution calendar of a GitHub user for the last few years
and prints the current streak, the longest streak and an activity summary,
either as JSON or as a text table.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		configPath, _ := cmd.InheritedFlags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		// Flags take precedence over the config file and environment.
		user, _ := cmd.Flags().GetString("user")
		todayStr, _ := cmd.Flags().GetString("today")
		if err := cfg.Apply(flagOverrides(cmd)); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid options: %v\n", err)
			os.Exit(1)
		}
		if cfg.GitHub.Token == "" {
			fmt.Fprintln(os.Stderr, "Error: GITHUB_TOKEN environment variable is not set.")
			os.Exit(1)
		}

		today := time.Now().UTC()
		if todayStr != "" {
			today, err = time.Parse(time.DateOnly, todayStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid --today date format. Please use YYYY-MM-DD. Error: %v\n", err)
				os.Exit(1)
			}
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub.Token, gateway.Endpoints{
			APIURL:     cfg.GitHub.APIURL,
			GraphQLURL: cfg.GitHub.GraphQLURL,
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger, cfg.History.Years)

		report, err := aggregator.Aggregate(ctx, user, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to compute streaks: %v\n", err)
			os.Exit(1)
		}

		if err := output.Write(os.Stdout, report, cfg.Output.Format); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
	},
}

// flagOverrides collects the flags the user set explicitly.
func flagOverrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	if cmd.Flags().Changed("years") {
		years, _ := cmd.Flags().GetInt("years")
		o.Years = &years
	}
	if cmd.Flags().Changed("format") {
		format, _ := cmd.Flags().GetString("format")
		o.Format = &format
	}
	return o
}

func init() {
	rootCmd.AddCommand(streakCmd)
	streakCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	streakCmd.MarkFlagRequired("user")
	streakCmd.Flags().String("today", "", "Reference date for the current streak (YYYY-MM-DD, default: today in UTC)")
	streakCmd.Flags().Int("years", config.DefaultYears, "Number of calendar years of history to fetch")
	streakCmd.Flags().StringP("format", "f", config.DefaultFormat, "Output format: json or text")
}
