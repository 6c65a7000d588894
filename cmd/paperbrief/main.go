package main

import (
	"os"

	"github.com/spf13/cobra"

	"paperbrief/internal/app"
	"paperbrief/internal/config"
	"paperbrief/internal/logging"
)

var (
	maxResults int
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "paperbrief",
	Short:        "Collect and summarize recent research papers into a daily brief",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		if cmd.Flags().Changed("max-results") {
			cfg.Query.MaxResults = maxResults
		}

		logger := logging.New(cfg.Logging.Level)

		application := app.New(cfg, logger)
		if err := application.Run(cmd.Context()); err != nil {
			logger.Error("run failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVar(&maxResults, "max-results", 30, "maximum papers fetched from the API source")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (default: PAPERBRIEF_CONFIG)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
