package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/config"
	"github.com/xavierca1/leadpilot/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "leadpilot",
	Short:         "Affiliate lead sourcing and content dashboard",
	Long:          `leadpilot finds prospective buyers for an affiliate product and writes persuasive posts for them using Gemini.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to an optional YAML config file")
	rootCmd.AddCommand(serveCmd, scanCmd)
}

// setup loads and validates configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "leadpilot:", err)
		os.Exit(1)
	}
}
