// Package cmd provides the CLI commands for barodeal.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"barodeal/internal/app"
	"barodeal/internal/config"
	"barodeal/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "barodeal",
	Short: "Calculate real-estate brokerage fees",
	Long: `barodeal computes the statutory brokerage fee for a real-estate deal
and the discounted fee the service charges instead.

Amounts are entered in 만원, exactly as on the calculator form.

Examples:
  barodeal calculate --deal sale --property house --price 90,000
  barodeal calculate --deal lease-with-rent --property house --deposit 1,000 --rent 50
  barodeal schedule show
  barodeal serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (json, yaml or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(pagerCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Version == "" {
		cfg.Version = Version
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := app.NewEngine(config.Get())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "barodeal version %s (schedule %s)\n",
			Version, engine.Table().Fingerprint().Short())
		return nil
	},
}
