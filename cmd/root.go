package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel       string // Log verbosity level
	configFilePath string // Optional YAML/TOML run configuration
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "active-space-chooser",
	Short: "Select a multiconfigurational active space by dipole moment agreement",
	Long: "Compares the dipole moments of multi-reference calculations run with different active spaces " +
		"against a reference (a number, a TD-DFT log or a CSV) and prints the best active space as JSON.",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupRun loads the run configuration and applies the log level.
// Explicit flags win over configuration file values.
func setupRun(cmd *cobra.Command) *RunConfig {
	cfg := &RunConfig{}
	if configFilePath != "" {
		loaded, err := LoadRunConfig(configFilePath)
		if err != nil {
			logrus.Fatalf("Failed to load run config: %v", err)
		}
		cfg = loaded
	}

	level := logLevel
	if !cmd.Flags().Changed("log") && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)
	logrus.SetOutput(os.Stderr)
	return cfg
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", "", "Path to a run configuration file (.yaml, .yml or .toml)")

	rootCmd.AddCommand(gdmCmd)
	rootCmd.AddCommand(edmCmd)
	rootCmd.AddCommand(plotCmd)
}
