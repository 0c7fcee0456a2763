package main

import (
	"fmt"
	"io"
	"os"

	"mercator-hq/stc/pkg/cli"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "stc",
	Short: "STC-S and STC-X parser, profiler and coordinate conformer",
	Long: `stc reads IVOA Space-Time Coordinate descriptions in the STC-S string
notation and the STC-X XML serialization.

It derives STC-X resource profiles from STC-S, converts STC-X documents to
STC-S, and re-expresses spherical positions and regions in another celestial
frame (ICRS, FK4, FK5, GALACTIC, SUPER_GALACTIC, ECLIPTIC).

Exit status: 0 on success, 2 for malformed input, 3 for constructs outside
the supported subset, 4 for out of range values and 1 for anything else.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the status of its error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Diagnostic(err))
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty or missing)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.SetHelpCommand(helpCmd)
}

// loadConfig loads the configuration and installs it as the process-wide
// configuration.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError(configName(), err.Error())
	}
	cfg := config.GetConfig()
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	return cfg, nil
}

func configName() string {
	if cfgFile == "" {
		return "defaults"
	}
	return cfgFile
}

// newLogger builds the process logger. Logs always go to w (stderr), so
// verb output on stdout stays clean.
func newLogger(cfg *config.Config, w io.Writer) (*logging.Logger, error) {
	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, w))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}
