package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/cli"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/engine"
	"mercator-hq/stc/pkg/journal"
	"mercator-hq/stc/pkg/journal/storage"

	"github.com/spf13/cobra"
)

var resprofCmd = &cobra.Command{
	Use:   "resprof [stc-s | -]",
	Short: "Print the STC-X resource profile of an STC-S expression",
	Long: `Parse an STC-S expression and print the STC-X STCResourceProfile that
describes its coordinate systems. Coordinate values are not part of a
profile.

The expression is taken from the arguments, joined by spaces, or read from
stdin when no argument or "-" is given.

Examples:
  stc resprof "Circle FK5 J2000 10 20 1.5"
  echo "Position GALACTIC" | stc resprof`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, engine.OpResourceProfile, func(ctx context.Context, e *engine.Engine) (string, error) {
			text, err := inputText(cmd, args)
			if err != nil {
				return "", err
			}
			return e.ResourceProfile(ctx, text)
		})
	},
}

var parsexCmd = &cobra.Command{
	Use:   "parsex [file | -]",
	Short: "Print one STC-S line per resource of an STC-X document",
	Long: `Parse an STC-X document and print each STCResourceProfile or STCSpec it
contains as one STC-S line. Several lines are separated by a "-----" line
with a blank line on either side.

Examples:
  stc parsex resources.xml
  curl -s https://example.org/stc.xml | stc parsex`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, engine.OpParseX, func(ctx context.Context, e *engine.Engine) (string, error) {
			text, err := documentText(cmd, args)
			if err != nil {
				return "", err
			}
			return e.ParseX(ctx, text)
		})
	},
}

var conformCmd = &cobra.Command{
	Use:   "conform <stc-s> <target stc-s>",
	Short: "Express the first expression in the system of the second",
	Long: `Parse two STC-S expressions and print the first with its spatial
coordinates rotated into the frame and equinox of the second. Only
SPHERICAL2 coordinates in angular units are converted; earth-fixed and
unknown frames are rejected.

Examples:
  stc conform "Position ICRS 12 34" "Position GALACTIC"
  stc conform "Circle FK4 B1950 10 20 1" "Position FK5 J2000"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerb(cmd, engine.OpConform, func(ctx context.Context, e *engine.Engine) (string, error) {
			return e.Conform(ctx, args[0], args[1])
		})
	},
}

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "List the verbs, or show help for a command",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				return cli.NewCommandError("help", fmt.Errorf("unknown command %q", strings.Join(args, " ")))
			}
			return target.Help()
		}
		e := engine.New(config.EngineConfig{}, engine.Options{})
		fmt.Fprint(cmd.OutOrStdout(), e.Help())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resprofCmd, parsexCmd, conformCmd)
}

type verbFunc func(ctx context.Context, e *engine.Engine) (string, error)

// runVerb builds an engine from the configuration, runs fn and prints its
// result as one block on stdout.
func runVerb(cmd *cobra.Command, name string, fn verbFunc) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts := engine.Options{
		Cache:  cache.New(cache.Config{Enabled: cfg.Cache.Enabled, MaxEntries: cfg.Cache.MaxEntries}, nil),
		Logger: logger,
	}
	if cfg.Journal.Enabled {
		store, err := storage.Open(cfg.Journal, logger.Slog())
		if err != nil {
			return cli.NewCommandError(name, err)
		}
		defer store.Close()
		recorder := journal.NewRecorder(store, journal.DefaultRecorderConfig(), nil, logger.Slog())
		defer recorder.Close()
		opts.Journal = recorder
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := fn(ctx, engine.New(cfg.Engine, opts))
	if err != nil {
		return cli.NewCommandError(name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// inputText joins the arguments, or reads stdin for none or "-".
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return readAll(cmd.InOrStdin())
	}
	return strings.Join(args, " "), nil
}

// documentText reads the named file, or stdin for none or "-".
func documentText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		return readAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
