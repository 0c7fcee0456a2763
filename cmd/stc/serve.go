package main

import (
	"context"
	"fmt"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/cli"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/descriptor"
	"mercator-hq/stc/pkg/engine"
	"mercator-hq/stc/pkg/journal"
	"mercator-hq/stc/pkg/journal/retention"
	"mercator-hq/stc/pkg/journal/storage"
	"mercator-hq/stc/pkg/server"
	"mercator-hq/stc/pkg/telemetry/health"
	"mercator-hq/stc/pkg/telemetry/metrics"
	"mercator-hq/stc/pkg/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	listenAddress string
	descriptorDir string
	watch         bool
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the verbs and a descriptor directory over HTTP",
	Long: `Start the HTTP API. Besides the verbs it serves the resource descriptors
found in the configured directory (*.stcs and *.xml files, with optional
*.yaml metadata sidecars), reloading them on change when watching is on.

Examples:
  # Start with defaults on 127.0.0.1:8080
  stc serve

  # Serve a descriptor directory and reload it on change
  stc serve --descriptors ./resources --watch

  # Validate config without starting server
  stc serve --config stc.yaml --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.descriptorDir, "descriptors", "", "override descriptor directory")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload descriptors when files change")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.descriptorDir != "" {
		cfg.Descriptors.Dir = serveFlags.descriptorDir
	}
	if serveFlags.watch {
		cfg.Descriptors.Watch = true
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(configName(), err.Error())
	}
	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "configuration valid")
		return nil
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slogger := logger.Slog()

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer tracer.Shutdown(context.Background())

	treeCache := cache.New(cache.Config{Enabled: cfg.Cache.Enabled, MaxEntries: cfg.Cache.MaxEntries}, collector)
	checker := health.New(cfg.Telemetry.Health.CheckTimeout)

	manager := descriptor.NewManager(cfg.Descriptors, newLoader(cfg), treeCache, collector, slogger)
	if err := manager.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer manager.Stop()
	if manager.Enabled() {
		checker.RegisterCheck("descriptors", manager.Check)
		logger.Info("descriptors loaded",
			"dir", cfg.Descriptors.Dir,
			"count", manager.Registry().Count(),
			"version", manager.Registry().Version(),
		)
	}

	var recorder *journal.Recorder
	if cfg.Journal.Enabled {
		store, err := storage.Open(cfg.Journal, slogger)
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		defer store.Close()
		checker.RegisterCheck("journal", store.Ping)

		recorder = journal.NewRecorder(store, journal.DefaultRecorderConfig(), collector, slogger)
		defer recorder.Close()

		pruner := retention.NewPruner(store, cfg.Journal.Retention, collector, slogger)
		if err := pruner.Start(ctx); err != nil {
			logger.Warn("failed to start journal retention", "error", err)
		} else {
			defer pruner.Stop()
			if next := pruner.NextPruning(); next != nil {
				logger.Debug("journal retention scheduled", "next_pruning", next)
			}
		}
	}

	eng := engine.New(cfg.Engine, engine.Options{
		Cache:   treeCache,
		Metrics: collector,
		Tracer:  tracer,
		Journal: recorder,
		Logger:  logger,
	})

	opts := server.Options{
		Resources:     manager,
		Checker:       checker,
		LivenessPath:  cfg.Telemetry.Health.LivenessPath,
		ReadinessPath: cfg.Telemetry.Health.ReadinessPath,
		Tracer:        tracer,
		Logger:        logger,
		Version:       health.NewVersionInfo(Version, GitCommit, BuildDate),
	}
	if cfg.Telemetry.Metrics.Enabled {
		opts.Metrics = collector
		opts.MetricsPath = cfg.Telemetry.Metrics.Path
	}
	srv := server.New(cfg.Server, eng, opts)

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}
