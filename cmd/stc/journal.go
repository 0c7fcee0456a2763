package main

import (
	"fmt"
	"strconv"
	"time"

	"mercator-hq/stc/pkg/cli"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/journal"
	"mercator-hq/stc/pkg/journal/retention"
	"mercator-hq/stc/pkg/journal/storage"
	"mercator-hq/stc/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var journalFlags struct {
	since     time.Duration
	operation string
	resource  string
	status    string
	errorKind string
	limit     int
	offset    int
	output    string
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query and prune the operation journal",
	Long: `The journal holds one record per verb invocation: operation, resource,
input fingerprint, tree count, cache hit, source and target systems,
duration and outcome. It is written when journal.enabled is set.

Subcommands:
  query  - List records with filters
  prune  - Apply the retention policy once`,
}

var journalQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List journal records",
	Long: `List journal records, newest first.

Examples:
  # Failed conversions of the last hour
  stc journal query --operation conform --status error --since 1h

  # Everything recorded for one resource, as CSV
  stc journal query --resource m81 --output csv`,
	RunE: queryJournal,
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete records outside the retention policy",
	Long: `Delete records older than journal.retention.days and, when
journal.retention.max_records is set, the oldest records beyond that count.`,
	RunE: pruneJournal,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalQueryCmd, journalPruneCmd)

	journalQueryCmd.Flags().DurationVar(&journalFlags.since, "since", 0, "only records newer than this duration")
	journalQueryCmd.Flags().StringVar(&journalFlags.operation, "operation", "", "filter by operation (resprof, parsex, conform)")
	journalQueryCmd.Flags().StringVar(&journalFlags.resource, "resource", "", "filter by resource id")
	journalQueryCmd.Flags().StringVar(&journalFlags.status, "status", "", "filter by status (success, error)")
	journalQueryCmd.Flags().StringVar(&journalFlags.errorKind, "kind", "", "filter by error kind")
	journalQueryCmd.Flags().IntVar(&journalFlags.limit, "limit", 100, "max results")
	journalQueryCmd.Flags().IntVar(&journalFlags.offset, "offset", 0, "pagination offset")
	journalQueryCmd.Flags().StringVarP(&journalFlags.output, "output", "o", "text", "output format: text, json, csv")
}

// openJournal opens the configured journal backend. The journal does not
// need to be enabled for reading or pruning.
func openJournal(cmd *cobra.Command) (*config.Config, journal.Storage, *logging.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := storage.Open(cfg.Journal, logger.Slog())
	if err != nil {
		return nil, nil, nil, cli.NewCommandError("journal", err)
	}
	return cfg, store, logger, nil
}

func queryJournal(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(journalFlags.output)
	if err != nil {
		return err
	}
	_, store, _, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	query := &journal.Query{
		Operation: journalFlags.operation,
		Resource:  journalFlags.resource,
		Status:    journalFlags.status,
		ErrorKind: journalFlags.errorKind,
		Limit:     journalFlags.limit,
		Offset:    journalFlags.offset,
	}
	if journalFlags.since > 0 {
		start := time.Now().Add(-journalFlags.since)
		query.StartTime = &start
	}

	records, err := store.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("journal query", err)
	}

	table := &cli.Table{
		Headers: []string{"TIME", "OPERATION", "RESOURCE", "STATUS", "KIND", "TREES", "CACHE", "DURATION", "SYSTEMS"},
		Data:    records,
	}
	for _, r := range records {
		systems := r.SourceSystem
		if r.TargetSystem != "" {
			systems += " -> " + r.TargetSystem
		}
		table.Rows = append(table.Rows, []string{
			r.Time.Format(time.RFC3339),
			r.Operation,
			r.Resource,
			r.Status,
			r.ErrorKind,
			strconv.Itoa(r.Trees),
			strconv.FormatBool(r.CacheHit),
			r.Duration.String(),
			systems,
		})
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), table)
}

func pruneJournal(cmd *cobra.Command, args []string) error {
	cfg, store, logger, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	pruner := retention.NewPruner(store, cfg.Journal.Retention, nil, logger.Slog())
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("journal prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d journal records\n", deleted)
	return nil
}
