/*
Package cli holds the pieces of the stc command that are not cobra wiring.

Errors and exit codes:

ExitCode maps an error to the process status by its kind: 2 for malformed
STC-S or STC-X, 3 for constructs outside the supported subset, 4 for out of
range values and 1 for everything else. Diagnostic renders any error as the
single stderr line the command prints before exiting.

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Diagnostic(err))
		os.Exit(cli.ExitCode(err))
	}

Output formatting:

Listings are built as a *Table and written in the format chosen with
--output (text, json or csv):

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, table); err != nil {
		return err
	}

Progress:

FileProgress draws a bar on stderr while a directory of descriptors is
checked and prints each failure as it happens.

Signal handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
