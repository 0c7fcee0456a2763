package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"mercator-hq/stc/pkg/cli"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/descriptor"
	"mercator-hq/stc/pkg/stc/validator"

	"github.com/spf13/cobra"
)

var resourcesFlags struct {
	dir    string
	output string
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the resource descriptors of a directory",
	Long: `Load the descriptor directory and list every resource with its format,
tree count and coordinate systems. Files that fail to load are reported on
stderr and make the command fail after the listing.

Examples:
  stc resources --dir ./resources
  stc resources --output csv > resources.csv`,
	RunE: listResources,
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Check every descriptor file of a directory",
	Long: `Parse and validate every *.stcs and *.xml file below a directory,
reporting failures as they are found. Use it before deploying a descriptor
directory to a running server.

Examples:
  stc check ./resources`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkDescriptors,
}

func init() {
	rootCmd.AddCommand(resourcesCmd, checkCmd)

	resourcesCmd.Flags().StringVar(&resourcesFlags.dir, "dir", "", "descriptor directory (uses config if not specified)")
	resourcesCmd.Flags().StringVarP(&resourcesFlags.output, "output", "o", "text", "output format: text, json, csv")
}

func descriptorDir(cfg *config.Config, override string) (string, error) {
	dir := override
	if dir == "" {
		dir = cfg.Descriptors.Dir
	}
	if dir == "" {
		return "", cli.NewConfigError("descriptors.dir", "no descriptor directory configured")
	}
	return dir, nil
}

func newLoader(cfg *config.Config) *descriptor.Loader {
	return descriptor.NewLoader(&descriptor.LoaderConfig{
		MaxFileSize:         cfg.Engine.MaxDocumentBytes,
		SkipHidden:          true,
		MaxExpressionLength: cfg.Engine.MaxExpressionLength,
	})
}

func listResources(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(resourcesFlags.output)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir, err := descriptorDir(cfg, resourcesFlags.dir)
	if err != nil {
		return err
	}

	descriptors, loadErr := newLoader(cfg).LoadDirectory(dir)
	var errList *descriptor.ErrorList
	if loadErr != nil && !errors.As(loadErr, &errList) {
		return cli.NewCommandError("resources", loadErr)
	}

	summaries := make([]descriptor.Summary, 0, len(descriptors))
	table := &cli.Table{Headers: []string{"ID", "FORMAT", "TREES", "SYSTEMS", "TITLE"}}
	for _, d := range descriptors {
		s := d.Summary()
		summaries = append(summaries, s)
		table.Rows = append(table.Rows, []string{
			s.ID, string(s.Format), strconv.Itoa(s.Trees), strings.Join(s.Systems, ", "), s.Metadata.Title,
		})
	}
	table.Data = summaries

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), table); err != nil {
		return err
	}
	if errList != nil {
		for _, e := range errList.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.Diagnostic(e))
		}
		return cli.NewCommandError("resources", fmt.Errorf("%d descriptor files failed to load", len(errList.Errors)))
	}
	return nil
}

func checkDescriptors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	override := ""
	if len(args) == 1 {
		override = args[0]
	}
	dir, err := descriptorDir(cfg, override)
	if err != nil {
		return err
	}

	loader := newLoader(cfg)
	files, err := loader.Files(dir)
	if err != nil {
		return cli.NewCommandError("check", err)
	}

	progress := cli.NewProgressReporter(cmd.ErrOrStderr(), "checking")
	progress.Start(len(files))
	seen := make(map[string]string, len(files))
	for _, path := range files {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		progress.Step(rel, checkFile(loader, path, seen))
	}
	if failed := progress.Finish(); failed > 0 {
		return cli.NewCommandError("check", fmt.Errorf("%d of %d descriptor files failed", failed, len(files)))
	}
	return nil
}

// checkFile loads one descriptor, validates its trees and rejects ids
// already used by another file.
func checkFile(loader *descriptor.Loader, path string, seen map[string]string) error {
	d, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	for _, tree := range d.Trees {
		if err := validator.Validate(tree); err != nil {
			return err
		}
	}
	if prev, dup := seen[d.ID]; dup {
		return fmt.Errorf("resource id %q already defined by %s", d.ID, prev)
	}
	seen[d.ID] = path
	return nil
}
