package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pemm/internal/config"
	"pemm/internal/convert"
	"pemm/internal/export"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		handlistPath string
		incipitsPath string
		schemaPath   string
		outputDir    string
		jsonOutput   bool
		noDB         bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the handlist into manuscript, story and story instance CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			opts := convert.OptionsFromConfig(cfg)
			overrides := []struct {
				value string
				dest  *string
			}{
				{handlistPath, &opts.Handlist},
				{incipitsPath, &opts.Incipits},
				{schemaPath, &opts.Schema},
				{outputDir, &opts.OutputDir},
			}
			for _, o := range overrides {
				if strings.TrimSpace(o.value) == "" {
					continue
				}
				expanded, err := config.ExpandPath(strings.TrimSpace(o.value))
				if err != nil {
					return err
				}
				*o.dest = expanded
			}
			if noDB {
				opts.DatabasePath = ""
			}

			summary, err := convert.Run(cmd.Context(), opts, logger)
			if err != nil {
				if summary != nil {
					printDiagnostics(cmd, summary.Unparsed)
				}
				if errors.Is(err, export.ErrLocked) {
					return fmt.Errorf("convert: %w (another pemm run is writing to %s)", err, opts.OutputDir)
				}
				return fmt.Errorf("convert: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			printConvertSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&handlistPath, "file", "f", "", "Macomber handlist text file")
	cmd.Flags().StringVarP(&incipitsPath, "incipits", "i", "", "Incipit CSV file")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Spreadsheet schema JSON (defaults to the built-in schema)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the generated CSV files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "Skip the run snapshot even when the database is enabled")
	return cmd
}

func printConvertSummary(cmd *cobra.Command, summary *convert.Summary) {
	out := cmd.OutOrStdout()
	rows := [][]string{
		{"Canonical stories", strconv.Itoa(summary.Counts.Stories), summary.Paths.CanonicalStories},
		{"Manuscripts", strconv.Itoa(summary.Counts.Manuscripts), summary.Paths.Manuscripts},
		{"Story instances", strconv.Itoa(summary.Counts.Instances), summary.Paths.StoryInstances},
	}
	fmt.Fprintln(out, renderTable([]string{"Table", "Rows", "File"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	fmt.Fprintf(out, "Run %s\n", summary.RunID)
	if summary.Database != "" {
		fmt.Fprintf(out, "Snapshot saved to %s\n", summary.Database)
	}
	printDiagnostics(cmd, summary.Unparsed)
}

func printDiagnostics(cmd *cobra.Command, refs []string) {
	out := cmd.OutOrStdout()
	for _, line := range renderDiagnostics(refs, shouldColorize(out)) {
		fmt.Fprintln(out, line)
	}
}
