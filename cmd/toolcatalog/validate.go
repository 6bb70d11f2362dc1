package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"toolcatalog/internal/app"
)

func newValidateCmd(opts *cliOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog file for parse errors and broken references",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			path, err := resolveCatalogPath(cmd, opts)
			if err != nil {
				return err
			}

			application := app.New(opts.logger)
			report, err := application.ValidateCatalog(cmd.Context(), app.ValidateConfig{CatalogPath: path})
			if err != nil {
				return exitError{code: 1, message: fmt.Sprintf("catalog %s is invalid: %v", path, err)}
			}
			if err := writeValidationReport(cmd.OutOrStdout(), format, report); err != nil {
				return err
			}
			if len(report.Issues) > 0 {
				return exitSilent(2)
			}
			return nil
		},
	}

	addCatalogFlag(cmd)
	addOutputFlag(cmd, &output)

	return cmd
}

func writeValidationReport(w io.Writer, format outputFormat, report app.ValidationReport) error {
	switch format {
	case outputJSON:
		return writeJSON(w, report)
	case outputYAML:
		return writeYAML(w, report)
	}

	fmt.Fprintf(w, "catalog=%s categories=%d tools=%d issues=%d\n", report.Path, report.Categories, report.Tools, len(report.Issues))
	if len(report.Issues) == 0 {
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "KIND\tSUBJECT\tDETAIL")
	for _, issue := range report.Issues {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", issue.Kind, issue.Subject, issue.Detail)
	}
	return tw.Flush()
}
