package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"toolcatalog/internal/app"
	"toolcatalog/internal/domain"
)

func newToolsCmd(opts *cliOptions) *cobra.Command {
	var (
		category string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List catalog tools, optionally filtered by category",
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
			tools, err := application.ListTools(cmd.Context(), app.ListToolsConfig{
				CatalogPath: path,
				Category:    category,
			})
			if err != nil {
				return err
			}
			return writeTools(cmd.OutOrStdout(), format, tools)
		},
	}

	addCatalogFlag(cmd)
	cmd.Flags().StringVar(&category, "category", "", "only list tools in this category id")
	addOutputFlag(cmd, &output)

	return cmd
}

func writeTools(w io.Writer, format outputFormat, tools []domain.Tool) error {
	switch format {
	case outputJSON:
		return writeJSON(w, tools)
	case outputYAML:
		return writeYAML(w, tools)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
	for _, tool := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", tool.ID, tool.Name, tool.Category)
	}
	return tw.Flush()
}
