package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/exporter"
)

func newLoadCommand(app *appContext) *cobra.Command {
	var refresh bool
	var summaryCSV string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the dataset tree (from cache when possible) and summarize it",
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := app.openArchive(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), exporter.ArchiveTable(archive))

			if summaryCSV != "" {
				if err := exporter.WriteSummaryCSV(archive, summaryCSV); err != nil {
					return err
				}
				app.logger.Info("summary written", "path", summaryCSV)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cache and re-parse every workbook")
	cmd.Flags().StringVar(&summaryCSV, "summary-csv", "", "also write a per-sheet summary CSV to this path")
	return cmd
}
