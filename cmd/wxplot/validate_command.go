package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/exporter"
	"github.com/couchcryptid/wxplot/internal/loader"
)

// validate parses the whole dataset tree directly, never reading or writing
// the cache, so the report reflects exactly what is on disk right now.
func newValidateCommand(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse every workbook on disk and report what loads",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.New(app.parserOptions(), app.cfg.Workers, app.logger, app.metrics)
			archive, err := l.Load(cmd.Context(), app.cfg.DataDir)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), exporter.ArchiveTable(archive))
			fmt.Fprintf(cmd.OutOrStdout(), "%d runs, %d files loaded\n",
				len(archive.Runs()), archive.NumFiles())
			return nil
		},
	}
	return cmd
}
