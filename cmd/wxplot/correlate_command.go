package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/render"
)

func newCorrelateCommand(app *appContext) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "correlate <run-a> <file-a> <run-b> <file-b>",
		Short: "Pearson-correlate the per-sheet maxima of two selections",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			archive, err := app.openArchive(cmd.Context(), false)
			if err != nil {
				return err
			}
			a, err := selectSheets(archive, args[0], args[1])
			if err != nil {
				if handledSelectionError(cmd, err) {
					return nil
				}
				return err
			}
			b, err := selectSheets(archive, args[2], args[3])
			if err != nil {
				if handledSelectionError(cmd, err) {
					return nil
				}
				return err
			}

			corr, err := render.Pearson(a, b, opts)
			if errors.Is(err, render.ErrNotComputable) {
				fmt.Fprintln(cmd.OutOrStdout(), "correlation is not computable for this selection")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "r = %.6f over %d sheets\n", corr.R, corr.N)
			if corr.Padded {
				fmt.Fprintln(cmd.OutOrStdout(), "note: unequal sheet counts, the shorter series was zero-padded")
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
