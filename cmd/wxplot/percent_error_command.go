package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/render"
)

func newPercentErrorCommand(app *appContext) *cobra.Command {
	var flags renderFlags
	var mode string

	cmd := &cobra.Command{
		Use:   "percent-error <control-run> <control-file> <test-run> <test-file>",
		Short: "Mean percent error of a test selection against a control",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			var errMode render.ErrorMode
			switch mode {
			case "average":
				errMode = render.ErrorOfMeans
			case "max":
				errMode = render.ErrorOfMaxima
			default:
				return fmt.Errorf("unknown mode %q, want average or max", mode)
			}

			archive, err := app.openArchive(cmd.Context(), false)
			if err != nil {
				return err
			}
			control, err := selectSheets(archive, args[0], args[1])
			if err != nil {
				if handledSelectionError(cmd, err) {
					return nil
				}
				return err
			}
			test, err := selectSheets(archive, args[2], args[3])
			if err != nil {
				if handledSelectionError(cmd, err) {
					return nil
				}
				return err
			}

			pe, err := render.PercentError(control, test, errMode, opts)
			if errors.Is(err, render.ErrNotComputable) {
				fmt.Fprintln(cmd.OutOrStdout(), "percent error is not computable for this selection")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "percent error (%s) = %.4f%%\n", mode, pe)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", "average", "per-sheet aggregate to compare: average or max")
	return cmd
}
