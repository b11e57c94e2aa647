package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/exporter"
	"github.com/couchcryptid/wxplot/internal/geomap"
	"github.com/couchcryptid/wxplot/internal/render"
)

func newMapCommand(app *appContext) *cobra.Command {
	var flags renderFlags
	var extent geomap.Extent

	cmd := &cobra.Command{
		Use:   "map <observations.csv>",
		Short: "Project station observations onto the map plane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			obs, err := geomap.ReadObservations(args[0])
			if err != nil {
				return err
			}

			chart, err := geomap.Render(obs, extent, opts)
			if errors.Is(err, render.ErrNoData) {
				fmt.Fprintln(cmd.OutOrStdout(), "no stations inside the map extent")
				return nil
			}
			if err != nil {
				return err
			}

			for _, w := range chart.Warnings {
				app.logger.Warn("map warning", "detail", w)
			}
			fmt.Fprintln(cmd.OutOrStdout(), exporter.MapTable(chart))
			return nil
		},
	}

	flags.register(cmd)
	conus := geomap.ConusExtent
	cmd.Flags().Float64Var(&extent.West, "west", conus.West, "western extent bound (degrees longitude)")
	cmd.Flags().Float64Var(&extent.East, "east", conus.East, "eastern extent bound (degrees longitude)")
	cmd.Flags().Float64Var(&extent.South, "south", conus.South, "southern extent bound (degrees latitude)")
	cmd.Flags().Float64Var(&extent.North, "north", conus.North, "northern extent bound (degrees latitude)")
	return cmd
}
