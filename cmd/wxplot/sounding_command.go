package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/adapter/wyoming"
	"github.com/couchcryptid/wxplot/internal/exporter"
	"github.com/couchcryptid/wxplot/internal/render"
	"github.com/couchcryptid/wxplot/internal/sounding"
)

func newSoundingCommand(app *appContext) *cobra.Command {
	var when string
	var outPath string
	var hodograph bool
	var minPressure float64

	cmd := &cobra.Command{
		Use:   "sounding <station>",
		Short: "Fetch an upper-air sounding and chart the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.cfg.Wyoming.Enabled {
				return errors.New("sounding support is disabled, set wyoming.enabled in the config")
			}

			validTime, err := time.Parse(time.RFC3339, when)
			if err != nil {
				return fmt.Errorf("parse --time: %w", err)
			}

			client := wyoming.NewClient(app.cfg.Wyoming.BaseURL, app.cfg.WyomingTimeout, app.logger)
			provider := wyoming.NewCachedProvider(client, app.cfg.Wyoming.CacheSize, app.metrics)

			profile, err := provider.Fetch(cmd.Context(), args[0], validTime)
			if err != nil {
				return err
			}
			if len(profile.Levels) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sounding available for this station and time")
				return nil
			}

			var chart render.Chart
			if hodograph {
				chart = hodographChart(profile, minPressure)
			} else {
				chart, err = skewChart(profile)
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), exporter.ChartTable(chart))
			if outPath != "" {
				if err := exporter.WriteChartWorkbook(chart, outPath); err != nil {
					return err
				}
				app.logger.Info("chart written", "path", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&when, "time", "", "valid time of the sounding, RFC 3339")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the chart to this xlsx file")
	cmd.Flags().BoolVar(&hodograph, "hodograph", false, "chart the wind trace instead of the thermodynamic profile")
	cmd.Flags().Float64Var(&minPressure, "min-pressure", 300, "mask hodograph levels at or below this pressure (hPa)")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

// skewChart lays out the thermodynamic profile with pressure levels along
// the category axis, surface first.
func skewChart(p sounding.Profile) (render.Chart, error) {
	parcel, err := sounding.ParcelProfile(p)
	if err != nil {
		return render.Chart{}, err
	}

	ticks := make([]string, len(p.Levels))
	temp := make([]float64, len(p.Levels))
	dewpoint := make([]float64, len(p.Levels))
	for i, lv := range p.Levels {
		ticks[i] = strconv.FormatFloat(lv.Pressure, 'f', 1, 64)
		temp[i] = lv.Temperature
		dewpoint[i] = lv.Dewpoint
	}

	return render.Chart{
		Title:  fmt.Sprintf("%s sounding %s", p.Station, p.Time.Format("2006-01-02 15Z")),
		Unit:   "degC",
		XLabel: "pressure (hPa)",
		XTicks: ticks,
		Series: []render.Series{
			{Name: "temperature", Values: temp, Style: render.StyleSolid, Color: render.ColorRed},
			{Name: "dewpoint", Values: dewpoint, Style: render.StyleSolid, Color: render.ColorGreen},
			{Name: "parcel", Values: parcel, Style: render.StyleDashed, Color: render.ColorDefault},
		},
	}, nil
}

func hodographChart(p sounding.Profile, minPressure float64) render.Chart {
	points := sounding.Hodograph(p, minPressure)

	ticks := make([]string, len(points))
	u := make([]float64, len(points))
	v := make([]float64, len(points))
	for i, pt := range points {
		ticks[i] = strconv.FormatFloat(pt.Pressure, 'f', 1, 64)
		u[i] = pt.U
		v[i] = pt.V
	}

	return render.Chart{
		Title:  fmt.Sprintf("%s hodograph %s", p.Station, p.Time.Format("2006-01-02 15Z")),
		Unit:   "kt",
		XLabel: "pressure (hPa)",
		XTicks: ticks,
		Series: []render.Series{
			{Name: "u", Values: u, Style: render.StyleSolid, Color: render.ColorBlue},
			{Name: "v", Values: v, Style: render.StyleSolid, Color: render.ColorOrange},
		},
	}
}
