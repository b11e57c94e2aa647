package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/domain"
	"github.com/couchcryptid/wxplot/internal/exporter"
	"github.com/couchcryptid/wxplot/internal/render"
	"github.com/couchcryptid/wxplot/internal/session"
)

// renderFlags collects the display settings shared by the chart commands.
type renderFlags struct {
	title  string
	unit   string
	min    float64
	max    float64
	limit  bool
	filter float64
	color  string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "chart title")
	cmd.Flags().StringVar(&f.unit, "unit", "", "value axis label")
	cmd.Flags().Float64Var(&f.min, "min", math.NaN(), "value axis lower bound")
	cmd.Flags().Float64Var(&f.max, "max", math.NaN(), "value axis upper bound")
	cmd.Flags().Float64Var(&f.filter, "filter", math.NaN(), "drop values below this bound")
	cmd.Flags().StringVar(&f.color, "color", "", "primary series color (red, green, blue, orange, purple)")
}

func (f *renderFlags) options() (render.Options, error) {
	opts := render.Options{Title: f.title, Unit: f.unit}

	switch {
	case !math.IsNaN(f.min) && !math.IsNaN(f.max):
		opts.Limit = &render.Limit{Min: f.min, Max: f.max}
	case !math.IsNaN(f.min) || !math.IsNaN(f.max):
		return opts, errors.New("--min and --max must be given together")
	}

	if !math.IsNaN(f.filter) {
		v := f.filter
		opts.Filter = &v
	}

	switch f.color {
	case "":
		opts.Color = render.ColorDefault
	case "red":
		opts.Color = render.ColorRed
	case "green":
		opts.Color = render.ColorGreen
	case "blue":
		opts.Color = render.ColorBlue
	case "orange":
		opts.Color = render.ColorOrange
	case "purple":
		opts.Color = render.ColorPurple
	default:
		return opts, fmt.Errorf("unknown color %q", f.color)
	}
	return opts, nil
}

// handledSelectionError prints an invalid run/file selection as a plain
// message. A selection mistake is user input, not a tool failure.
func handledSelectionError(cmd *cobra.Command, err error) bool {
	var serr *session.SelectionError
	if errors.As(err, &serr) {
		fmt.Fprintln(cmd.OutOrStdout(), serr.Error())
		return true
	}
	return false
}

// selectSheets resolves a run/file pair through a session so selection
// errors read the same everywhere.
func selectSheets(archive *domain.Archive, run, file string) ([]domain.Sheet, error) {
	s := session.New(archive)
	if err := s.SelectRun(run); err != nil {
		return nil, err
	}
	if err := s.SelectFile(file); err != nil {
		return nil, err
	}
	return s.Sheets()
}

func newRenderCommand(app *appContext) *cobra.Command {
	var flags renderFlags
	var chartType string
	var outPath string
	var asTable bool

	cmd := &cobra.Command{
		Use:   "render <run> <file>",
		Short: "Build a chart for one file of a model run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			archive, err := app.openArchive(cmd.Context(), false)
			if err != nil {
				return err
			}
			sheets, err := selectSheets(archive, args[0], args[1])
			if err != nil {
				if handledSelectionError(cmd, err) {
					return nil
				}
				return err
			}

			var chart render.Chart
			switch chartType {
			case "line":
				chart, err = render.Line(sheets, opts)
			case "box":
				chart, err = render.BoxWhisker(sheets, opts)
			case "mean":
				chart, err = render.MeanTrend(sheets, opts)
			case "std":
				chart, err = render.StdDevTrend(sheets, opts)
			case "bar":
				chart, err = render.BarOfMeans(sheets, opts)
			default:
				return fmt.Errorf("unknown chart type %q", chartType)
			}
			if errors.Is(err, render.ErrNoData) {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to plot for this selection")
				return nil
			}
			if err != nil {
				return err
			}

			for _, w := range chart.Warnings {
				app.logger.Warn("render warning", "detail", w)
			}

			if asTable || outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), exporter.ChartTable(chart))
			}
			if outPath != "" {
				if err := exporter.WriteChartWorkbook(chart, outPath); err != nil {
					return err
				}
				app.logger.Info("chart written", "path", outPath)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&chartType, "type", "line", "chart type: line, box, mean, std, bar")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the chart to this xlsx file")
	cmd.Flags().BoolVar(&asTable, "table", false, "print the chart data as a table even when writing a file")
	return cmd
}
