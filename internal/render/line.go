package render

import (
	"fmt"
	"math"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// Line plots the per-sheet minimum and maximum across the sheet axis:
// a dashed minimum series and a solid maximum series, one x position per
// sheet. Sheets left empty by the filter are dropped with a warning.
func Line(sheets []domain.Sheet, opts Options) (Chart, error) {
	chart := Chart{
		Title:  opts.Title,
		Unit:   opts.Unit,
		XLabel: "time",
	}

	var mins, maxs []float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range sheets {
		sum, ok := domain.Summarize(s.Values, opts.Filter)
		if !ok {
			chart.Warnings = append(chart.Warnings,
				fmt.Sprintf("no data available for sheet %s after filtering", s.Name))
			continue
		}
		chart.XTicks = append(chart.XTicks, s.Name)
		mins = append(mins, sum.Min)
		maxs = append(maxs, sum.Max)
		lo = math.Min(lo, sum.Min)
		hi = math.Max(hi, sum.Max)
	}
	if len(mins) == 0 {
		return chart, ErrNoData
	}

	chart.Series = []Series{
		{Name: "minimum", Values: mins, Style: StyleDashed, Color: opts.Color},
		{Name: "maximum", Values: maxs, Style: StyleSolid, Color: opts.Color},
	}
	chart.YLimit = resolveLimit(opts, Limit{Min: lo, Max: hi})
	return chart, nil
}

// MeanTrend plots the per-sheet mean as a single line series.
func MeanTrend(sheets []domain.Sheet, opts Options) (Chart, error) {
	return aggregateTrend(sheets, opts, StyleSolid, "mean", func(s domain.Summary) float64 {
		return s.Mean
	})
}

// StdDevTrend plots the per-sheet population standard deviation.
func StdDevTrend(sheets []domain.Sheet, opts Options) (Chart, error) {
	return aggregateTrend(sheets, opts, StyleSolid, "std dev", func(s domain.Summary) float64 {
		return s.StdDev
	})
}

// BarOfMeans draws the per-sheet mean as a bar chart.
func BarOfMeans(sheets []domain.Sheet, opts Options) (Chart, error) {
	return aggregateTrend(sheets, opts, StyleBars, "mean", func(s domain.Summary) float64 {
		return s.Mean
	})
}

func aggregateTrend(sheets []domain.Sheet, opts Options, style Style, name string, pick func(domain.Summary) float64) (Chart, error) {
	chart := Chart{
		Title:  opts.Title,
		Unit:   opts.Unit,
		XLabel: "time",
	}

	var values []float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range sheets {
		sum, ok := domain.Summarize(s.Values, opts.Filter)
		if !ok {
			chart.Warnings = append(chart.Warnings,
				fmt.Sprintf("no data available for sheet %s after filtering", s.Name))
			continue
		}
		v := pick(sum)
		chart.XTicks = append(chart.XTicks, s.Name)
		values = append(values, v)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(values) == 0 {
		return chart, ErrNoData
	}

	chart.Series = []Series{{Name: name, Values: values, Style: style, Color: opts.Color}}
	chart.YLimit = resolveLimit(opts, Limit{Min: lo, Max: hi})
	return chart, nil
}
