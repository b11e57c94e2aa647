package render

import (
	"fmt"
	"math"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// BoxWhisker builds a per-sheet quartile summary with manual outlier
// handling: each sheet's true minimum and maximum are drawn as colored
// markers, and a value outside the plotted range is clamped to the range
// boundary and annotated with its true value instead of being dropped or
// stretching the axis.
func BoxWhisker(sheets []domain.Sheet, opts Options) (Chart, error) {
	chart := Chart{
		Title:  opts.Title,
		Unit:   opts.Unit,
		XLabel: "Time",
	}

	type extreme struct {
		min, max float64
		fence    domain.Fence
	}
	var extremes []extreme
	fenceLow, fenceHigh := math.Inf(1), math.Inf(-1)
	for _, s := range sheets {
		values := domain.Filter(s.Values, opts.Filter)
		fence, ok := domain.ComputeFence(values)
		if !ok {
			chart.Warnings = append(chart.Warnings,
				fmt.Sprintf("no data available for sheet %s after filtering", s.Name))
			continue
		}
		sum, _ := domain.Summarize(values, nil)
		chart.XTicks = append(chart.XTicks, s.Name)
		chart.Boxes = append(chart.Boxes, Box{
			Name:        s.Name,
			Q1:          fence.Q1,
			Median:      fence.Median,
			Q3:          fence.Q3,
			WhiskerLow:  fence.Low,
			WhiskerHigh: fence.High,
		})
		extremes = append(extremes, extreme{min: sum.Min, max: sum.Max, fence: fence})
		fenceLow = math.Min(fenceLow, fence.Low)
		fenceHigh = math.Max(fenceHigh, fence.High)
	}
	if len(chart.Boxes) == 0 {
		return chart, ErrNoData
	}

	// Default axis range: the widest fence, with headroom above for
	// annotation text.
	chart.YLimit = resolveLimit(opts, Limit{Min: fenceLow, Max: fenceHigh + fenceHigh/4})

	for i, ex := range extremes {
		chart.Points = append(chart.Points, clampedPoint(i+1, ex.min, ColorRed, ex.fence))
		chart.Points = append(chart.Points, clampedPoint(i+1, ex.max, ColorGreen, ex.fence))
	}
	return chart, nil
}

// clampedPoint places a marker at (x, v). A value beyond the box's fence
// is pinned to the fence boundary and labeled with its true value, so an
// extreme outlier never stretches the axis or vanishes off the chart.
func clampedPoint(x int, v float64, color Color, fence domain.Fence) Point {
	p := Point{X: x, Y: v, Color: color}
	if v < fence.Low {
		p.Y = fence.Low
		p.Label = fmt.Sprintf("%.4g", v)
	} else if v > fence.High {
		p.Y = fence.High
		p.Label = fmt.Sprintf("%.4g", v)
	}
	return p
}
