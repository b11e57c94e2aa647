// Package exporter turns chart models into artifacts a user can open:
// charts embedded in .xlsx workbooks, terminal tables, and CSV summaries.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/wxplot/internal/render"
)

const dataSheet = "Data"

// WriteChartWorkbook writes the chart's backing data to a sheet and embeds
// a chart object over it. Box charts have no native xlsx chart type, so a
// box-whisker model is written as its quartile series plus an annotated
// outlier table.
func WriteChartWorkbook(chart render.Chart, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), dataSheet)

	series := chart.Series
	if len(chart.Boxes) > 0 {
		series = boxSeries(chart)
	}
	if len(series) == 0 {
		return render.ErrNoData
	}

	// Column A: category ticks. One column per series after that.
	if err := f.SetCellValue(dataSheet, "A1", chart.XLabel); err != nil {
		return fmt.Errorf("write chart data: %w", err)
	}
	for i, tick := range chart.XTicks {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetCellValue(dataSheet, cell, tick); err != nil {
			return fmt.Errorf("write chart data: %w", err)
		}
	}
	for col, s := range series {
		name, err := excelize.ColumnNumberToName(col + 2)
		if err != nil {
			return fmt.Errorf("write chart data: %w", err)
		}
		if err := f.SetCellValue(dataSheet, name+"1", s.Name); err != nil {
			return fmt.Errorf("write chart data: %w", err)
		}
		for row, v := range s.Values {
			if err := f.SetCellValue(dataSheet, fmt.Sprintf("%s%d", name, row+2), v); err != nil {
				return fmt.Errorf("write chart data: %w", err)
			}
		}
	}

	writeOutliers(f, chart, len(series))

	chartType := excelize.Line
	if len(chart.Series) > 0 && chart.Series[0].Style == render.StyleBars {
		chartType = excelize.Col
	}

	n := len(chart.XTicks)
	chartSeries := make([]excelize.ChartSeries, len(series))
	for i := range series {
		name, _ := excelize.ColumnNumberToName(i + 2)
		chartSeries[i] = excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", dataSheet, name),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, name, name, n+1),
		}
	}

	xc := &excelize.Chart{
		Type:   chartType,
		Series: chartSeries,
		Title:  []excelize.RichTextRun{{Text: chart.Title}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: chart.Unit}}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: chart.XLabel}}},
	}
	if chart.YLimit != nil {
		minV, maxV := chart.YLimit.Min, chart.YLimit.Max
		xc.YAxis.Minimum = &minV
		xc.YAxis.Maximum = &maxV
	}

	cell, _ := excelize.CoordinatesToCellName(len(series)+6, 2)
	if err := f.AddChart(dataSheet, cell, xc); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return f.SaveAs(path)
}

// boxSeries flattens box-whisker quartiles into plain series so they can
// live in an xlsx line chart.
func boxSeries(chart render.Chart) []render.Series {
	pick := func(name string, get func(render.Box) float64) render.Series {
		values := make([]float64, len(chart.Boxes))
		for i, b := range chart.Boxes {
			values[i] = get(b)
		}
		return render.Series{Name: name, Values: values}
	}
	return []render.Series{
		pick("whisker low", func(b render.Box) float64 { return b.WhiskerLow }),
		pick("Q1", func(b render.Box) float64 { return b.Q1 }),
		pick("median", func(b render.Box) float64 { return b.Median }),
		pick("Q3", func(b render.Box) float64 { return b.Q3 }),
		pick("whisker high", func(b render.Box) float64 { return b.WhiskerHigh }),
	}
}

// writeOutliers records annotated marker points next to the series data.
func writeOutliers(f *excelize.File, chart render.Chart, seriesCount int) {
	if len(chart.Points) == 0 {
		return
	}
	base := seriesCount + 2
	colX, _ := excelize.ColumnNumberToName(base)
	colY, _ := excelize.ColumnNumberToName(base + 1)
	colL, _ := excelize.ColumnNumberToName(base + 2)
	_ = f.SetCellValue(dataSheet, colX+"1", "marker x")
	_ = f.SetCellValue(dataSheet, colY+"1", "marker y")
	_ = f.SetCellValue(dataSheet, colL+"1", "label")
	for i, p := range chart.Points {
		row := i + 2
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("%s%d", colX, row), p.X)
		_ = f.SetCellValue(dataSheet, fmt.Sprintf("%s%d", colY, row), p.Y)
		if p.Label != "" {
			_ = f.SetCellValue(dataSheet, fmt.Sprintf("%s%d", colL, row), p.Label)
		}
	}
}
