package exporter

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/couchcryptid/wxplot/internal/domain"
	"github.com/couchcryptid/wxplot/internal/geomap"
	"github.com/couchcryptid/wxplot/internal/render"
)

// ChartTable renders a chart model as a terminal table: one row per
// category tick, one column per series, so a chart can be inspected
// without opening the workbook.
func ChartTable(chart render.Chart) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(chart.Title)

	if len(chart.Boxes) > 0 {
		tw.AppendHeader(table.Row{chart.XLabel, "Q1", "median", "Q3", "whisker low", "whisker high"})
		for _, b := range chart.Boxes {
			tw.AppendRow(table.Row{b.Name, num(b.Q1), num(b.Median), num(b.Q3), num(b.WhiskerLow), num(b.WhiskerHigh)})
		}
		return tw.Render()
	}

	header := table.Row{chart.XLabel}
	for _, s := range chart.Series {
		name := s.Name
		if chart.Unit != "" {
			name = fmt.Sprintf("%s (%s)", s.Name, chart.Unit)
		}
		header = append(header, name)
	}
	tw.AppendHeader(header)

	for i, tick := range chart.XTicks {
		row := table.Row{tick}
		for _, s := range chart.Series {
			if i < len(s.Values) {
				row = append(row, num(s.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		tw.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, len(chart.Series))
	for i := range chart.Series {
		configs[i] = table.ColumnConfig{Number: i + 2, Align: text.AlignRight}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// ArchiveTable summarizes a loaded archive: per run, the file count and
// total sheet count.
func ArchiveTable(a *domain.Archive) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"run", "files", "sheets"})

	for _, run := range a.Runs() {
		files, _ := a.Files(run)
		sheetCount := 0
		for _, file := range files {
			sheets, _ := a.Get(run, file)
			sheetCount += len(sheets)
		}
		tw.AppendRow(table.Row{run, len(files), sheetCount})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render()
}

// MapTable lists projected station observations: one row per station with
// its map-plane coordinates and value.
func MapTable(chart geomap.Chart) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(chart.Title)

	value := "value"
	if chart.Unit != "" {
		value = fmt.Sprintf("value (%s)", chart.Unit)
	}
	tw.AppendHeader(table.Row{"station", "x", "y", value})
	for _, p := range chart.Points {
		tw.AppendRow(table.Row{p.Station, num(p.X), num(p.Y), num(p.Value)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
