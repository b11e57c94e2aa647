// Package parser reads one .xlsx workbook into flattened numeric series,
// one per sheet.
package parser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// Options controls how sheet grids are read.
type Options struct {
	// HeaderSkip is the number of leading rows dropped from every sheet
	// before data starts. The source workbooks carry one label row.
	HeaderSkip int
	// MaxRows caps how many data rows are read per sheet after the skip.
	// Zero means unlimited. The stock workbook layout holds values in
	// A2:A550, i.e. 549 rows.
	MaxRows int
}

// DefaultOptions matches the layout of the model-output workbooks this tool
// was written for.
func DefaultOptions() Options {
	return Options{HeaderSkip: 1, MaxRows: 549}
}

// ParseError reports a workbook that could not be opened or read at all.
// Per-sheet conversion failures are not ParseErrors; those sheets are
// omitted with a warning and the rest of the file survives.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseWorkbook opens the workbook at path and returns every convertible
// sheet as a flattened row-major series, in workbook sheet order. A sheet
// whose data region contains a non-numeric cell is unconvertible: it is
// logged and dropped, and parsing continues with the next sheet. Only a
// failure to open or enumerate the workbook itself returns an error.
func ParseWorkbook(path string, opts Options, logger *slog.Logger) ([]domain.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	var sheets []domain.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			logger.Warn("skipping unreadable sheet", "path", path, "sheet", name, "error", err)
			continue
		}
		values, err := flatten(rows, opts)
		if err != nil {
			logger.Warn("skipping unconvertible sheet", "path", path, "sheet", name, "error", err)
			continue
		}
		sheets = append(sheets, domain.Sheet{Name: name, Values: values})
	}
	return sheets, nil
}

// flatten converts the raw cell grid to a single row-major series. Empty
// cells are dropped; any other unparseable cell fails the sheet.
func flatten(rows [][]string, opts Options) ([]float64, error) {
	if opts.HeaderSkip > 0 {
		if opts.HeaderSkip >= len(rows) {
			return []float64{}, nil
		}
		rows = rows[opts.HeaderSkip:]
	}
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}

	values := make([]float64, 0, len(rows)*8)
	for i, row := range rows {
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			// Thousands separators appear in some exported workbooks.
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: not numeric: %q", i+opts.HeaderSkip+1, j+1, cell)
			}
			values = append(values, v)
		}
	}
	return values, nil
}
