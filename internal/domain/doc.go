// Package domain models preloaded model-run spreadsheet data.
//
// # Data Source
//
// Model output arrives as directories of .xlsx workbooks. Each immediate
// subdirectory of the data root is one "run" (a Dataset Group): a named
// simulation or experiment whose workbooks describe one variable each,
// e.g. "Reflectivity_OVER20dBZ_Level12.xlsx". Each sheet within a workbook
// is one output time, holding a two-dimensional grid of values.
//
// # Layout Conventions
//
// Sheet data begins after a fixed header-skip offset (the first worksheet
// row carries grid labels and is never data). There is no fixed column
// count; rows are read as wide as they are and the grid is flattened to a
// one-dimensional series in row-major order. Empty cells are dropped
// during flattening, so series lengths may differ between sheets of the
// same workbook.
//
// # Container Shape
//
// The in-memory container is a three-level mapping:
//
//	run → workbook file → sheet → []float64
//
// Run and file keys iterate in sorted order regardless of insertion or
// parse-completion order. Sheets keep the order they appear in the source
// workbook, which is the time axis of every chart built from them.
// Malformed insertions (empty keys, nil series, duplicate sheet names) are
// rejected at construction time; an Archive can therefore never hold an
// ad-hoc shape.
//
// # Statistics
//
// The quartile helpers use the linear-interpolation percentile convention,
// and the box-whisker fence is Q1-1.5*IQR / Q3+1.5*IQR. Pearson
// correlation of unequal-length series zero-pads the shorter side before
// correlating; percent error refuses unequal lengths instead. Both
// behaviors are part of the chart contract and are covered by tests.
package domain
