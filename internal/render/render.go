// Package render turns flattened sheet data into chart models. Every
// renderer is a pure function over its inputs: nothing here touches the
// archive, the filesystem, or any drawing backend. The exporter package
// decides how a Chart becomes pixels, cells, or terminal text.
package render

import (
	"errors"
	"math"
)

// ErrNoData reports a selection that leaves nothing to plot, e.g. every
// sheet filtered empty. Callers surface it as a message, not a failure.
var ErrNoData = errors.New("no data to plot")

// Color is a palette selection. The zero value lets the backend choose.
type Color string

const (
	ColorDefault Color = ""
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorOrange  Color = "orange"
	ColorPurple  Color = "purple"
)

// Limit is an optional value-range override. Bounds are sorted before use
// so a swapped min/max from user input still behaves.
type Limit struct {
	Min float64
	Max float64
}

func (l Limit) sorted() Limit {
	if l.Min > l.Max {
		return Limit{Min: l.Max, Max: l.Min}
	}
	return l
}

// Options carries the display settings shared by all renderers.
type Options struct {
	Title string
	Unit  string
	// Limit overrides the value axis range when set.
	Limit *Limit
	// Color selects the palette entry for the primary series.
	Color Color
	// Filter drops values below this bound before any aggregation.
	Filter *float64
}

// Style describes how a series is drawn.
type Style int

const (
	StyleSolid Style = iota
	StyleDashed
	StyleBars
)

// Series is one named sequence along the category axis.
type Series struct {
	Name   string
	Values []float64
	Style  Style
	Color  Color
}

// Point is a single annotated marker, positioned by 1-based category index.
type Point struct {
	X     int
	Y     float64
	Label string
	Color Color
}

// Box is one category's quartile summary for a box-whisker chart.
type Box struct {
	Name        string
	Q1          float64
	Median      float64
	Q3          float64
	WhiskerLow  float64
	WhiskerHigh float64
}

// Chart is the renderer output: everything a backend needs to draw, and
// nothing about how to draw it.
type Chart struct {
	Title  string
	Unit   string
	XLabel string
	XTicks []string
	Series []Series
	Boxes  []Box
	Points []Point
	YLimit *Limit
	// Warnings records per-sheet degradations (filtered-empty sheets and
	// the like) that should reach the user without failing the chart.
	Warnings []string
}

// resolveLimit applies the user override, sorted, or falls back to the
// renderer's computed range.
func resolveLimit(opts Options, fallback Limit) *Limit {
	if opts.Limit != nil {
		l := opts.Limit.sorted()
		return &l
	}
	if math.IsInf(fallback.Min, 0) || math.IsInf(fallback.Max, 0) {
		return nil
	}
	return &fallback
}
