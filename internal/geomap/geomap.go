// Package geomap projects station observations onto a north polar
// stereographic plane for event-map scatter charts. The projection is
// centered on 105W with a CONUS default extent, the usual framing for
// severe-weather maps of the continental United States.
package geomap

import (
	"math"

	"github.com/couchcryptid/wxplot/internal/render"
)

// earthRadiusKM is the spherical earth radius used by the projection.
const earthRadiusKM = 6371.0

// centralLongitude rotates the projection so the CONUS sits upright.
const centralLongitude = -105.0

// Observation is one surface station report to place on the map.
type Observation struct {
	Station string
	Lat     float64
	Lon     float64
	Value   float64
}

// Extent is a geographic bounding box in degrees.
type Extent struct {
	West  float64
	East  float64
	South float64
	North float64
}

// ConusExtent covers the contiguous United States.
var ConusExtent = Extent{West: -125, East: -66.5, South: 24, North: 49}

func (e Extent) contains(lat, lon float64) bool {
	return lat >= e.South && lat <= e.North && lon >= e.West && lon <= e.East
}

// ProjectedPoint is an observation in projected plane coordinates (km).
type ProjectedPoint struct {
	Station string
	X       float64
	Y       float64
	Value   float64
}

// Chart is the map renderer output: projected points plus display options.
type Chart struct {
	Title    string
	Unit     string
	Points   []ProjectedPoint
	Warnings []string
}

// Project maps a latitude/longitude to north polar stereographic plane
// coordinates in kilometers.
func Project(lat, lon float64) (x, y float64) {
	phi := lat * math.Pi / 180
	lam := (lon - centralLongitude) * math.Pi / 180

	rho := 2 * earthRadiusKM * math.Tan(math.Pi/4-phi/2)
	return rho * math.Sin(lam), -rho * math.Cos(lam)
}

// Render projects the observations inside extent. Out-of-extent stations
// are dropped with a warning; an empty result is ErrNoData, not a failure.
func Render(obs []Observation, extent Extent, opts render.Options) (Chart, error) {
	chart := Chart{Title: opts.Title, Unit: opts.Unit}
	for _, o := range obs {
		if !extent.contains(o.Lat, o.Lon) {
			chart.Warnings = append(chart.Warnings, o.Station+" outside map extent")
			continue
		}
		if opts.Filter != nil && o.Value < *opts.Filter {
			continue
		}
		x, y := Project(o.Lat, o.Lon)
		chart.Points = append(chart.Points, ProjectedPoint{
			Station: o.Station,
			X:       x,
			Y:       y,
			Value:   o.Value,
		})
	}
	if len(chart.Points) == 0 {
		return chart, render.ErrNoData
	}
	return chart, nil
}
