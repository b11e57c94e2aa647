// Package sounding models upper-air profiles and the derived quantities
// the Skew-T and hodograph charts are built from. All computations here
// are pure; fetching profiles is the adapter's job.
package sounding

import (
	"context"
	"errors"
	"math"
	"time"
)

// Level is one pressure level of a sounding. Units follow the upper-air
// text product: hPa, meters, degrees Celsius, degrees, knots.
type Level struct {
	Pressure    float64
	Height      float64
	Temperature float64
	Dewpoint    float64
	WindDir     float64
	WindSpeed   float64
}

// Profile is a full sounding for one station and valid time, ordered
// surface first (decreasing height in pressure coordinates).
type Profile struct {
	Station string
	Time    time.Time
	Levels  []Level
}

// Provider fetches a profile for a station and valid time.
type Provider interface {
	Fetch(ctx context.Context, station string, t time.Time) (Profile, error)
}

// ErrEmptyProfile reports a sounding with no usable levels.
var ErrEmptyProfile = errors.New("sounding has no levels")

// WindComponents converts meteorological direction/speed to u/v components
// in the same speed unit. Direction is where the wind comes from, so both
// components are negated.
func WindComponents(speed, dir float64) (u, v float64) {
	rad := dir * math.Pi / 180
	return -speed * math.Sin(rad), -speed * math.Cos(rad)
}

// HodographPoint is one wind observation in component space.
type HodographPoint struct {
	U        float64
	V        float64
	Pressure float64
}

// Hodograph returns the wind trace for levels at pressures above (greater
// than) minPressure. The charts mask everything above 300 hPa, where the
// trace stops saying anything about storm-relative flow.
func Hodograph(p Profile, minPressure float64) []HodographPoint {
	var points []HodographPoint
	for _, lv := range p.Levels {
		if lv.Pressure <= minPressure {
			continue
		}
		u, v := WindComponents(lv.WindSpeed, lv.WindDir)
		points = append(points, HodographPoint{U: u, V: v, Pressure: lv.Pressure})
	}
	return points
}
