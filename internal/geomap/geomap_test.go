package geomap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wxplot/internal/render"
)

func TestProject(t *testing.T) {
	t.Run("north pole is the origin", func(t *testing.T) {
		x, y := Project(90, -105)
		assert.InDelta(t, 0, x, 1e-9)
		assert.InDelta(t, 0, y, 1e-9)
	})

	t.Run("central meridian projects onto the y axis", func(t *testing.T) {
		x, y := Project(40, -105)
		assert.InDelta(t, 0, x, 1e-9)
		assert.Less(t, y, 0.0)
	})

	t.Run("east of center lands at positive x", func(t *testing.T) {
		x, _ := Project(40, -90)
		assert.Greater(t, x, 0.0)
		x, _ = Project(40, -120)
		assert.Less(t, x, 0.0)
	})

	t.Run("lower latitude is farther from the pole", func(t *testing.T) {
		dist := func(lat float64) float64 {
			x, y := Project(lat, -105)
			return math.Hypot(x, y)
		}
		assert.Greater(t, dist(25), dist(45))
	})

	t.Run("stereographic radius", func(t *testing.T) {
		// rho = 2R tan(45 deg - lat/2); at lat 30 that is 2R tan(30 deg).
		_, y := Project(30, -105)
		want := 2 * earthRadiusKM * math.Tan(math.Pi/6)
		assert.InDelta(t, want, -y, 1e-6)
	})
}

func TestRender(t *testing.T) {
	obs := []Observation{
		{Station: "OUN", Lat: 35.2, Lon: -97.4, Value: 72},
		{Station: "DEN", Lat: 39.8, Lon: -104.7, Value: 65},
		{Station: "LIH", Lat: 21.9, Lon: -159.3, Value: 80}, // Hawaii, outside CONUS
	}

	t.Run("projects in-extent stations", func(t *testing.T) {
		chart, err := Render(obs, ConusExtent, render.Options{Title: "2m temp", Unit: "degF"})
		require.NoError(t, err)

		assert.Equal(t, "2m temp", chart.Title)
		require.Len(t, chart.Points, 2)
		assert.Equal(t, "OUN", chart.Points[0].Station)
		assert.Equal(t, 72.0, chart.Points[0].Value)

		wantX, wantY := Project(35.2, -97.4)
		assert.Equal(t, wantX, chart.Points[0].X)
		assert.Equal(t, wantY, chart.Points[0].Y)

		require.Len(t, chart.Warnings, 1)
		assert.Contains(t, chart.Warnings[0], "LIH")
	})

	t.Run("filter drops low values silently", func(t *testing.T) {
		filter := 70.0
		chart, err := Render(obs, ConusExtent, render.Options{Filter: &filter})
		require.NoError(t, err)

		require.Len(t, chart.Points, 1)
		assert.Equal(t, "OUN", chart.Points[0].Station)
	})

	t.Run("nothing inside the extent", func(t *testing.T) {
		narrow := Extent{West: -80, East: -79, South: 30, North: 31}
		_, err := Render(obs, narrow, render.Options{})
		assert.ErrorIs(t, err, render.ErrNoData)
	})
}
