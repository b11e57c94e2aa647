package sounding

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindComponents(t *testing.T) {
	cases := []struct {
		name       string
		speed, dir float64
		u, v       float64
	}{
		{"northerly", 10, 0, 0, -10},
		{"easterly", 10, 90, -10, 0},
		{"southerly", 10, 180, 0, 10},
		{"westerly", 10, 270, 10, 0},
		{"southwesterly", math.Sqrt2, 225, 1, 1},
		{"calm", 0, 123, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, v := WindComponents(tc.speed, tc.dir)
			assert.InDelta(t, tc.u, u, 1e-12)
			assert.InDelta(t, tc.v, v, 1e-12)
		})
	}
}

func TestHodograph(t *testing.T) {
	p := Profile{
		Station: "OUN",
		Time:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Levels: []Level{
			{Pressure: 1000, WindDir: 180, WindSpeed: 10},
			{Pressure: 500, WindDir: 270, WindSpeed: 30},
			{Pressure: 300, WindDir: 270, WindSpeed: 60},
			{Pressure: 200, WindDir: 270, WindSpeed: 80},
		},
	}

	points := Hodograph(p, 300)
	require.Len(t, points, 2) // 300 and 200 hPa are masked
	assert.Equal(t, 1000.0, points[0].Pressure)
	assert.InDelta(t, 10.0, points[0].V, 1e-12)
	assert.Equal(t, 500.0, points[1].Pressure)
	assert.InDelta(t, 30.0, points[1].U, 1e-12)
}
