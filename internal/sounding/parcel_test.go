package sounding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCL(t *testing.T) {
	t.Run("typical warm-sector parcel", func(t *testing.T) {
		// 1000 hPa, 30C over 20C dewpoint: the LCL sits near 870 hPa
		// and a bit above 290 K.
		tK, pHPa := LCL(1000, 30, 20)
		assert.InDelta(t, 291.2, tK, 1.0)
		assert.InDelta(t, 870, pHPa, 10)
	})

	t.Run("saturated parcel condenses at the surface", func(t *testing.T) {
		tK, pHPa := LCL(1000, 20, 20)
		assert.InDelta(t, 20+kelvin, tK, 0.1)
		assert.InDelta(t, 1000, pHPa, 1)
	})

	t.Run("drier parcel lifts higher", func(t *testing.T) {
		_, pDry := LCL(1000, 30, 10)
		_, pMoist := LCL(1000, 30, 25)
		assert.Less(t, pDry, pMoist)
	})
}

func TestMoistLapse(t *testing.T) {
	t.Run("cools with ascent", func(t *testing.T) {
		top := moistLapse(850, 290, 500)
		assert.Less(t, top, 290.0)
	})

	t.Run("cools slower than the dry adiabat", func(t *testing.T) {
		const p0, t0, p = 850.0, 290.0, 700.0
		moist := moistLapse(p0, t0, p)
		dry := t0 * math.Pow(p/p0, kappa)
		assert.Greater(t, moist, dry)
	})

	t.Run("no ascent no change", func(t *testing.T) {
		assert.Equal(t, 290.0, moistLapse(850, 290, 850))
	})
}

func TestParcelProfile(t *testing.T) {
	profile := Profile{Levels: []Level{
		{Pressure: 1000, Temperature: 30, Dewpoint: 20},
		{Pressure: 950, Temperature: 26, Dewpoint: 18},
		{Pressure: 900, Temperature: 23, Dewpoint: 16},
		{Pressure: 850, Temperature: 20, Dewpoint: 15},
		{Pressure: 700, Temperature: 8, Dewpoint: 2},
		{Pressure: 500, Temperature: -12, Dewpoint: -20},
	}}

	t.Run("surface parcel starts at its own temperature", func(t *testing.T) {
		temps, err := ParcelProfile(profile)
		require.NoError(t, err)
		require.Len(t, temps, len(profile.Levels))
		assert.InDelta(t, 30.0, temps[0], 1e-9)
	})

	t.Run("temperature decreases monotonically with height", func(t *testing.T) {
		temps, err := ParcelProfile(profile)
		require.NoError(t, err)
		for i := 1; i < len(temps); i++ {
			assert.Less(t, temps[i], temps[i-1], "level %d", i)
		}
	})

	t.Run("below the LCL the ascent is dry adiabatic", func(t *testing.T) {
		temps, err := ParcelProfile(profile)
		require.NoError(t, err)

		// 950 hPa is below the ~870 hPa LCL of this parcel.
		want := (30+kelvin)*math.Pow(950.0/1000.0, kappa) - kelvin
		assert.InDelta(t, want, temps[1], 1e-9)
	})

	t.Run("above the LCL the parcel is warmer than dry ascent", func(t *testing.T) {
		temps, err := ParcelProfile(profile)
		require.NoError(t, err)

		dry := (30+kelvin)*math.Pow(500.0/1000.0, kappa) - kelvin
		assert.Greater(t, temps[5], dry)
	})

	t.Run("empty profile", func(t *testing.T) {
		_, err := ParcelProfile(Profile{})
		assert.ErrorIs(t, err, ErrEmptyProfile)
	})
}
