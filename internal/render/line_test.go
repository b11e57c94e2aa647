package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wxplot/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func testSheets() []domain.Sheet {
	return []domain.Sheet{
		{Name: "f000", Values: []float64{1, 5, 3}},
		{Name: "f012", Values: []float64{2, 8, 4}},
		{Name: "f024", Values: []float64{0, 6, 9}},
	}
}

func TestLine(t *testing.T) {
	t.Run("min and max series per sheet", func(t *testing.T) {
		chart, err := Line(testSheets(), Options{Title: "temps", Unit: "degF"})
		require.NoError(t, err)

		assert.Equal(t, "temps", chart.Title)
		assert.Equal(t, []string{"f000", "f012", "f024"}, chart.XTicks)
		require.Len(t, chart.Series, 2)

		assert.Equal(t, "minimum", chart.Series[0].Name)
		assert.Equal(t, StyleDashed, chart.Series[0].Style)
		assert.Equal(t, []float64{1, 2, 0}, chart.Series[0].Values)

		assert.Equal(t, "maximum", chart.Series[1].Name)
		assert.Equal(t, StyleSolid, chart.Series[1].Style)
		assert.Equal(t, []float64{5, 8, 9}, chart.Series[1].Values)

		require.NotNil(t, chart.YLimit)
		assert.Equal(t, 0.0, chart.YLimit.Min)
		assert.Equal(t, 9.0, chart.YLimit.Max)
	})

	t.Run("filtered-empty sheet warns and is dropped", func(t *testing.T) {
		chart, err := Line(testSheets(), Options{Filter: floatPtr(7)})
		require.NoError(t, err)

		assert.Equal(t, []string{"f012", "f024"}, chart.XTicks)
		require.Len(t, chart.Warnings, 1)
		assert.Contains(t, chart.Warnings[0], "f000")
	})

	t.Run("everything filtered is ErrNoData", func(t *testing.T) {
		_, err := Line(testSheets(), Options{Filter: floatPtr(100)})
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("no sheets is ErrNoData", func(t *testing.T) {
		_, err := Line(nil, Options{})
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("user limit overrides computed range", func(t *testing.T) {
		chart, err := Line(testSheets(), Options{Limit: &Limit{Min: 20, Max: -10}})
		require.NoError(t, err)
		require.NotNil(t, chart.YLimit)
		// Swapped bounds are sorted.
		assert.Equal(t, -10.0, chart.YLimit.Min)
		assert.Equal(t, 20.0, chart.YLimit.Max)
	})
}

func TestAggregateTrends(t *testing.T) {
	t.Run("mean trend", func(t *testing.T) {
		chart, err := MeanTrend(testSheets(), Options{})
		require.NoError(t, err)
		require.Len(t, chart.Series, 1)
		assert.Equal(t, "mean", chart.Series[0].Name)
		assert.Equal(t, StyleSolid, chart.Series[0].Style)
		assert.InDeltaSlice(t, []float64{3, 14.0 / 3, 5}, chart.Series[0].Values, 1e-12)
	})

	t.Run("std dev trend", func(t *testing.T) {
		chart, err := StdDevTrend([]domain.Sheet{
			{Name: "f000", Values: []float64{2, 4, 4, 4, 5, 5, 7, 9}},
		}, Options{})
		require.NoError(t, err)
		require.Len(t, chart.Series, 1)
		assert.Equal(t, "std dev", chart.Series[0].Name)
		assert.InDelta(t, 2.0, chart.Series[0].Values[0], 1e-12)
	})

	t.Run("bar of means uses bar style", func(t *testing.T) {
		chart, err := BarOfMeans(testSheets(), Options{})
		require.NoError(t, err)
		require.Len(t, chart.Series, 1)
		assert.Equal(t, StyleBars, chart.Series[0].Style)
	})
}
