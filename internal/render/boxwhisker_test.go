package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wxplot/internal/domain"
)

func TestBoxWhisker(t *testing.T) {
	t.Run("boxes carry the fence", func(t *testing.T) {
		chart, err := BoxWhisker([]domain.Sheet{
			{Name: "f000", Values: []float64{1, 2, 3, 4, 5}},
		}, Options{})
		require.NoError(t, err)

		require.Len(t, chart.Boxes, 1)
		b := chart.Boxes[0]
		assert.Equal(t, "f000", b.Name)
		assert.InDelta(t, 2.0, b.Q1, 1e-12)
		assert.InDelta(t, 3.0, b.Median, 1e-12)
		assert.InDelta(t, 4.0, b.Q3, 1e-12)
		assert.InDelta(t, -1.0, b.WhiskerLow, 1e-12)
		assert.InDelta(t, 7.0, b.WhiskerHigh, 1e-12)
	})

	t.Run("default axis range adds headroom above the fence", func(t *testing.T) {
		chart, err := BoxWhisker([]domain.Sheet{
			{Name: "f000", Values: []float64{1, 2, 3, 4, 5}},
		}, Options{})
		require.NoError(t, err)

		require.NotNil(t, chart.YLimit)
		assert.InDelta(t, -1.0, chart.YLimit.Min, 1e-12)
		assert.InDelta(t, 7.0+7.0/4, chart.YLimit.Max, 1e-12)
	})

	t.Run("extreme markers", func(t *testing.T) {
		chart, err := BoxWhisker([]domain.Sheet{
			{Name: "f000", Values: []float64{1, 2, 3, 4, 5}},
			{Name: "f012", Values: []float64{2, 3, 4, 5, 6}},
		}, Options{})
		require.NoError(t, err)

		// One min and one max marker per box, 1-based x.
		require.Len(t, chart.Points, 4)
		assert.Equal(t, Point{X: 1, Y: 1, Color: ColorRed}, chart.Points[0])
		assert.Equal(t, Point{X: 1, Y: 5, Color: ColorGreen}, chart.Points[1])
		assert.Equal(t, Point{X: 2, Y: 2, Color: ColorRed}, chart.Points[2])
		assert.Equal(t, Point{X: 2, Y: 6, Color: ColorGreen}, chart.Points[3])
	})

	t.Run("outliers clamp to the fence with true-value labels", func(t *testing.T) {
		// 500 is far beyond the Q3+1.5*IQR fence (7); the marker pins to
		// the fence and the label keeps the real value.
		chart, err := BoxWhisker([]domain.Sheet{
			{Name: "f000", Values: []float64{1, 2, 3, 4, 500}},
		}, Options{})
		require.NoError(t, err)

		require.Len(t, chart.Points, 2)
		maxPoint := chart.Points[1]
		assert.InDelta(t, 7.0, maxPoint.Y, 1e-12)
		assert.Equal(t, fmt.Sprintf("%.4g", 500.0), maxPoint.Label)

		minPoint := chart.Points[0]
		assert.Equal(t, 1.0, minPoint.Y)
		assert.Empty(t, minPoint.Label)
	})

	t.Run("filtered-empty sheet warns", func(t *testing.T) {
		filter := 10.0
		chart, err := BoxWhisker([]domain.Sheet{
			{Name: "f000", Values: []float64{1, 2}},
			{Name: "f012", Values: []float64{11, 12, 13}},
		}, Options{Filter: &filter})
		require.NoError(t, err)

		require.Len(t, chart.Boxes, 1)
		require.Len(t, chart.Warnings, 1)
		assert.Contains(t, chart.Warnings[0], "f000")
	})

	t.Run("no usable sheets is ErrNoData", func(t *testing.T) {
		_, err := BoxWhisker(nil, Options{})
		assert.ErrorIs(t, err, ErrNoData)
	})
}
