package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wxplot/internal/domain"
)

func TestPearson(t *testing.T) {
	t.Run("correlates per-sheet maxima", func(t *testing.T) {
		a := []domain.Sheet{
			{Name: "f000", Values: []float64{1, 2}},
			{Name: "f012", Values: []float64{3, 4}},
			{Name: "f024", Values: []float64{5, 6}},
		}
		b := []domain.Sheet{
			{Name: "f000", Values: []float64{2, 4}},
			{Name: "f012", Values: []float64{6, 8}},
			{Name: "f024", Values: []float64{10, 12}},
		}

		corr, err := Pearson(a, b, Options{})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, corr.R, 1e-12) // maxima 2,4,6 vs 4,8,12
		assert.Equal(t, 3, corr.N)
		assert.False(t, corr.Padded)
	})

	t.Run("unequal sheet counts flag padding", func(t *testing.T) {
		a := []domain.Sheet{
			{Name: "f000", Values: []float64{1}},
			{Name: "f012", Values: []float64{2}},
			{Name: "f024", Values: []float64{3}},
		}
		b := []domain.Sheet{
			{Name: "f000", Values: []float64{1}},
			{Name: "f012", Values: []float64{5}},
		}

		corr, err := Pearson(a, b, Options{})
		require.NoError(t, err)
		assert.True(t, corr.Padded)
		assert.Equal(t, 3, corr.N)
	})

	t.Run("filter applies before aggregation", func(t *testing.T) {
		a := []domain.Sheet{
			{Name: "f000", Values: []float64{1, 100}},
			{Name: "f012", Values: []float64{2, 50}},
		}
		filter := 1000.0
		_, err := Pearson(a, a, Options{Filter: &filter})
		assert.ErrorIs(t, err, ErrNotComputable)
	})
}

func TestPercentErrorModes(t *testing.T) {
	control := []domain.Sheet{
		{Name: "f000", Values: []float64{10, 20}}, // mean 15, max 20
		{Name: "f012", Values: []float64{30, 50}}, // mean 40, max 50
	}
	test := []domain.Sheet{
		{Name: "f000", Values: []float64{11, 22}}, // mean 16.5, max 22
		{Name: "f012", Values: []float64{33, 55}}, // mean 44, max 55
	}

	t.Run("mode average compares means", func(t *testing.T) {
		pe, err := PercentError(control, test, ErrorOfMeans, Options{})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, pe, 1e-12)
	})

	t.Run("mode max compares maxima", func(t *testing.T) {
		pe, err := PercentError(control, test, ErrorOfMaxima, Options{})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, pe, 1e-12)
	})

	t.Run("unequal sheet counts refuse", func(t *testing.T) {
		_, err := PercentError(control, test[:1], ErrorOfMeans, Options{})
		assert.ErrorIs(t, err, ErrNotComputable)
	})
}
