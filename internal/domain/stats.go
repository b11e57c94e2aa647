package domain

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrNotComputable is returned when a comparison is requested on selections
// whose shapes make the result meaningless, e.g. percent error across runs
// with different sheet counts.
var ErrNotComputable = errors.New("not computable")

// Summary holds the per-series aggregates the renderers are built from.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Count  int
}

// Summarize computes aggregates over a series, optionally applying a lower
// bound first. Returns false when no values survive filtering.
func Summarize(values []float64, filter *float64) (Summary, bool) {
	kept := Filter(values, filter)
	if len(kept) == 0 {
		return Summary{}, false
	}
	s := Summary{
		Min:    kept[0],
		Max:    kept[0],
		Mean:   stat.Mean(kept, nil),
		StdDev: stat.PopStdDev(kept, nil),
		Count:  len(kept),
	}
	for _, v := range kept[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s, true
}

// Filter returns the values at or above the threshold. A nil threshold
// keeps everything; the input is never modified.
func Filter(values []float64, threshold *float64) []float64 {
	if threshold == nil {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= *threshold {
			out = append(out, v)
		}
	}
	return out
}

// Percentile computes the p-th percentile (0 to 100) with linear
// interpolation between closest ranks. gonum's Quantile follows a different
// interpolation scheme, so the fence math is done here.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	h := (float64(len(sorted)-1) * p) / 100
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// Fence holds the quartile summary and outlier boundaries of one series.
type Fence struct {
	Q1     float64
	Median float64
	Q3     float64
	IQR    float64
	Low    float64 // Q1 - 1.5*IQR
	High   float64 // Q3 + 1.5*IQR
}

// ComputeFence derives the box-whisker fence for a series.
func ComputeFence(values []float64) (Fence, bool) {
	if len(values) == 0 {
		return Fence{}, false
	}
	q1 := Percentile(values, 25)
	q3 := Percentile(values, 75)
	iqr := q3 - q1
	return Fence{
		Q1:     q1,
		Median: Percentile(values, 50),
		Q3:     q3,
		IQR:    iqr,
		Low:    q1 - 1.5*iqr,
		High:   q3 + 1.5*iqr,
	}, true
}

// PearsonR correlates two series. Unequal lengths are zero-padded to equal
// length before correlating. Padding keeps a cross-run comparison usable
// when one run has fewer sheets, at the cost of statistical rigor; callers
// flag padded results to the user.
func PearsonR(x, y []float64) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, ErrNotComputable
	}
	x, y = padToEqual(x, y)
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, ErrNotComputable
	}
	return r, nil
}

// PercentError computes the mean signed percent error of test against
// control, element-wise over per-sheet aggregates. Unlike PearsonR there is
// no padding: unequal lengths return ErrNotComputable.
func PercentError(control, test []float64) (float64, error) {
	if len(control) == 0 || len(control) != len(test) {
		return 0, ErrNotComputable
	}
	errs := make([]float64, len(control))
	for i := range control {
		if control[i] == 0 {
			return 0, ErrNotComputable
		}
		errs[i] = (test[i] - control[i]) / control[i] * 100
	}
	return stat.Mean(errs, nil), nil
}

func padToEqual(x, y []float64) ([]float64, []float64) {
	if len(x) == len(y) {
		return x, y
	}
	pad := func(s []float64, n int) []float64 {
		out := make([]float64, n)
		copy(out, s)
		return out
	}
	if len(x) < len(y) {
		return pad(x, len(y)), y
	}
	return x, pad(y, len(x))
}
