package render

import (
	"github.com/couchcryptid/wxplot/internal/domain"
)

// ErrNotComputable mirrors the domain sentinel so callers can check either
// package.
var ErrNotComputable = domain.ErrNotComputable

// Correlation holds the result of correlating two selections.
type Correlation struct {
	R float64
	// N is the series length actually correlated, after any padding.
	N int
	// Padded is true when the selections had unequal sheet counts and the
	// shorter maxima series was zero-padded. The result is then a known
	// approximation, not a rigorous statistic.
	Padded bool
}

// Pearson correlates the per-sheet maxima of two selections. Sheets left
// empty by the filter are skipped on each side independently; unequal
// maxima series are zero-padded before correlating.
func Pearson(a, b []domain.Sheet, opts Options) (Correlation, error) {
	maxA := sheetMaxima(a, opts.Filter)
	maxB := sheetMaxima(b, opts.Filter)

	r, err := domain.PearsonR(maxA, maxB)
	if err != nil {
		return Correlation{}, err
	}
	n := len(maxA)
	if len(maxB) > n {
		n = len(maxB)
	}
	return Correlation{R: r, N: n, Padded: len(maxA) != len(maxB)}, nil
}

// ErrorMode selects which per-sheet aggregate percent error compares.
type ErrorMode string

const (
	ErrorOfMeans  ErrorMode = "average"
	ErrorOfMaxima ErrorMode = "max"
)

// PercentError compares a control selection against a test selection by
// per-sheet means or maxima. Unlike Pearson there is no padding: unequal
// sheet counts return ErrNotComputable.
func PercentError(control, test []domain.Sheet, mode ErrorMode, opts Options) (float64, error) {
	if len(control) != len(test) {
		return 0, ErrNotComputable
	}
	pick := func(s domain.Summary) float64 { return s.Mean }
	if mode == ErrorOfMaxima {
		pick = func(s domain.Summary) float64 { return s.Max }
	}

	ctrl := sheetAggregates(control, opts.Filter, pick)
	tst := sheetAggregates(test, opts.Filter, pick)
	return domain.PercentError(ctrl, tst)
}

func sheetMaxima(sheets []domain.Sheet, filter *float64) []float64 {
	return sheetAggregates(sheets, filter, func(s domain.Summary) float64 { return s.Max })
}

func sheetAggregates(sheets []domain.Sheet, filter *float64, pick func(domain.Summary) float64) []float64 {
	out := make([]float64, 0, len(sheets))
	for _, s := range sheets {
		sum, ok := domain.Summarize(s.Values, filter)
		if !ok {
			continue
		}
		out = append(out, pick(sum))
	}
	return out
}
