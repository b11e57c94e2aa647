package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// WriteSummaryCSV writes one row per sheet with its aggregates, a compact
// export of everything the archive knows.
func WriteSummaryCSV(a *domain.Archive, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"run", "file", "sheet", "count", "min", "max", "mean", "stddev"}); err != nil {
		return fmt.Errorf("write summary csv: %w", err)
	}

	var writeErr error
	a.Walk(func(run, file string, sheets []domain.Sheet) {
		if writeErr != nil {
			return
		}
		for _, s := range sheets {
			sum, ok := domain.Summarize(s.Values, nil)
			record := []string{run, file, s.Name, strconv.Itoa(len(s.Values))}
			if ok {
				record = append(record,
					fmtF(sum.Min), fmtF(sum.Max), fmtF(sum.Mean), fmtF(sum.StdDev))
			} else {
				record = append(record, "", "", "", "")
			}
			if err := w.Write(record); err != nil {
				writeErr = fmt.Errorf("write summary csv: %w", err)
				return
			}
		}
	})
	if writeErr != nil {
		return writeErr
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush summary csv: %w", err)
	}
	return f.Close()
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
