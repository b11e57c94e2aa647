package domain

import (
	"fmt"
	"sort"
	"time"
)

// Sheet is one worksheet's worth of data: a flattened numeric series keyed
// by the sheet name. Sheets keep source-workbook order inside a FileEntry.
type Sheet struct {
	Name   string
	Values []float64
}

// FileEntry holds the ordered sheets parsed from one workbook.
type FileEntry struct {
	Name   string
	Sheets []Sheet
}

// Sheet returns the series for the named sheet.
func (fe FileEntry) Sheet(name string) ([]float64, bool) {
	for _, s := range fe.Sheets {
		if s.Name == name {
			return s.Values, true
		}
	}
	return nil, false
}

// SheetNames returns the sheet names in workbook order.
func (fe FileEntry) SheetNames() []string {
	names := make([]string, len(fe.Sheets))
	for i, s := range fe.Sheets {
		names[i] = s.Name
	}
	return names
}

// Archive is the three-level container assembled by the loader:
// run → workbook file → ordered sheets. Run and file keys iterate in
// sorted order no matter what order entries were inserted in, so two
// archives built from the same tree always walk identically.
//
// An Archive is exclusively owned by the process that built or loaded it
// and is not safe for concurrent mutation.
type Archive struct {
	runs     map[string]map[string]FileEntry
	runOrder []string

	// BuiltAt records when the full parse completed. Informational only;
	// cache freshness is never derived from it.
	BuiltAt time.Time
}

// NewArchive returns an empty archive stamped with the package clock.
func NewArchive() *Archive {
	return &Archive{
		runs:    make(map[string]map[string]FileEntry),
		BuiltAt: clock.Now().UTC(),
	}
}

// AddFile inserts one workbook's sheets under run/file. It rejects malformed
// insertions instead of letting the container drift into ad-hoc shapes:
// empty keys, duplicate files, nil series, and duplicate or empty sheet
// names are all errors.
func (a *Archive) AddFile(run, file string, sheets []Sheet) error {
	if run == "" {
		return fmt.Errorf("archive: empty run name")
	}
	if file == "" {
		return fmt.Errorf("archive: empty file name for run %q", run)
	}
	seen := make(map[string]struct{}, len(sheets))
	for _, s := range sheets {
		if s.Name == "" {
			return fmt.Errorf("archive: %s/%s: empty sheet name", run, file)
		}
		if s.Values == nil {
			return fmt.Errorf("archive: %s/%s: nil series for sheet %q", run, file, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("archive: %s/%s: duplicate sheet %q", run, file, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	files, ok := a.runs[run]
	if !ok {
		files = make(map[string]FileEntry)
		a.runs[run] = files
		a.runOrder = insertSorted(a.runOrder, run)
	}
	if _, dup := files[file]; dup {
		return fmt.Errorf("archive: duplicate file %s/%s", run, file)
	}
	files[file] = FileEntry{Name: file, Sheets: sheets}
	return nil
}

// Runs returns all run names in sorted order.
func (a *Archive) Runs() []string {
	out := make([]string, len(a.runOrder))
	copy(out, a.runOrder)
	return out
}

// Files returns the sorted file names within a run.
func (a *Archive) Files(run string) ([]string, bool) {
	files, ok := a.runs[run]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// Get returns the ordered sheets of one workbook. This is the read-only
// query the interactive layer is built on.
func (a *Archive) Get(run, file string) ([]Sheet, bool) {
	files, ok := a.runs[run]
	if !ok {
		return nil, false
	}
	fe, ok := files[file]
	if !ok {
		return nil, false
	}
	return fe.Sheets, true
}

// NumFiles returns the total workbook count across all runs.
func (a *Archive) NumFiles() int {
	n := 0
	for _, files := range a.runs {
		n += len(files)
	}
	return n
}

// Walk visits every workbook in deterministic sorted run/file order.
func (a *Archive) Walk(fn func(run, file string, sheets []Sheet)) {
	for _, run := range a.runOrder {
		files, _ := a.Files(run)
		for _, file := range files {
			fn(run, file, a.runs[run][file].Sheets)
		}
	}
}

// Equal reports whether two archives hold identical data. BuiltAt is
// ignored: it is metadata, not content.
func (a *Archive) Equal(b *Archive) bool {
	if len(a.runOrder) != len(b.runOrder) {
		return false
	}
	equal := true
	a.Walk(func(run, file string, sheets []Sheet) {
		other, ok := b.Get(run, file)
		if !ok || len(other) != len(sheets) {
			equal = false
			return
		}
		for i := range sheets {
			if sheets[i].Name != other[i].Name || len(sheets[i].Values) != len(other[i].Values) {
				equal = false
				return
			}
			for j := range sheets[i].Values {
				if sheets[i].Values[j] != other[i].Values[j] {
					equal = false
					return
				}
			}
		}
	})
	return equal && a.NumFiles() == b.NumFiles()
}

func insertSorted(list []string, s string) []string {
	i := sort.SearchStrings(list, s)
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}
