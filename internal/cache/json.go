package cache

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// jsonSerializer is the fallback format: the whole archive as one
// gzip-compressed JSON document.
type jsonSerializer struct{}

func (*jsonSerializer) Name() string { return "json" }

type jsonBlob struct {
	SchemaVersion int       `json:"schema_version"`
	BuiltAt       time.Time `json:"built_at"`
	Runs          []jsonRun `json:"runs"`
}

type jsonRun struct {
	Name  string     `json:"name"`
	Files []jsonFile `json:"files"`
}

type jsonFile struct {
	Name   string      `json:"name"`
	Sheets []jsonSheet `json:"sheets"`
}

type jsonSheet struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func (*jsonSerializer) Save(a *domain.Archive, path string) error {
	blob := jsonBlob{SchemaVersion: schemaVersion, BuiltAt: a.BuiltAt}

	// Walk visits runs contiguously in sorted order, so files always belong
	// to the last run appended.
	a.Walk(func(run, file string, sheets []domain.Sheet) {
		if len(blob.Runs) == 0 || blob.Runs[len(blob.Runs)-1].Name != run {
			blob.Runs = append(blob.Runs, jsonRun{Name: run})
		}
		jr := &blob.Runs[len(blob.Runs)-1]
		jf := jsonFile{Name: file, Sheets: make([]jsonSheet, len(sheets))}
		for i, s := range sheets {
			jf.Sheets[i] = jsonSheet{Name: s.Name, Values: s.Values}
		}
		jr.Files = append(jr.Files, jf)
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json cache: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(blob); err != nil {
		return fmt.Errorf("encode json cache: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush json cache: %w", err)
	}
	return f.Close()
}

func (*jsonSerializer) Load(path string) (*domain.Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open json cache: %w", err)
	}
	defer zr.Close()

	var blob jsonBlob
	if err := json.NewDecoder(zr).Decode(&blob); err != nil {
		return nil, fmt.Errorf("decode json cache: %w", err)
	}
	if blob.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("cache schema version %d, want %d", blob.SchemaVersion, schemaVersion)
	}

	archive := domain.NewArchive()
	archive.BuiltAt = blob.BuiltAt
	for _, jr := range blob.Runs {
		for _, jf := range jr.Files {
			sheets := make([]domain.Sheet, len(jf.Sheets))
			for i, js := range jf.Sheets {
				values := js.Values
				if values == nil {
					values = []float64{}
				}
				sheets[i] = domain.Sheet{Name: js.Name, Values: values}
			}
			if err := archive.AddFile(jr.Name, jf.Name, sheets); err != nil {
				return nil, err
			}
		}
	}
	return archive, nil
}
