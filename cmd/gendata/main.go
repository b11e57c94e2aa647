// Command gendata writes a synthetic dataset tree for exercising the loader
// and renderers without real model output. Each run directory gets a set of
// xlsx workbooks whose sheets hold a noisy diurnal signal, seeded so the
// same flags always produce the same tree.
//
// Usage:
//
//	go run ./cmd/gendata -out Datasets -runs 3 -files 4 -sheets 6 -rows 120
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "Datasets", "root of the generated dataset tree")
	runs := flag.Int("runs", 3, "number of run directories")
	files := flag.Int("files", 4, "workbooks per run")
	sheets := flag.Int("sheets", 6, "sheets per workbook")
	rows := flag.Int("rows", 120, "data rows per sheet")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	for r := 0; r < *runs; r++ {
		runDir := filepath.Join(*outDir, fmt.Sprintf("run_%02d", r+1))
		if err := os.MkdirAll(runDir, 0o755); err != nil {
			return err
		}
		for f := 0; f < *files; f++ {
			path := filepath.Join(runDir, fmt.Sprintf("member_%02d.xlsx", f+1))
			if err := writeWorkbook(path, *sheets, *rows, rng); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			log.Printf("wrote %s", path)
		}
	}
	return nil
}

func writeWorkbook(path string, sheets, rows int, rng *rand.Rand) error {
	wb := excelize.NewFile()
	defer wb.Close()

	base := 10 + rng.Float64()*20
	for s := 0; s < sheets; s++ {
		name := fmt.Sprintf("f%03d", s*12)
		if s == 0 {
			if err := wb.SetSheetName(wb.GetSheetName(0), name); err != nil {
				return err
			}
		} else {
			if _, err := wb.NewSheet(name); err != nil {
				return err
			}
		}

		if err := wb.SetCellValue(name, "A1", "value"); err != nil {
			return err
		}
		for i := 0; i < rows; i++ {
			v := base +
				5*math.Sin(2*math.Pi*float64(i)/24) +
				rng.NormFloat64()
			cell := "A" + strconv.Itoa(i+2)
			if err := wb.SetCellValue(name, cell, v); err != nil {
				return err
			}
		}
		// Later forecast hours drift warmer.
		base += rng.Float64()
	}

	return wb.SaveAs(path)
}
