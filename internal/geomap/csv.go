package geomap

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadObservations loads station observations from a CSV file with a
// header row naming at least stid, lat, lon, and value columns (any
// order, case-insensitive).
func ReadObservations(path string) ([]Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open observations: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("observations %s: no data rows", path)
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"stid", "lat", "lon", "value"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("observations %s: missing column %q", path, col)
		}
	}

	obs := make([]Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		lat, err := strconv.ParseFloat(row[colIdx["lat"]], 64)
		if err != nil {
			return nil, fmt.Errorf("observations %s row %d: bad lat: %w", path, i+2, err)
		}
		lon, err := strconv.ParseFloat(row[colIdx["lon"]], 64)
		if err != nil {
			return nil, fmt.Errorf("observations %s row %d: bad lon: %w", path, i+2, err)
		}
		value, err := strconv.ParseFloat(row[colIdx["value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("observations %s row %d: bad value: %w", path, i+2, err)
		}
		obs = append(obs, Observation{
			Station: row[colIdx["stid"]],
			Lat:     lat,
			Lon:     lon,
			Value:   value,
		})
	}
	return obs, nil
}
