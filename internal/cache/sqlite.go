package cache

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/wxplot/internal/domain"
)

// sqliteSerializer stores the archive in a single SQLite file: one row per
// sheet, series packed as little-endian float64 blobs.
type sqliteSerializer struct{}

func (*sqliteSerializer) Name() string { return "sqlite" }

func (*sqliteSerializer) Save(a *domain.Archive, path string) error {
	// The blob is all-or-nothing, so clear whatever format previously
	// occupied the path before writing.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear cache path: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite cache: %w", err)
	}
	defer db.Close()

	schema := []string{
		"PRAGMA journal_mode=OFF",
		"PRAGMA synchronous=OFF",
		`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`CREATE TABLE files (
			run  TEXT NOT NULL,
			file TEXT NOT NULL,
			PRIMARY KEY (run, file)
		)`,
		`CREATE TABLE sheets (
			run    TEXT NOT NULL,
			file   TEXT NOT NULL,
			seq    INTEGER NOT NULL,
			sheet  TEXT NOT NULL,
			series BLOB NOT NULL,
			PRIMARY KEY (run, file, seq)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create cache schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?), (?, ?)`,
		"schema_version", strconv.Itoa(schemaVersion),
		"built_at", a.BuiltAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("write cache meta: %w", err)
	}

	fileStmt, err := tx.Prepare(`INSERT INTO files (run, file) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cache insert: %w", err)
	}
	defer fileStmt.Close()

	stmt, err := tx.Prepare(`INSERT INTO sheets (run, file, seq, sheet, series) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cache insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	a.Walk(func(run, file string, sheets []domain.Sheet) {
		if insertErr != nil {
			return
		}
		// The files table records every workbook, including those whose
		// sheet list ended up empty; the sheets table alone cannot.
		if _, err := fileStmt.Exec(run, file); err != nil {
			insertErr = fmt.Errorf("insert %s/%s: %w", run, file, err)
			return
		}
		for seq, s := range sheets {
			if _, err := stmt.Exec(run, file, seq, s.Name, packSeries(s.Values)); err != nil {
				insertErr = fmt.Errorf("insert %s/%s sheet %q: %w", run, file, s.Name, err)
				return
			}
		}
	})
	if insertErr != nil {
		return insertErr
	}
	return tx.Commit()
}

func (*sqliteSerializer) Load(path string) (*domain.Archive, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	defer db.Close()

	var version string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version); err != nil {
		return nil, fmt.Errorf("read cache schema version: %w", err)
	}
	if version != strconv.Itoa(schemaVersion) {
		return nil, fmt.Errorf("cache schema version %s, want %d", version, schemaVersion)
	}

	var builtAtRaw string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'built_at'`).Scan(&builtAtRaw); err != nil {
		return nil, fmt.Errorf("read cache built_at: %w", err)
	}
	builtAt, err := time.Parse(time.RFC3339Nano, builtAtRaw)
	if err != nil {
		return nil, fmt.Errorf("parse cache built_at: %w", err)
	}

	rows, err := db.Query(`SELECT run, file, sheet, series FROM sheets ORDER BY run, file, seq`)
	if err != nil {
		return nil, fmt.Errorf("read cache sheets: %w", err)
	}
	defer rows.Close()

	type fileKey struct{ run, file string }
	bySheet := make(map[fileKey][]domain.Sheet)
	for rows.Next() {
		var run, file, sheet string
		var blob []byte
		if err := rows.Scan(&run, &file, &sheet, &blob); err != nil {
			return nil, fmt.Errorf("scan cache row: %w", err)
		}
		k := fileKey{run, file}
		bySheet[k] = append(bySheet[k], domain.Sheet{Name: sheet, Values: unpackSeries(blob)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache rows: %w", err)
	}

	fileRows, err := db.Query(`SELECT run, file FROM files ORDER BY run, file`)
	if err != nil {
		return nil, fmt.Errorf("read cache files: %w", err)
	}
	defer fileRows.Close()

	archive := domain.NewArchive()
	archive.BuiltAt = builtAt
	for fileRows.Next() {
		var run, file string
		if err := fileRows.Scan(&run, &file); err != nil {
			return nil, fmt.Errorf("scan cache file row: %w", err)
		}
		sheets := bySheet[fileKey{run, file}]
		if sheets == nil {
			sheets = []domain.Sheet{}
		}
		if err := archive.AddFile(run, file, sheets); err != nil {
			return nil, err
		}
	}
	if err := fileRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache file rows: %w", err)
	}
	return archive, nil
}

func packSeries(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func unpackSeries(buf []byte) []float64 {
	values := make([]float64, len(buf)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return values
}
