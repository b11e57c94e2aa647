// Package cache persists a fully assembled archive to a single file so
// later runs can skip the spreadsheet parse.
//
// Serialization goes through an ordered chain of strategies: SQLite first,
// gzip-wrapped JSON as the fallback. A blob is either fully readable or
// treated as absent; there is no partial-validity state and no freshness
// check against the source tree.
package cache

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/couchcryptid/wxplot/internal/domain"
	"github.com/couchcryptid/wxplot/internal/observability"
)

// schemaVersion guards against reading blobs written by an incompatible
// build. A mismatch reads as "no cache", never as an error.
const schemaVersion = 1

// Serializer is one on-disk format in the fallback chain. Each strategy is
// independently testable.
type Serializer interface {
	Name() string
	Load(path string) (*domain.Archive, error)
	Save(a *domain.Archive, path string) error
}

// Store tries serializers in order for both loads and saves.
type Store struct {
	chain   []Serializer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore builds the default chain: SQLite, then gzip JSON.
func NewStore(logger *slog.Logger, metrics *observability.Metrics) *Store {
	return NewStoreWithChain([]Serializer{&sqliteSerializer{}, &jsonSerializer{}}, logger, metrics)
}

// NewStoreWithChain builds a store over an explicit strategy order.
func NewStoreWithChain(chain []Serializer, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{chain: chain, logger: logger, metrics: metrics}
}

// Load tries each serializer against path. Any failure (missing file,
// corrupt data, schema mismatch) moves on to the next; when the chain is
// exhausted Load reports "no cache" rather than an error, and the caller
// falls back to a full reload.
func (s *Store) Load(path string) (*domain.Archive, bool) {
	for _, ser := range s.chain {
		a, err := ser.Load(path)
		if err == nil {
			s.metrics.CacheLoads.WithLabelValues(ser.Name(), "hit").Inc()
			s.metrics.CachedFiles.Set(float64(a.NumFiles()))
			s.logger.Info("cache loaded", "path", path, "format", ser.Name(),
				"runs", len(a.Runs()), "files", a.NumFiles(), "built_at", a.BuiltAt)
			return a, true
		}
		if errors.Is(err, fs.ErrNotExist) {
			s.metrics.CacheLoads.WithLabelValues(ser.Name(), "miss").Inc()
			s.logger.Debug("cache absent", "path", path, "format", ser.Name())
			continue
		}
		s.metrics.CacheLoads.WithLabelValues(ser.Name(), "error").Inc()
		s.logger.Warn("cache unreadable, trying next format",
			"path", path, "format", ser.Name(), "error", err)
	}
	return nil, false
}

// Save writes the archive through the first serializer that succeeds.
// Caching is an optimization: when every format fails the error is logged
// and swallowed so a save failure can never abort the run. There is no
// locking; the last writer wins.
func (s *Store) Save(a *domain.Archive, path string) {
	for _, ser := range s.chain {
		err := ser.Save(a, path)
		if err == nil {
			s.metrics.CacheSaves.WithLabelValues(ser.Name(), "ok").Inc()
			s.metrics.CachedFiles.Set(float64(a.NumFiles()))
			s.logger.Info("cache saved", "path", path, "format", ser.Name(), "files", a.NumFiles())
			return
		}
		s.metrics.CacheSaves.WithLabelValues(ser.Name(), "error").Inc()
		s.logger.Warn("cache save failed, trying next format",
			"path", path, "format", ser.Name(), "error", err)
	}
	s.logger.Error("cache save failed in every format, continuing without cache", "path", path)
}
