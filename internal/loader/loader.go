// Package loader walks a dataset root and fans file parsing out across a
// bounded worker pool, assembling the results into a domain.Archive.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/wxplot/internal/domain"
	"github.com/couchcryptid/wxplot/internal/observability"
	"github.com/couchcryptid/wxplot/internal/parser"
)

// Task describes one workbook to parse: the explicit message passed into
// the pool. Workers share nothing else.
type Task struct {
	Run  string
	File string
	Path string
}

// Result is the message coming back out: the task plus its sheets, or the
// failure that sank it.
type Result struct {
	Task   Task
	Sheets []domain.Sheet
	Err    error
}

// Loader builds archives from dataset directory trees.
type Loader struct {
	opts    parser.Options
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Loader. A workers value below 1 falls back to the processor
// count.
func New(opts parser.Options, workers int, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Loader{opts: opts, workers: workers, logger: logger, metrics: metrics}
}

// Load enumerates the immediate subdirectories of root (one run each) and
// the .xlsx files within them, parses every file on the worker pool, and
// assembles the archive. One corrupt file never fails the load: it is
// logged, counted, and omitted. Load fails only when root itself cannot be
// enumerated or the context is cancelled.
//
// The archive's content and ordering are identical for any pool size:
// every result lands in a slot known before dispatch, and assembly walks
// the slots in the pre-sorted task order.
func (l *Loader) Load(ctx context.Context, root string) (*domain.Archive, error) {
	start := time.Now()

	tasks, err := l.enumerate(root)
	if err != nil {
		return nil, err
	}
	l.logger.Info("parsing dataset tree", "root", root, "files", len(tasks), "workers", l.workers)

	results := make([]Result, len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sheets, err := parser.ParseWorkbook(task.Path, l.opts, l.logger)
			results[i] = Result{Task: task, Sheets: sheets, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	archive := domain.NewArchive()
	for _, res := range results {
		if res.Err != nil {
			l.logger.Warn("skipping unloadable file",
				"run", res.Task.Run, "file", res.Task.File, "error", res.Err)
			l.metrics.FilesSkipped.Inc()
			continue
		}
		if err := archive.AddFile(res.Task.Run, res.Task.File, res.Sheets); err != nil {
			return nil, err
		}
		l.metrics.FilesParsed.Inc()
		l.metrics.SheetsParsed.Add(float64(len(res.Sheets)))
	}

	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.logger.Info("dataset tree parsed",
		"runs", len(archive.Runs()), "files", archive.NumFiles(), "elapsed", time.Since(start))
	return archive, nil
}

// enumerate builds the task list in sorted run/file order. Sorting here,
// not at assembly, pins the output ordering regardless of filesystem
// iteration order.
func (l *Loader) enumerate(root string) ([]Task, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dataset root: %w", err)
	}

	runs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			runs = append(runs, e.Name())
		}
	}
	sort.Strings(runs)

	var tasks []Task
	for _, run := range runs {
		runPath := filepath.Join(root, run)
		files, err := os.ReadDir(runPath)
		if err != nil {
			l.logger.Warn("skipping unreadable run directory", "run", run, "error", err)
			continue
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || !strings.HasSuffix(name, ".xlsx") {
				continue
			}
			// Excel leaves ~$ lock files next to open workbooks.
			if strings.HasPrefix(name, "~$") {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			tasks = append(tasks, Task{Run: run, File: name, Path: filepath.Join(runPath, name)})
		}
	}
	return tasks, nil
}
