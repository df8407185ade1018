// Package driver implements the concurrent file-ingestion driver of
// spec.md §4.7: parsing a requested file set in parallel, bounded by a
// worker count, returning successes and per-file errors without aborting
// the batch. Grounded on internal/orchestrator/fanout.go's errgroup-based
// fan-out (per-index result slots, no shared mutable map).
package driver

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/semslice/internal/ingest"
	"github.com/dusk-indust/semslice/internal/model"
	"github.com/dusk-indust/semslice/internal/parser"
)

// FileError pairs a failed path with the error that caused the failure.
type FileError struct {
	Path string
	Err  error
}

// Stats summarizes one batch run.
type Stats struct {
	RunID      string
	Requested  int
	Succeeded  int
	Failed     int
	CacheStats parser.CacheStats
}

// BatchResult is the return value of parse_batch (spec.md §6).
type BatchResult struct {
	Successes []*model.SourceFile
	Failures  []FileError
	Stats     Stats
}

// Request names one file to ingest, with an optional explicit language tag
// that bypasses suffix detection.
type Request struct {
	Path string
	Lang model.Language
}

// Driver runs parse_batch calls against a shared parser.Factory.
type Driver struct {
	factory *parser.Factory
	onEvent func(Event)
}

// New creates a Driver backed by its own parser cache. onEvent may be nil;
// when set, it is called synchronously from the worker goroutines with each
// per-file progress event (wrap a Reporter for non-blocking delivery).
func New(onEvent func(Event)) *Driver {
	return &Driver{factory: parser.NewFactory(), onEvent: onEvent}
}

// ParseBatch parses every requested file in parallel, bounded by workers
// (0 or negative means "host core count"). ctx is checked between work
// units; an in-progress parse always runs to completion (spec.md §5).
func (d *Driver) ParseBatch(ctx context.Context, reqs []Request, workers int) BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runID := uuid.New().String()
	results := make([]*model.SourceFile, len(reqs))
	errs := make([]*FileError, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = &FileError{Path: req.Path, Err: err}
				return nil // cancellation is not a per-file failure worth aborting the batch for
			}

			d.emit(Event{RunID: runID, Path: req.Path, Status: StatusWorking})

			sf, err := ingest.Open(d.factory, req.Path, req.Lang)
			if err != nil {
				errs[i] = &FileError{Path: req.Path, Err: err}
				d.emit(Event{RunID: runID, Path: req.Path, Status: StatusFailed, Message: err.Error()})
				return nil // per-file errors never abort the batch (spec.md §4.7)
			}

			results[i] = sf
			d.emit(Event{RunID: runID, Path: req.Path, Status: StatusComplete})
			return nil
		})
	}

	// g.Wait always returns nil here, since every worker records its own
	// failure (including cancellation) into errs[i] and returns nil.
	_ = g.Wait()

	var successes []*model.SourceFile
	var failures []FileError
	for i := range reqs {
		if results[i] != nil {
			successes = append(successes, results[i])
		}
		if errs[i] != nil {
			failures = append(failures, *errs[i])
		}
	}

	return BatchResult{
		Successes: successes,
		Failures:  failures,
		Stats: Stats{
			RunID:      runID,
			Requested:  len(reqs),
			Succeeded:  len(successes),
			Failed:     len(failures),
			CacheStats: d.factory.Stats(),
		},
	}
}

// Factory exposes the driver's parser cache, e.g. for a caller that wants
// to open_file a single additional file through the same pool.
func (d *Driver) Factory() *parser.Factory { return d.factory }

func (d *Driver) emit(ev Event) {
	if d.onEvent != nil {
		d.onEvent(ev)
	}
}
