// Package backfill assigns identifiers to every stored part that lacks one.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/still-asking/sapn-generator/internal/allocation"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/storage"
	"github.com/still-asking/sapn-generator/internal/trigger"
	"golang.org/x/sync/errgroup"
)

// ErrLocked is returned when another process holds the backfill lock file.
var ErrLocked = errors.New("backfill already running")

type Options struct {
	WorkerCount int
	BatchSize   int
	// LockFile guards against concurrent backfills. Empty disables locking.
	LockFile string
}

// Summary counts per-part outcomes of one run.
type Summary struct {
	Scanned  int           `json:"scanned" yaml:"scanned"`
	Assigned int           `json:"assigned" yaml:"assigned"`
	Skipped  int           `json:"skipped" yaml:"skipped"`
	Failed   int           `json:"failed" yaml:"failed"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

func (s *Summary) record(out allocation.Outcome) {
	switch out.Status {
	case allocation.StatusAssigned:
		s.Assigned++
	case allocation.StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

type Runner struct {
	parts   storage.PartStore
	trigger allocation.Trigger
	opts    Options
}

func NewRunner(parts storage.PartStore, trigger allocation.Trigger, opts Options) *Runner {
	if parts == nil {
		panic("backfill: part store must not be nil")
	}
	if trigger == nil {
		panic("backfill: allocation trigger must not be nil")
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	return &Runner{parts: parts, trigger: trigger, opts: opts}
}

// Run walks parts without an identifier in id order, one page at a time, and
// allocates for each page with up to WorkerCount concurrent requests. Parts
// that are skipped or fail stay behind the cursor, so every part is visited
// once per run. Only store and context errors abort the run.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var summary Summary

	if r.opts.LockFile != "" {
		lock := flock.New(r.opts.LockFile)
		locked, err := lock.TryLock()
		if err != nil {
			return summary, fmt.Errorf("acquire lock %s: %w", r.opts.LockFile, err)
		}
		if !locked {
			return summary, fmt.Errorf("%w: lock %s is held", ErrLocked, r.opts.LockFile)
		}
		defer lock.Unlock() //nolint:errcheck
	}

	slog.Info("[Backfill] Starting",
		"worker_count", r.opts.WorkerCount,
		"batch_size", r.opts.BatchSize)

	var afterID int64
	for {
		batch, err := r.parts.ListPartsWithoutIdentifier(ctx, afterID, r.opts.BatchSize)
		if err != nil {
			return summary, fmt.Errorf("list parts after %d: %w", afterID, err)
		}
		if len(batch) == 0 {
			break
		}

		if err := r.processBatch(ctx, batch, &summary); err != nil {
			return summary, err
		}
		afterID = batch[len(batch)-1].ID

		slog.Debug("[Backfill] Batch done", "cursor", afterID, "size", len(batch))
		if len(batch) < r.opts.BatchSize {
			break
		}
	}

	summary.Duration = time.Since(start)
	slog.Info("[Backfill] Finished",
		"scanned", summary.Scanned,
		"assigned", summary.Assigned,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", summary.Duration)
	return summary, nil
}

func (r *Runner) processBatch(ctx context.Context, batch []*v1.Part, summary *Summary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.WorkerCount)

	var mu sync.Mutex
	for _, part := range batch {
		part := part
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := r.trigger.AssignIdentifier(gctx, trigger.NewRequest(part, false))
			trigger.LogOutcome(part.ID, out)

			mu.Lock()
			summary.Scanned++
			summary.record(out)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
