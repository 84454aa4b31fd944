package runfolder

import (
	"context"
	"errors"
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/interop"
	"github.com/hupe1980/interop/blobstore"
)

const (
	// InterOpDir is the run folder subdirectory holding the metric files.
	InterOpDir = "InterOp"

	// DefaultCycleToAlign is the cycle at which alignment starts. Error
	// metrics below it hold no usable data and are not copied.
	DefaultCycleToAlign = 25
)

// Options configures a Copy.
type Options struct {
	// CycleToAlign gates alignment-dependent categories; see
	// DefaultCycleToAlign.
	CycleToAlign uint16
	// Parallelism bounds the number of categories processed at once.
	Parallelism int
	// Logger receives per-category progress. Defaults to a no-op logger.
	Logger *interop.Logger
	// Categories overrides the category set. Defaults to Categories.
	Categories []Category
}

// WithCycleToAlign sets the alignment cycle.
func WithCycleToAlign(cycle uint16) func(*Options) {
	return func(o *Options) { o.CycleToAlign = cycle }
}

// WithParallelism bounds concurrent category processing.
func WithParallelism(n int) func(*Options) {
	return func(o *Options) { o.Parallelism = n }
}

// WithLogger sets the progress logger.
func WithLogger(l *interop.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithCategories overrides the processed category set.
func WithCategories(cats ...Category) func(*Options) {
	return func(o *Options) { o.Categories = cats }
}

// CategoryResult is the per-category outcome of a Copy.
type CategoryResult struct {
	Category string
	File     string
	Skipped  bool
	Reason   string
	Stats    CopyStats
}

// Summary is the overall outcome of a Copy.
type Summary struct {
	Results []CategoryResult
	Written int
}

// Copy reads every known metric category from the source run folder,
// keeps only records within the bounds, and writes the filtered files to
// the destination.
//
// Missing files and incomplete files are skipped: both mean "no usable
// data" in batch workflows. Malformed files abort the whole copy and the
// error is surfaced. If no category produced output, the error is
// interop.ErrNoMetricsFound.
//
// Categories are independent and processed in parallel; no state is
// shared between them.
func Copy(ctx context.Context, src blobstore.Store, dst blobstore.WritableStore, maxCycle uint16, maxRead uint32, optFns ...func(*Options)) (*Summary, error) {
	opts := Options{
		CycleToAlign: DefaultCycleToAlign,
		Parallelism:  4,
		Logger:       interop.NoopLogger(),
		Categories:   Categories,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	bounds := Bounds{MaxCycle: maxCycle, MaxRead: maxRead}
	results := make([]CategoryResult, len(opts.Categories))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for i, cat := range opts.Categories {
		g.Go(func() error {
			res := &results[i]
			res.Category = cat.Name()
			res.File = path.Join(InterOpDir, cat.FileName())

			if cat.RequiresAlignment() && bounds.MaxCycle <= opts.CycleToAlign {
				res.Skipped = true
				res.Reason = "cycle bound below alignment cycle"
				opts.Logger.LogSkip(ctx, res.File, res.Reason)
				return nil
			}

			data, err := blobstore.ReadAll(ctx, src, res.File)
			if errors.Is(err, blobstore.ErrNotFound) {
				res.Skipped = true
				res.Reason = "not found"
				opts.Logger.LogSkip(ctx, res.File, res.Reason)
				return nil
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", res.File, err)
			}

			out, stats, err := cat.CopyFiltered(data, bounds)
			if errors.Is(err, interop.ErrIncompleteFile) {
				res.Skipped = true
				res.Reason = "incomplete"
				opts.Logger.LogSkip(ctx, res.File, res.Reason)
				return nil
			}
			if err != nil {
				// Bad format is deliberately fatal here; see package doc.
				opts.Logger.LogCopy(ctx, res.File, 0, 0, err)
				return err
			}
			res.Stats = stats

			if err := dst.Put(ctx, res.File, out); err != nil {
				return fmt.Errorf("write %s: %w", res.File, err)
			}
			opts.Logger.LogCopy(ctx, res.File, stats.Kept, stats.Total, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Results: results}
	for _, res := range results {
		if !res.Skipped {
			summary.Written++
		}
	}
	if summary.Written == 0 {
		return nil, interop.ErrNoMetricsFound
	}
	return summary, nil
}
