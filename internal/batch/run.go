package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Processor handles one source file. Failures are reported in the Record, never returned.
type Processor interface {
	Process(ctx context.Context, source string) Record
}

// Record is the outcome of processing one source file.
type Record struct {
	Source  string
	Outputs []string // files written

	Created int // outputs created
	Skipped int // outputs left in place because they already existed
	Err     error

	// Sweep details, zero for other commands.
	Frames     int
	Degenerate int
	Fallback   int
	Misaligned bool // frame grid and sample count disagree by more than one frame
}

// Failed reports whether the file could not be processed.
func (r *Record) Failed() bool {
	return r.Err != nil
}

// Run processes files with at most workers files in flight. Records come back in files order.
// When processor is an OutputLister, colliding outputs fail the run before any file is touched.
// Otherwise only context cancellation makes it return an error.
func Run(ctx context.Context, files []string, workers int, processor Processor) ([]Record, error) {
	if lister, ok := processor.(OutputLister); ok {
		if err := CheckCollisions(files, lister); err != nil {
			return nil, err
		}
	}

	records := make([]Record, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(workers, 1))

	for idx, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				records[idx] = Record{Source: file, Err: err}

				return err
			}

			records[idx] = processor.Process(groupCtx, file)

			record := &records[idx]
			if record.Failed() {
				slog.Error("failed to process", "file", file, "error", record.Err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return records, err
	}

	return records, ctx.Err()
}
