package lowsweep

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/farcloser/lowsweep/internal/sweep/continuous"
	"github.com/farcloser/lowsweep/internal/sweep/framefilter"
	"github.com/farcloser/lowsweep/internal/sweep/segment"
	"github.com/farcloser/lowsweep/internal/sweep/trajectory"
	"github.com/farcloser/lowsweep/internal/types"
)

/*
Usage:

opts := lowsweep.DefaultOptions()
opts.StartCutoff, opts.EndCutoff = 4000, 500
result, err := lowsweep.Sweep(buffer, opts)

// result.Filtered has the same layout as buffer.
// result.Cutoffs has one value per annotation row.
fmt.Println(result.Count(types.OutcomeFallback), "frames copied unfiltered")
*/

var (
	// ErrEmptyBuffer is returned for a buffer without channels or samples.
	ErrEmptyBuffer = errors.New("empty audio buffer")
	// ErrAlignment is returned under StrictAlignment when frames and samples disagree by more than one frame.
	ErrAlignment = errors.New("frame grid does not match sample count")
)

// Result is a filtered buffer with its annotation track.
type Result struct {
	Filtered *types.Buffer

	// Cutoffs has one entry per frame, in frame order. It drives both filtering and annotation.
	Cutoffs []float64
	Frames  []types.FrameReport

	FrameLength int
	// Mismatch is frames*FrameLength - samples.
	Mismatch int
}

// Count returns how many frames ended with the given outcome.
func (r *Result) Count(outcome types.Outcome) int {
	count := 0

	for _, frame := range r.Frames {
		if frame.Outcome == outcome {
			count++
		}
	}

	return count
}

// Sweep low-pass filters buffer with a cutoff moving linearly from opts.StartCutoff to opts.EndCutoff, one cutoff
// per frame. The input is not modified.
func Sweep(buffer *types.Buffer, opts Options) (*Result, error) {
	if buffer == nil || buffer.Channels() == 0 || buffer.Len() == 0 {
		return nil, ErrEmptyBuffer
	}

	if opts.FrameRate == 0 {
		opts.FrameRate = DefaultFrameRate
	}

	cutoffs, err := trajectory.Linear(buffer.Seconds(), opts.FrameRate, opts.StartCutoff, opts.EndCutoff)
	if err != nil {
		return nil, err
	}

	frameLen, err := segment.FrameLength(buffer.SampleRate, opts.FrameRate)
	if err != nil {
		return nil, err
	}

	length := buffer.Len()
	frames := segment.Partition(length, frameLen, len(cutoffs))
	mismatch := segment.Mismatch(length, frameLen, len(frames))

	slog.Debug("lowsweep.Sweep",
		"frames", len(frames), "frame length", frameLen, "samples", length, "mismatch", mismatch, "stage", "start")

	if abs(mismatch) > frameLen {
		if opts.StrictAlignment {
			return nil, fmt.Errorf("%w: %d samples off with %d-sample frames", ErrAlignment, mismatch, frameLen)
		}

		slog.Warn("frame grid and sample count disagree by more than one frame",
			"mismatch", mismatch, "frame length", frameLen)
	}

	result := &Result{
		Filtered:    types.NewBuffer(buffer.SampleRate, buffer.Channels(), length),
		Cutoffs:     cutoffs,
		Frames:      make([]types.FrameReport, len(frames)),
		FrameLength: frameLen,
		Mismatch:    mismatch,
	}

	for idx, frame := range frames {
		result.Frames[idx] = types.FrameReport{
			Index:            idx,
			Start:            frame.Start,
			End:              frame.End,
			Cutoff:           cutoffs[idx],
			NormalizedCutoff: framefilter.Normalize(cutoffs[idx], buffer.SampleRate),
			Outcome:          types.OutcomeEmpty,
		}
	}

	switch opts.Mode {
	case ModeFramewise:
		sweepFramewise(buffer, frames, result)
	case ModeContinuous:
		if err = sweepContinuous(buffer, frames, result); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown mode %d", opts.Mode)
	}

	slog.Debug("lowsweep.Sweep",
		"filtered", result.Count(types.OutcomeFiltered),
		"degenerate", result.Count(types.OutcomeDegenerate),
		"fallback", result.Count(types.OutcomeFallback),
		"stage", "done")

	return result, nil
}

func sweepFramewise(buffer *types.Buffer, frames []segment.Frame, result *Result) {
	for ch, samples := range buffer.Samples {
		dst := result.Filtered.Samples[ch]

		for idx, frame := range frames {
			if frame.Empty() {
				continue
			}

			filtered := framefilter.Apply(samples[frame.Start:frame.End], buffer.SampleRate, result.Cutoffs[idx])
			copy(dst[frame.Start:frame.End], filtered.Samples)

			report := &result.Frames[idx]
			if filtered.Outcome.Severity() > report.Outcome.Severity() {
				report.Outcome = filtered.Outcome
				report.Cause = filtered.Err
			}
		}
	}
}

func sweepContinuous(buffer *types.Buffer, frames []segment.Frame, result *Result) error {
	for ch, samples := range buffer.Samples {
		filtered, err := continuous.Apply(samples, buffer.SampleRate, frames, result.Cutoffs)
		if err != nil {
			return err
		}

		copy(result.Filtered.Samples[ch], filtered)
	}

	for idx, frame := range frames {
		if !frame.Empty() {
			result.Frames[idx].Outcome = types.OutcomeFiltered
		}
	}

	return nil
}

// Intensity returns the synthetic intensity track for buffer: 100 on the first frame down to 0 on the last.
func Intensity(buffer *types.Buffer, fps float64) ([]float64, error) {
	if buffer == nil || buffer.Channels() == 0 || buffer.Len() == 0 {
		return nil, ErrEmptyBuffer
	}

	return trajectory.Ramp(buffer.Seconds(), fps, 100, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
