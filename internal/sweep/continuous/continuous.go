// Package continuous runs a single time-varying low-pass over a whole channel.
//
// Unlike the per-frame mode, the biquad delay lines carry over from frame to frame, so there is no discontinuity at
// frame boundaries. The cutoff is interpolated linearly per sample between the target of the current frame and the
// target of the next one, and coefficients are redesigned only when that normalized cutoff changes. The pass is causal: it has the phase response of a
// Butterworth filter, not zero phase.
package continuous

import (
	"errors"
	"fmt"
	"math"

	"github.com/farcloser/lowsweep/internal/sweep/butterworth"
	"github.com/farcloser/lowsweep/internal/sweep/framefilter"
	"github.com/farcloser/lowsweep/internal/sweep/segment"
)

// ErrMismatch is returned when frames and cutoffs do not line up.
var ErrMismatch = errors.New("frame count does not match cutoff count")

// Apply filters samples. frames must come from segment.Partition over len(samples), one per cutoff.
func Apply(samples []float64, sampleRate int, frames []segment.Frame, cutoffs []float64) ([]float64, error) {
	if len(frames) != len(cutoffs) {
		return nil, fmt.Errorf("%w: %d frames, %d cutoffs", ErrMismatch, len(frames), len(cutoffs))
	}

	out := make([]float64, len(samples))
	states := make([]butterworth.SectionState, butterworth.Order/2)

	var sections []butterworth.Section

	designed := math.NaN()

	for idx, frame := range frames {
		if frame.Empty() {
			continue
		}

		from := cutoffs[idx]
		to := from

		if idx+1 < len(cutoffs) {
			to = cutoffs[idx+1]
		}

		span := float64(frame.Len())

		for pos := frame.Start; pos < frame.End; pos++ {
			t := float64(pos-frame.Start) / span
			norm := framefilter.Normalize(from+t*(to-from), sampleRate)

			if norm != designed {
				designed = norm

				next, err := butterworth.LowPassSections(butterworth.Order, norm)
				if err == nil && butterworth.Stable(next) {
					sections = next
				}
			}

			// Until a valid design shows up, pass the signal through.
			if sections == nil {
				out[pos] = samples[pos]

				continue
			}

			y := samples[pos]
			for s := range sections {
				y = states[s].Process(&sections[s], y)
			}

			if math.IsNaN(y) || math.IsInf(y, 0) {
				clear(states)

				y = samples[pos]
			}

			out[pos] = y
		}
	}

	return out, nil
}
