// Package framefilter filters a single frame in isolation: a fresh 4th-order Butterworth low-pass, applied with
// zero phase, no state carried in from the previous frame and no look-ahead into the next.
package framefilter

import (
	"slices"

	"github.com/farcloser/lowsweep/internal/sweep/butterworth"
	"github.com/farcloser/lowsweep/internal/types"
)

const (
	// MinSamples is the shortest frame that gets filtered. Shorter frames are copied unchanged.
	MinSamples = 16
	// MaxNormalizedCutoff keeps the design away from Nyquist, where the bilinear warp blows up.
	MaxNormalizedCutoff = 0.99
)

// Result is the filtered frame, or a raw copy with the reason why.
type Result struct {
	Samples          []float64
	Outcome          types.Outcome
	NormalizedCutoff float64
	Err              error // design or application failure, for OutcomeFallback
}

// Normalize returns min(cutoff / (sampleRate/2), MaxNormalizedCutoff).
// Low cutoffs are not raised: a cutoff under the lowest meaningful frequency is designed as asked.
func Normalize(cutoff float64, sampleRate int) float64 {
	nyquist := float64(sampleRate) / 2

	return min(cutoff/nyquist, MaxNormalizedCutoff)
}

// Apply filters samples with a low-pass at cutoff Hz. It never fails: degenerate frames and filter failures both
// come back as a copy of the input, flagged in Outcome. The input is not modified.
func Apply(samples []float64, sampleRate int, cutoff float64) Result {
	norm := Normalize(cutoff, sampleRate)

	if len(samples) == 0 {
		return Result{Samples: []float64{}, Outcome: types.OutcomeEmpty, NormalizedCutoff: norm}
	}

	if len(samples) < MinSamples {
		return Result{Samples: slices.Clone(samples), Outcome: types.OutcomeDegenerate, NormalizedCutoff: norm}
	}

	coeffs, err := butterworth.LowPass(butterworth.Order, norm)
	if err != nil {
		return fallback(samples, norm, err)
	}

	filtered, err := butterworth.FiltFilt(coeffs, samples)
	if err != nil {
		return fallback(samples, norm, err)
	}

	return Result{Samples: filtered, Outcome: types.OutcomeFiltered, NormalizedCutoff: norm}
}

func fallback(samples []float64, norm float64, err error) Result {
	return Result{
		Samples:          slices.Clone(samples),
		Outcome:          types.OutcomeFallback,
		NormalizedCutoff: norm,
		Err:              err,
	}
}
