// Package trajectory generates per-frame target values for a file: the low-pass cutoff sweep, and the synthetic
// intensity ramp.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput is returned for non-positive or non-finite durations, frame rates, or endpoints.
var ErrInvalidInput = errors.New("invalid trajectory input")

// FrameCount returns max(1, round(seconds*fps)). Halves round to even.
func FrameCount(seconds, fps float64) (int, error) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: duration %v", ErrInvalidInput, seconds)
	}

	if !(fps > 0) || math.IsInf(fps, 0) {
		return 0, fmt.Errorf("%w: frame rate %v", ErrInvalidInput, fps)
	}

	return max(1, int(math.RoundToEven(seconds*fps))), nil
}

// Linear returns FrameCount(seconds, fps) values interpolated from start to end, both included.
// A single frame holds start.
func Linear(seconds, fps, start, end float64) ([]float64, error) {
	for _, v := range []float64{start, end} {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: endpoint %v", ErrInvalidInput, v)
		}
	}

	count, err := FrameCount(seconds, fps)
	if err != nil {
		return nil, err
	}

	return span(count, start, end), nil
}

// Ramp is Linear without the positivity requirement on the endpoints. The intensity track runs down to zero.
func Ramp(seconds, fps, start, end float64) ([]float64, error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return nil, fmt.Errorf("%w: endpoints %v, %v", ErrInvalidInput, start, end)
	}

	count, err := FrameCount(seconds, fps)
	if err != nil {
		return nil, err
	}

	return span(count, start, end), nil
}

func span(count int, start, end float64) []float64 {
	values := make([]float64, count)
	if count == 1 {
		values[0] = start

		return values
	}

	floats.Span(values, start, end)
	// Span accumulates step*i, pin the endpoint.
	values[count-1] = end

	return values
}
