package trajectory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/farcloser/lowsweep/internal/sweep/trajectory"
)

func TestFrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		fps     float64
		want    int
	}{
		{"two seconds at 75", 2, 75, 150},
		{"tiny duration still gets one frame", 0.001, 75, 1},
		{"half rounds down to even", 0.5, 5, 2},
		{"half rounds up to even", 0.5, 7, 4},
		{"fractional frame rate", 10, 12.5, 125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := trajectory.FrameCount(tt.seconds, tt.fps)
			if err != nil {
				t.Fatalf("FrameCount() error: %v", err)
			}

			if got != tt.want {
				t.Errorf("FrameCount(%v, %v) = %d, want %d", tt.seconds, tt.fps, got, tt.want)
			}
		})
	}
}

func TestFrameCountInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range [][2]float64{
		{0, 75},
		{-1, 75},
		{math.NaN(), 75},
		{math.Inf(1), 75},
		{2, 0},
		{2, -75},
		{2, math.NaN()},
	} {
		if _, err := trajectory.FrameCount(in[0], in[1]); !errors.Is(err, trajectory.ErrInvalidInput) {
			t.Errorf("FrameCount(%v, %v) error = %v, want ErrInvalidInput", in[0], in[1], err)
		}
	}
}

func TestLinearSweep(t *testing.T) {
	t.Parallel()

	cutoffs, err := trajectory.Linear(2, 75, 4000, 500)
	if err != nil {
		t.Fatalf("Linear() error: %v", err)
	}

	if len(cutoffs) != 150 {
		t.Fatalf("len = %d, want 150", len(cutoffs))
	}

	if cutoffs[0] != 4000 || cutoffs[149] != 500 {
		t.Errorf("endpoints = %v, %v, want 4000, 500", cutoffs[0], cutoffs[149])
	}

	step := (500.0 - 4000.0) / 149

	for i := 1; i < len(cutoffs); i++ {
		if cutoffs[i] >= cutoffs[i-1] {
			t.Fatalf("cutoffs[%d] = %v not below cutoffs[%d] = %v", i, cutoffs[i], i-1, cutoffs[i-1])
		}

		if diff := cutoffs[i] - cutoffs[i-1]; math.Abs(diff-step) > 1e-9 {
			t.Fatalf("step %d = %v, want %v", i, diff, step)
		}
	}
}

func TestLinearRising(t *testing.T) {
	t.Parallel()

	cutoffs, err := trajectory.Linear(1, 10, 200, 2000)
	if err != nil {
		t.Fatalf("Linear() error: %v", err)
	}

	if len(cutoffs) != 10 || cutoffs[0] != 200 || cutoffs[9] != 2000 {
		t.Errorf("got %v", cutoffs)
	}
}

func TestLinearSingleFrameHoldsStart(t *testing.T) {
	t.Parallel()

	cutoffs, err := trajectory.Linear(0.001, 75, 4000, 500)
	if err != nil {
		t.Fatalf("Linear() error: %v", err)
	}

	if len(cutoffs) != 1 || cutoffs[0] != 4000 {
		t.Errorf("got %v, want [4000]", cutoffs)
	}
}

func TestLinearRejectsNonPositiveEndpoints(t *testing.T) {
	t.Parallel()

	for _, ends := range [][2]float64{{0, 500}, {4000, 0}, {-1, 500}, {4000, math.Inf(1)}} {
		if _, err := trajectory.Linear(2, 75, ends[0], ends[1]); !errors.Is(err, trajectory.ErrInvalidInput) {
			t.Errorf("Linear(%v -> %v) error = %v, want ErrInvalidInput", ends[0], ends[1], err)
		}
	}
}

func TestRampReachesZero(t *testing.T) {
	t.Parallel()

	ramp, err := trajectory.Ramp(2, 75, 100, 0)
	if err != nil {
		t.Fatalf("Ramp() error: %v", err)
	}

	if len(ramp) != 150 || ramp[0] != 100 || ramp[149] != 0 {
		t.Errorf("len %d, endpoints %v %v", len(ramp), ramp[0], ramp[len(ramp)-1])
	}

	if _, err = trajectory.Ramp(2, 75, math.NaN(), 0); !errors.Is(err, trajectory.ErrInvalidInput) {
		t.Errorf("Ramp(NaN) error = %v, want ErrInvalidInput", err)
	}
}
