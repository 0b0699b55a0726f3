package lowsweep_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/farcloser/lowsweep"
	"github.com/farcloser/lowsweep/internal/sweep/trajectory"
	"github.com/farcloser/lowsweep/internal/types"
)

func sineBuffer(sampleRate, channels, length int, hz float64) *types.Buffer {
	buffer := types.NewBuffer(sampleRate, channels, length)
	for i := range length {
		buffer.Samples[0][i] = 0.5 * math.Sin(2*math.Pi*hz*float64(i)/float64(sampleRate))
	}

	return buffer
}

func sweepOptions(start, end float64) lowsweep.Options {
	opts := lowsweep.DefaultOptions()
	opts.StartCutoff, opts.EndCutoff = start, end

	return opts
}

func TestSweepTwoSecondsAt16k(t *testing.T) {
	t.Parallel()

	buffer := sineBuffer(16000, 1, 32000, 1000)
	original := slices.Clone(buffer.Samples[0])

	result, err := lowsweep.Sweep(buffer, sweepOptions(4000, 500))
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	if len(result.Cutoffs) != 150 || len(result.Frames) != 150 {
		t.Fatalf("cutoffs %d, frames %d, want 150", len(result.Cutoffs), len(result.Frames))
	}

	if result.Filtered.Len() != 32000 || result.Filtered.Channels() != 1 || result.Filtered.SampleRate != 16000 {
		t.Errorf("layout = %d ch x %d @ %d Hz", result.Filtered.Channels(), result.Filtered.Len(),
			result.Filtered.SampleRate)
	}

	if result.FrameLength != 213 || result.Mismatch != -50 {
		t.Errorf("frame length %d, mismatch %d, want 213, -50", result.FrameLength, result.Mismatch)
	}

	if result.Cutoffs[0] != 4000 || result.Cutoffs[149] != 500 {
		t.Errorf("cutoff endpoints = %v, %v", result.Cutoffs[0], result.Cutoffs[149])
	}

	for i := 1; i < len(result.Cutoffs); i++ {
		if result.Cutoffs[i] >= result.Cutoffs[i-1] {
			t.Fatalf("cutoffs not decreasing at %d", i)
		}
	}

	if got := result.Count(types.OutcomeFiltered); got != 150 {
		t.Errorf("filtered frames = %d, want 150", got)
	}

	last := result.Frames[149]
	if last.Start != 149*213 || last.End != 32000 {
		t.Errorf("last frame = [%d, %d), want [%d, 32000)", last.Start, last.End, 149*213)
	}

	if !slices.Equal(buffer.Samples[0], original) {
		t.Error("input buffer was modified")
	}

	for i, v := range result.Filtered.Samples[0] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d = %v", i, v)
		}
	}
}

func TestSweepKeepsChannelsApart(t *testing.T) {
	t.Parallel()

	buffer := sineBuffer(16000, 2, 16000, 6000)

	result, err := lowsweep.Sweep(buffer, sweepOptions(2000, 1000))
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	if result.Filtered.Channels() != 2 {
		t.Fatalf("channels = %d, want 2", result.Filtered.Channels())
	}

	for i, v := range result.Filtered.Samples[1] {
		if v != 0 {
			t.Fatalf("silent channel picked up %v at %d", v, i)
		}
	}

	if slices.Equal(result.Filtered.Samples[0], buffer.Samples[0]) {
		t.Error("a 6 kHz tone under a 2 kHz cutoff came through unchanged")
	}
}

func TestSweepCutoffAboveNyquist(t *testing.T) {
	t.Parallel()

	result, err := lowsweep.Sweep(sineBuffer(16000, 1, 16000, 440), sweepOptions(20000, 10000))
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	if got := result.Count(types.OutcomeFiltered); got != len(result.Frames) {
		t.Errorf("filtered frames = %d of %d", got, len(result.Frames))
	}

	if got := result.Frames[0].NormalizedCutoff; got != 0.99 {
		t.Errorf("normalized cutoff = %v, want 0.99", got)
	}
}

func TestSweepAlignment(t *testing.T) {
	t.Parallel()

	// 100 Hz at 30 fps: 3-sample frames, 30 of them, 10 samples short of the buffer.
	buffer := sineBuffer(100, 1, 100, 5)

	opts := sweepOptions(40, 10)
	opts.FrameRate = 30
	opts.StrictAlignment = true

	if _, err := lowsweep.Sweep(buffer, opts); !errors.Is(err, lowsweep.ErrAlignment) {
		t.Fatalf("strict Sweep() error = %v, want ErrAlignment", err)
	}

	opts.StrictAlignment = false

	result, err := lowsweep.Sweep(buffer, opts)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	if result.Mismatch != -10 {
		t.Errorf("mismatch = %d, want -10", result.Mismatch)
	}

	if got := result.Count(types.OutcomeDegenerate); got != 30 {
		t.Errorf("degenerate frames = %d, want 30", got)
	}

	if !slices.Equal(result.Filtered.Samples[0], buffer.Samples[0]) {
		t.Error("degenerate frames should be copied unchanged")
	}
}

func TestSweepContinuous(t *testing.T) {
	t.Parallel()

	opts := sweepOptions(4000, 500)
	opts.Mode = lowsweep.ModeContinuous

	result, err := lowsweep.Sweep(sineBuffer(16000, 1, 32000, 1000), opts)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	if len(result.Cutoffs) != 150 || result.Filtered.Len() != 32000 {
		t.Errorf("cutoffs %d, samples %d", len(result.Cutoffs), result.Filtered.Len())
	}

	if got := result.Count(types.OutcomeFiltered); got != 150 {
		t.Errorf("filtered frames = %d, want 150", got)
	}
}

func TestSweepInvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := lowsweep.Sweep(nil, sweepOptions(4000, 500)); !errors.Is(err, lowsweep.ErrEmptyBuffer) {
		t.Errorf("nil buffer error = %v, want ErrEmptyBuffer", err)
	}

	if _, err := lowsweep.Sweep(types.NewBuffer(16000, 1, 0), sweepOptions(4000, 500)); !errors.Is(
		err, lowsweep.ErrEmptyBuffer) {
		t.Errorf("empty buffer error = %v, want ErrEmptyBuffer", err)
	}

	if _, err := lowsweep.Sweep(sineBuffer(16000, 1, 1600, 440), sweepOptions(0, 500)); !errors.Is(
		err, trajectory.ErrInvalidInput) {
		t.Errorf("zero cutoff error = %v, want ErrInvalidInput", err)
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []lowsweep.Mode{lowsweep.ModeFramewise, lowsweep.ModeContinuous} {
		got, err := lowsweep.ParseMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseMode(%q) = %v, %v", mode.String(), got, err)
		}
	}

	if _, err := lowsweep.ParseMode("zero-phase"); err == nil {
		t.Error("ParseMode accepted an unknown mode")
	}
}

func TestIntensity(t *testing.T) {
	t.Parallel()

	values, err := lowsweep.Intensity(sineBuffer(16000, 1, 32000, 440), 75)
	if err != nil {
		t.Fatalf("Intensity() error: %v", err)
	}

	if len(values) != 150 || values[0] != 100 || values[149] != 0 {
		t.Errorf("len %d, endpoints %v %v", len(values), values[0], values[len(values)-1])
	}
}
