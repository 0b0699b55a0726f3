package ffmpeg_test

import (
	"context"
	"math"
	"testing"

	"github.com/farcloser/lowsweep/internal/integration/ffmpeg"
	"github.com/farcloser/lowsweep/internal/types"
)

func TestSemitoneRatio(t *testing.T) {
	t.Parallel()

	if got := ffmpeg.SemitoneRatio(12); math.Abs(got-2) > 1e-12 {
		t.Errorf("SemitoneRatio(12) = %v, want 2", got)
	}

	if got := ffmpeg.SemitoneRatio(-1) * ffmpeg.SemitoneRatio(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("down and up do not cancel: %v", got)
	}
}

func TestPitchFilter(t *testing.T) {
	t.Parallel()

	got := ffmpeg.PitchFilter(44100, 12)
	want := "asetrate=88200.0000,aresample=44100,atempo=0.50000000"

	if got != want {
		t.Errorf("PitchFilter() = %q, want %q", got, want)
	}
}

func TestPitchShiftRejectsSampleRate(t *testing.T) {
	t.Parallel()

	if err := ffmpeg.PitchShift(context.Background(), "in.wav", "out.wav", 0, 1, types.Depth16); err == nil {
		t.Error("PitchShift accepted a zero sample rate")
	}
}
