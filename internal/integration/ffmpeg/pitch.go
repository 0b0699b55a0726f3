package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/farcloser/lowsweep/internal/types"
)

var errSampleRate = errors.New("sample rate must be positive")

// SemitoneRatio returns the frequency ratio of a shift by the given number of semitones.
func SemitoneRatio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// PitchFilter returns the filter graph shifting pitch by semitones while keeping duration and sample rate:
// resample-free rate change, back to the original rate, then tempo compensation.
func PitchFilter(sampleRate int, semitones float64) string {
	ratio := SemitoneRatio(semitones)

	return fmt.Sprintf("asetrate=%s,aresample=%d,atempo=%s",
		strconv.FormatFloat(float64(sampleRate)*ratio, 'f', 4, 64),
		sampleRate,
		strconv.FormatFloat(1/ratio, 'f', 8, 64),
	)
}

// PitchShift writes inputPath shifted by semitones to outputPath as PCM WAV at the given bit depth,
// overwriting it.
func PitchShift(
	ctx context.Context,
	inputPath, outputPath string,
	sampleRate int,
	semitones float64,
	depth types.BitDepth,
) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", errSampleRate, sampleRate)
	}

	slog.Debug("ffmpeg.PitchShift", "input", inputPath, "semitones", semitones, "stage", "start")

	return run(ctx, "ffmpeg.PitchShift", nil, nil,
		"-y",
		"-i", inputPath,
		"-map", "0:a:0",
		"-af", PitchFilter(sampleRate, semitones),
		"-acodec", pcmCodec(depth),
		outputPath,
	)
}
