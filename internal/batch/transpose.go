package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/farcloser/lowsweep/internal/integration/ffmpeg"
	"github.com/farcloser/lowsweep/internal/integration/ffprobe"
	"github.com/farcloser/lowsweep/internal/types"
)

// ShiftFunc writes input shifted by semitones to output.
type ShiftFunc func(ctx context.Context, input, output string, semitones float64) error

// Shift is one augmented variant of a source.
type Shift struct {
	Semitones float64
	Suffix    string
}

// Shifts are the variants written by Transposer, one semitone down and up.
//
//nolint:gochecknoglobals // configuration data, effectively const
var Shifts = []Shift{
	{Semitones: -1, Suffix: "down1st"},
	{Semitones: 1, Suffix: "up1st"},
}

// Transposer writes pitch-shifted siblings of each source into a mirror of the input tree. A CSV next to the
// source is copied unchanged next to each variant.
type Transposer struct {
	InputDir      string
	OutputDir     string
	CopyOriginals bool
	Overwrite     bool

	// Shift defaults to ShiftWithFFmpeg at 16 bits.
	Shift ShiftFunc
}

// ShiftWithFFmpeg probes input for its sample rate and pitch-shifts it with ffmpeg.
func ShiftWithFFmpeg(depth types.BitDepth) ShiftFunc {
	return func(ctx context.Context, input, output string, semitones float64) error {
		probe, err := ffprobe.Probe(ctx, input)
		if err != nil {
			return fmt.Errorf("probing file: %w", err)
		}

		stream, err := probe.AudioStream(0)
		if err != nil {
			return err
		}

		sampleRate, _, err := stream.Layout()
		if err != nil {
			return err
		}

		return ffmpeg.PitchShift(ctx, input, output, sampleRate, semitones, depth)
	}
}

// Destination returns where source lands in the output tree, extension included.
func (t *Transposer) Destination(source string) (string, error) {
	rel, err := filepath.Rel(t.InputDir, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside %s", source, t.InputDir)
	}

	return filepath.Join(t.OutputDir, rel), nil
}

// VariantPath returns the output of a shift: <dest stem>-<suffix>.wav.
func VariantPath(destination string, shift Shift) string {
	return strings.TrimSuffix(destination, filepath.Ext(destination)) + "-" + shift.Suffix + ".wav"
}

// Outputs implements OutputLister: the shifted variants, and the copied original when enabled.
func (t *Transposer) Outputs(source string) []string {
	destination, err := t.Destination(source)
	if err != nil {
		return nil
	}

	outputs := make([]string, 0, len(Shifts)+1)
	for _, shift := range Shifts {
		outputs = append(outputs, VariantPath(destination, shift))
	}

	if t.CopyOriginals {
		outputs = append(outputs, destination)
	}

	return outputs
}

// Process implements Processor.
func (t *Transposer) Process(ctx context.Context, source string) Record {
	record := Record{Source: source}

	destination, err := t.Destination(source)
	if err != nil {
		record.Err = err

		return record
	}

	if err = os.MkdirAll(filepath.Dir(destination), 0o755); err != nil { //nolint:gosec // output tree is meant to be shared
		record.Err = err

		return record
	}

	shift := t.Shift
	if shift == nil {
		shift = ShiftWithFFmpeg(types.Depth16)
	}

	sourceTrack := swapExt(source, ".csv")
	hasTrack := exists(sourceTrack)

	var errs []error

	for _, variant := range Shifts {
		output := VariantPath(destination, variant)

		if !t.Overwrite && exists(output) {
			record.Skipped++

			continue
		}

		if err = shift(ctx, source, output, variant.Semitones); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", variant.Suffix, err))

			continue
		}

		record.Outputs = append(record.Outputs, output)
		record.Created++

		if hasTrack {
			if err = copyFile(sourceTrack, swapExt(output, ".csv")); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if t.CopyOriginals {
		errs = append(errs, t.copyOriginal(source, destination, sourceTrack, hasTrack))
	}

	record.Err = errors.Join(errs...)

	slog.Info("processed", "file", filepath.Base(source), "created", record.Created, "skipped", record.Skipped)

	return record
}

func (t *Transposer) copyOriginal(source, destination, sourceTrack string, hasTrack bool) error {
	if t.Overwrite || !exists(destination) {
		if err := copyFile(source, destination); err != nil {
			return err
		}
	}

	destinationTrack := swapExt(destination, ".csv")
	if hasTrack && (t.Overwrite || !exists(destinationTrack)) {
		return copyFile(sourceTrack, destinationTrack)
	}

	return nil
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
