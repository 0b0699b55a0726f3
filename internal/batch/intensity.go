package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/farcloser/lowsweep"
	"github.com/farcloser/lowsweep/internal/annotation"
	"github.com/farcloser/lowsweep/internal/audio"
)

// Intensifier copies each source to <class>_<stem>.<ext> and writes a .csv intensity track decreasing linearly
// from 100 to 0.
type Intensifier struct {
	OutputDir string
	Classes   annotation.Classes
	FrameRate float64
	Overwrite bool

	// Decode defaults to audio.Decode.
	Decode DecodeFunc
}

// Paths returns the audio copy and annotation outputs for source.
func (i *Intensifier) Paths(source string) (string, string) {
	base := filepath.Join(i.OutputDir, annotation.BaseName(source))

	return base + filepath.Ext(source), base + ".csv"
}

// Outputs implements OutputLister.
func (i *Intensifier) Outputs(source string) []string {
	audioOut, trackOut := i.Paths(source)

	return []string{audioOut, trackOut}
}

// Process implements Processor.
func (i *Intensifier) Process(ctx context.Context, source string) Record {
	record := Record{Source: source}
	audioOut, trackOut := i.Paths(source)

	if !i.Overwrite && exists(audioOut) && exists(trackOut) {
		slog.Info("skipping, output exists", "output", filepath.Base(audioOut))

		record.Skipped = 1

		return record
	}

	decode := i.Decode
	if decode == nil {
		decode = audio.Decode
	}

	buffer, err := decode(ctx, source)
	if err != nil {
		record.Err = fmt.Errorf("decoding: %w", err)

		return record
	}

	intensity, err := lowsweep.Intensity(buffer, i.FrameRate)
	if err != nil {
		record.Err = err

		return record
	}

	if err = copyFile(source, audioOut); err != nil {
		record.Err = err

		return record
	}

	classIndex := i.Classes.Index(annotation.ClassOf(source))

	if err = writeTrack(trackOut, annotation.IntensityHeader, classIndex, intensity); err != nil {
		record.Err = err

		return record
	}

	record.Outputs = []string{audioOut, trackOut}
	record.Created = 1
	record.Frames = len(intensity)

	slog.Info("processed", "output", filepath.Base(audioOut), "rows", len(intensity), "intensity", "100->0")

	return record
}
