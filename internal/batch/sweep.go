package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/farcloser/lowsweep"
	"github.com/farcloser/lowsweep/internal/annotation"
	"github.com/farcloser/lowsweep/internal/audio"
	"github.com/farcloser/lowsweep/internal/types"
)

// Sweeper writes <class>_<stem>.wav and .csv for each source: the low-pass sweep and its cutoff track.
type Sweeper struct {
	OutputDir string
	Classes   annotation.Classes
	Options   lowsweep.Options
	BitDepth  types.BitDepth
	Overwrite bool

	// Decode defaults to audio.Decode.
	Decode DecodeFunc
}

// Paths returns the audio and annotation outputs for source.
func (s *Sweeper) Paths(source string) (string, string) {
	base := filepath.Join(s.OutputDir, annotation.BaseName(source))

	return base + ".wav", base + ".csv"
}

// Outputs implements OutputLister.
func (s *Sweeper) Outputs(source string) []string {
	audioOut, trackOut := s.Paths(source)

	return []string{audioOut, trackOut}
}

// Process implements Processor.
func (s *Sweeper) Process(ctx context.Context, source string) Record {
	record := Record{Source: source}
	audioOut, trackOut := s.Paths(source)

	if !s.Overwrite && exists(audioOut) {
		slog.Info("skipping, output exists", "output", filepath.Base(audioOut))

		record.Skipped = 1

		return record
	}

	decode := s.Decode
	if decode == nil {
		decode = audio.Decode
	}

	buffer, err := decode(ctx, source)
	if err != nil {
		record.Err = fmt.Errorf("decoding: %w", err)

		return record
	}

	result, err := lowsweep.Sweep(buffer, s.Options)
	if err != nil {
		record.Err = fmt.Errorf("filtering: %w", err)

		return record
	}

	class := annotation.ClassOf(source)

	classIndex := s.Classes.Index(class)
	if classIndex == annotation.Unresolved {
		slog.Debug("class not in parameter list", "class", class, "file", source)
	}

	if err = audio.WriteWAV(audioOut, result.Filtered, s.BitDepth); err != nil {
		record.Err = err

		return record
	}

	if err = writeTrack(trackOut, annotation.CutoffHeader, classIndex, result.Cutoffs); err != nil {
		record.Err = err

		return record
	}

	record.Outputs = []string{audioOut, trackOut}
	record.Created = 1
	record.Frames = len(result.Frames)
	record.Degenerate = result.Count(types.OutcomeDegenerate)
	record.Fallback = result.Count(types.OutcomeFallback)
	record.Misaligned = abs(result.Mismatch) > result.FrameLength

	slog.Info("processed",
		"output", filepath.Base(audioOut),
		"frames", record.Frames,
		"cutoff", fmt.Sprintf("%g->%g Hz", s.Options.StartCutoff, s.Options.EndCutoff),
		"fallback", record.Fallback,
	)

	return record
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
