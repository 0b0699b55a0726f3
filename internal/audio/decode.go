package audio

import (
	"bytes"
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

// Decode reads the first audio stream of path. PCM WAV is read natively, everything else (float WAV included)
// is probed with ffprobe and extracted as 32-bit PCM with ffmpeg.
func Decode(ctx context.Context, path string) (*types.Buffer, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		buffer, err := ReadWAV(path)
		if err == nil {
			return buffer, nil
		}

		if !errors.Is(err, errNotPCMWav) && !errors.Is(err, errBitDepth) {
			return nil, err
		}

		slog.Debug("audio.Decode", "file", path, "reason", err, "stage", "ffmpeg fallback")
	}

	return decodeWithFFmpeg(ctx, path)
}

func decodeWithFFmpeg(ctx context.Context, path string) (*types.Buffer, error) {
	probe, err := ffprobe.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing file: %w", err)
	}

	stream, err := probe.AudioStream(0)
	if err != nil {
		return nil, err
	}

	sampleRate, channels, err := stream.Layout()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	format := types.PCMFormat{
		SampleRate: sampleRate,
		BitDepth:   types.Depth32,
		Channels:   uint(channels), //nolint:gosec // validated positive value
	}

	var pcm bytes.Buffer

	if err = ffmpeg.ExtractStream(ctx, file, &pcm, 0, &format); err != nil {
		return nil, fmt.Errorf("extracting PCM: %w", err)
	}

	return Deinterleave(pcm.Bytes(), format)
}
