//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/lowsweep/internal/integration/binary"
)

const (
	name    = "ffprobe"
	timeout = 60 * time.Second
)

var (
	errNoAudioStream     = errors.New("no audio stream found")
	errInvalidSampleRate = errors.New("invalid sample rate")
	errInvalidChannels   = errors.New("invalid channel count")
)

// Result contains the parts of the ffprobe output lowsweep relies on.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes one stream of the container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`            // flac
	CodecType  string `json:"codec_type"`            // audio
	SampleRate string `json:"sample_rate,omitempty"` // 44100
	Channels   int    `json:"channels,omitempty"`    // 2
	Duration   string `json:"duration,omitempty"`    // 310.666667
}

// Format is the container-level information.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`        // e.g. "flac", "mov,mp4,m4a,3gp,3g2,mj2"
	Duration   string `json:"duration,omitempty"` // seconds as float string, e.g. "310.666667"
}

// AudioStream returns the streamIndex-th audio stream (0-based, audio streams only).
func (r *Result) AudioStream(streamIndex int) (*Stream, error) {
	audioCount := 0

	for i := range r.Streams {
		if r.Streams[i].CodecType != "audio" {
			continue
		}

		if audioCount == streamIndex {
			return &r.Streams[i], nil
		}

		audioCount++
	}

	return nil, fmt.Errorf("%w: index %d (file has %d audio streams)", errNoAudioStream, streamIndex, audioCount)
}

// Layout returns the sample rate and channel count of the stream.
func (s *Stream) Layout() (int, int, error) {
	sampleRate, err := strconv.Atoi(s.SampleRate)
	if err != nil || sampleRate <= 0 {
		return 0, 0, fmt.Errorf("%q: %w", s.SampleRate, errInvalidSampleRate)
	}

	if s.Channels <= 0 {
		return 0, 0, fmt.Errorf("%d: %w", s.Channels, errInvalidChannels)
	}

	return sampleRate, s.Channels, nil
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := binary.Require(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	var result Result
	if err = json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}
