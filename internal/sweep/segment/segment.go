// Package segment partitions a sample buffer into the fixed-length frames the annotation track is aligned to.
package segment

import (
	"errors"
	"fmt"
)

// ErrFrameLength is returned when the sample rate and frame rate leave less than one sample per frame.
var ErrFrameLength = errors.New("frame length must be at least one sample")

// Frame is the half-open sample range [Start, End).
type Frame struct {
	Index int
	Start int
	End   int
}

// Len returns the number of samples in the frame.
func (f Frame) Len() int {
	return f.End - f.Start
}

// Empty reports whether the frame covers no sample.
func (f Frame) Empty() bool {
	return f.End <= f.Start
}

// FrameLength returns floor(sampleRate / fps).
func FrameLength(sampleRate int, fps float64) (int, error) {
	if sampleRate <= 0 || !(fps > 0) {
		return 0, fmt.Errorf("%w: sample rate %d, frame rate %v", ErrFrameLength, sampleRate, fps)
	}

	frameLen := int(float64(sampleRate) / fps)
	if frameLen < 1 {
		return 0, fmt.Errorf("%w: sample rate %d, frame rate %v", ErrFrameLength, sampleRate, fps)
	}

	return frameLen, nil
}

// Partition splits [0, length) into count frames of frameLen samples.
//
// The frame count comes from the cutoff trajectory, not from length, so the two can disagree:
//   - count*frameLen < length: the last frame extends to length.
//   - count*frameLen > length: trailing frames are clipped, and frames starting at or past length are empty.
//
// Non-empty frames always tile [0, length) with no gap or overlap.
func Partition(length, frameLen, count int) []Frame {
	if count <= 0 || frameLen <= 0 {
		return nil
	}

	length = max(length, 0)
	frames := make([]Frame, count)

	for idx := range frames {
		start := min(idx*frameLen, length)
		end := min((idx+1)*frameLen, length)

		if idx == count-1 {
			end = length
		}

		frames[idx] = Frame{Index: idx, Start: start, End: end}
	}

	return frames
}

// Mismatch returns count*frameLen - length: positive when the frames overshoot the buffer, negative when the last
// frame has to absorb a remainder.
func Mismatch(length, frameLen, count int) int {
	return count*frameLen - length
}
