// Package audio converts between audio files and types.Buffer: PCM WAV natively, every other container through
// ffprobe and ffmpeg.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/farcloser/lowsweep/internal/types"
)

// Normalization divisors: a full-scale negative sample maps to -1.
const (
	MaxValue8  = 128.0        // 2^7, 8-bit WAV is unsigned around this midpoint
	MaxValue16 = 32768.0      // 2^15
	MaxValue24 = 8388608.0    // 2^23
	MaxValue32 = 2147483648.0 // 2^31
)

var (
	errBitDepth = errors.New("unsupported bit depth")
	errLayout   = errors.New("invalid PCM layout")
)

// MaxValue returns the normalization divisor for a bit depth.
func MaxValue(depth types.BitDepth) (float64, error) {
	switch depth {
	case 8:
		return MaxValue8, nil
	case types.Depth16:
		return MaxValue16, nil
	case types.Depth24:
		return MaxValue24, nil
	case types.Depth32:
		return MaxValue32, nil
	}

	return 0, fmt.Errorf("%w: %d", errBitDepth, depth)
}

// Deinterleave decodes signed little-endian PCM into a channel-major buffer. A trailing partial frame is dropped.
func Deinterleave(data []byte, format types.PCMFormat) (*types.Buffer, error) {
	if format.SampleRate <= 0 || format.Channels == 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", errLayout, format.SampleRate, format.Channels)
	}

	maxVal, err := MaxValue(format.BitDepth)
	if err != nil || format.BitDepth == 8 {
		return nil, fmt.Errorf("%w: %d", errBitDepth, format.BitDepth)
	}

	bytesPerSample := format.BitDepth.Bytes()
	numChannels := int(format.Channels) //nolint:gosec // channel count is small
	frameSize := format.FrameBytes()
	frames := len(data) / frameSize

	buffer := types.NewBuffer(format.SampleRate, numChannels, frames)

	for frame := range frames {
		offset := frame * frameSize

		for ch := range numChannels {
			pos := offset + ch*bytesPerSample

			var raw int32

			switch format.BitDepth {
			case types.Depth16:
				raw = int32(int16(binary.LittleEndian.Uint16(data[pos:]))) //nolint:gosec // two's complement conversion for signed PCM samples
			case types.Depth24:
				raw = int32(data[pos]) | int32(data[pos+1])<<8 | int32(data[pos+2])<<16
				if raw&0x800000 != 0 {
					raw |= ^0xFFFFFF
				}
			case types.Depth32:
				raw = int32(binary.LittleEndian.Uint32(data[pos:])) //nolint:gosec // two's complement conversion for signed PCM samples
			default:
			}

			buffer.Samples[ch][frame] = float64(raw) / maxVal
		}
	}

	return buffer, nil
}

// Quantize converts a normalized sample to a signed integer scaled by maxVal, rounding to nearest and clipping
// out-of-range values. NaN maps to silence.
func Quantize(sample, maxVal float64) int {
	if math.IsNaN(sample) {
		return 0
	}

	return int(math.Max(-maxVal, math.Min(maxVal-1, math.Round(sample*maxVal))))
}
