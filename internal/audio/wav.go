package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/farcloser/primordium/fault"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/farcloser/lowsweep/internal/types"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag. Float and extensible WAV go through ffmpeg.
const wavFormatPCM = 1

var (
	errNotPCMWav = errors.New("not a PCM WAV file")
	errEmptyWav  = errors.New("empty buffer")
)

// ReadWAV decodes a PCM WAV file.
func ReadWAV(path string) (*types.Buffer, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified audio files
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() || decoder.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %s", errNotPCMWav, path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	numChannels := int(decoder.NumChans)
	depth := types.BitDepth(decoder.BitDepth)

	maxVal, err := MaxValue(depth)
	if err != nil {
		return nil, err
	}

	if numChannels <= 0 || decoder.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", errLayout, decoder.SampleRate, numChannels)
	}

	frames := len(pcm.Data) / numChannels
	buffer := types.NewBuffer(int(decoder.SampleRate), numChannels, frames)

	for frame := range frames {
		for ch := range numChannels {
			value := float64(pcm.Data[frame*numChannels+ch])
			if depth == 8 {
				// 8-bit WAV is unsigned.
				value -= MaxValue8
			}

			buffer.Samples[ch][frame] = value / maxVal
		}
	}

	return buffer, nil
}

// WriteWAV encodes buffer as PCM WAV at the given bit depth, creating or truncating path.
func WriteWAV(path string, buffer *types.Buffer, depth types.BitDepth) error {
	if buffer == nil || buffer.Channels() == 0 {
		return errEmptyWav
	}

	maxVal, err := MaxValue(depth)
	if err != nil || depth == 8 {
		return fmt.Errorf("%w: %d", errBitDepth, depth)
	}

	numChannels := buffer.Channels()
	length := buffer.Len()
	data := make([]int, length*numChannels)

	for frame := range length {
		for ch := range numChannels {
			data[frame*numChannels+ch] = Quantize(buffer.Samples[ch][frame], maxVal)
		}
	}

	file, err := os.Create(path) //nolint:gosec // output path derived from user-specified directory
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, buffer.SampleRate, int(depth), numChannels, wavFormatPCM)

	pcm := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: numChannels,
			SampleRate:  buffer.SampleRate,
		},
		Data:           data,
		SourceBitDepth: int(depth),
	}

	if err = encoder.Write(pcm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err = encoder.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	return file.Close()
}
