package types

// Buffer holds decoded audio, channel-major. Samples are normalized to [-1, 1].
// Every channel has the same length.
type Buffer struct {
	SampleRate int
	Samples    [][]float64
}

// NewBuffer allocates a zeroed buffer with the given layout.
func NewBuffer(sampleRate int, channels, length int) *Buffer {
	samples := make([][]float64, channels)
	for ch := range samples {
		samples[ch] = make([]float64, length)
	}

	return &Buffer{
		SampleRate: sampleRate,
		Samples:    samples,
	}
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return len(b.Samples)
}

// Len returns the number of samples per channel.
func (b *Buffer) Len() int {
	if len(b.Samples) == 0 {
		return 0
	}

	return len(b.Samples[0])
}

// Seconds returns the buffer duration in seconds.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}

	return float64(b.Len()) / float64(b.SampleRate)
}
