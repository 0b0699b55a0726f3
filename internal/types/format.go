package types

// BitDepth of integer PCM samples.
type BitDepth uint

const (
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// Bytes returns the width of one sample.
func (d BitDepth) Bytes() int {
	return int(d) / 8 //nolint:gosec // bounded by the constants above
}

// PCMFormat describes a raw interleaved little-endian stream.
type PCMFormat struct {
	SampleRate int
	BitDepth   BitDepth
	Channels   uint
}

// FrameBytes returns the size of one multi-channel sample frame.
func (f PCMFormat) FrameBytes() int {
	return f.BitDepth.Bytes() * int(f.Channels) //nolint:gosec // channel counts are small
}
