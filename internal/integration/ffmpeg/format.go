package ffmpeg

import (
	"strconv"

	"github.com/farcloser/lowsweep/internal/types"
)

// rawFormat is the ffmpeg muxer name for signed little-endian PCM at depth: s16le, s24le, s32le.
func rawFormat(depth types.BitDepth) string {
	return "s" + strconv.FormatUint(uint64(depth), 10) + "le"
}

// pcmCodec is the matching encoder: pcm_s16le, pcm_s24le, pcm_s32le.
func pcmCodec(depth types.BitDepth) string {
	return "pcm_" + rawFormat(depth)
}
