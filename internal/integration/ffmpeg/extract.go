package ffmpeg

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/farcloser/lowsweep/internal/types"
)

// ExtractStream decodes one audio stream of a container to raw signed little-endian PCM at format.BitDepth,
// keeping the native sample rate and channel layout.
func ExtractStream(
	ctx context.Context,
	input io.Reader,
	output io.Writer,
	streamIndex int,
	format *types.PCMFormat,
) error {
	slog.Debug("ffmpeg.ExtractStream", "stream index", streamIndex, "stage", "start")

	return run(ctx, "ffmpeg.ExtractStream", input, output,
		"-i", "-",
		"-map", "0:a:"+strconv.Itoa(streamIndex),
		"-f", rawFormat(format.BitDepth),
		"-acodec", pcmCodec(format.BitDepth),
		"-",
	)
}
