// Package ffmpeg wraps the ffmpeg binary: PCM extraction from any container, and pitch shifting.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/lowsweep/internal/integration/binary"
)

const (
	name = "ffmpeg"
	// Whole files are decoded in one go, long recordings on slow disks need the headroom.
	timeout = 10 * time.Minute
)

// run executes ffmpeg with args, wiring stdin and stdout when provided.
func run(ctx context.Context, operation string, stdin io.Reader, stdout io.Writer, args ...string) error {
	ffmpegPath, err := binary.Require(name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	global := []string{"-v", "quiet"}
	if stdin == nil {
		global = append(global, "-nostdin")
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, append(global, args...)...) //nolint:gosec // arguments are built by this package
	cmd.Stdin = stdin
	cmd.Stdout = stdout

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug(operation, "stage", "timeout")

			return fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		slog.Debug(operation, "stage", "error")

		return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	return nil
}
